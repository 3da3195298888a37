// Package session contains the identity reconciliation engine. A user may
// exist as a locally persisted profile with a client-generated identifier
// and as a remote account with a server-issued identifier; the Manager
// decides whether the two represent the same logical user, heals missing
// remote profile rows, and migrates local data onto the remote identifier.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/stujob/stujob/internal/catalog"
	"github.com/stujob/stujob/internal/client/models"
	"github.com/stujob/stujob/internal/common"
	"github.com/stujob/stujob/internal/logging"
)

// Identity is the credential authority the engine signs in against.
type Identity interface {
	SignUp(ctx context.Context, email, password, name, university string) (*models.Account, error)
	SignIn(ctx context.Context, email, password string) (*models.Account, error)
	GetSession(ctx context.Context) (*models.Account, error)
	SignOut(ctx context.Context) error
}

// ProfileTable is the remote row-per-user profile store, keyed by account
// identifier with uniqueness enforced by the backing store.
type ProfileTable interface {
	Find(ctx context.Context, accountID string) (*models.RemoteProfile, error)
	FindByEmail(ctx context.Context, email string) (*models.RemoteProfile, error)
	InsertIfAbsent(ctx context.Context, seed *models.RemoteProfile) (*models.RemoteProfile, bool, error)
	Update(ctx context.Context, accountID string, patch *models.ProfileUpdate) (*models.RemoteProfile, error)
}

// Store is the local key-value profile store. Get returns (nil, nil) for a
// missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// State is the engine's lifecycle state for the current run.
type State string

const (
	StateUnresolved   State = "unresolved"
	StateResolving    State = "resolving"
	StateAnonymous    State = "anonymous"
	StateLocalOnly    State = "local_only"
	StateRemoteLinked State = "remote_linked"
)

// LinkState compares the local profile identifier against the remote
// session's account identifier.
type LinkState string

const (
	LinkUnlinked  LinkState = "unlinked"
	LinkLinked    LinkState = "linked"
	LinkDivergent LinkState = "divergent"
)

var (
	// ErrNoLocalProfile is returned by MigrateAccount when there is nothing
	// to migrate.
	ErrNoLocalProfile = errors.New("no local profile to migrate")

	// ErrNotLinked is returned by UpdateProfile when no remote-linked user
	// is currently resolved.
	ErrNotLinked = errors.New("no remote-linked user resolved")
)

// Options gates policy decisions of the engine.
type Options struct {
	// AllowUnconfirmedEmailLogin downgrades a correct-password sign-in
	// against an unconfirmed email to a successful login with an advisory
	// message. When false such a sign-in fails.
	AllowUnconfirmedEmailLogin bool
}

// Manager owns the merged-user state and exposes the reconciliation
// operations. All collaborators are injected, so tests can substitute fakes.
type Manager struct {
	identity Identity
	profiles ProfileTable
	store    Store
	logger   logging.Logger
	opts     Options

	current       *models.Profile
	authenticated bool
	state         State
}

// NewManager builds a Manager over the given collaborators. The manager is
// not safe for concurrent use; operations are independent user actions and
// the last local store write wins.
func NewManager(identity Identity, profiles ProfileTable, store Store, logger logging.Logger, opts Options) *Manager {
	return &Manager{
		identity: identity,
		profiles: profiles,
		store:    store,
		logger:   logger.With("module", "session"),
		opts:     opts,
		state:    StateUnresolved,
	}
}

// CurrentUser returns the currently resolved merged user (may be nil) and
// whether it is backed by an authenticated remote session.
func (m *Manager) CurrentUser() (*models.Profile, bool) {
	return m.current, m.authenticated
}

// State returns the engine's lifecycle state.
func (m *Manager) State() State {
	return m.state
}

func (m *Manager) setCurrent(user *models.Profile, authenticated bool, state State) {
	m.current = user
	m.authenticated = authenticated
	m.state = state
}

// saveBackup write-through-caches the merged user under the backup key.
// Storage write failures are logged and never surfaced.
func (m *Manager) saveBackup(ctx context.Context, user *models.Profile) {
	raw, err := json.Marshal(user)
	if err != nil {
		m.logger.Error(ctx, "profile backup marshal failed", "error", err.Error())
		return
	}
	if err := m.store.Set(ctx, common.BackupProfileKey, raw); err != nil {
		m.logger.Error(ctx, "profile backup write failed", "error", err.Error())
	}
}

// loadLocalProfile reads the backup snapshot, falling back to converting a
// legacy pre-migration record when no backup exists.
func (m *Manager) loadLocalProfile(ctx context.Context) *models.Profile {
	raw, err := m.store.Get(ctx, common.BackupProfileKey)
	if err != nil {
		m.logger.Error(ctx, "local profile read failed", "error", err.Error())
		return nil
	}
	if raw != nil {
		var p models.Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			m.logger.Error(ctx, "local profile decode failed", "error", err.Error())
			return nil
		}
		return &p
	}

	legacy, err := m.SyncWithLegacy(ctx)
	if err != nil {
		m.logger.Error(ctx, "legacy profile conversion failed", "error", err.Error())
		return nil
	}
	return legacy
}

// SyncWithLegacy converts a legacy pre-migration record under the old key
// into the backup shape and removes the legacy key. Returns (nil, nil) when
// no legacy record exists.
func (m *Manager) SyncWithLegacy(ctx context.Context) (*models.Profile, error) {
	raw, err := m.store.Get(ctx, common.LegacyProfileKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}

	if p.ProfileCompletion == 0 {
		if p.IsRegistered {
			p.ProfileCompletion = common.CompletionMigrated
		} else {
			p.ProfileCompletion = common.CompletionBasic
		}
	}

	m.saveBackup(ctx, &p)
	if err := m.store.Remove(ctx, common.LegacyProfileKey); err != nil {
		m.logger.Error(ctx, "legacy key removal failed", "error", err.Error())
	}
	return &p, nil
}

// newLocalID generates a client-side opaque identifier for profiles that are
// not yet backed by a remote account.
func newLocalID() string {
	return "local-" + uuid.NewString()
}

// nameFromEmail guesses a display name from the email local-part.
func nameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

// defaultRemoteProfile synthesizes a profile row for an authenticated
// account that has no profile yet (first sign-in, legacy account, or a race
// with delayed profile creation).
func defaultRemoteProfile(acct *models.Account) *models.RemoteProfile {
	name := acct.Name
	if name == "" {
		name = nameFromEmail(acct.Email)
	}
	university := acct.University
	if university == "" {
		university = catalog.DefaultUniversity
	}

	return &models.RemoteProfile{
		AccountID:         acct.ID,
		Name:              name,
		Email:             acct.Email,
		University:        university,
		MajorCode:         catalog.DefaultMajorCode(),
		Course:            1,
		Skills:            []string{},
		ProfileCompletion: common.CompletionSynthesized,
	}
}
