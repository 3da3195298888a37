package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stujob/stujob/internal/catalog"
	"github.com/stujob/stujob/internal/client/models"
	"github.com/stujob/stujob/internal/common"
)

// Resolution is the outcome of ResolveCurrentUser.
type Resolution struct {
	User          *models.Profile
	Authenticated bool
}

// LoginResult is the outcome of a successful Login. Advisory is non-empty
// when the login was downgraded from an unconfirmed-email failure.
type LoginResult struct {
	User          *models.Profile
	Authenticated bool
	Advisory      string
}

// Draft is the registration form input.
type Draft struct {
	Email      string
	Password   string
	Name       string
	University string
	MajorCode  string
	Course     int
	Skills     []string
}

// ResolveCurrentUser produces the authoritative merged user view from
// whatever local and remote state currently exists. Lookup failures degrade
// to the next branch; the resolved user is write-through cached locally.
func (m *Manager) ResolveCurrentUser(ctx context.Context) Resolution {
	m.state = StateResolving

	acct, err := m.identity.GetSession(ctx)
	if err != nil {
		m.logger.Warn(ctx, "session lookup failed, treating as signed out", "error", err.Error())
		acct = nil
	}

	if acct != nil {
		user := m.ensureRemoteProfile(ctx, acct)
		m.setCurrent(user, true, StateRemoteLinked)
		m.saveBackup(ctx, user)
		return Resolution{User: user, Authenticated: true}
	}

	if local := m.loadLocalProfile(ctx); local != nil {
		m.setCurrent(local, false, StateLocalOnly)
		m.saveBackup(ctx, local)
		return Resolution{User: local, Authenticated: false}
	}

	m.setCurrent(nil, false, StateAnonymous)
	return Resolution{}
}

// ensureRemoteProfile returns the account's profile row, synthesizing and
// inserting a default one when none exists. Concurrent synthesis attempts
// are resolved by the table's InsertIfAbsent semantics.
func (m *Manager) ensureRemoteProfile(ctx context.Context, acct *models.Account) *models.Profile {
	remote, err := m.profiles.Find(ctx, acct.ID)
	if err == nil {
		return models.FromRemote(remote)
	}
	if !errors.Is(err, common.ErrorNotFound) {
		m.logger.Warn(ctx, "profile lookup failed, synthesizing default", "error", err.Error())
	}

	draft := defaultRemoteProfile(acct)
	stored, _, err := m.profiles.InsertIfAbsent(ctx, draft)
	if err != nil {
		m.logger.Warn(ctx, "default profile insert failed, using draft", "error", err.Error())
		return models.FromRemote(draft)
	}
	return models.FromRemote(stored)
}

// Login signs in with credentials. A correct password against an unconfirmed
// email is, when allowed by Options, downgraded to a successful login backed
// by the best profile the fallback strategies can produce.
func (m *Manager) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	acct, err := m.identity.SignIn(ctx, email, password)
	if err == nil {
		user := m.ensureRemoteProfile(ctx, acct)
		m.setCurrent(user, true, StateRemoteLinked)
		m.saveBackup(ctx, user)
		return &LoginResult{User: user, Authenticated: true}, nil
	}

	if errors.Is(err, common.ErrorEmailNotConfirmed) && m.opts.AllowUnconfirmedEmailLogin {
		return m.loginUnconfirmed(ctx, email), nil
	}

	return nil, err
}

// loginStrategy produces a merged user for an unconfirmed-email login.
// ok is false when the strategy is not applicable and the next one should
// be tried.
type loginStrategy struct {
	name string
	run  func(ctx context.Context, email string) (user *models.Profile, authenticated bool, ok bool)
}

// loginUnconfirmed evaluates the ordered fallback strategies and adopts the
// first applicable outcome. The last strategy always applies, so the login
// never fails.
func (m *Manager) loginUnconfirmed(ctx context.Context, email string) *LoginResult {
	strategies := []loginStrategy{
		{name: "session-profile", run: m.sessionProfileStrategy},
		{name: "profile-by-email", run: m.profileByEmailStrategy},
		{name: "transient-local", run: m.transientProfileStrategy},
	}

	for _, s := range strategies {
		user, authenticated, ok := s.run(ctx, email)
		if !ok {
			continue
		}

		m.logger.Info(ctx, "unconfirmed email login", "strategy", s.name)

		state := StateLocalOnly
		if authenticated {
			state = StateRemoteLinked
		}
		m.setCurrent(user, authenticated, state)
		m.saveBackup(ctx, user)

		return &LoginResult{
			User:          user,
			Authenticated: authenticated,
			Advisory:      "email not confirmed: confirm it to finish linking your account",
		}
	}

	// Unreachable: the transient strategy always applies.
	return nil
}

func (m *Manager) sessionProfileStrategy(ctx context.Context, email string) (*models.Profile, bool, bool) {
	acct, err := m.identity.GetSession(ctx)
	if err != nil || acct == nil {
		return nil, false, false
	}
	remote, err := m.profiles.Find(ctx, acct.ID)
	if err != nil {
		return nil, false, false
	}
	return models.FromRemote(remote), true, true
}

func (m *Manager) profileByEmailStrategy(ctx context.Context, email string) (*models.Profile, bool, bool) {
	remote, err := m.profiles.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, false
	}
	return models.FromRemote(remote), false, true
}

func (m *Manager) transientProfileStrategy(ctx context.Context, email string) (*models.Profile, bool, bool) {
	return &models.Profile{
		ID:                newLocalID(),
		Name:              nameFromEmail(email),
		Email:             email,
		University:        catalog.DefaultUniversity,
		MajorCode:         catalog.DefaultMajorCode(),
		Course:            1,
		Skills:            []string{},
		ProfileCompletion: common.CompletionTransient,
	}, false, true
}

// Register creates a remote account plus its profile row from the form
// draft. A duplicate email fails without creating anything. Sign-up
// establishes a session of its own, so the profile insert that follows is
// authenticated even while the email is still unconfirmed.
func (m *Manager) Register(ctx context.Context, draft Draft) (*models.Profile, error) {
	acct, err := m.identity.SignUp(ctx, draft.Email, draft.Password, draft.Name, draft.University)
	if err != nil {
		return nil, err
	}

	seed := draft.toRemote(acct.ID)
	stored, _, err := m.profiles.InsertIfAbsent(ctx, seed)
	if err != nil {
		m.logger.Warn(ctx, "profile insert after sign-up failed, using draft", "error", err.Error())
		stored = seed
	}

	authenticated := m.hasSession(ctx)
	if !authenticated {
		m.logger.Info(ctx, "no session after sign-up, resolved user stays local-only")
	}

	final := stored
	if authenticated {
		if remote, err := m.profiles.Find(ctx, acct.ID); err == nil {
			final = remote
		}
	}

	user := models.FromRemote(final)
	state := StateLocalOnly
	if authenticated {
		state = StateRemoteLinked
	}
	m.setCurrent(user, authenticated, state)
	m.saveBackup(ctx, user)
	return user, nil
}

// hasSession reports whether the identity service currently recognizes a
// session for this client.
func (m *Manager) hasSession(ctx context.Context) bool {
	acct, err := m.identity.GetSession(ctx)
	return err == nil && acct != nil
}

func (d Draft) toRemote(accountID string) *models.RemoteProfile {
	university := d.University
	if university == "" {
		university = catalog.DefaultUniversity
	}
	majorCode := d.MajorCode
	if majorCode == "" {
		majorCode = catalog.DefaultMajorCode()
	}
	course := d.Course
	if course == 0 {
		course = 1
	}
	skills := d.Skills
	if skills == nil {
		skills = []string{}
	}

	return &models.RemoteProfile{
		AccountID:         accountID,
		Name:              d.Name,
		Email:             d.Email,
		University:        university,
		MajorCode:         majorCode,
		Course:            course,
		Skills:            skills,
		ProfileCompletion: common.CompletionRegistered,
	}
}

// MigrateAccount reconciles the pre-existing local profile into a remote
// account: sign in if the email is already registered, otherwise sign up,
// then ensure exactly one profile row exists for the resulting account and
// overwrite the local identifier with the account identifier.
//
// A duplicate-email failure during the sign-up leg is terminal: the email is
// registered but the supplied password is wrong.
func (m *Manager) MigrateAccount(ctx context.Context, email, password string) (*models.Profile, error) {
	local := m.current
	if local == nil {
		local = m.loadLocalProfile(ctx)
	}
	if local == nil {
		return nil, ErrNoLocalProfile
	}

	if email == "" {
		email = local.Email
	}
	if email == "" {
		return nil, fmt.Errorf("%w: an email is required for migration", common.ErrorInvalidEmail)
	}

	authenticated := true
	acct, err := m.identity.SignIn(ctx, email, password)
	if err != nil {
		if !isCredentialMiss(err) {
			return nil, err
		}

		acct, err = m.identity.SignUp(ctx, email, password, local.Name, local.University)
		if err != nil {
			return nil, err
		}

		// The sign-up leg carries its own session.
		authenticated = m.hasSession(ctx)
	}

	remote, err := m.profiles.Find(ctx, acct.ID)
	if err != nil {
		seed := models.ToRemote(local, acct.ID)
		seed.Email = email
		seed.ProfileCompletion = common.CompletionMigrated

		stored, _, insErr := m.profiles.InsertIfAbsent(ctx, seed)
		if insErr != nil {
			m.logger.Warn(ctx, "migration profile insert failed, assuming present", "error", insErr.Error())
			stored = seed
		}
		remote = stored
	}

	// The actual migration: local records now key off the remote identifier.
	user := models.FromRemote(remote)
	state := StateLocalOnly
	if authenticated {
		state = StateRemoteLinked
	}
	m.setCurrent(user, authenticated, state)
	m.saveBackup(ctx, user)
	return user, nil
}

// isCredentialMiss reports whether a sign-in failure means "this email is
// not usable with this password right now" and migration should try the
// sign-up leg instead.
func isCredentialMiss(err error) bool {
	return errors.Is(err, common.ErrorUnauthorized) ||
		errors.Is(err, common.ErrorNotFound) ||
		errors.Is(err, common.ErrorEmailNotConfirmed)
}

// UpdateProfile applies a partial change to the resolved remote-linked
// user's profile row. Identifier and creation-timestamp fields are stripped
// from the patch before the write.
func (m *Manager) UpdateProfile(ctx context.Context, patch map[string]any) (*models.Profile, error) {
	if m.current == nil || !m.authenticated {
		return nil, ErrNotLinked
	}

	for _, immutable := range []string{"id", "account_id", "user_id", "created_at", "updated_at"} {
		delete(patch, immutable)
	}

	upd, err := toProfileUpdate(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorBadRequest, err)
	}

	remote, err := m.profiles.Update(ctx, m.current.ID, upd)
	if err != nil {
		return nil, err
	}

	user := models.FromRemote(remote)
	m.setCurrent(user, true, StateRemoteLinked)
	m.saveBackup(ctx, user)
	return user, nil
}

func toProfileUpdate(patch map[string]any) (*models.ProfileUpdate, error) {
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}

	var upd models.ProfileUpdate
	if err := json.Unmarshal(raw, &upd); err != nil {
		return nil, err
	}
	return &upd, nil
}

// Logout terminates the remote session, clears the merged user and removes
// the local snapshots. Idempotent.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.identity.SignOut(ctx); err != nil {
		m.logger.Warn(ctx, "remote sign-out failed", "error", err.Error())
	}

	for _, key := range []string{common.BackupProfileKey, common.LegacyProfileKey} {
		if err := m.store.Remove(ctx, key); err != nil {
			m.logger.Error(ctx, "local snapshot removal failed", "key", key, "error", err.Error())
		}
	}

	m.setCurrent(nil, false, StateAnonymous)
	return nil
}

// CheckStatus compares the local profile identifier against the current
// session's account identifier: Linked when they agree, Divergent when both
// exist but differ, Unlinked when no remote session exists.
func (m *Manager) CheckStatus(ctx context.Context) (LinkState, error) {
	acct, err := m.identity.GetSession(ctx)
	if err != nil {
		return LinkUnlinked, err
	}
	if acct == nil {
		return LinkUnlinked, nil
	}

	local := m.loadLocalProfile(ctx)
	if local == nil || local.ID == acct.ID {
		return LinkLinked, nil
	}
	return LinkDivergent, nil
}

// RefreshUser re-fetches the remote profile of the current session and
// refreshes the merged user and its local backup. Without a session it
// leaves the current state untouched.
func (m *Manager) RefreshUser(ctx context.Context) (*models.Profile, error) {
	acct, err := m.identity.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return m.current, nil
	}

	remote, err := m.profiles.Find(ctx, acct.ID)
	if err != nil {
		return nil, err
	}

	user := models.FromRemote(remote)
	m.setCurrent(user, true, StateRemoteLinked)
	m.saveBackup(ctx, user)
	return user, nil
}
