package accounts

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/stujob/stujob/internal/common"
	"github.com/stujob/stujob/internal/cryptox"
	"github.com/stujob/stujob/internal/server/auth"
	"github.com/stujob/stujob/internal/server/config"
)

// MinPasswordLength matches the sign-up form requirement.
const MinPasswordLength = 6

// signInAttemptLimit caps credential attempts per email per window.
const (
	signInAttemptLimit  = 10
	signInAttemptWindow = time.Minute
)

type Service struct {
	repo          Repository
	jwtSecret     []byte
	tokenValidity time.Duration
	hashParams    cryptox.Params

	mu       sync.Mutex
	attempts map[string][]time.Time
	now      func() time.Time
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:          repo,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.AccessTokenValidityDuration,
		hashParams:    cryptox.DefaultParams(),
		attempts:      make(map[string][]time.Time),
		now:           time.Now,
	}
}

// SignUp creates a new credential account. The email starts unconfirmed.
// A duplicate email returns common.ErrorAlreadyRegistered; a short password
// returns common.ErrorWeakPassword.
//
// An access token is issued right away even though the email is not yet
// confirmed: the caller just proved ownership of the credentials, and the
// fresh session is what lets the client create the account's profile row
// before the confirmation link is ever clicked. SignIn keeps refusing
// unconfirmed emails.
func (s *Service) SignUp(ctx context.Context, email, password, name, university string) (*Account, string, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", common.ErrorInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, "", common.ErrorWeakPassword
	}
	if err := s.allowAttempt(email); err != nil {
		return nil, "", err
	}

	hash, err := cryptox.HashPassword(password, s.hashParams)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	account := &Account{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		University:   university,
	}

	account, err = s.repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyRegistered
		}
		return nil, "", common.ErrorInternal
	}

	token, err := s.issueToken(account.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return account, token, nil
}

// SignIn verifies credentials and issues an access token. An unknown email or
// wrong password returns common.ErrorUnauthorized; a correct password with an
// unconfirmed email returns common.ErrorEmailNotConfirmed and no token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Account, string, error) {
	email = normalizeEmail(email)
	if err := s.allowAttempt(email); err != nil {
		return nil, "", err
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	ok, err := cryptox.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	if !ok {
		return nil, "", common.ErrorUnauthorized
	}

	if !account.EmailConfirmed {
		return account, "", common.ErrorEmailNotConfirmed
	}

	token, err := s.issueToken(account.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return account, token, nil
}

// Authenticate resolves an access token into the account it was issued for.
func (s *Service) Authenticate(ctx context.Context, token string) (*Account, error) {
	accountID, err := s.tokenAccountID(token)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return account, nil
}

// ConfirmEmail marks the account's email as confirmed (confirmation-link
// callback).
func (s *Service) ConfirmEmail(ctx context.Context, accountID string) error {
	if err := s.repo.ConfirmEmail(ctx, accountID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

func (s *Service) issueToken(accountID string) (string, error) {
	return auth.GenerateToken(accountID, s.jwtSecret, s.tokenValidity)
}

func (s *Service) tokenAccountID(token string) (string, error) {
	return auth.GetAccountIDFromToken(token, s.jwtSecret)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// allowAttempt records an attempt for email and returns ErrorRateLimited when
// the per-window limit is exceeded.
func (s *Service) allowAttempt(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-signInAttemptWindow)

	recent := s.attempts[email][:0]
	for _, t := range s.attempts[email] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= signInAttemptLimit {
		s.attempts[email] = recent
		return common.ErrorRateLimited
	}

	s.attempts[email] = append(recent, now)
	return nil
}
