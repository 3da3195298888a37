// Package common contains shared constants and sentinel errors used across
// stujob components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorBadRequest   = errors.New("bad request")

	// Identity provider error kinds. The client adapter maps wire-level
	// responses onto this closed set exactly once; nothing above the
	// adapter inspects error text.
	ErrorAlreadyRegistered = errors.New("email already registered")
	ErrorEmailNotConfirmed = errors.New("email not confirmed")
	ErrorRateLimited       = errors.New("rate limited")
	ErrorWeakPassword      = errors.New("password too weak")
	ErrorInvalidEmail      = errors.New("invalid email address")

	// Transport errors.
	ErrorUnavailable = errors.New("server unavailable")

	// Auth token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
