package common

// Error kinds form the closed vocabulary carried in the "kind" field of every
// JSON error body, so clients branch on a tag instead of matching message
// text.
const (
	KindEmailNotConfirmed = "email_not_confirmed"
	KindAlreadyRegistered = "already_registered"
	KindAlreadyExists     = "already_exists"
	KindRateLimited       = "rate_limited"
	KindWeakPassword      = "weak_password"
	KindInvalidEmail      = "invalid_email"
	KindNotFound          = "not_found"
	KindUnauthorized      = "unauthorized"
	KindBadRequest        = "bad_request"
	KindInternal          = "internal"
)

// ErrorByKind maps a wire error kind back to its sentinel. Unknown kinds map
// to ErrorInternal.
func ErrorByKind(kind string) error {
	switch kind {
	case KindEmailNotConfirmed:
		return ErrorEmailNotConfirmed
	case KindAlreadyRegistered:
		return ErrorAlreadyRegistered
	case KindAlreadyExists:
		return ErrorAlreadyExists
	case KindRateLimited:
		return ErrorRateLimited
	case KindWeakPassword:
		return ErrorWeakPassword
	case KindInvalidEmail:
		return ErrorInvalidEmail
	case KindNotFound:
		return ErrorNotFound
	case KindUnauthorized:
		return ErrorUnauthorized
	case KindBadRequest:
		return ErrorBadRequest
	default:
		return ErrorInternal
	}
}
