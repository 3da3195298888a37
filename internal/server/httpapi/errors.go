package httpapi

import (
	"errors"
	"net/http"

	"github.com/stujob/stujob/internal/common"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// classify maps a service error onto an HTTP status and error kind.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorEmailNotConfirmed):
		return http.StatusForbidden, common.KindEmailNotConfirmed
	case errors.Is(err, common.ErrorAlreadyRegistered):
		return http.StatusConflict, common.KindAlreadyRegistered
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, common.KindAlreadyExists
	case errors.Is(err, common.ErrorRateLimited):
		return http.StatusTooManyRequests, common.KindRateLimited
	case errors.Is(err, common.ErrorWeakPassword):
		return http.StatusBadRequest, common.KindWeakPassword
	case errors.Is(err, common.ErrorInvalidEmail):
		return http.StatusBadRequest, common.KindInvalidEmail
	case errors.Is(err, common.ErrorBadRequest):
		return http.StatusBadRequest, common.KindBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, common.KindNotFound
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, common.KindUnauthorized
	default:
		return http.StatusInternalServerError, common.KindInternal
	}
}
