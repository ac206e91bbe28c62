package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pdstore/internal/common"
)

type errorResponse struct {
	Message string `json:"message"`
}

// statusFor maps an error to the HTTP status and the message shown to the
// client. Internal causes never reach the message of 401/403/5xx answers.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrMissingCredential):
		return http.StatusUnauthorized, "No token provided"
	case errors.Is(err, common.ErrInvalidCredential):
		return http.StatusForbidden, "Invalid token"
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, common.ErrEmailInUse):
		return http.StatusBadRequest, "Email already in use"
	case errors.Is(err, common.ErrNoChallenges):
		return http.StatusBadRequest, "At least one challenge is required"
	case errors.Is(err, common.ErrUnknownChallenge),
		errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, common.ErrStoreUnavailable), abandoned(err):
		return http.StatusServiceUnavailable, "Service unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// abandoned reports whether err comes from a canceled or timed out request
// rather than from the server.
func abandoned(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// tokenRejection names the guard failure for metrics and logs.
func tokenRejection(err error) string {
	switch {
	case errors.Is(err, common.ErrMissingCredential):
		return "missing"
	case errors.Is(err, common.ErrTokenExpired):
		return "expired"
	case errors.Is(err, common.ErrUnsupportedPayload):
		return "unsupported_payload"
	case errors.Is(err, common.ErrMalformedToken):
		return "malformed"
	default:
		return "other"
	}
}
