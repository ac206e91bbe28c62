package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRejected     = errors.New("request rejected")
	ErrNotSignedIn  = errors.New("not signed in")
)

// APIError is a non-2xx response from the server. It matches
// ErrUnauthorized for 401/403, ErrUnavailable for 5xx and ErrRejected
// otherwise.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded with status %d", e.Status)
	}
	return e.Message
}

func (e *APIError) Is(target error) bool {
	switch {
	case e.Status == 401 || e.Status == 403:
		return target == ErrUnauthorized
	case e.Status >= 500:
		return target == ErrUnavailable
	default:
		return target == ErrRejected
	}
}
