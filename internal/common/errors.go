// Package common defines shared constants and sentinel errors used across
// the pdstore server and client. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal       = errors.New("internal error")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Input errors.
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmailInUse       = errors.New("email already in use")
	ErrNoChallenges     = errors.New("at least one challenge is required")
	ErrUnknownChallenge = errors.New("unknown challenge")

	// Credential errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredential  = errors.New("no token provided")
	ErrInvalidCredential  = errors.New("invalid token")

	// Token errors, distinguished internally only.
	ErrMalformedToken     = errors.New("malformed token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnsupportedPayload = errors.New("unsupported token payload")

	// Consistency errors.
	ErrUserNotFound = errors.New("user not found")
)

// UnknownChallengeError lists the challenge ids that are not in the catalog.
// It matches ErrUnknownChallenge.
type UnknownChallengeError struct {
	IDs []int64
}

func (e *UnknownChallengeError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%s: %s", ErrUnknownChallenge, strings.Join(ids, ", "))
}

func (e *UnknownChallengeError) Is(target error) bool {
	return target == ErrUnknownChallenge
}
