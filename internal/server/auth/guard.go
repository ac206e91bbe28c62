package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pdstore/internal/common"
)

// TokenVerifier resolves a session token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// VerifyRequestToken extracts the bearer token from a raw Authorization
// header value and verifies it.
//
// An empty header or one without a "Bearer <token>" value yields
// common.ErrMissingCredential. Any verification failure yields
// common.ErrInvalidCredential wrapping the cause.
func VerifyRequestToken(v TokenVerifier, rawHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(rawHeader), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", common.ErrMissingCredential
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", common.ErrMissingCredential
	}

	userID, err := v.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidCredential, err)
	}
	return userID, nil
}

type ctxKey struct{}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext returns the user id stored by WithUserID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
