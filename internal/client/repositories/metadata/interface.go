// Package metadata stores the CLI's local key/value session data
// (the signed-in email and its session token) in SQLite.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyEmail = "email"
	KeyToken = "token"
)

type Repository interface {
	// Get returns common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
