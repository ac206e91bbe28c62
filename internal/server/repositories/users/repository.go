// Package users stores accounts and their survey profile columns.
package users

import (
	"context"

	"github.com/dmitrijs2005/pdstore/internal/server/models"
)

// Repository is the persistence contract for users.
//
// Lookups return common.ErrorNotFound for a missing row. Only GetByEmail
// reads the password hash.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// LockByID reads the user and holds its row lock until the surrounding
	// transaction ends.
	LockByID(ctx context.Context, id string) (*models.User, error)
	// UpdateProfile overwrites the non-nil fields and keeps the others.
	UpdateProfile(ctx context.Context, id string, fields models.ProfileFields) error
}
