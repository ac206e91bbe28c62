// Package memberships stores the user <-> challenge relation.
package memberships

import (
	"context"

	"github.com/dmitrijs2005/pdstore/internal/server/models"
)

// Repository is the persistence contract for user_challenges.
type Repository interface {
	// Replace makes the membership set of userID equal to ids. Pairs already
	// present and still wanted are left untouched. It issues several
	// statements, so callers run it inside a transaction.
	Replace(ctx context.Context, userID string, ids []int64) error
	// ListByUser returns the challenges of userID ordered by id, never nil.
	ListByUser(ctx context.Context, userID string) ([]models.Challenge, error)
}
