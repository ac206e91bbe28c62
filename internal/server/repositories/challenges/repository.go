// Package challenges reads the fixed challenge catalog.
package challenges

import (
	"context"

	"github.com/dmitrijs2005/pdstore/internal/server/models"
)

// Repository is the read-only contract for the challenge catalog.
type Repository interface {
	// FindByIDs returns the catalog entries whose id is in ids, ordered by id.
	// Ids absent from the catalog are simply missing from the result.
	FindByIDs(ctx context.Context, ids []int64) ([]models.Challenge, error)
	// List returns the whole catalog ordered by id.
	List(ctx context.Context) ([]models.Challenge, error)
}
