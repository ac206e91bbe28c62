package challenges

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/pdstore/internal/dbx"
	"github.com/dmitrijs2005/pdstore/internal/server/models"
)

// PostgresRepository reads challenges over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Challenge, error) {
	if len(ids) == 0 {
		return []models.Challenge{}, nil
	}

	query := `
		SELECT id, challenge_name
		FROM challenges
		WHERE id = ANY($1)
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanChallenges(rows)
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Challenge, error) {
	query := `
		SELECT id, challenge_name
		FROM challenges
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanChallenges(rows)
}

// scanChallenges drains and closes rows of (id, name). The result is never nil.
func scanChallenges(rows *sql.Rows) ([]models.Challenge, error) {
	defer rows.Close()

	result := []models.Challenge{}
	for rows.Next() {
		var c models.Challenge
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
