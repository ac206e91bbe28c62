package memberships

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pdstore/internal/common"
	"github.com/dmitrijs2005/pdstore/internal/dbx"
	"github.com/dmitrijs2005/pdstore/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgForeignKeyViolation = "23503"

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Replace(ctx context.Context, userID string, ids []int64) error {
	del := `
		DELETE FROM user_challenges
		WHERE user_id = $1 AND NOT (challenge_id = ANY($2))
	`
	if _, err := r.db.ExecContext(ctx, del, userID, ids); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	ins := `
		INSERT INTO user_challenges (user_id, challenge_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT (user_id, challenge_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, ins, userID, ids); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return common.ErrUnknownChallenge
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Challenge, error) {
	query := `
		SELECT c.id, c.challenge_name
		FROM user_challenges uc
		JOIN challenges c ON c.id = uc.challenge_id
		WHERE uc.user_id = $1
		ORDER BY c.id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
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
