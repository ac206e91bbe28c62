package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pdstore/internal/common"
	"github.com/dmitrijs2005/pdstore/internal/dbx"
	"github.com/dmitrijs2005/pdstore/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrEmailInUse
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, created_at FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, name, location, age_range, interaction_preference,
		        other_interaction_preference, created_at
		 FROM users
		 WHERE id = $1
		 `
	return r.getProfile(ctx, query, id)
}

func (r *PostgresRepository) LockByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, name, location, age_range, interaction_preference,
		        other_interaction_preference, created_at
		 FROM users
		 WHERE id = $1
		 FOR UPDATE
		 `
	return r.getProfile(ctx, query, id)
}

func (r *PostgresRepository) getProfile(ctx context.Context, query, id string) (*models.User, error) {
	user := &models.User{}
	p := &user.Profile
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email,
		&p.Name, &p.Location, &p.AgeRange, &p.InteractionPreference, &p.OtherInteractionPreference,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, f models.ProfileFields) error {
	query :=
		`UPDATE users SET
		    name = COALESCE($2, name),
		    location = COALESCE($3, location),
		    age_range = COALESCE($4, age_range),
		    interaction_preference = COALESCE($5, interaction_preference),
		    other_interaction_preference = COALESCE($6, other_interaction_preference),
		    updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id,
		f.Name, f.Location, f.AgeRange, f.InteractionPreference, f.OtherInteractionPreference)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
