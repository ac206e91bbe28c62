// Package services contains application services for the pdstore client.
// This file defines the authentication service: signup, login, session
// restore and logout, with the session kept in the local SQLite store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pdstore/internal/client/client"
	"github.com/dmitrijs2005/pdstore/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pdstore/internal/common"
	"github.com/dmitrijs2005/pdstore/internal/dbx"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup / Login: authenticate against the server and persist the session.
//   - Restore: load a previously persisted session; client.ErrNotSignedIn if none.
//   - Logout: forget the session locally.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Signup(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Restore(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db}
}

func (a *authService) Signup(ctx context.Context, email string, password []byte) error {
	token, err := a.client.Signup(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("signup error: %w", err)
	}
	return a.startSession(ctx, email, token)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return a.startSession(ctx, email, token)
}

// startSession saves email and token in one transaction and starts sending
// the token.
func (a *authService) startSession(ctx context.Context, email, token string) error {
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyEmail, email); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyToken, token)
	})
	if err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}

	a.client.SetToken(token)
	return nil
}

// Restore reads the saved session, if any, and returns its email.
func (a *authService) Restore(ctx context.Context) (string, error) {
	repo := metadata.NewSQLiteRepository(a.db)

	email, err := repo.Get(ctx, metadata.KeyEmail)
	if err != nil {
		return "", sessionError(err)
	}
	token, err := repo.Get(ctx, metadata.KeyToken)
	if err != nil {
		return "", sessionError(err)
	}

	a.client.SetToken(token)
	return email, nil
}

func sessionError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return client.ErrNotSignedIn
	}
	return fmt.Errorf("session loading error: %w", err)
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	return metadata.NewSQLiteRepository(a.db).Clear(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client and the session store.
func (a *authService) Close(ctx context.Context) error {
	return errors.Join(a.client.Close(), a.db.Close())
}
