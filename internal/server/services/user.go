// Package services contains server-side business logic. This file implements
// UserService, which handles signup and login and issues session tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/pdstore/internal/common"
	"github.com/dmitrijs2005/pdstore/internal/dbx"
	"github.com/dmitrijs2005/pdstore/internal/logging"
	"github.com/dmitrijs2005/pdstore/internal/server/models"
	"github.com/dmitrijs2005/pdstore/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PasswordHasher hashes passwords and checks candidates against a stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer mints a session token for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// dummyPassword is hashed once and compared against on logins for unknown
// emails so both paths cost one bcrypt comparison.
const dummyPassword = "pdstore-login-timing-equalizer"

// UserService provides authentication-related operations:
// - Signup: create a user and return a session token
// - Login: verify credentials and return a session token
type UserService struct {
	db          dbx.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      logging.Logger

	newID func() string

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService.
func NewUserService(db dbx.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "users"),
		newID:       uuid.NewString,
	}
}

// Signup registers email with password and returns a token for the new user.
// Both values are required. An email that is already registered yields
// common.ErrEmailInUse.
func (s *UserService) Signup(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password required", common.ErrInvalidInput)
	}
	if utf8.RuneCountInString(email) > models.MaxEmailLen {
		return "", fmt.Errorf("%w: email longer than %d characters", common.ErrInvalidInput, models.MaxEmailLen)
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return "", common.ErrEmailInUse
	case !errors.Is(err, common.ErrorNotFound):
		return "", storeError("lookup user", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user, err := repo.Create(ctx, &models.User{ID: s.newID(), Email: email, PasswordHash: hash})
	if err != nil {
		// A concurrent signup won the unique index.
		if errors.Is(err, common.ErrEmailInUse) {
			return "", err
		}
		return "", storeError("create user", err)
	}

	s.logger.Info(ctx, "user signed up", "user_id", user.ID)
	return s.issue(user.ID)
}

// Login verifies email and password and returns a fresh token.
// Unknown emails and wrong passwords both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummy())
			return "", common.ErrInvalidCredentials
		}
		return "", storeError("lookup user", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug(ctx, "login rejected", "user_id", user.ID)
		return "", common.ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

func (s *UserService) issue(userID string) (string, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		// On failure the empty hash still goes through CompareHashAndPassword
		// and simply never matches.
		s.dummyHash, _ = s.hasher.Hash(dummyPassword)
	})
	return s.dummyHash
}
