// Package auth holds the credential primitives of the server: bcrypt
// password hashing, HS256 session tokens and the bearer-token guard.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pdstore/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const (
	claimUserID   = "user_id"
	claimIssuedAt = "iat"
	claimExpires  = "exp"
)

// TokenService issues and verifies HS256 session tokens.
// The signing secret is captured once at construction; rotating it
// invalidates every token issued before.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces the time source used for iat/exp and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService returns a TokenService signing with secret and issuing
// tokens valid for ttl.
func NewTokenService(secret []byte, ttl time.Duration, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Issue returns a signed token carrying userID, iat and exp = iat + ttl.
// Both claims are whole seconds, so a token may expire up to one second
// before now + ttl.
func (s *TokenService) Issue(userID string) (string, error) {
	iat := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimUserID:   userID,
		claimIssuedAt: jwt.NewNumericDate(iat),
		claimExpires:  jwt.NewNumericDate(iat.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of token and returns the user id
// it was issued for.
//
// Errors:
//   - common.ErrMalformedToken: unparsable, wrong algorithm or bad signature.
//   - common.ErrTokenExpired: now >= exp.
//   - common.ErrUnsupportedPayload: valid signature but no usable user_id or exp.
func (s *TokenService) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", fmt.Errorf("%w: %v", common.ErrTokenExpired, err)
		case errors.Is(err, jwt.ErrTokenInvalidClaims):
			return "", fmt.Errorf("%w: %v", common.ErrUnsupportedPayload, err)
		default:
			return "", fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
		}
	}

	userID, ok := claims[claimUserID].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: missing %s claim", common.ErrUnsupportedPayload, claimUserID)
	}
	return userID, nil
}
