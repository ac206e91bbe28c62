package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/pdstore/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func signRaw(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"), time.Hour)

	tok, err := svc.Issue("user-123")
	require.NoError(t, err)

	got, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestIssue_EmbedsIssuedAtAndExpiry(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	svc := NewTokenService([]byte("k"), time.Hour, WithClock(clock.Now))

	tok, err := svc.Issue("u1")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)

	assert.Equal(t, "u1", claims["user_id"])
	assert.EqualValues(t, start.Unix(), claims["iat"])
	assert.EqualValues(t, start.Add(time.Hour).Unix(), claims["exp"])
}

func TestVerify_Expiry(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	svc := NewTokenService([]byte("k"), time.Hour, WithClock(clock.Now))

	tok, err := svc.Issue("u1")
	require.NoError(t, err)

	clock.t = start.Add(59 * time.Minute)
	got, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", got)

	clock.t = start.Add(time.Hour)
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)

	clock.t = start.Add(61 * time.Minute)
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService([]byte("right-secret"), time.Hour).Issue("u2")
	require.NoError(t, err)

	_, err = NewTokenService([]byte("wrong-secret"), time.Hour).Verify(tok)
	assert.ErrorIs(t, err, common.ErrMalformedToken)
}

func TestVerify_BitFlip(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), time.Hour)
	tok, err := svc.Issue("u3")
	require.NoError(t, err)

	// Flip a bit in every position of the token; none may verify.
	for i := range tok {
		b := []byte(tok)
		b[i] ^= 0x01
		_, err := svc.Verify(string(b))
		if assert.Error(t, err, "position %d", i) {
			assert.NotErrorIs(t, err, common.ErrTokenExpired, "position %d", i)
		}
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), time.Hour)
	for _, tok := range []string{"", "not.a.jwt", "abc"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, common.ErrMalformedToken, "token %q", tok)
	}
}

func TestVerify_WrongAlgorithm(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	svc := NewTokenService(secret, time.Hour)
	exp := time.Now().Add(time.Hour).Unix()

	hs384 := signRaw(t, jwt.SigningMethodHS384, secret, jwt.MapClaims{"user_id": "u", "exp": exp})
	_, err := svc.Verify(hs384)
	assert.ErrorIs(t, err, common.ErrMalformedToken)

	none := signRaw(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"user_id": "u", "exp": exp})
	_, err = svc.Verify(none)
	assert.ErrorIs(t, err, common.ErrMalformedToken)
}

func TestVerify_UnsupportedPayload(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	svc := NewTokenService(secret, time.Hour)
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{name: "missing user_id", claims: jwt.MapClaims{"exp": exp}},
		{name: "numeric user_id", claims: jwt.MapClaims{"user_id": 42, "exp": exp}},
		{name: "empty user_id", claims: jwt.MapClaims{"user_id": "", "exp": exp}},
		{name: "legacy userId claim", claims: jwt.MapClaims{"userId": "u", "exp": exp}},
		{name: "missing exp", claims: jwt.MapClaims{"user_id": "u"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := signRaw(t, jwt.SigningMethodHS256, secret, tt.claims)
			_, err := svc.Verify(tok)
			assert.ErrorIs(t, err, common.ErrUnsupportedPayload)
		})
	}
}

func TestNewTokenService_CopiesSecret(t *testing.T) {
	t.Parallel()

	secret := []byte("mutable")
	svc := NewTokenService(secret, time.Hour)
	tok, err := svc.Issue("u")
	require.NoError(t, err)

	secret[0] = 'X'

	_, err = svc.Verify(tok)
	assert.NoError(t, err)
}
