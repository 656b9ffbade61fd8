package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GO2GETHER_CREATOR-HUB/internal/config"
)

func testManager() *TokenManager {
	return NewTokenManager(config.JWTConfig{
		Secret:         "test-secret",
		Issuer:         "go2gether",
		AccessTokenTTL: time.Hour,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager()
	userID := uuid.New()

	token, err := m.GenerateToken(userID, "ana@example.com")
	require.NoError(t, err)

	got, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestValidateToken_Expired(t *testing.T) {
	m := testManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := m.GenerateToken(uuid.New(), "ana@example.com")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := testManager().GenerateToken(uuid.New(), "ana@example.com")
	require.NoError(t, err)

	other := NewTokenManager(config.JWTConfig{Secret: "other", Issuer: "go2gether", AccessTokenTTL: time.Hour})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	token, err := testManager().GenerateToken(uuid.New(), "ana@example.com")
	require.NoError(t, err)

	other := NewTokenManager(config.JWTConfig{Secret: "test-secret", Issuer: "someone-else", AccessTokenTTL: time.Hour})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Issuer:    "go2gether",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testManager().ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := testManager().ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
