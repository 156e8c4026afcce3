package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func TestTokenSigner_RoundTrip(t *testing.T) {
	signer := NewTokenSigner(testSecret, time.Hour)

	token, err := signer.Sign(42, "alice")
	require.NoError(t, err)

	claims, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenSigner_DefaultTTL(t *testing.T) {
	signer := NewTokenSigner(testSecret, 0)
	assert.Equal(t, DefaultTokenTTL, signer.ttl)
}

func TestTokenSigner_Rejects(t *testing.T) {
	signer := NewTokenSigner(testSecret, time.Hour)

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenSigner("another-secret", time.Hour)
		token, err := other.Sign(1, "bob")
		require.NoError(t, err)

		_, err = signer.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("Expired", func(t *testing.T) {
		past := NewTokenSigner(testSecret, time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Sign(1, "bob")
		require.NoError(t, err)

		_, err = signer.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := signer.Parse("not.a.token")
		assert.Error(t, err)
	})

	t.Run("NoExpiry", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": 1, "username": "bob"})
		s, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = signer.Parse(s)
		assert.Error(t, err)
	})

	t.Run("OtherAlgorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
			UserID:   1,
			Username: "bob",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		s, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = signer.Parse(s)
		assert.Error(t, err)
	})
}
