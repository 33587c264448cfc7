package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franquianet/portal/application/port/outbound"
)

func TestJWTService(t *testing.T) {
	service, err := NewJWTService("test-secret", time.Hour)
	require.NoError(t, err)

	claims := outbound.TokenClaims{UserID: "user123", Email: "ana@rede.com.br", Role: "admin"}

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := service.GenerateAccessToken(claims)
		require.NoError(t, err)

		got, err := service.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, claims, *got)
	})

	t.Run("GenerateRefreshToken", func(t *testing.T) {
		a, err := service.GenerateRefreshToken()
		require.NoError(t, err)
		b, err := service.GenerateRefreshToken()
		require.NoError(t, err)

		assert.Len(t, a, 43)
		assert.NotEqual(t, a, b)
	})

	t.Run("ValidateInvalidToken", func(t *testing.T) {
		_, err := service.ValidateAccessToken("invalid-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other, err := NewJWTService("other-secret", time.Hour)
		require.NoError(t, err)
		token, err := other.GenerateAccessToken(claims)
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		past, err := NewJWTService("test-secret", time.Minute)
		require.NoError(t, err)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := past.GenerateAccessToken(claims)
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("RejectsNonAccessType", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
			UserID: "user123",
			Type:   "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    Issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
