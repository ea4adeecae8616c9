package jwtutil

import (
	"testing"
	"time"

	"github.com/apper-canvas/staffhub-core-dash/pkg/config"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	util := NewJWTUtil(&config.JWTConfig{SigningKey: "secret", ExpirationHours: 1, Issuer: "staffhub"})

	token, err := util.GenerateToken("hr@example.com", 7, "admin")
	require.NoError(t, err)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "hr@example.com", claims.Email)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateRejects(t *testing.T) {
	util := NewJWTUtil(&config.JWTConfig{SigningKey: "secret", ExpirationHours: 1})

	t.Run("wrong key", func(t *testing.T) {
		other := NewJWTUtil(&config.JWTConfig{SigningKey: "other", ExpirationHours: 1})
		token, err := other.GenerateToken("a@b.c", 1, "")
		require.NoError(t, err)
		_, err = util.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewJWTUtil(&config.JWTConfig{SigningKey: "secret", ExpirationHours: 1})
		past.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
		token, err := past.GenerateToken("a@b.c", 1, "")
		require.NoError(t, err)
		_, err = util.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		strict := NewJWTUtil(&config.JWTConfig{SigningKey: "secret", ExpirationHours: 1, Issuer: "staffhub"})
		token, err := util.GenerateToken("a@b.c", 1, "")
		require.NoError(t, err)
		_, err = strict.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, UserClaims{UserID: 1})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = util.ValidateToken(signed)
		assert.Error(t, err)
	})

	t.Run("missing config", func(t *testing.T) {
		_, err := NewJWTUtil(nil).ValidateToken("x")
		assert.Error(t, err)
	})
}
