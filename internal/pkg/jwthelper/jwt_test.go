package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

var key = []byte("test-signing-key")

func TestGenerateAndParse(t *testing.T) {
	user := domain.User{Email: "admin@fest.local", Role: domain.RoleAdmin}

	token, err := GenerateToken(key, time.Hour, user, "go-test")
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, user, claims.User())
	assert.Equal(t, "go-test", claims.UserAgent)
}

func TestParseToken_Rejects(t *testing.T) {
	user := domain.User{Email: "u@fest.local", Role: domain.RoleUser}

	expired, err := GenerateToken(key, -time.Minute, user, "")
	require.NoError(t, err)

	otherKey, err := GenerateToken([]byte("other"), time.Hour, user, "")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Role:             domain.RoleAdmin,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":   expired,
		"wrong key": otherKey,
		"alg none":  none,
		"garbage":   "not-a-token",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(key, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
