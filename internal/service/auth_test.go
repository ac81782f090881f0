package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubuntu-fest/leaderboard-api/internal/config"
	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

func TestAuthService_Login(t *testing.T) {
	svc, err := NewAuthService([]config.Account{
		{Email: "Admin@Fest.local", Password: "s3cret-admin", Role: domain.RoleAdmin},
		{Email: "viewer@fest.local", Password: "s3cret-user", Role: domain.RoleUser},
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
		wantRole string
	}{
		{"admin, email case-insensitive", " admin@fest.local", "s3cret-admin", nil, domain.RoleAdmin},
		{"user", "viewer@fest.local", "s3cret-user", nil, domain.RoleUser},
		{"wrong password", "viewer@fest.local", "nope", ErrWrongPassword, ""},
		{"unknown user", "ghost@fest.local", "s3cret-user", ErrUserNotFound, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user, err := svc.Login(context.Background(), tc.email, tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantRole, user.Role)
		})
	}
}

func TestNewAuthService_RejectsUnknownRole(t *testing.T) {
	_, err := NewAuthService([]config.Account{
		{Email: "x@fest.local", Password: "pw", Role: "organizer"},
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}
