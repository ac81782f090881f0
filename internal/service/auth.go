package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ubuntu-fest/leaderboard-api/internal/config"
	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrInvalidRole   = errors.New("invalid role")
)

type account struct {
	user domain.User
	hash []byte
}

// AuthService checks credentials against the accounts listed in the
// configuration. Passwords are hashed once at construction and never kept in
// plain text.
type AuthService struct {
	accounts map[string]account
}

func NewAuthService(accounts []config.Account) (*AuthService, error) {
	s := &AuthService{
		accounts: make(map[string]account, len(accounts)),
	}

	for _, a := range accounts {
		if a.Role != domain.RoleAdmin && a.Role != domain.RoleUser {
			return nil, fmt.Errorf("account %s: %w %q", a.Email, ErrInvalidRole, a.Role)
		}

		hash, err := hashPassword(a.Password)
		if err != nil {
			return nil, fmt.Errorf("hashPassword -> %w", err)
		}

		email := normalizeEmail(a.Email)
		s.accounts[email] = account{
			user: domain.User{
				Email:     email,
				Role:      a.Role,
				CollegeID: a.CollegeID,
			},
			hash: hash,
		}
	}

	return s, nil
}

func (s *AuthService) Login(_ context.Context, email, password string) (domain.User, error) {
	acc, ok := s.accounts[normalizeEmail(email)]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return acc.user, nil
}

func (s *AuthService) FindByEmail(_ context.Context, email string) (domain.User, error) {
	acc, ok := s.accounts[normalizeEmail(email)]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}

	return acc.user, nil
}

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
