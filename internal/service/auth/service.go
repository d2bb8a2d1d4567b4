// Package auth implements login against the configured user list and
// bearer token validation for the write path.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/picotan/picotan-backend/internal/config"
	"github.com/picotan/picotan-backend/internal/domain"
)

// jwtManager is the token slice of the auth layer this service needs.
type jwtManager interface {
	GenerateToken(username string) (string, error)
	ValidateToken(token string) (string, error)
}

// Service verifies credentials and issues/validates access tokens.
// Users come from configuration; there is no user store.
type Service struct {
	log   *slog.Logger
	users map[string]string // username -> bcrypt hash
	jwt   jwtManager
}

// NewService creates an auth Service from the configured users.
func NewService(logger *slog.Logger, users []config.User, jwt jwtManager) *Service {
	byName := make(map[string]string, len(users))
	for _, u := range users {
		byName[u.Username] = u.PasswordHash
	}
	return &Service{
		log:   logger.With("service", "auth"),
		users: byName,
		jwt:   jwt,
	}
}

// Login verifies a username/password pair and returns a signed access
// token. Unknown users and wrong passwords are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password", domain.ErrMissingParameter)
	}

	hash, ok := s.users[username]
	if !ok {
		return "", fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
	}

	token, err := s.jwt.GenerateToken(username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("username", username))
	return token, nil
}

// ValidateToken checks a bearer token and returns the username it was
// issued to.
func (s *Service) ValidateToken(ctx context.Context, token string) (string, error) {
	username, err := s.jwt.ValidateToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return username, nil
}
