// Package account registers diary users and checks their passwords.
package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/personal-diary/internal/model"
	"github.com/nhle/personal-diary/internal/store"
)

var (
	// ErrUsernameTaken reports a signup with a username already in use.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials reports an unknown username or a wrong password.
	// Both cases return this same error.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidSignup reports a signup with a missing field.
	ErrInvalidSignup = errors.New("invalid signup")
)

// SignupRequest carries the fields of a new account.
type SignupRequest struct {
	Username string
	FullName string
	Password string
}

// Service manages user accounts.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// NewService creates an account service over s. A nil logger discards output.
func NewService(s store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{store: s, logger: logger}
}

// Register creates a user and returns its id.
func (s *Service) Register(ctx context.Context, req SignupRequest) (string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return "", fmt.Errorf("username is required: %w", ErrInvalidSignup)
	}
	if req.Password == "" {
		return "", fmt.Errorf("password is required: %w", ErrInvalidSignup)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		ID:           uuid.New().String(),
		Username:     username,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return "", fmt.Errorf("%q: %w", username, ErrUsernameTaken)
		}
		return "", err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", username)
	return user.ID, nil
}

// Authenticate returns the user whose username and password match.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(user.PasswordHash, password) {
		s.logger.Debug("password mismatch", "username", user.Username)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// User returns the user with the given id.
func (s *Service) User(ctx context.Context, userID string) (*model.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// Remove deletes a user. Their entries are deleted with them.
func (s *Service) Remove(ctx context.Context, userID string) error {
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user removed", "user_id", userID)
	return nil
}
