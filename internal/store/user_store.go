package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/personal-diary/internal/model"
)

// CreateUser inserts a new user. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) error {
	if strings.TrimSpace(user.Username) == "" {
		return fmt.Errorf("username must not be empty")
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, full_name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.FullName, user.PasswordHash, user.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %q: %w", user.Username, ErrConflict)
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a single user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.getUser(ctx, "id", id)
}

// GetUserByUsername retrieves a single user by username.
func (s *SQLiteStore) GetUserByUsername(
	ctx context.Context,
	username string,
) (*model.User, error) {
	return s.getUser(ctx, "username", username)
}

// DeleteUser removes a user. CASCADE on entries removes everything they wrote.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

// getUser looks a user up by one of its unique columns.
func (s *SQLiteStore) getUser(ctx context.Context, column, value string) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, username, full_name, password_hash, created_at
		FROM users WHERE `+column+` = ?`, value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", value, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", value, err)
	}
	return &user, nil
}
