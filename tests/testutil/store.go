package testutil

import (
	"context"
	"testing"

	"github.com/nhle/personal-diary/internal/model"
	"github.com/nhle/personal-diary/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// CreateUser inserts a user with a throwaway password hash and returns its ID.
func CreateUser(t *testing.T, s store.Store, username string) string {
	t.Helper()

	user := model.User{
		ID:           "user-" + username,
		Username:     username,
		FullName:     "Test " + username,
		PasswordHash: "not-a-real-hash",
	}
	if err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("creating test user %q: %v", username, err)
	}
	return user.ID
}
