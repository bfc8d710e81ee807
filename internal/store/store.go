package store

import (
	"context"
	"errors"
	"time"

	"github.com/nhle/personal-diary/internal/model"
)

var (
	// ErrNotFound is returned (wrapped) when a referenced entry, tag, or user
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned (wrapped) when an insert would violate a
	// uniqueness constraint, such as a taken username.
	ErrConflict = errors.New("already exists")
)

// EntryFilter controls filtering and sorting for entry queries.
// Entries are always scoped to a single owner.
type EntryFilter struct {
	UserID        string     // owner; required
	TagName       *string    // exact tag name, or nil (all)
	CreatedFrom   *time.Time // inclusive lower bound on created
	CreatedBefore *time.Time // exclusive upper bound on created
	SortBy        string     // "created", "modified"
	SortDesc      bool
}

// Store defines the persistence interface for users, diary entries, and
// their tags.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, user model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error

	// === Entry CRUD ===

	CreateEntry(ctx context.Context, entry model.Entry) error
	UpdateEntry(ctx context.Context, entry model.Entry) error
	DeleteEntry(ctx context.Context, id string) error
	GetEntryByID(ctx context.Context, id string) (*model.Entry, error)
	GetEntries(ctx context.Context, filter EntryFilter) ([]model.Entry, error)
	GetEntryCount(ctx context.Context, filter EntryFilter) (int, error)

	// === Tags ===

	ResolveTag(ctx context.Context, name string) (*model.Tag, error)
	GetTagByName(ctx context.Context, name string) (*model.Tag, error)
	GetTags(ctx context.Context) ([]model.Tag, error)
	GetTagsForEntry(ctx context.Context, entryID string) ([]model.Tag, error)
	SetEntryTags(ctx context.Context, entryID string, tagIDs []string) error
	PruneTags(ctx context.Context) (int64, error)
}
