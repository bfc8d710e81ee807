// Package diary implements the entry lifecycle and query engine of the
// personal diary: creating, reading, updating and deleting entries, resolving
// their tags, and listing, searching and sorting a user's entries.
//
// Ownership is stored on every entry but only enforced by the user-scoped
// queries and by ReadOwnedEntry. ReadEntry, UpdateEntry and DeleteEntry act
// on an id alone; callers check ownership first.
package diary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/personal-diary/internal/model"
	"github.com/nhle/personal-diary/internal/store"
)

var (
	// ErrNotFound reports a missing entry. It is the store's sentinel, so
	// errors.Is works across both packages.
	ErrNotFound = store.ErrNotFound

	// ErrInvalidRequest reports a request missing a required identifier.
	ErrInvalidRequest = errors.New("invalid request")
)

// CreateRequest carries the fields of a new entry. Tags may be empty.
type CreateRequest struct {
	Title  string
	Body   string
	UserID string
	Mood   model.Mood
	Tags   []string
}

// ReadRequest identifies a single entry.
type ReadRequest struct {
	EntryID string
}

// UpdateRequest carries the new contents of an existing entry. Tags replaces
// the entry's whole tag set.
type UpdateRequest struct {
	EntryID string
	Title   string
	Body    string
	Mood    model.Mood
	Tags    []string
}

// DeleteRequest identifies the entry to remove.
type DeleteRequest struct {
	EntryID string
}

// Diary is the entry lifecycle and query engine over a Store.
type Diary struct {
	store  store.Store
	tags   *TagRegistry
	now    func() time.Time
	loc    *time.Location
	logger *slog.Logger
}

// Option configures a Diary.
type Option func(*Diary)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Diary) { d.now = now }
}

// WithLocation sets the time zone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(d *Diary) { d.loc = loc }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Diary) { d.logger = logger }
}

// New creates a Diary backed by s.
func New(s store.Store, opts ...Option) *Diary {
	d := &Diary{
		store:  s,
		now:    time.Now,
		loc:    time.Local,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.tags = NewTagRegistry(s)
	return d
}

// Tags returns the registry the diary resolves tag names through.
func (d *Diary) Tags() *TagRegistry {
	return d.tags
}

// CreateEntry stores a new entry and returns its generated id.
// Created and Modified are both set to the current time.
func (d *Diary) CreateEntry(ctx context.Context, req CreateRequest) (string, error) {
	if req.UserID == "" {
		return "", fmt.Errorf("creating entry: user id is required: %w", ErrInvalidRequest)
	}

	tags, err := d.tags.ResolveAll(ctx, req.Tags)
	if err != nil {
		return "", err
	}

	now := d.now().UTC()
	entry := model.Entry{
		ID:       uuid.New().String(),
		Title:    req.Title,
		Body:     req.Body,
		Created:  now,
		Modified: now,
		Mood:     req.Mood,
		UserID:   req.UserID,
		Tags:     tags,
	}

	if err := d.store.CreateEntry(ctx, entry); err != nil {
		return "", err
	}

	d.logger.Debug("entry created", "entry_id", entry.ID, "user_id", entry.UserID, "tags", len(tags))
	return entry.ID, nil
}

// ReadEntry returns the entry with the requested id. It does not check who
// owns it.
func (d *Diary) ReadEntry(ctx context.Context, req ReadRequest) (*model.Entry, error) {
	if req.EntryID == "" {
		return nil, fmt.Errorf("reading entry: entry id is required: %w", ErrInvalidRequest)
	}
	return d.store.GetEntryByID(ctx, req.EntryID)
}

// ReadOwnedEntry returns the entry only if userID owns it. An entry owned by
// someone else is reported as ErrNotFound so its existence is not revealed.
func (d *Diary) ReadOwnedEntry(ctx context.Context, entryID, userID string) (*model.Entry, error) {
	entry, err := d.ReadEntry(ctx, ReadRequest{EntryID: entryID})
	if err != nil {
		return nil, err
	}
	if userID == "" || entry.UserID != userID {
		return nil, fmt.Errorf("entry %s: %w", entryID, ErrNotFound)
	}
	return entry, nil
}

// UpdateEntry overwrites the title, body, mood, and tags of an entry and
// bumps its modified time. The result maps the entry id to the updated entry.
func (d *Diary) UpdateEntry(ctx context.Context, req UpdateRequest) (map[string]model.Entry, error) {
	if req.EntryID == "" {
		return nil, fmt.Errorf("updating entry: entry id is required: %w", ErrInvalidRequest)
	}

	// Look the entry up first so a missing id does not create tags.
	entry, err := d.store.GetEntryByID(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}

	tags, err := d.tags.ResolveAll(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	now := d.now().UTC()
	if now.Before(entry.Created) {
		now = entry.Created
	}

	entry.Title = req.Title
	entry.Body = req.Body
	entry.Mood = req.Mood
	entry.Modified = now
	entry.Tags = tags

	if err := d.store.UpdateEntry(ctx, *entry); err != nil {
		return nil, err
	}

	slices.SortFunc(entry.Tags, func(a, b model.Tag) int {
		return strings.Compare(a.Name, b.Name)
	})

	d.logger.Debug("entry updated", "entry_id", entry.ID, "tags", len(tags))
	return map[string]model.Entry{entry.ID: *entry}, nil
}

// DeleteEntry removes an entry and its tag associations. Tags themselves are
// kept. Deleting an id that does not exist fails with ErrNotFound.
func (d *Diary) DeleteEntry(ctx context.Context, req DeleteRequest) (string, error) {
	if req.EntryID == "" {
		return "", fmt.Errorf("deleting entry: entry id is required: %w", ErrInvalidRequest)
	}
	if err := d.store.DeleteEntry(ctx, req.EntryID); err != nil {
		return "", err
	}

	d.logger.Debug("entry deleted", "entry_id", req.EntryID)
	return req.EntryID, nil
}
