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

// ResolveTag returns the tag with exactly this name, creating it on first
// use. The UNIQUE constraint on tags.name makes concurrent first uses of the
// same name converge on one row.
func (s *SQLiteStore) ResolveTag(ctx context.Context, name string) (*model.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("tag name must not be empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO NOTHING`,
		uuid.New().String(), name, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tag %q: %w", name, err)
	}

	tag, err := s.GetTagByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolving tag %q: %w", name, err)
	}
	return tag, nil
}

// GetTagByName retrieves a tag by its exact (case-sensitive) name.
func (s *SQLiteStore) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	err := s.db.GetContext(ctx, &tag,
		"SELECT id, name, created_at FROM tags WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tag %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting tag %q: %w", name, err)
	}
	return &tag, nil
}

// GetTags retrieves all tags ordered by name.
func (s *SQLiteStore) GetTags(ctx context.Context) ([]model.Tag, error) {
	tags := []model.Tag{}
	err := s.db.SelectContext(ctx, &tags,
		"SELECT id, name, created_at FROM tags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	return tags, nil
}

// GetTagsForEntry retrieves all tags associated with an entry.
func (s *SQLiteStore) GetTagsForEntry(
	ctx context.Context,
	entryID string,
) ([]model.Tag, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT t.id, t.name, t.created_at FROM tags t
		INNER JOIN entry_tags et ON t.id = et.tag_id
		WHERE et.entry_id = ?
		ORDER BY t.name`, entryID)
	if err != nil {
		return nil, fmt.Errorf("querying tags for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// SetEntryTags replaces all tag associations for an entry.
func (s *SQLiteStore) SetEntryTags(
	ctx context.Context,
	entryID string,
	tagIDs []string,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.GetContext(ctx, &exists,
		"SELECT COUNT(*) FROM entries WHERE id = ?", entryID); err != nil {
		return fmt.Errorf("checking entry %s: %w", entryID, err)
	}
	if exists == 0 {
		return fmt.Errorf("entry %s: %w", entryID, ErrNotFound)
	}

	if err := replaceEntryTags(ctx, tx, entryID, tagIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// PruneTags deletes tags no entry refers to and returns how many were removed.
func (s *SQLiteStore) PruneTags(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM tags
		WHERE NOT EXISTS (SELECT 1 FROM entry_tags et WHERE et.tag_id = tags.id)`)
	if err != nil {
		return 0, fmt.Errorf("pruning tags: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
