package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/personal-diary/internal/model"
)

const entryColumns = `entries.id, entries.title, entries.body,
	entries.created, entries.modified, entries.mood, entries.user_id`

// CreateEntry inserts a new entry together with its tag associations.
// Generates a UUID if ID is empty. Tags must already exist (see ResolveTag).
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry model.Entry) error {
	if entry.UserID == "" {
		return fmt.Errorf("entry user_id must not be empty")
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Modified.Before(entry.Created) {
		entry.Modified = entry.Created
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO entries (id, title, body, created, modified, mood, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Title, entry.Body,
		entry.Created.UTC(), entry.Modified.UTC(),
		string(entry.Mood), entry.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("creating entry %s: %w", entry.ID, ErrConflict)
		}
		return fmt.Errorf("creating entry: %w", err)
	}

	if err := replaceEntryTags(ctx, tx, entry.ID, tagIDs(entry.Tags)); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateEntry overwrites the title, body, mood, and modified time of an
// existing entry and replaces its tag set with entry.Tags. ID, owner, and
// creation time are never changed.
func (s *SQLiteStore) UpdateEntry(ctx context.Context, entry model.Entry) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE entries SET
			title = ?, body = ?, mood = ?, modified = MAX(created, ?)
		WHERE id = ?`,
		entry.Title, entry.Body, string(entry.Mood), entry.Modified.UTC(),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("updating entry %s: %w", entry.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("entry %s: %w", entry.ID, ErrNotFound)
	}

	if err := replaceEntryTags(ctx, tx, entry.ID, tagIDs(entry.Tags)); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteEntry removes an entry by ID. Cascades to entry_tags; tag rows stay.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entry %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetEntryByID retrieves a single entry by ID, including its tags.
func (s *SQLiteStore) GetEntryByID(
	ctx context.Context,
	id string,
) (*model.Entry, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE id = ?", id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting entry %s: %w", id, err)
	}

	// Load tags.
	tags, err := s.GetTagsForEntry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading tags for entry %s: %w", id, err)
	}
	entry.Tags = tags

	return &entry, nil
}

// GetEntries retrieves the entries matching the filter, with tags loaded.
func (s *SQLiteStore) GetEntries(
	ctx context.Context,
	filter EntryFilter,
) ([]model.Entry, error) {
	query, args := buildEntryQuery("SELECT "+entryColumns, filter)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}

	entries := []model.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := s.loadTags(ctx, entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// GetEntryCount returns the number of entries matching the filter.
func (s *SQLiteStore) GetEntryCount(
	ctx context.Context,
	filter EntryFilter,
) (int, error) {
	query, args := buildEntryQuery("SELECT COUNT(DISTINCT entries.id)", filter)

	var count int
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return count, nil
}

// loadTags fills Tags on every entry with a single batched query.
func (s *SQLiteStore) loadTags(ctx context.Context, entries []model.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]string, len(entries))
	index := make(map[string]int, len(entries))
	for i := range entries {
		ids[i] = entries[i].ID
		index[entries[i].ID] = i
		entries[i].Tags = []model.Tag{}
	}

	query, args, err := sqlx.In(`
		SELECT et.entry_id, t.id, t.name, t.created_at FROM tags t
		INNER JOIN entry_tags et ON t.id = et.tag_id
		WHERE et.entry_id IN (?)
		ORDER BY t.name`, ids)
	if err != nil {
		return fmt.Errorf("building tag query: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("querying entry tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entryID string
			t       model.Tag
		)
		if err := rows.Scan(&entryID, &t.ID, &t.Name, &t.CreatedAt); err != nil {
			return fmt.Errorf("scanning tag row: %w", err)
		}
		if i, ok := index[entryID]; ok {
			entries[i].Tags = append(entries[i].Tags, t)
		}
	}
	return rows.Err()
}

// buildEntryQuery constructs the SQL query and args for an EntryFilter.
func buildEntryQuery(selectClause string, filter EntryFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	from := " FROM entries"
	if filter.TagName != nil {
		from += " INNER JOIN entry_tags ON entries.id = entry_tags.entry_id" +
			" INNER JOIN tags ON tags.id = entry_tags.tag_id"
		conditions = append(conditions, "tags.name = ?")
		args = append(args, *filter.TagName)
	}

	conditions = append(conditions, "entries.user_id = ?")
	args = append(args, filter.UserID)

	if filter.CreatedFrom != nil {
		conditions = append(conditions, "entries.created >= ?")
		args = append(args, filter.CreatedFrom.UTC())
	}
	if filter.CreatedBefore != nil {
		conditions = append(conditions, "entries.created < ?")
		args = append(args, filter.CreatedBefore.UTC())
	}

	query := selectClause + from + " WHERE " + strings.Join(conditions, " AND ")

	// Sort.
	sortBy := "entries.created"
	if filter.SortBy != "" {
		allowed := map[string]string{
			"created":  "entries.created",
			"modified": "entries.modified",
		}
		if col, ok := allowed[filter.SortBy]; ok {
			sortBy = col
		}
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, entries.id ASC", sortBy, direction)

	return query, args
}

// replaceEntryTags swaps the entry's tag associations for tagIDs inside tx.
func replaceEntryTags(
	ctx context.Context,
	tx *sqlx.Tx,
	entryID string,
	tagIDs []string,
) error {
	// Remove existing associations.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM entry_tags WHERE entry_id = ?", entryID); err != nil {
		return fmt.Errorf("clearing entry tags: %w", err)
	}

	// Insert new associations. Repeated IDs collapse onto one row.
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO entry_tags (entry_id, tag_id) VALUES (?, ?)",
			entryID, tagID); err != nil {
			return fmt.Errorf("setting tag %s on entry %s: %w", tagID, entryID, err)
		}
	}
	return nil
}

// tagIDs extracts the IDs of tags.
func tagIDs(tags []model.Tag) []string {
	ids := make([]string, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}

// scanEntry scans an entry row from sqlx.Rows or sqlx.Row.
func scanEntry(rows interface{ Scan(dest ...interface{}) error }) (model.Entry, error) {
	var (
		entry model.Entry
		mood  string
	)

	err := rows.Scan(
		&entry.ID, &entry.Title, &entry.Body,
		&entry.Created, &entry.Modified, &mood, &entry.UserID,
	)
	if err != nil {
		return model.Entry{}, err
	}

	entry.Mood = model.Mood(mood)
	return entry, nil
}
