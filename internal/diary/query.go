package diary

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nhle/personal-diary/internal/model"
	"github.com/nhle/personal-diary/internal/store"
)

// Entries is the result of a list or search: entries keyed by id, plus the
// order the requested sort put them in.
type Entries struct {
	byID  map[string]model.Entry
	order []string
}

func newEntries(sorted []model.Entry) Entries {
	e := Entries{
		byID:  make(map[string]model.Entry, len(sorted)),
		order: make([]string, 0, len(sorted)),
	}
	for _, entry := range sorted {
		if _, dup := e.byID[entry.ID]; dup {
			continue
		}
		e.byID[entry.ID] = entry
		e.order = append(e.order, entry.ID)
	}
	return e
}

// Map returns the entries keyed by id. The map is a copy.
func (e Entries) Map() map[string]model.Entry {
	m := make(map[string]model.Entry, len(e.byID))
	for id, entry := range e.byID {
		m[id] = entry
	}
	return m
}

// Get returns the entry with the given id.
func (e Entries) Get(id string) (model.Entry, bool) {
	entry, ok := e.byID[id]
	return entry, ok
}

// Len returns the number of entries.
func (e Entries) Len() int {
	return len(e.order)
}

// IDs returns entry ids in sorted order.
func (e Entries) IDs() []string {
	return slices.Clone(e.order)
}

// Sorted returns the entries in sorted order.
func (e Entries) Sorted() []model.Entry {
	out := make([]model.Entry, len(e.order))
	for i, id := range e.order {
		out[i] = e.byID[id]
	}
	return out
}

// ListEntries returns every entry owned by userID. A non-empty tagName keeps
// only entries carrying that exact tag.
func (d *Diary) ListEntries(
	ctx context.Context,
	userID, tagName string,
	sortType model.SortType,
) (Entries, error) {
	entries, err := d.fetch(ctx, userID, tagName, sortType)
	if err != nil {
		return Entries{}, err
	}
	return newEntries(SortEntries(entries, sortType)), nil
}

// SearchEntries returns the user's entries that contain every keyword of
// query in their title or body, ignoring case. A nil query performs no search
// and behaves like ListEntries; a query with no keywords (blank or only
// whitespace) matches every entry.
func (d *Diary) SearchEntries(
	ctx context.Context,
	query *string,
	userID, tagName string,
	sortType model.SortType,
) (Entries, error) {
	if query == nil {
		return d.ListEntries(ctx, userID, tagName, sortType)
	}

	entries, err := d.fetch(ctx, userID, tagName, sortType)
	if err != nil {
		return Entries{}, err
	}

	keywords := Keywords(*query)
	matched := entries[:0]
	for _, entry := range entries {
		if Matches(entry, keywords) {
			matched = append(matched, entry)
		}
	}

	d.logger.Debug("search", "user_id", userID, "keywords", len(keywords), "matched", len(matched))
	return newEntries(SortEntries(matched, sortType)), nil
}

// CountEntries returns how many entries userID owns, optionally restricted to
// a tag.
func (d *Diary) CountEntries(ctx context.Context, userID, tagName string) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("counting entries: user id is required: %w", ErrInvalidRequest)
	}
	filter := store.EntryFilter{UserID: userID}
	if tagName != "" {
		filter.TagName = &tagName
	}
	return d.store.GetEntryCount(ctx, filter)
}

// fetch loads the user's entries, optionally restricted to a tag, ordered by
// the store according to sortType.
func (d *Diary) fetch(
	ctx context.Context,
	userID, tagName string,
	sortType model.SortType,
) ([]model.Entry, error) {
	if userID == "" {
		return nil, fmt.Errorf("querying entries: user id is required: %w", ErrInvalidRequest)
	}

	filter := store.EntryFilter{
		UserID:   userID,
		SortBy:   sortType.Column(),
		SortDesc: sortType.Descending(),
	}
	if tagName != "" {
		filter.TagName = &tagName
	}
	return d.store.GetEntries(ctx, filter)
}

// Keywords splits a search query on whitespace. Runs of whitespace never
// produce empty keywords.
func Keywords(query string) []string {
	return strings.Fields(query)
}

// Matches reports whether every keyword occurs, ignoring case, in the entry's
// title or body. No keywords matches everything.
func Matches(entry model.Entry, keywords []string) bool {
	title := strings.ToLower(entry.Title)
	body := strings.ToLower(entry.Body)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if !strings.Contains(title, kw) && !strings.Contains(body, kw) {
			return false
		}
	}
	return true
}

// SortEntries returns a sorted copy of entries. Unknown sort types sort by
// creation time, newest first. Equal timestamps are ordered by id.
func SortEntries(entries []model.Entry, sortType model.SortType) []model.Entry {
	sortType = model.ParseSortType(string(sortType))

	key := func(e model.Entry) time.Time { return e.Created }
	if sortType.Column() == "modified" {
		key = func(e model.Entry) time.Time { return e.Modified }
	}
	desc := sortType.Descending()

	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b model.Entry) int {
		c := key(a).Compare(key(b))
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
