package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/personal-diary/internal/model"
	"github.com/nhle/personal-diary/internal/store"
	"github.com/nhle/personal-diary/tests/testutil"
)

var base = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newEntry(id, userID, title string, created time.Time) model.Entry {
	return model.Entry{
		ID:       id,
		Title:    title,
		Body:     "body of " + title,
		Created:  created,
		Modified: created,
		Mood:     model.MoodGrinning,
		UserID:   userID,
	}
}

func TestCreateAndGetEntry(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	uid := testutil.CreateUser(t, s, "alice")

	tag, err := s.ResolveTag(ctx, "daily")
	require.NoError(t, err)

	e := newEntry("e1", uid, "First", base)
	e.Tags = []model.Tag{*tag}
	require.NoError(t, s.CreateEntry(ctx, e))

	got, err := s.GetEntryByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, "body of First", got.Body)
	assert.Equal(t, model.MoodGrinning, got.Mood)
	assert.Equal(t, uid, got.UserID)
	assert.True(t, got.Created.Equal(base), "created = %v", got.Created)
	assert.True(t, got.Modified.Equal(base), "modified = %v", got.Modified)
	assert.Equal(t, []string{"daily"}, got.TagNames())
}

func TestCreateEntryRequiresExistingUser(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.CreateEntry(context.Background(), newEntry("e1", "ghost", "x", base))
	assert.Error(t, err)
}

func TestCreateEntryDuplicateTagIDsCollapse(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	uid := testutil.CreateUser(t, s, "alice")

	tag, err := s.ResolveTag(ctx, "work")
	require.NoError(t, err)

	e := newEntry("e1", uid, "t", base)
	e.Tags = []model.Tag{*tag, *tag}
	require.NoError(t, s.CreateEntry(ctx, e))

	tags, err := s.GetTagsForEntry(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestGetEntryByIDNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetEntryByID(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateEntryReplacesFieldsAndTags(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	uid := testutil.CreateUser(t, s, "alice")

	a, _ := s.ResolveTag(ctx, "a")
	b, _ := s.ResolveTag(ctx, "b")
	c, _ := s.ResolveTag(ctx, "c")

	e := newEntry("e1", uid, "Old", base)
	e.Tags = []model.Tag{*a, *b, *c}
	require.NoError(t, s.CreateEntry(ctx, e))

	later := base.Add(time.Hour)
	require.NoError(t, s.UpdateEntry(ctx, model.Entry{
		ID:       "e1",
		Title:    "New",
		Body:     "new body",
		Mood:     model.MoodAngry,
		Modified: later,
		Tags:     []model.Tag{*a},
		UserID:   "someone-else",
		Created:  later.Add(time.Hour),
	}))

	got, err := s.GetEntryByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "new body", got.Body)
	assert.Equal(t, model.MoodAngry, got.Mood)
	assert.Equal(t, uid, got.UserID)
	assert.True(t, got.Created.Equal(base))
	assert.True(t, got.Modified.Equal(later))
	assert.Equal(t, []string{"a"}, got.TagNames())
}

func TestUpdateEntryNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.UpdateEntry(context.Background(), model.Entry{ID: "nope", Modified: base})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteEntryKeepsTags(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	uid := testutil.CreateUser(t, s, "alice")

	tag, _ := s.ResolveTag(ctx, "keep")
	e := newEntry("e1", uid, "t", base)
	e.Tags = []model.Tag{*tag}
	require.NoError(t, s.CreateEntry(ctx, e))

	require.NoError(t, s.DeleteEntry(ctx, "e1"))

	_, err := s.GetEntryByID(ctx, "e1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	tags, err := s.GetTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "keep", tags[0].Name)

	err = s.DeleteEntry(ctx, "e1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetEntriesScopesByUser(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, s, "alice")
	bob := testutil.CreateUser(t, s, "bob")

	require.NoError(t, s.CreateEntry(ctx, newEntry("a1", alice, "Same", base)))
	require.NoError(t, s.CreateEntry(ctx, newEntry("b1", bob, "Same", base)))

	entries, err := s.GetEntries(ctx, store.EntryFilter{UserID: alice})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a1", entries[0].ID)

	entries, err = s.GetEntries(ctx, store.EntryFilter{UserID: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetEntriesFiltersByTag(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	uid := testutil.CreateUser(t, s, "alice")

	work, _ := s.ResolveTag(ctx, "work")
	home, _ := s.ResolveTag(ctx, "home")

	e1 := newEntry("e1", uid, "one", base)
	e1.Tags = []model.Tag{*work, *home}
	e2 := newEntry("e2", uid, "two", base.Add(time.Minute))
	e2.Tags = []model.Tag{*home}
	e3 := newEntry("e3", uid, "three", base.Add(2*time.Minute))
	for _, e := range []model.Entry{e1, e2, e3} {
		require.NoError(t, s.CreateEntry(ctx, e))
	}

	tagName := "work"
	entries, err := s.GetEntries(ctx, store.EntryFilter{UserID: uid, TagName: &tagName})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e1", entries[0].ID)
	// Tags are loaded in full, not only the matched one.
	assert.Equal(t, []string{"home", "work"}, entries[0].TagNames())

	tagName = "Work"
	entries, err = s.GetEntries(ctx, store.EntryFilter{UserID: uid, TagName: &tagName})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetEntriesSorts(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	uid := testutil.CreateUser(t, s, "alice")

	// Created order: e1 < e2 < e3. Modified order: e3 < e1 < e2.
	e1 := newEntry("e1", uid, "1", base)
	e1.Modified = base.Add(10 * time.Hour)
	e2 := newEntry("e2", uid, "2", base.Add(time.Hour))
	e2.Modified = base.Add(20 * time.Hour)
	e3 := newEntry("e3", uid, "3", base.Add(2*time.Hour))
	for _, e := range []model.Entry{e2, e3, e1} {
		require.NoError(t, s.CreateEntry(ctx, e))
	}

	tests := []struct {
		sortBy string
		desc   bool
		want   []string
	}{
		{"created", false, []string{"e1", "e2", "e3"}},
		{"created", true, []string{"e3", "e2", "e1"}},
		{"modified", false, []string{"e3", "e1", "e2"}},
		{"modified", true, []string{"e2", "e1", "e3"}},
		{"title; DROP TABLE entries", true, []string{"e3", "e2", "e1"}},
	}
	for _, tt := range tests {
		entries, err := s.GetEntries(ctx, store.EntryFilter{UserID: uid, SortBy: tt.sortBy, SortDesc: tt.desc})
		require.NoError(t, err)
		var got []string
		for _, e := range entries {
			got = append(got, e.ID)
		}
		assert.Equal(t, tt.want, got, "sort %s desc=%v", tt.sortBy, tt.desc)
	}
}

func TestGetEntriesCreatedWindowAndCount(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	uid := testutil.CreateUser(t, s, "alice")

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateEntry(ctx, newEntry("before", uid, "b", day.Add(-time.Second))))
	require.NoError(t, s.CreateEntry(ctx, newEntry("start", uid, "s", day)))
	require.NoError(t, s.CreateEntry(ctx, newEntry("late", uid, "l", day.Add(23*time.Hour+59*time.Minute))))
	require.NoError(t, s.CreateEntry(ctx, newEntry("next", uid, "n", day.AddDate(0, 0, 1))))

	from, before := day, day.AddDate(0, 0, 1)
	filter := store.EntryFilter{UserID: uid, CreatedFrom: &from, CreatedBefore: &before, SortBy: "created"}

	entries, err := s.GetEntries(ctx, filter)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "start", entries[0].ID)
	assert.Equal(t, "late", entries[1].ID)

	n, err := s.GetEntryCount(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.GetEntryCount(ctx, store.EntryFilter{UserID: uid})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
