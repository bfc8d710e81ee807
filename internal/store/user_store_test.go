package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/personal-diary/internal/model"
	"github.com/nhle/personal-diary/internal/store"
	"github.com/nhle/personal-diary/tests/testutil"
)

func TestCreateAndGetUser(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, model.User{
		ID:           "u1",
		Username:     "alice",
		FullName:     "Alice Liddell",
		PasswordHash: "hash",
	}))

	byID, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Equal(t, "Alice Liddell", byID.FullName)
	assert.Equal(t, "hash", byID.PasswordHash)
	assert.False(t, byID.CreatedAt.IsZero())

	byName, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", byName.ID)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, model.User{Username: "alice", PasswordHash: "h"}))
	err := s.CreateUser(ctx, model.User{Username: "alice", PasswordHash: "h"})
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestGetUserNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetUserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteUserCascadesEntries(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, s, "alice")
	bob := testutil.CreateUser(t, s, "bob")

	tag, _ := s.ResolveTag(ctx, "shared")
	a := newEntry("a1", alice, "a", base)
	a.Tags = []model.Tag{*tag}
	b := newEntry("b1", bob, "b", base)
	b.Tags = []model.Tag{*tag}
	require.NoError(t, s.CreateEntry(ctx, a))
	require.NoError(t, s.CreateEntry(ctx, b))

	require.NoError(t, s.DeleteUser(ctx, alice))

	_, err := s.GetEntryByID(ctx, "a1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.GetEntryByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, got.TagNames())

	assert.ErrorIs(t, s.DeleteUser(ctx, alice), store.ErrNotFound)
}
