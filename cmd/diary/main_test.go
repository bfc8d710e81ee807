package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/personal-diary/internal/credential"
	"github.com/nhle/personal-diary/internal/model"
)

// harness runs commands against one database and one in-memory keyring.
type harness struct {
	dir   string
	vault *credential.Vault
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		dir:   t.TempDir(),
		vault: credential.NewVault(keyring.NewArrayKeyring(nil)),
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := &cli{
		openVault: func(*model.AppConfig) (*credential.Vault, error) { return h.vault, nil },
	}
	root := newRootCmd(c)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{
		"--config", filepath.Join(h.dir, "config.yaml"),
		"--db", filepath.Join(h.dir, "diary.db"),
	}, args...))

	err := root.Execute()
	c.close()
	return out.String(), err
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := h.run(t, args...)
	require.NoError(t, err, out)
	return out
}

// createdID pulls the entry id from the output of `diary new`.
func createdID(t *testing.T, out string) string {
	t.Helper()
	fields := strings.Fields(out)
	require.NotEmpty(t, fields)
	return fields[len(fields)-1]
}

func TestInitWritesConfig(t *testing.T) {
	h := newHarness(t)

	h.mustRun(t, "init")
	_, err := os.Stat(filepath.Join(h.dir, "config.yaml"))
	require.NoError(t, err)

	_, err = h.run(t, "init")
	assert.Error(t, err)
	h.mustRun(t, "init", "--force")
}

func TestEntryLifecycle(t *testing.T) {
	h := newHarness(t)

	h.mustRun(t, "signup", "--username", "alice", "--password", "pw")

	out := h.mustRun(t, "today")
	assert.Contains(t, out, "not written")

	first := createdID(t, h.mustRun(t, "new", "--title", "A new day", "--body", "class was so good", "--tags", "school, daily", "--mood", "grinning"))
	second := createdID(t, h.mustRun(t, "new", "-t", "A long Day", "-b", "Today was monday"))

	out = h.mustRun(t, "today")
	assert.Contains(t, out, "You have written today")

	out = h.mustRun(t, "ls", "--sort", "created_asc")
	assert.Less(t, strings.Index(out, first), strings.Index(out, second))
	assert.Contains(t, out, "#school")

	out = h.mustRun(t, "ls", "--tag", "school")
	assert.Contains(t, out, first)
	assert.NotContains(t, out, second)

	out = h.mustRun(t, "search", "new", "class")
	assert.Contains(t, out, first)
	assert.NotContains(t, out, second)

	out = h.mustRun(t, "search", "nonexistent-word")
	assert.Contains(t, out, "No entries found.")

	out = h.mustRun(t, "show", first)
	assert.Contains(t, out, "A new day")
	assert.Contains(t, out, model.MoodGrinning.Glyph())

	h.mustRun(t, "edit", first, "--tags", "daily")
	out = h.mustRun(t, "show", first)
	assert.Contains(t, out, "#daily")
	assert.NotContains(t, out, "#school")

	out = h.mustRun(t, "tags", "--prune")
	assert.Contains(t, out, "Removed 1 unused tags.")
	assert.NotContains(t, out, "#school")

	out = h.mustRun(t, "export", "--format", "markdown")
	assert.Contains(t, out, "# Diary")
	assert.Contains(t, out, "A long Day")

	h.mustRun(t, "rm", first, "--yes")
	_, err := h.run(t, "show", first)
	assert.Error(t, err)
	_, err = h.run(t, "rm", first, "--yes")
	assert.Error(t, err)
}

func TestEntriesAreScopedToLoggedInUser(t *testing.T) {
	h := newHarness(t)

	h.mustRun(t, "signup", "--username", "alice", "--password", "alice-pw")
	id := createdID(t, h.mustRun(t, "new", "--title", "secret", "--body", "b"))

	h.mustRun(t, "signup", "--username", "bob", "--password", "bob-pw")
	_, err := h.run(t, "show", id)
	assert.Error(t, err)
	_, err = h.run(t, "rm", id, "--yes")
	assert.Error(t, err)
	out := h.mustRun(t, "ls")
	assert.NotContains(t, out, id)

	h.mustRun(t, "login", "--username", "alice", "--password", "alice-pw")
	out = h.mustRun(t, "show", id)
	assert.Contains(t, out, "secret")
}

func TestSessionCommands(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "ls")
	assert.ErrorContains(t, err, "not logged in")

	h.mustRun(t, "signup", "--username", "alice", "--password", "pw")
	_, err = h.run(t, "signup", "--username", "alice", "--password", "pw")
	assert.Error(t, err)

	h.mustRun(t, "logout")
	_, err = h.run(t, "ls")
	assert.Error(t, err)

	_, err = h.run(t, "login", "--username", "alice", "--password", "nope")
	assert.Error(t, err)

	out := h.mustRun(t, "login", "--username", "alice", "--password", "pw")
	assert.Contains(t, out, "Logged in as alice")
	assert.Contains(t, out, "not written anything today")

	h.mustRun(t, "deluser", "--yes")
	_, err = h.run(t, "login", "--username", "alice", "--password", "pw")
	assert.Error(t, err)
}

func TestNewValidatesFlags(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "signup", "--username", "alice", "--password", "pw")

	_, err := h.run(t, "new", "--title", "no body")
	assert.Error(t, err)

	_, err = h.run(t, "new", "--title", "t", "--body", "b", "--mood", "ecstatic")
	assert.Error(t, err)

	_, err = h.run(t, "new", "--title", "t", "--body", "b", "--tags", "a,b,c,d")
	assert.Error(t, err)

	_, err = h.run(t, "new", "--title", strings.Repeat("x", model.MaxTitleLength+1), "--body", "b")
	assert.Error(t, err)
}
