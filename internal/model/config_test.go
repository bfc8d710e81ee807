package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	def := DefaultAppConfig()
	assert.Equal(t, def.Display, cfg.Display)
	assert.Equal(t, def.Server.Addr, cfg.Server.Addr)
	assert.True(t, cfg.Reminder.Enabled)
}

func TestLoadConfigReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `database:
  path: /tmp/test-diary.db
display:
  default_sort: modified_asc
server:
  addr: ":9999"
reminder:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test-diary.db", cfg.Database.Path)
	assert.Equal(t, string(SortModifiedAsc), cfg.Display.DefaultSort)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.False(t, cfg.Reminder.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigNormalizesUnknownSort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  default_sort: sideways\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, string(DefaultSort), cfg.Display.DefaultSort)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultAppConfig()
	cfg.Database.Path = "/var/lib/diary.db"
	cfg.Log.Level = "debug"
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/diary.db", loaded.Database.Path)
	assert.Equal(t, "debug", loaded.Log.Level)
}
