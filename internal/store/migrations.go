package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	full_name     TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS entries (
	id       TEXT PRIMARY KEY,
	title    TEXT NOT NULL,
	body     TEXT NOT NULL,
	created  DATETIME NOT NULL,
	modified DATETIME NOT NULL,
	mood     TEXT NOT NULL DEFAULT '',
	user_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	CHECK (modified >= created)
);

CREATE INDEX IF NOT EXISTS idx_entries_user_id ON entries(user_id);
CREATE INDEX IF NOT EXISTS idx_entries_user_created ON entries(user_id, created);
CREATE INDEX IF NOT EXISTS idx_entries_user_modified ON entries(user_id, modified);

CREATE TABLE IF NOT EXISTS tags (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS entry_tags (
	entry_id TEXT NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
	tag_id   TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (entry_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_entry_tags_tag_id ON entry_tags(tag_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
