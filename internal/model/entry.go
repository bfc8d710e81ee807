package model

import "time"

// Entry is a single diary record owned by one user.
type Entry struct {
	ID       string    `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Body     string    `json:"body" db:"body"`
	Created  time.Time `json:"created" db:"created"`
	Modified time.Time `json:"modified" db:"modified"`
	Mood     Mood      `json:"mood" db:"mood"`
	UserID   string    `json:"user_id" db:"user_id"`

	// Tags is populated by queries that join with entry_tags.
	Tags []Tag `json:"tags" db:"-"`
}

// TagNames returns the names of the entry's tags in stored order.
func (e Entry) TagNames() []string {
	names := make([]string, len(e.Tags))
	for i, t := range e.Tags {
		names[i] = t.Name
	}
	return names
}

// HasTag reports whether the entry carries a tag with exactly this name.
func (e Entry) HasTag(name string) bool {
	for _, t := range e.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Limits enforced by the CLI forms and the HTTP API. The store accepts
// anything.
const (
	MaxTitleLength = 80
	MaxBodyLength  = 300
	MaxTags        = 3
	MaxTagLength   = 20
)
