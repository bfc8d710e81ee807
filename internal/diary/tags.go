package diary

import (
	"context"
	"fmt"
	"strings"

	"github.com/nhle/personal-diary/internal/model"
	"github.com/nhle/personal-diary/internal/store"
)

// TagRegistry maps tag names to their canonical Tag records, creating a tag
// the first time its name is used. Names are matched exactly.
type TagRegistry struct {
	store store.Store
}

// NewTagRegistry creates a registry over s.
func NewTagRegistry(s store.Store) *TagRegistry {
	return &TagRegistry{store: s}
}

// Resolve returns the tag called name, creating it if needed. Calling it
// repeatedly with the same name always yields the same tag.
func (r *TagRegistry) Resolve(ctx context.Context, name string) (model.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return model.Tag{}, fmt.Errorf("resolving tag: empty name: %w", ErrInvalidRequest)
	}
	tag, err := r.store.ResolveTag(ctx, name)
	if err != nil {
		return model.Tag{}, err
	}
	return *tag, nil
}

// ResolveAll resolves every non-empty name and returns the tags in input
// order with repeated names dropped. The result is what an entry's tag set is
// replaced with on create and update.
func (r *TagRegistry) ResolveAll(ctx context.Context, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if strings.TrimSpace(name) == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := r.Resolve(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// All lists every tag known to the diary, ordered by name.
func (r *TagRegistry) All(ctx context.Context) ([]model.Tag, error) {
	return r.store.GetTags(ctx)
}

// Prune deletes tags that no entry uses any more.
func (r *TagRegistry) Prune(ctx context.Context) (int64, error) {
	return r.store.PruneTags(ctx)
}
