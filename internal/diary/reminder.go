package diary

import (
	"context"
	"fmt"
	"time"

	"github.com/nhle/personal-diary/internal/store"
)

// CheckEntryForToday reports whether userID wrote at least one entry on the
// current calendar day, in the diary's location.
func (d *Diary) CheckEntryForToday(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("checking today's entry: user id is required: %w", ErrInvalidRequest)
	}

	start, end := dayBounds(d.now(), d.loc)
	n, err := d.store.GetEntryCount(ctx, store.EntryFilter{
		UserID:        userID,
		CreatedFrom:   &start,
		CreatedBefore: &end,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// dayBounds returns midnight of t's day in loc and midnight of the next day.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
