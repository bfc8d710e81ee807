package api

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/nhle/personal-diary/internal/model"
)

// entryRequest is the body of POST /entries and PUT /entries/:id.
type entryRequest struct {
	Title string   `json:"title" binding:"required,min=1,max=80"`
	Body  string   `json:"body" binding:"required,min=1,max=300"`
	Mood  string   `json:"mood" binding:"omitempty,mood"`
	Tags  []string `json:"tags" binding:"max=3,dive,min=1,max=20"`
}

// mood returns the requested mood, or the default when none was given.
func (r entryRequest) mood() model.Mood {
	if r.Mood == "" {
		return model.DefaultMood
	}
	return model.Mood(r.Mood)
}

// entryResponse is the JSON form of an entry.
type entryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Created   time.Time `json:"created"`
	Modified  time.Time `json:"modified"`
	Mood      string    `json:"mood"`
	MoodGlyph string    `json:"mood_glyph"`
	Tags      []string  `json:"tags"`
}

func newEntryResponse(e model.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		Title:     e.Title,
		Body:      e.Body,
		Created:   e.Created,
		Modified:  e.Modified,
		Mood:      string(e.Mood),
		MoodGlyph: e.Mood.Glyph(),
		Tags:      e.TagNames(),
	}
}

var registerOnce sync.Once

// registerValidations adds the "mood" rule to gin's shared validator.
func registerValidations() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("mood", validateMood)
		}
	})
}

func validateMood(fl validator.FieldLevel) bool {
	return model.Mood(fl.Field().String()).Valid()
}
