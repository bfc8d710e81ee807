// Package entryform holds the interactive huh forms used by the CLI.
package entryform

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"

	"github.com/nhle/personal-diary/internal/model"
)

const formWidth = 72

// EntryValues holds the fields of the entry form. Tags is comma separated.
type EntryValues struct {
	Title string
	Body  string
	Mood  string
	Tags  string
}

// NewEntryValues returns values for a blank entry with the default mood.
func NewEntryValues() *EntryValues {
	return &EntryValues{Mood: string(model.DefaultMood)}
}

// EntryValuesFrom prefills the form with an existing entry.
func EntryValuesFrom(e model.Entry) *EntryValues {
	mood := string(e.Mood)
	if !e.Mood.Valid() {
		mood = string(model.DefaultMood)
	}
	return &EntryValues{
		Title: e.Title,
		Body:  e.Body,
		Mood:  mood,
		Tags:  strings.Join(e.TagNames(), ", "),
	}
}

// TagNames parses the comma separated tag field.
func (v *EntryValues) TagNames() []string {
	return ParseTags(v.Tags)
}

// EntryForm builds the create/edit form bound to v. Known tags are shown as
// a hint.
func EntryForm(v *EntryValues, heading string, knownTags []model.Tag) *huh.Form {
	moodOpts := make([]huh.Option[string], len(model.Moods))
	for i, m := range model.Moods {
		moodOpts[i] = huh.NewOption(m.Glyph(), string(m))
	}

	tagHint := "Up to 3, comma separated"
	if len(knownTags) > 0 {
		names := make([]string, len(knownTags))
		for i, t := range knownTags {
			names[i] = t.Name
		}
		tagHint += ". Existing: " + strings.Join(names, ", ")
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(heading),
			huh.NewInput().
				Title("Title").
				Placeholder("What happened today?").
				CharLimit(model.MaxTitleLength).
				Value(&v.Title).
				Validate(ValidateTitle),
			huh.NewText().
				Title("Body").
				CharLimit(model.MaxBodyLength).
				Value(&v.Body).
				Validate(ValidateBody),
			huh.NewSelect[string]().
				Title("Mood").
				Options(moodOpts...).
				Inline(true).
				Value(&v.Mood),
			huh.NewInput().
				Title("Tags").
				Description(tagHint).
				Value(&v.Tags).
				Validate(ValidateTags),
		),
	).WithWidth(formWidth)
}

// Credentials holds the login and signup form fields.
type Credentials struct {
	Username string
	FullName string
	Password string
	Confirm  string
}

// LoginForm asks for a username and password.
func LoginForm(c *Credentials) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&c.Username).
				Validate(validateRequired("Username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(validateRequired("Password")),
		),
	).WithWidth(formWidth)
}

// SignupForm asks for the fields of a new account.
func SignupForm(c *Credentials) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&c.Username).
				Validate(validateRequired("Username")),
			huh.NewInput().
				Title("Full name").
				Value(&c.FullName),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(validateRequired("Password")),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Confirm).
				Validate(func(s string) error {
					if s != c.Password {
						return fmt.Errorf("passwords do not match")
					}
					return nil
				}),
		),
	).WithWidth(formWidth)
}

// ConfirmForm asks a yes/no question.
func ConfirmForm(title string, ok *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(ok),
		),
	)
}

// ValidateTitle requires a title of at most MaxTitleLength characters.
func ValidateTitle(s string) error {
	return validateLength("Title", s, model.MaxTitleLength)
}

// ValidateBody requires a body of at most MaxBodyLength characters.
func ValidateBody(s string) error {
	return validateLength("Body", s, model.MaxBodyLength)
}

// ValidateTags allows at most MaxTags tags of at most MaxTagLength
// characters each.
func ValidateTags(s string) error {
	tags := ParseTags(s)
	if len(tags) > model.MaxTags {
		return fmt.Errorf("at most %d tags", model.MaxTags)
	}
	for _, t := range tags {
		if utf8.RuneCountInString(t) > model.MaxTagLength {
			return fmt.Errorf("tag %q is longer than %d characters", t, model.MaxTagLength)
		}
	}
	return nil
}

// ParseTags splits a comma separated list, trimming blanks and dropping
// empty and repeated names.
func ParseTags(s string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, name)
	}
	return tags
}

func validateLength(field, s string, limit int) error {
	if err := validateRequired(field)(s); err != nil {
		return err
	}
	if utf8.RuneCountInString(s) > limit {
		return fmt.Errorf("%s must be at most %d characters", field, limit)
	}
	return nil
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
