package main

import (
	"fmt"
	"strings"

	"github.com/nhle/personal-diary/internal/model"
	"github.com/nhle/personal-diary/internal/theme"
)

// renderEntry formats a single entry for `diary show`.
func renderEntry(e model.Entry, dateFormat string) string {
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render(e.Mood.Glyph()+" "+e.Title) + "\n")
	b.WriteString(theme.DateStyle.Render("Written "+e.Created.Local().Format(dateFormat)) + "\n")
	if e.Modified.After(e.Created) {
		b.WriteString(theme.DateStyle.Render("Edited  "+e.Modified.Local().Format(dateFormat)) + "\n")
	}
	if tags := theme.TagList(e.TagNames()); tags != "" {
		b.WriteString(tags + "\n")
	}
	b.WriteString("\n" + e.Body)

	return theme.EntryPanelStyle.Render(b.String())
}

// renderList formats entries one per line for `diary ls` and `diary search`.
func renderList(entries []model.Entry, dateFormat string) string {
	if len(entries) == 0 {
		return theme.HelpStyle.Render("No entries found.")
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		line := fmt.Sprintf("%s  %s  %s %s",
			theme.IDStyle.Render(e.ID),
			theme.DateStyle.Render(e.Created.Local().Format(dateFormat)),
			e.Mood.Glyph(),
			e.Title,
		)
		if tags := theme.TagList(e.TagNames()); tags != "" {
			line += " " + tags
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
