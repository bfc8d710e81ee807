// Package export writes a user's entries out as Markdown or HTML.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/nhle/personal-diary/internal/model"
)

// Format names an export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

const dateLayout = "2006-01-02 15:04"

var renderer = goldmark.New(goldmark.WithExtensions(extension.Linkify))

// Write exports entries in the given format.
func Write(w io.Writer, format Format, entries []model.Entry) error {
	switch format {
	case FormatMarkdown, "md", "":
		return Markdown(w, entries)
	case FormatHTML:
		return HTML(w, entries)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// Markdown writes entries as one Markdown document, in the order given.
func Markdown(w io.Writer, entries []model.Entry) error {
	var b strings.Builder
	b.WriteString("# Diary\n")

	for _, e := range entries {
		fmt.Fprintf(&b, "\n## %s %s\n\n", e.Mood.Glyph(), e.Title)
		fmt.Fprintf(&b, "*%s*", e.Created.Local().Format(dateLayout))
		if e.Modified.After(e.Created) {
			fmt.Fprintf(&b, " (edited %s)", e.Modified.Local().Format(dateLayout))
		}
		b.WriteString("\n\n")

		if names := e.TagNames(); len(names) > 0 {
			tags := make([]string, len(names))
			for i, n := range names {
				tags[i] = "`#" + n + "`"
			}
			b.WriteString(strings.Join(tags, " ") + "\n\n")
		}

		b.WriteString(strings.TrimSpace(e.Body) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// HTML renders the Markdown export to a standalone HTML page.
func HTML(w io.Writer, entries []model.Entry) error {
	var md bytes.Buffer
	if err := Markdown(&md, entries); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := renderer.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Diary</title></head>\n<body>\n%s</body>\n</html>\n", body.String())
	return err
}
