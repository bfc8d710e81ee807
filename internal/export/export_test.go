package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/personal-diary/internal/export"
	"github.com/nhle/personal-diary/internal/model"
)

func sampleEntries() []model.Entry {
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return []model.Entry{
		{
			ID: "1", Title: "A new day", Body: "class was **so** good",
			Created: at, Modified: at.Add(time.Hour), Mood: model.MoodGrinning,
			Tags: []model.Tag{{ID: "t1", Name: "school"}},
		},
		{
			ID: "2", Title: "A long Day", Body: "Today was monday",
			Created: at.Add(24 * time.Hour), Modified: at.Add(24 * time.Hour), Mood: model.MoodPensive,
		},
	}
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Markdown(&buf, sampleEntries()))
	out := buf.String()

	assert.Contains(t, out, "# Diary\n")
	assert.Contains(t, out, "## "+model.MoodGrinning.Glyph()+" A new day")
	assert.Contains(t, out, "`#school`")
	assert.Contains(t, out, "(edited ")
	assert.Contains(t, out, "Today was monday")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("A new day")), bytes.Index(buf.Bytes(), []byte("A long Day")))
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.HTML(&buf, sampleEntries()))
	out := buf.String()

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<h1>Diary</h1>")
	assert.Contains(t, out, "<strong>so</strong>")
	assert.Contains(t, out, "<code>#school</code>")
}

func TestWriteFormats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatMarkdown, nil))
	assert.Equal(t, "# Diary\n", buf.String())

	buf.Reset()
	require.NoError(t, export.Write(&buf, export.FormatHTML, nil))
	assert.Contains(t, buf.String(), "<h1>Diary</h1>")

	assert.Error(t, export.Write(&buf, export.Format("pdf"), nil))
}
