package model

// Mood is an HTML emoji code chosen when writing an entry.
type Mood string

// The closed set of moods offered by the entry forms.
const (
	MoodNeutral   Mood = "&#128528"
	MoodGrinning  Mood = "&#128512"
	MoodInLove    Mood = "&#128525"
	MoodPlayful   Mood = "&#128541"
	MoodPensive   Mood = "&#128532"
	MoodNauseated Mood = "&#129314"
	MoodFearful   Mood = "&#128552"
	MoodAngry     Mood = "&#128545"
)

// DefaultMood is preselected on new entries.
const DefaultMood = MoodNeutral

// Moods lists every mood in form order.
var Moods = []Mood{
	MoodNeutral,
	MoodGrinning,
	MoodInLove,
	MoodPlayful,
	MoodPensive,
	MoodNauseated,
	MoodFearful,
	MoodAngry,
}

var moodGlyphs = map[Mood]string{
	MoodNeutral:   "\U0001F610",
	MoodGrinning:  "\U0001F600",
	MoodInLove:    "\U0001F60D",
	MoodPlayful:   "\U0001F61D",
	MoodPensive:   "\U0001F614",
	MoodNauseated: "\U0001F922",
	MoodFearful:   "\U0001F628",
	MoodAngry:     "\U0001F621",
}

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	_, ok := moodGlyphs[m]
	return ok
}

// Glyph returns the emoji character for the mood, or the raw code if unknown.
func (m Mood) Glyph() string {
	if g, ok := moodGlyphs[m]; ok {
		return g
	}
	return string(m)
}

var moodNames = map[Mood]string{
	MoodNeutral:   "neutral",
	MoodGrinning:  "grinning",
	MoodInLove:    "in-love",
	MoodPlayful:   "playful",
	MoodPensive:   "pensive",
	MoodNauseated: "nauseated",
	MoodFearful:   "fearful",
	MoodAngry:     "angry",
}

// Name returns a short lowercase name for the mood, or "" if unknown.
func (m Mood) Name() string {
	return moodNames[m]
}

// ParseMood accepts a mood name ("pensive") or its HTML code ("&#128532").
func ParseMood(s string) (Mood, bool) {
	if m := Mood(s); m.Valid() {
		return m, true
	}
	for m, name := range moodNames {
		if name == s {
			return m, true
		}
	}
	return "", false
}
