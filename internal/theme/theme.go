package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for entry titles and command headers.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// EntryPanelStyle wraps a fully shown entry.
var EntryPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// DateStyle renders created and modified timestamps.
var DateStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// IDStyle renders entry ids in listings.
var IDStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Faint(true)

// HelpStyle is used for hints and empty-state messages.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// SuccessStyle confirms a completed action.
var SuccessStyle = lipgloss.NewStyle().
	Foreground(ColorGreen).
	Bold(true)

// ErrorStyle reports a failed action.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed).
	Bold(true)

// ReminderStyle nudges the user to write today's entry.
var ReminderStyle = lipgloss.NewStyle().
	Foreground(ColorYellow).
	Bold(true)

// TagStyle renders a single tag label.
var TagStyle = lipgloss.NewStyle().
	Foreground(ColorMagenta).
	Padding(0, 1)

// TagList renders tag names as a row of labels.
func TagList(names []string) string {
	if len(names) == 0 {
		return ""
	}
	labels := make([]string, len(names))
	for i, n := range names {
		labels[i] = TagStyle.Render("#" + n)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}
