// Package theme holds the colours and lipgloss styles shared by every
// screen.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/jlptquiz/internal/knowledge"
)

// Palette: indigo ink on a night sky, sakura for emphasis.
var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#38BDF8")
	Accent    = lipgloss.Color("#F472B6")
	Success   = lipgloss.Color("#22C55E")
	Warning   = lipgloss.Color("#EAB308")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)

	// Prompt renders the Japanese item under test.
	Prompt = fg(Text).Bold(true).Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Correct    = fg(Success).Bold(true)
	Incorrect  = fg(Error).Bold(true)
)

// Grade maps an accuracy in [0,1] to green, amber or rose.
func Grade(accuracy float64) color.Color {
	switch {
	case accuracy >= 0.8:
		return Success
	case accuracy >= 0.5:
		return Warning
	default:
		return Error
	}
}

// ForLabel styles a knowledge label the same way on every screen.
func ForLabel(l knowledge.Label) lipgloss.Style {
	switch l {
	case knowledge.Good:
		return Correct
	case knowledge.Medium:
		return fg(Warning).Bold(true)
	default:
		return Incorrect
	}
}
