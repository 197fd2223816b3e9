package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/jlptquiz/internal/ui/theme"
)

// ProgressBar draws a fraction as a row of block glyphs. When Graded is
// set the fill colour follows theme.Grade instead of the fixed accent.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Graded      bool
	Width       int
}

// NewProgressBar builds a bar for done out of total, with the counts
// appended to the label.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	bar := ProgressBar{Label: fmt.Sprintf("%s %d/%d", label, done, total), Width: width}
	if total > 0 {
		bar.Percent = float64(done) / float64(total)
	}
	return bar
}

const (
	glyphFull  = "█"
	glyphEmpty = "░"
	minTrack   = 4
)

// fill returns how many of track cells are filled, clamped to the track.
func (p ProgressBar) fill(track int) int {
	return max(0, min(track, int(float64(track)*p.Percent)))
}

// View renders the label, the track and an optional percentage.
func (p ProgressBar) View() string {
	var head, tail string
	if p.Label != "" {
		head = theme.Body.Render(p.Label) + "  "
	}
	if p.ShowPercent {
		tail = " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%4.0f%%", p.Percent*100))
	}

	track := max(minTrack, p.Width-lipgloss.Width(head)-lipgloss.Width(tail))
	done := p.fill(track)

	color := theme.Secondary
	if p.Graded {
		color = theme.Grade(p.Percent)
	}
	filled := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(glyphFull, done))
	rest := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat(glyphEmpty, track-done))

	return head + filled + rest + tail
}
