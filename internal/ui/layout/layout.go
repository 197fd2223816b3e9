// Package layout assembles the fixed chrome around every screen: a
// header bar with the running score, the screen body and a footer of key
// hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/jlptquiz/internal/ui/theme"
)

// Terminal sizes below MinWidth x MinHeight get a resize notice instead
// of the UI. Bodies narrower than compactWidth or shorter than
// compactBody switch to the condensed rendering.
const (
	MinWidth  = 80
	MinHeight = 24

	compactWidth = 100
	compactBody  = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Score is the running tally shown on the right of the header.
type Score struct {
	Correct  int
	Answered int
	Total    int
}

// Accuracy is the share of answered questions that were correct.
func (s Score) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// TooSmall reports whether the terminal cannot fit the UI.
func TooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Compact reports whether a body of the given size should use the
// condensed rendering.
func Compact(width, bodyHeight int) bool {
	return width < compactWidth || bodyHeight < compactBody
}

// MinSizeMessage fills the terminal with a resize notice.
func MinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return theme.Body.Width(width).Height(height).Align(lipgloss.Center).Render(text)
}

var chrome = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Header renders the title bar. The title is centred; a nil score leaves
// the right side blank.
func Header(title string, score *Score, width int) string {
	left := theme.Selected.Render("  JLPT Quiz")
	mid := theme.Body.Render(title)
	var right string
	if score != nil {
		right = lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d/%d", score.Correct, score.Answered)) +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("   Q %d/%d", min(score.Answered+1, score.Total), score.Total)) +
			lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("   %.0f%%", score.Accuracy()*100))
	}
	return chrome.Width(width).Render(spread(left, mid, right, max(0, width-4)))
}

// spread lays out three segments on one line with mid centred, keeping
// at least one space between neighbours.
func spread(left, mid, right string, inner int) string {
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max(1, (inner-mw)/2-lw)
	gapR := max(1, inner-lw-gapL-mw-rw)
	return left + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right
}

var (
	hintKey  = theme.Body.Bold(true)
	hintDesc = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// Footer renders the key hints.
func Footer(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = hintKey.Render(h.Key) + " " + hintDesc.Render(h.Description)
	}
	return chrome.Width(width).Render("  " + strings.Join(parts, "   "))
}

// BodyHeight is what remains of height once header and footer are drawn.
func BodyHeight(header, footer string, height int) int {
	return max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
}

// Frame stacks header, body and footer, padding the body so the footer
// sits on the last rows.
func Frame(header, body, footer string, width, height int) string {
	body = lipgloss.NewStyle().Width(width).Height(BodyHeight(header, footer, height)).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
