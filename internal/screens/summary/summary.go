package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/jlptquiz/internal/router"
	"github.com/abhisek/jlptquiz/internal/screen"
	"github.com/abhisek/jlptquiz/internal/session"
	"github.com/abhisek/jlptquiz/internal/ui/components"
	"github.com/abhisek/jlptquiz/internal/ui/layout"
	"github.com/abhisek/jlptquiz/internal/ui/theme"
)

// maxMissed caps the missed-question list.
const maxMissed = 8

// SummaryScreen shows the result of a finished session.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.ScoreProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) Score() layout.Score {
	return layout.Score{
		Correct:  s.summary.Score,
		Answered: s.summary.Answered,
		Total:    s.summary.Size,
	}
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	title := "Session complete!"
	if sum.State != session.StateCompleted {
		title = "Session ended"
	}
	b.WriteString(center(width, theme.Title, title))
	b.WriteString("\n")
	b.WriteString(center(width, theme.Hint, sum.Mode.Label()))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	stats := fmt.Sprintf("Answered: %d/%d        Correct: %d        Time: %d:%02d",
		sum.Answered, sum.Size, sum.Score, mins, secs)
	b.WriteString(center(width, theme.Body, stats))
	b.WriteString("\n\n")

	bar := components.ProgressBar{
		Label:       "Accuracy",
		Percent:     sum.Accuracy,
		ShowPercent: true,
		Graded:      true,
		Width:       min(width-8, 60),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if len(sum.Missed) == 0 {
		if sum.Answered > 0 {
			b.WriteString(center(width, theme.Correct, "No mistakes. よくできました!"))
		}
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(center(width, theme.Hint, "Review"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	for i, q := range sum.Missed {
		if i == maxMissed {
			b.WriteString(center(width, theme.Hint, fmt.Sprintf("... and %d more", len(sum.Missed)-maxMissed)))
			b.WriteString("\n")
			break
		}
		line := fmt.Sprintf("%s  →  %s", truncate(q.Prompt, 30), truncate(q.Correct, 40))
		b.WriteString(center(width, theme.Incorrect, line))
		b.WriteString("\n")
	}
	return b.String()
}

func center(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

// truncate shortens s to n runes with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
