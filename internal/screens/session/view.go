package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/jlptquiz/internal/knowledge"
	"github.com/abhisek/jlptquiz/internal/ui/components"
	"github.com/abhisek/jlptquiz/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.session == nil:
		return centered(width, theme.Hint, "\n\n\n  Drawing questions...")
	case s.confirmQuit:
		return renderQuitConfirm(width)
	}

	var b strings.Builder
	b.WriteString(s.renderProgress(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderQuestion(width))
	b.WriteString("\n")

	if s.phase == phaseFeedback {
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

func (s *SessionScreen) renderProgress(width int) string {
	bar := components.NewProgressBar("Question", s.index+1, s.session.Size(), min(width-8, 60))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View())
}

// renderQuestion shows the item card, the question and the answer area.
func (s *SessionScreen) renderQuestion(width int) string {
	q := s.question

	var card []string
	card = append(card, theme.Prompt.Render(q.Prompt))
	if q.Native != "" {
		card = append(card, theme.Hint.Render(q.Native))
	}
	var readings []string
	if q.Onyomi != "" {
		readings = append(readings, "on: "+q.Onyomi)
	}
	if q.Kunyomi != "" {
		readings = append(readings, "kun: "+q.Kunyomi)
	}
	if q.Reading != "" {
		readings = append(readings, q.Reading)
	}
	if len(readings) > 0 {
		card = append(card, theme.Hint.Render(strings.Join(readings, "   ")))
	}
	if q.Example != "" && q.Example != q.Prompt {
		card = append(card, "", theme.Body.Render(q.Example))
	}

	cardWidth := min(width-8, 70)
	box := theme.Card.Width(cardWidth).Render(strings.Join(card, "\n"))

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, box))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Body.Bold(true), q.Text))
	b.WriteString("\n\n")

	if q.FreeText {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.input.View()))
		b.WriteString("\n")
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	}
	return b.String()
}

func (s *SessionScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n")

	if s.result.Correct {
		b.WriteString(centered(width, theme.Correct, "Correct!"))
	} else {
		b.WriteString(centered(width, theme.Incorrect, "Not quite"))
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint, fmt.Sprintf("Correct answer: %s", s.question.Correct)))
	}
	b.WriteString("\n\n")

	switch {
	case s.labelErr != "":
		b.WriteString(centered(width, theme.Incorrect, "Could not save label: "+s.labelErr))
	case s.label != knowledge.None:
		b.WriteString(centered(width, theme.ForLabel(s.label), fmt.Sprintf("Marked %q as %s", s.question.Key, labelText(s.label))))
	default:
		b.WriteString(centered(width, theme.Hint, "How well do you know this? [g]ood  [m]edium  [d]on't know"))
	}
	b.WriteString("\n")

	switch {
	case s.explained != nil:
		exp := s.explained.Explanation
		if s.explained.Tip != "" {
			exp += "\n\nTip: " + s.explained.Tip
		}
		box := theme.Card.Width(min(width-8, 70)).Render(theme.Body.Render(exp))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, box))
	case s.explaining:
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint, "Asking the tutor..."))
	case s.explainErr != "":
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Incorrect, "Explanation failed: "+s.explainErr))
	}
	return b.String()
}

func labelText(l knowledge.Label) string {
	switch l {
	case knowledge.Good:
		return "good"
	case knowledge.Medium:
		return "medium"
	case knowledge.DontKnow:
		return "don't know"
	}
	return l.String()
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, theme.Body.Bold(true), "End session early?"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Hint, "Answered questions still count."))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return centered(width, lipgloss.NewStyle().Foreground(theme.Error),
		fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
