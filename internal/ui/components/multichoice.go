package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/jlptquiz/internal/ui/theme"
)

// MultiChoice is a lettered option picker. Options are chosen with the
// arrows and enter, or directly with a-d or 1-4.
type MultiChoice struct {
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a picker over options. correct is matched
// against the options to find the index to highlight after submission.
func NewMultiChoice(options []string, correct string) MultiChoice {
	idx := -1
	for i, opt := range options {
		if strings.TrimSpace(opt) == strings.TrimSpace(correct) {
			idx = i
			break
		}
	}
	return MultiChoice{
		Options:      options,
		CorrectIndex: idx,
		ChosenIndex:  -1,
	}
}

// Update handles navigation and selection. It is a no-op once submitted.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		m.choose(m.Selected)
		return m, nil
	}

	if len(key) == 1 {
		switch c := key[0]; {
		case c >= '1' && c <= '9':
			m.choose(int(c - '1'))
		case c >= 'a' && c <= 'i':
			m.choose(int(c - 'a'))
		}
	}
	return m, nil
}

func (m *MultiChoice) choose(i int) {
	if i < 0 || i >= len(m.Options) {
		return
	}
	m.Selected = i
	m.ChosenIndex = i
	m.Submitted = true
}

// Chosen returns the submitted option.
func (m MultiChoice) Chosen() (string, bool) {
	if !m.Submitted || m.ChosenIndex < 0 {
		return "", false
	}
	return m.Options[m.ChosenIndex], true
}

// View renders the options. After submission the correct option is shown
// in green and a wrong choice in red.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		var style lipgloss.Style
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

// IsCorrect reports whether the submitted option is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
