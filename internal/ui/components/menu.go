package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/jlptquiz/internal/ui/theme"
)

// MenuItem is one entry in a Menu. Hint is shown dimmed after the label.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. The cursor never rests on a
// disabled item and wraps at both ends.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step moves the cursor by dir (+1 or -1) to the next enabled item.
// With nothing enabled the cursor stays put.
func (m *Menu) step(dir int) {
	n := len(m.Items)
	if n == 0 {
		return
	}
	pos := m.Selected
	for range n {
		pos = (pos + dir + n) % n
		if !m.Items[pos].Disabled {
			m.Selected = pos
			return
		}
	}
}

// Current returns the item under the cursor.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// Update handles cursor keys and runs the current action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k", "shift+tab":
		m.step(-1)
	case "down", "j", "tab":
		m.step(1)
	case "home", "g":
		m.Selected = -1
		m.step(1)
	case "end", "G":
		m.Selected = len(m.Items)
		m.step(-1)
	case "enter":
		if item, ok := m.Current(); ok && !item.Disabled && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

var menuDisabled = lipgloss.NewStyle().Foreground(theme.Border)

// View renders one line per item.
func (m Menu) View() string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		marker, style := "    ", theme.Unselected
		switch {
		case item.Disabled:
			style = menuDisabled
		case i == m.Selected:
			marker, style = "  ▸ ", theme.Selected
		}
		line := style.Render(marker + item.Label)
		if item.Hint != "" {
			line += "  " + theme.Hint.Render(item.Hint)
		}
		lines[i] = line
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
