package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/jlptquiz/internal/ui/layout"
)

// Screen is one view on the router stack.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content without header or footer.
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ScoreProvider is implemented by screens that show a running score in
// the header.
type ScoreProvider interface {
	Score() layout.Score
}

// Resumer is implemented by screens that refresh when the screen above
// them is popped.
type Resumer interface {
	Resume() tea.Cmd
}
