// Package router keeps the stack of TUI screens and routes messages to
// the one on top.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/jlptquiz/internal/screen"
)

// PushScreenMsg opens Screen above the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg closes the current screen and opens Screen in its
// place, e.g. a finished quiz making way for its summary.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router is a stack of screens. The bottom screen stays for the life of
// the program.
type Router struct {
	stack []screen.Screen
}

// New returns a Router showing root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen unless it is the root. The screen underneath
// is resumed when it implements screen.Resumer.
func (r *Router) Pop() tea.Cmd {
	n := len(r.stack)
	if n <= 1 {
		return nil
	}
	r.stack[n-1] = nil
	r.stack = r.stack[:n-1]
	if res, ok := r.stack[n-2].(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

// Replace swaps the top screen for s and returns s's Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	n := len(r.stack)
	if n == 0 {
		return r.Push(s)
	}
	r.stack[n-1] = s
	return s.Init()
}

// Active is the top screen, or nil for an empty router.
func (r *Router) Active() screen.Screen {
	if n := len(r.stack); n > 0 {
		return r.stack[n-1]
	}
	return nil
}

// Depth is the number of open screens.
func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and hands every other message to
// the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	n := len(r.stack)
	if n == 0 {
		return nil
	}
	next, cmd := r.stack[n-1].Update(msg)
	r.stack[n-1] = next
	return cmd
}

// View renders the active screen's body.
func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
