package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/knowledge"
	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/router"
	"github.com/abhisek/jlptquiz/internal/screen"
	"github.com/abhisek/jlptquiz/internal/screens/history"
	sessionscreen "github.com/abhisek/jlptquiz/internal/screens/session"
	"github.com/abhisek/jlptquiz/internal/store"
	"github.com/abhisek/jlptquiz/internal/ui/components"
	"github.com/abhisek/jlptquiz/internal/ui/layout"
)

// labelsLoadedMsg carries label counts per dataset kind.
type labelsLoadedMsg struct {
	Counts map[dataset.Kind]map[knowledge.Label]int
	Err    error
}

// HomeScreen is the mode picker.
type HomeScreen struct {
	deps   sessionscreen.Deps
	events store.EventRepo

	menu   components.Menu
	modes  []quiz.Mode
	counts map[dataset.Kind]map[knowledge.Label]int
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. Modes without data are shown disabled.
// A nil events repo disables history.
func New(deps sessionscreen.Deps, events store.EventRepo) *HomeScreen {
	h := &HomeScreen{deps: deps, events: events}
	h.buildMenu()
	return h
}

func (h *HomeScreen) buildMenu() {
	lib := h.deps.Engine.Library()

	var items []components.MenuItem
	h.modes = h.modes[:0]
	for _, mode := range quiz.Modes {
		available := h.deps.Engine.Available(mode)
		item := components.MenuItem{
			Label:    mode.Label(),
			Disabled: !available,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: sessionscreen.New(h.deps, mode)}
				}
			},
		}
		if !available {
			item.Hint = "no data"
		} else {
			item.Hint = h.hint(mode.Kind(), lib.Get(mode.Kind()).Len())
		}
		items = append(items, item)
		h.modes = append(h.modes, mode)
	}

	events, timeout := h.events, h.deps.StoreTimeout
	items = append(items,
		components.MenuItem{
			Label:    "History",
			Disabled: events == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(events, timeout)} }
			},
		},
		components.MenuItem{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

// hint summarises the dataset size and labels for a menu entry.
func (h *HomeScreen) hint(kind dataset.Kind, total int) string {
	c := h.counts[kind]
	if c == nil {
		return fmt.Sprintf("%d items", total)
	}
	return fmt.Sprintf("%d items · %d known · %d to review", total, c[knowledge.Good], c[knowledge.Medium]+c[knowledge.DontKnow])
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadLabels()
}

// Resume reloads label counts, which a finished session may have changed.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadLabels()
}

// loadLabels reads label counts for every loaded kind.
func (h *HomeScreen) loadLabels() tea.Cmd {
	deps, labels, lib := h.deps, h.deps.Labels, h.deps.Engine.Library()
	if labels == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := deps.StoreContext()
		defer cancel()
		counts := make(map[dataset.Kind]map[knowledge.Label]int)
		for _, kind := range dataset.AllKinds {
			if lib.Get(kind) == nil {
				continue
			}
			set, err := labels.ReadLabels(ctx, kind)
			if err != nil {
				return labelsLoadedMsg{Err: err}
			}
			counts[kind] = set.Counts()
		}
		return labelsLoadedMsg{Counts: counts}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case labelsLoadedMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.counts = msg.Counts
		h.buildMenu()
		return h, nil

	case tea.KeyPressMsg:
		if msg.String() == "r" {
			return h, h.loadLabels()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.Compact(width, height)
	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStats(h.deps.Engine.Library(), h.counts, cw),
		renderMenu(h.menu, cw),
	}
	if h.errMsg != "" {
		sections = append(sections, renderError(h.errMsg, cw))
	}
	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Start"},
		{Key: "R", Description: "Refresh"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
