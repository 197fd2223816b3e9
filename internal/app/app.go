package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/jlptquiz/internal/explain"
	"github.com/abhisek/jlptquiz/internal/knowledge"
	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/router"
	"github.com/abhisek/jlptquiz/internal/screen"
	"github.com/abhisek/jlptquiz/internal/screens/home"
	sessionscreen "github.com/abhisek/jlptquiz/internal/screens/session"
	"github.com/abhisek/jlptquiz/internal/session"
	"github.com/abhisek/jlptquiz/internal/store"
	"github.com/abhisek/jlptquiz/internal/ui/layout"
)

// Options wires the services the terminal UI uses. Only Engine is
// required.
type Options struct {
	Engine      *quiz.Engine
	Labels      knowledge.Store
	EventRepo   store.EventRepo
	Explainer   *explain.Service
	SessionSize int

	// StoreTimeout bounds each label or event store call made by a
	// screen. Zero uses the screens' default.
	StoreTimeout time.Duration
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel showing the home screen.
func newAppModel(opts Options) AppModel {
	deps := sessionscreen.Deps{
		Engine:    opts.Engine,
		Labels:    opts.Labels,
		Explainer: opts.Explainer,
		Size:      opts.SessionSize,

		StoreTimeout: opts.StoreTimeout,
	}
	if opts.EventRepo != nil {
		deps.Recorder = session.NewRecorder(opts.EventRepo)
	}
	return AppModel{
		router: router.New(home.New(deps, opts.EventRepo)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.TooSmall(m.width, m.height) {
		v.SetContent(layout.MinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	var score *layout.Score
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.ScoreProvider); ok {
			sc := sp.Score()
			if sc.Total > 0 {
				score = &sc
			}
		}
	}

	header := layout.Header(title, score, m.width)
	footer := layout.Footer(m.footerHints(active), m.width)
	body := m.router.View(m.width, layout.BodyHeight(header, footer, m.height))
	v.SetContent(layout.Frame(header, body, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the terminal UI and blocks until it exits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	if opts.Engine == nil {
		return fmt.Errorf("run ui: no quiz engine")
	}
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
