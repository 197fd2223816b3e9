package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/router"
	"github.com/abhisek/jlptquiz/internal/screen"
	"github.com/abhisek/jlptquiz/internal/store"
	"github.com/abhisek/jlptquiz/internal/ui/layout"
	"github.com/abhisek/jlptquiz/internal/ui/theme"
)

const (
	sessionLimit = 50

	// answerLimit bounds how many recent answers are scanned for
	// per-session mistakes.
	answerLimit = 2000

	// DefaultTimeout bounds loading when New is given no timeout.
	DefaultTimeout = 15 * time.Second
)

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Modes    []store.ModeAccuracy
	Missed   map[string][]store.AnswerEventRecord
	Err      error
}

// HistoryScreen lists past sessions and lifetime accuracy per mode.
type HistoryScreen struct {
	events   store.EventRepo
	timeout  time.Duration
	sessions []store.SessionSummaryRecord
	modes    []store.ModeAccuracy
	missed   map[string][]store.AnswerEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. Loading gives up after timeout; zero
// means DefaultTimeout.
func New(events store.EventRepo, timeout time.Duration) *HistoryScreen {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HistoryScreen{
		events:   events,
		timeout:  timeout,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events, timeout := s.events, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		sessions, err := events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: sessionLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		modes, err := events.AccuracyByMode(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		answers, err := events.QueryAnswerEvents(ctx, store.QueryOpts{Limit: answerLimit})
		if err != nil {
			return historyLoadedMsg{Sessions: sessions, Modes: modes}
		}
		missed := make(map[string][]store.AnswerEventRecord)
		for i := len(answers) - 1; i >= 0; i-- {
			if a := answers[i]; !a.Correct {
				missed[a.SessionID] = append(missed[a.SessionID], a)
			}
		}
		return historyLoadedMsg{Sessions: sessions, Modes: modes, Missed: missed}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Mistakes"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.modes = msg.Modes
			s.missed = msg.Missed
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. がんばって!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderModes(width))
	b.WriteString("\n\n")

	for i, rec := range s.sessions {
		var accuracy float64
		if rec.QuestionsServed > 0 {
			accuracy = float64(rec.CorrectAnswers) / float64(rec.QuestionsServed) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-16s %d:%02d  %d/%d  %.0f%%",
			prefix,
			rec.Timestamp.Format("Jan 02 15:04"),
			modeLabel(rec.Mode),
			rec.DurationSecs/60, rec.DurationSecs%60,
			rec.CorrectAnswers, rec.QuestionsServed,
			accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderMissed(rec.SessionID, width))
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderModes(width int) string {
	var parts []string
	for _, m := range s.modes {
		parts = append(parts, fmt.Sprintf("%s %.0f%%", modeLabel(m.Mode), m.Accuracy()*100))
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Secondary).
		Render(strings.Join(parts, "   "))
}

func (s *HistoryScreen) renderMissed(sessionID string, width int) string {
	missed := s.missed[sessionID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if len(missed) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    No mistakes")) + "\n"
	}
	var b strings.Builder
	for _, a := range missed {
		line := fmt.Sprintf("    %s  →  %s  (you: %s)", a.Prompt, a.CorrectAnswer, a.GivenAnswer)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func modeLabel(mode string) string {
	return quiz.Mode(mode).Label()
}
