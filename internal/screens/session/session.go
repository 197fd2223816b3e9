package session

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/jlptquiz/internal/explain"
	"github.com/abhisek/jlptquiz/internal/knowledge"
	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/router"
	"github.com/abhisek/jlptquiz/internal/screen"
	"github.com/abhisek/jlptquiz/internal/screens/summary"
	sess "github.com/abhisek/jlptquiz/internal/session"
	"github.com/abhisek/jlptquiz/internal/ui/components"
	"github.com/abhisek/jlptquiz/internal/ui/layout"
)

const explainPollInterval = 200 * time.Millisecond

// DefaultStoreTimeout bounds a store call when Deps.StoreTimeout is unset.
const DefaultStoreTimeout = 15 * time.Second

// Deps are the services a quiz screen needs. Labels, Recorder and
// Explainer may be nil.
type Deps struct {
	Engine    *quiz.Engine
	Labels    knowledge.Store
	Recorder  *sess.Recorder
	Explainer *explain.Service
	Size      int

	// StoreTimeout bounds each label or event store call.
	StoreTimeout time.Duration
}

// StoreContext returns a context for one store call, bounded by
// StoreTimeout.
func (d Deps) StoreContext() (context.Context, context.CancelFunc) {
	timeout := d.StoreTimeout
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
)

// SessionScreen runs one quiz session in a single mode.
type SessionScreen struct {
	deps    Deps
	mode    quiz.Mode
	session *sess.Session

	phase       phase
	confirmQuit bool
	errMsg      string

	question quiz.Question
	index    int
	choice   components.MultiChoice
	input    components.TextInput
	result   sess.Result

	label    knowledge.Label
	labelErr string

	// explaining is set while the current question waits for an
	// explanation; inflight while any request is outstanding.
	explaining bool
	inflight   bool
	explained  *explain.Explanation
	explainErr string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.ScoreProvider = (*SessionScreen)(nil)

// New creates a quiz screen for mode.
func New(deps Deps, mode quiz.Mode) *SessionScreen {
	return &SessionScreen{deps: deps, mode: mode}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.start()
}

func (s *SessionScreen) Title() string {
	return s.mode.Label()
}

// Score reports the running tally for the header.
func (s *SessionScreen) Score() layout.Score {
	if s.session == nil {
		return layout.Score{}
	}
	return layout.Score{
		Correct:  s.session.Score(),
		Answered: s.session.Answered(),
		Total:    s.session.Size(),
	}
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.phase == phaseFeedback:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "G/M/D", Description: "Good/Medium/Don't know"},
		}
		if s.deps.Explainer != nil {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
		}
		return hints
	case s.phase == phaseQuestion && s.question.FreeText:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.phase == phaseQuestion:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "↑↓", Description: "Select"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		return s.handleStarted(msg)

	case labelSavedMsg:
		if msg.Err != nil {
			s.labelErr = msg.Err.Error()
		} else if msg.Key == s.question.Key {
			s.label = msg.Label
			s.labelErr = ""
		}
		return s, nil

	case explainTickMsg:
		return s.handleExplainTick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseQuestion && s.question.FreeText && !s.confirmQuit {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// start reads the learner's labels and draws the question sequence.
func (s *SessionScreen) start() tea.Cmd {
	deps, mode := s.deps, s.mode
	return func() tea.Msg {
		ctx, cancel := deps.StoreContext()
		defer cancel()

		var labels knowledge.Set
		if deps.Labels != nil {
			var err error
			labels, err = deps.Labels.ReadLabels(ctx, mode.Kind())
			if err != nil {
				return sessionStartedMsg{Err: err}
			}
		}

		session := sess.New(uuid.NewString(), mode)
		src := sess.SourceFunc(func(n int) ([]quiz.Question, error) {
			return deps.Engine.Questions(mode, labels, n)
		})
		if err := session.Start(src, deps.Size); err != nil {
			return sessionStartedMsg{Err: err}
		}
		deps.Recorder.Started(ctx, session)
		return sessionStartedMsg{Session: session}
	}
}

func (s *SessionScreen) handleStarted(msg sessionStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.session = msg.Session
	return s, s.nextQuestion()
}

// nextQuestion loads the current question and resets per-question state.
func (s *SessionScreen) nextQuestion() tea.Cmd {
	q, idx, err := s.session.Current()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}

	s.question = q
	s.index = idx
	s.phase = phaseQuestion
	s.result = sess.Result{}
	s.label = knowledge.None
	s.labelErr = ""
	s.explaining = false
	s.explained = nil
	s.explainErr = ""

	if q.FreeText {
		s.input = components.NewTextInput("Type the English meaning...", 200)
		return s.input.Init()
	}
	s.choice = components.NewMultiChoice(q.Options, q.Correct)
	return nil
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.finish()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseQuestion:
		if key == "esc" {
			s.confirmQuit = true
			return s, nil
		}
		if s.question.FreeText {
			if key == "enter" {
				return s, s.submit(s.input.Value())
			}
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		s.choice, _ = s.choice.Update(msg)
		if chosen, ok := s.choice.Chosen(); ok {
			return s, s.submit(chosen)
		}
		return s, nil

	case phaseFeedback:
		switch key {
		case "enter", "space", "n":
			return s, s.advance()
		case "g":
			return s, s.setLabel(knowledge.Good)
		case "m":
			return s, s.setLabel(knowledge.Medium)
		case "d":
			return s, s.setLabel(knowledge.DontKnow)
		case "e":
			return s, s.requestExplanation()
		case "esc":
			return s, s.finish()
		}
	}
	return s, nil
}

// submit scores answer against the current question.
func (s *SessionScreen) submit(answer string) tea.Cmd {
	if answer == "" {
		return nil
	}
	res, err := s.session.Answer(s.index, answer)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.result = res
	s.phase = phaseFeedback
	if s.question.FreeText {
		s.input.Submit(res.Correct)
	}
	ctx, cancel := s.deps.StoreContext()
	defer cancel()
	s.deps.Recorder.Answered(ctx, s.session, s.question, res)
	return nil
}

// advance moves to the next question or the summary.
func (s *SessionScreen) advance() tea.Cmd {
	if s.session.State() == sess.StateCompleted {
		return s.finish()
	}
	return s.nextQuestion()
}

// finish records the end of the session and shows its summary. A session
// with no answers goes straight back.
func (s *SessionScreen) finish() tea.Cmd {
	if s.session == nil || s.session.Answered() == 0 {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	ctx, cancel := s.deps.StoreContext()
	s.deps.Recorder.Ended(ctx, s.session)
	cancel()
	sum := s.session.Summary()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func (s *SessionScreen) setLabel(label knowledge.Label) tea.Cmd {
	if s.deps.Labels == nil {
		return nil
	}
	deps, kind, key := s.deps, s.question.Mode.Kind(), s.question.Key
	return func() tea.Msg {
		ctx, cancel := deps.StoreContext()
		defer cancel()
		err := deps.Labels.SetLabel(ctx, kind, key, label)
		return labelSavedMsg{Key: key, Label: label, Err: err}
	}
}

// requestExplanation asks for an explanation of the current question.
// Only one request runs at a time; a request for an earlier question is
// drained before the current one is sent.
func (s *SessionScreen) requestExplanation() tea.Cmd {
	if s.deps.Explainer == nil || s.explaining || s.explained != nil {
		return nil
	}
	s.explaining = true
	s.explainErr = ""
	if s.inflight {
		return nil
	}
	s.sendExplanation()
	return explainTick()
}

func (s *SessionScreen) sendExplanation() {
	s.inflight = true
	s.deps.Explainer.Request(context.Background(), explain.FromQuestion(s.question, s.result.Given))
}

func (s *SessionScreen) handleExplainTick() (screen.Screen, tea.Cmd) {
	if !s.inflight {
		return s, nil
	}
	res, ok := s.deps.Explainer.Consume()
	if !ok {
		return s, explainTick()
	}
	s.inflight = false

	if res.Input.Prompt != s.question.Prompt || res.Input.Given != s.result.Given {
		if s.explaining {
			s.sendExplanation()
			return s, explainTick()
		}
		return s, nil
	}

	s.explaining = false
	if res.Err != nil {
		s.explainErr = res.Err.Error()
		return s, nil
	}
	s.explained = res.Explanation
	return s, nil
}

func explainTick() tea.Cmd {
	return tea.Tick(explainPollInterval, func(t time.Time) tea.Msg {
		return explainTickMsg(t)
	})
}
