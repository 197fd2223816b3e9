package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/knowledge"
	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/router"
	sessionscreen "github.com/abhisek/jlptquiz/internal/screens/session"
)

func testOptions() Options {
	kanji := dataset.New(dataset.KindKanji,
		[]string{"Kanji", "Meaning"},
		[][]string{{"日", "sun"}, {"月", "moon"}, {"火", "fire"}, {"水", "water"}},
	)
	return Options{
		Engine: quiz.NewEngine(dataset.NewLibrary(kanji), nil),
		Labels: knowledge.NewMemoryStore(),
	}
}

func sized(m AppModel) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(AppModel)
}

func TestAppModel_HomeView(t *testing.T) {
	m := sized(newAppModel(testOptions()))

	v := m.View()
	assert.True(t, v.AltScreen)
	assert.NotNil(t, v.Content)
	require.NotNil(t, m.router.Active())
	assert.Equal(t, "Home", m.router.Active().Title())
	assert.Equal(t, "↑↓", m.footerHints(m.router.Active())[0].Key)
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(testOptions())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = next.(AppModel)
	assert.Equal(t, 40, m.width)
	assert.Equal(t, "Home", m.router.Active().Title())
}

func TestAppModel_CtrlC(t *testing.T) {
	m := newAppModel(testOptions())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestAppModel_ScoreInHeader(t *testing.T) {
	opts := testOptions()
	m := sized(newAppModel(opts))

	quizScreen := sessionscreen.New(sessionscreen.Deps{Engine: opts.Engine, Labels: opts.Labels}, quiz.ModeKanji)
	next, cmd := m.Update(router.PushScreenMsg{Screen: quizScreen})
	m = next.(AppModel)
	require.NotNil(t, cmd, "pushing runs the screen's start command")
	next, _ = m.Update(cmd())
	m = next.(AppModel)

	assert.Equal(t, "Kanji", m.router.Active().Title())
	hints := m.footerHints(m.router.Active())
	require.NotEmpty(t, hints)
	assert.Equal(t, "A-D", hints[0].Key)
}

// stalledLabels never answers; reads wait for their context to end.
type stalledLabels struct{ knowledge.Store }

func (stalledLabels) ReadLabels(ctx context.Context, _ dataset.Kind) (knowledge.Set, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestAppModel_StoreTimeoutReachesScreens(t *testing.T) {
	opts := testOptions()
	opts.Labels = stalledLabels{}
	opts.StoreTimeout = 20 * time.Millisecond
	m := sized(newAppModel(opts))

	cmd := m.Init()
	require.NotNil(t, cmd)
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("label load ignored the store timeout")
	}
	next, _ := m.Update(msg)
	m = next.(AppModel)
	assert.Contains(t, m.router.Active().View(100, 30), "deadline")
}

func TestRun_RequiresEngine(t *testing.T) {
	err := Run(context.Background(), Options{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no quiz engine"))
}
