package home

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/knowledge"
	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/router"
	"github.com/abhisek/jlptquiz/internal/screens/history"
	sessionscreen "github.com/abhisek/jlptquiz/internal/screens/session"
	"github.com/abhisek/jlptquiz/internal/store"
)

func kanjiOnly() *dataset.Library {
	return dataset.NewLibrary(dataset.New(dataset.KindKanji,
		[]string{"Kanji", "Meaning"},
		[][]string{{"日", "sun"}, {"月", "moon"}, {"火", "fire"}, {"水", "water"}},
	))
}

func newHome(t *testing.T, labels knowledge.Store) *HomeScreen {
	t.Helper()
	deps := sessionscreen.Deps{
		Engine: quiz.NewEngine(kanjiOnly(), nil),
		Labels: labels,
	}
	return New(deps, nil)
}

func itemFor(h *HomeScreen, label string) (int, bool) {
	for i, item := range h.menu.Items {
		if item.Label == label {
			return i, !item.Disabled
		}
	}
	return -1, false
}

func TestHomeScreen_OnlyModesWithData(t *testing.T) {
	h := newHome(t, nil)

	if _, ok := itemFor(h, "Kanji"); !ok {
		t.Error("kanji should be enabled")
	}
	for _, label := range []string{"Grammar", "Sentences", "Vocabulary", "Kanji sentences", "History"} {
		if _, ok := itemFor(h, label); ok {
			t.Errorf("%s should be disabled", label)
		}
	}
	if h.Init() != nil {
		t.Error("no label store means nothing to load")
	}
	if h.menu.Items[h.menu.Selected].Disabled {
		t.Error("initial selection must be an enabled item")
	}
}

func TestHomeScreen_StartsSession(t *testing.T) {
	h := newHome(t, nil)
	idx, _ := itemFor(h, "Kanji")
	h.menu.Selected = idx

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Kanji" {
		t.Errorf("pushed %q", msg.Screen.Title())
	}
}

func TestHomeScreen_LabelCounts(t *testing.T) {
	labels := knowledge.NewMemoryStore()
	ctx := context.Background()
	_ = labels.SetLabel(ctx, dataset.KindKanji, "日", knowledge.Good)
	_ = labels.SetLabel(ctx, dataset.KindKanji, "月", knowledge.DontKnow)

	h := newHome(t, labels)
	cmd := h.Init()
	if cmd == nil {
		t.Fatal("expected a label load")
	}
	scr, _ := h.Update(cmd())
	h = scr.(*HomeScreen)

	idx, _ := itemFor(h, "Kanji")
	if got := h.menu.Items[idx].Hint; got != "4 items · 1 known · 1 to review" {
		t.Errorf("hint = %q", got)
	}
	if !strings.Contains(h.View(100, 30), "1/4") {
		t.Error("expected known/total in the stats bar")
	}

	// A session marks 火 good; returning to the menu reloads the counts.
	_ = labels.SetLabel(ctx, dataset.KindKanji, "火", knowledge.Good)
	scr, _ = h.Update(h.Resume()())
	h = scr.(*HomeScreen)
	if got := h.menu.Items[idx].Hint; got != "4 items · 2 known · 1 to review" {
		t.Errorf("hint after resume = %q", got)
	}
}

func TestHomeScreen_History(t *testing.T) {
	h := newHome(t, nil)
	h.events = nil
	h.buildMenu()
	if _, ok := itemFor(h, "History"); ok {
		t.Fatal("history needs an event repo")
	}

	h = New(h.deps, historyRepo(t))
	idx, ok := itemFor(h, "History")
	if !ok {
		t.Fatal("history should be enabled")
	}
	h.menu.Selected = idx
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg := cmd().(router.PushScreenMsg)
	if _, ok := msg.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T", msg.Screen)
	}
}

func TestHomeScreen_Quit(t *testing.T) {
	h := newHome(t, nil)
	idx, _ := itemFor(h, "Quit")
	h.menu.Selected = idx
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
}

func TestHomeScreen_CompactView(t *testing.T) {
	h := newHome(t, nil)
	if !strings.Contains(h.View(80, 18), "J · L · P · T") {
		t.Error("expected the compact title on a small terminal")
	}
}

// stalledLabels never answers; reads wait for their context to end.
type stalledLabels struct{ knowledge.Store }

func (stalledLabels) ReadLabels(ctx context.Context, _ dataset.Kind) (knowledge.Set, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestHomeScreen_StalledLabelStoreTimesOut(t *testing.T) {
	h := New(sessionscreen.Deps{
		Engine:       quiz.NewEngine(kanjiOnly(), nil),
		Labels:       stalledLabels{},
		StoreTimeout: 20 * time.Millisecond,
	}, nil)

	msg, ok := h.Init()().(labelsLoadedMsg)
	if !ok {
		t.Fatal("expected labelsLoadedMsg")
	}
	if !errors.Is(msg.Err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", msg.Err)
	}
	scr, _ := h.Update(msg)
	if scr.(*HomeScreen).errMsg == "" {
		t.Error("expected the load failure to show")
	}
}

func historyRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}
