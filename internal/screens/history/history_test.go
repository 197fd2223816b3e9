package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/jlptquiz/internal/router"
	"github.com/abhisek/jlptquiz/internal/store"
)

func seededRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	repo := st.EventRepo()
	ctx := context.Background()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(repo.AppendSessionEvent(ctx, store.SessionEventData{SessionID: "s1", Action: store.SessionStart, Mode: "kanji", QuestionsServed: 2}))
	must(repo.AppendAnswerEvent(ctx, store.AnswerEventData{SessionID: "s1", Mode: "kanji", ItemKey: "日", Prompt: "日", CorrectAnswer: "sun", GivenAnswer: "sun", Correct: true}))
	must(repo.AppendAnswerEvent(ctx, store.AnswerEventData{SessionID: "s1", Mode: "kanji", ItemKey: "月", Prompt: "月", CorrectAnswer: "moon", GivenAnswer: "fire"}))
	must(repo.AppendSessionEvent(ctx, store.SessionEventData{SessionID: "s1", Action: store.SessionEnd, Mode: "kanji", QuestionsServed: 2, CorrectAnswers: 1, DurationSecs: 75}))
	return repo
}

func load(t *testing.T, s *HistoryScreen) *HistoryScreen {
	t.Helper()
	scr, _ := s.Update(s.Init()())
	return scr.(*HistoryScreen)
}

func TestHistoryScreen_Empty(t *testing.T) {
	st, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	s := New(st.EventRepo(), 0)
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected the loading view before data arrives")
	}
	s = load(t, s)
	if !strings.Contains(s.View(80, 24), "No sessions yet") {
		t.Error("expected the empty view")
	}
}

func TestHistoryScreen_ListsSessions(t *testing.T) {
	s := load(t, New(seededRepo(t), 0))

	if len(s.sessions) != 1 {
		t.Fatalf("sessions = %+v", s.sessions)
	}
	view := s.View(100, 30)
	for _, want := range []string{"Kanji", "1:15", "1/2", "50%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
	if strings.Contains(view, "you: fire") {
		t.Error("mistakes should be collapsed")
	}

	scr, _ := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = scr.View(100, 30)
	if !strings.Contains(view, "月  →  moon  (you: fire)") {
		t.Errorf("expected the missed answer, got:\n%s", view)
	}
}

func TestHistoryScreen_Back(t *testing.T) {
	s := load(t, New(seededRepo(t), 0))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected esc to pop")
	}
}

// stalledEvents never answers; every query waits for its context to end.
type stalledEvents struct{ store.EventRepo }

func (stalledEvents) QuerySessionSummaries(ctx context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestHistoryScreen_StalledStoreTimesOut(t *testing.T) {
	s := load(t, New(stalledEvents{}, 20*time.Millisecond))
	if !strings.Contains(s.View(80, 24), context.DeadlineExceeded.Error()) {
		t.Errorf("expected the deadline error, got %q", s.View(80, 24))
	}
}
