package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/router"
	"github.com/abhisek/jlptquiz/internal/session"
)

func testSummary() session.Summary {
	return session.Summary{
		ID:       "test-session",
		Mode:     quiz.ModeKanji,
		State:    session.StateCompleted,
		Size:     4,
		Answered: 4,
		Score:    3,
		Accuracy: 0.75,
		Duration: 95 * time.Second,
		Missed: []quiz.Question{
			{Mode: quiz.ModeKanji, Key: "月", Prompt: "月", Correct: "moon, month"},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testSummary()).View(100, 30)
	for _, want := range []string{"Session complete!", "Kanji", "1:35", "moon, month", "75%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestSummaryScreen_EndedEarly(t *testing.T) {
	sum := testSummary()
	sum.State = session.StateInProgress
	sum.Missed = nil
	view := New(sum).View(100, 30)
	if !strings.Contains(view, "Session ended") {
		t.Error("expected early-exit title")
	}
	if !strings.Contains(view, "No mistakes") {
		t.Error("expected the no-mistakes message")
	}
}

func TestSummaryScreen_CapsMissedList(t *testing.T) {
	sum := testSummary()
	sum.Missed = nil
	for i := 0; i < maxMissed+3; i++ {
		sum.Missed = append(sum.Missed, quiz.Question{Prompt: "日", Correct: "sun"})
	}
	view := New(sum).View(100, 40)
	if !strings.Contains(view, "and 3 more") {
		t.Error("expected the overflow line")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []rune{tea.KeyEnter, tea.KeyEscape} {
		_, cmd := New(testSummary()).Update(tea.KeyPressMsg{Code: key})
		if cmd == nil {
			t.Fatalf("expected a command for key %d", key)
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("key %d: expected PopScreenMsg", key)
		}
	}
}

func TestSummaryScreen_Score(t *testing.T) {
	sc := New(testSummary()).Score()
	if sc.Correct != 3 || sc.Answered != 4 || sc.Total != 4 {
		t.Errorf("Score = %+v", sc)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("ありがとうございます", 5); got != "ありがと…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("日", 5); got != "日" {
		t.Errorf("truncate = %q", got)
	}
}
