package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/jlptquiz/internal/quiz"
)

func fixedSource(qs ...quiz.Question) Source {
	return SourceFunc(func(n int) ([]quiz.Question, error) {
		if len(qs) == 0 {
			return nil, quiz.ErrDataUnavailable
		}
		if n < len(qs) {
			return qs[:n], nil
		}
		return qs, nil
	})
}

func mc(correct string) quiz.Question {
	return quiz.Question{
		Mode:    quiz.ModeGrammar,
		Key:     correct,
		Correct: correct,
		Options: []string{correct, "x", "y", "z"},
	}
}

func TestLifecycle(t *testing.T) {
	s := New("s1", quiz.ModeGrammar)
	if s.State() != StateNotStarted {
		t.Fatalf("state = %s, want not_started", s.State())
	}

	if err := s.Start(fixedSource(mc("a"), mc("b"), mc("c")), 3); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.State() != StateInProgress || s.Size() != 3 {
		t.Fatalf("after start: state=%s size=%d", s.State(), s.Size())
	}

	steps := []struct {
		index     int
		answer    string
		wantScore int
		wantState State
	}{
		{0, "a", 1, StateInProgress},
		{1, "wrong", 1, StateInProgress},
		{2, "c", 2, StateCompleted},
	}
	for _, st := range steps {
		if _, err := s.Answer(st.index, st.answer); err != nil {
			t.Fatalf("Answer(%d): %v", st.index, err)
		}
		if s.Score() != st.wantScore || s.State() != st.wantState {
			t.Fatalf("after answer %d: score=%d state=%s, want %d %s",
				st.index, s.Score(), s.State(), st.wantScore, st.wantState)
		}
	}

	if _, err := s.Answer(2, "c"); !errors.Is(err, quiz.ErrInvalidSessionState) {
		t.Fatalf("answer after completion: err = %v, want ErrInvalidSessionState", err)
	}
	if err := s.Start(fixedSource(mc("a")), 1); !errors.Is(err, quiz.ErrInvalidSessionState) {
		t.Fatalf("restart: err = %v, want ErrInvalidSessionState", err)
	}

	sum := s.Summary()
	if sum.Answered != 3 || sum.Score != 2 || len(sum.Missed) != 1 || sum.Missed[0].Correct != "b" {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Accuracy < 0.66 || sum.Accuracy > 0.67 {
		t.Fatalf("accuracy = %f", sum.Accuracy)
	}
}

func TestAnswer_IndexErrors(t *testing.T) {
	s := New("s", quiz.ModeGrammar)
	if _, err := s.Answer(0, "a"); !errors.Is(err, quiz.ErrInvalidSessionState) {
		t.Fatalf("answer before start: err = %v", err)
	}

	if err := s.Start(fixedSource(mc("a"), mc("b")), 0); err != nil {
		t.Fatal(err)
	}
	for _, idx := range []int{-1, 2, 1} {
		if _, err := s.Answer(idx, "a"); !errors.Is(err, quiz.ErrInvalidIndex) {
			t.Errorf("Answer(%d): err = %v, want ErrInvalidIndex", idx, err)
		}
	}
	if s.Answered() != 0 {
		t.Fatal("rejected answers must not be recorded")
	}
}

func TestStart_EmptyPool(t *testing.T) {
	s := New("s", quiz.ModeKanji)
	if err := s.Start(fixedSource(), 5); !errors.Is(err, quiz.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
	if s.State() != StateNotStarted {
		t.Fatal("failed start must not change state")
	}
}

func TestStart_DefaultSizeAndShrink(t *testing.T) {
	var asked int
	src := SourceFunc(func(n int) ([]quiz.Question, error) {
		asked = n
		return []quiz.Question{mc("a"), mc("b")}, nil
	})
	s := New("s", quiz.ModeGrammar)
	if err := s.Start(src, 0); err != nil {
		t.Fatal(err)
	}
	if asked != DefaultSize {
		t.Fatalf("requested %d questions, want %d", asked, DefaultSize)
	}
	if s.Size() != 2 {
		t.Fatalf("size = %d, want 2", s.Size())
	}
}

func TestFreeTextAnswersUseFuzzyCheck(t *testing.T) {
	s := New("s", quiz.ModeKanjiSentence)
	q := quiz.Question{Mode: quiz.ModeKanjiSentence, Correct: "I go to school every day", FreeText: true}
	if err := s.Start(fixedSource(q), 1); err != nil {
		t.Fatal(err)
	}
	r, err := s.Answer(0, "go school every day")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Correct {
		t.Fatal("expected fuzzy answer to be accepted")
	}
}

func TestStore(t *testing.T) {
	st := NewStore(time.Minute)
	now := time.Unix(1000, 0)
	st.now = func() time.Time { return now }

	tokenA, a := st.Create(quiz.ModeGrammar)
	tokenB, _ := st.Create(quiz.ModeKanji)
	if tokenA == tokenB {
		t.Fatal("tokens must be unique")
	}

	got, err := st.Get(tokenA)
	if err != nil || got != a {
		t.Fatalf("Get(a) = %v, %v", got, err)
	}
	if _, err := st.Get("nope"); !errors.Is(err, ErrNotFound) || !errors.Is(err, quiz.ErrInvalidSessionState) {
		t.Fatalf("unknown token: err = %v", err)
	}

	now = now.Add(45 * time.Second)
	if _, err := st.Get(tokenA); err != nil {
		t.Fatalf("touch a: %v", err)
	}
	now = now.Add(30 * time.Second)
	if n := st.Sweep(); n != 1 {
		t.Fatalf("Sweep removed %d, want 1 (only b idle past ttl)", n)
	}
	if _, err := st.Get(tokenB); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired session still reachable: %v", err)
	}

	if !st.Delete(tokenA) || st.Delete(tokenA) {
		t.Fatal("Delete should report existence once")
	}
	if st.Len() != 0 {
		t.Fatalf("Len = %d, want 0", st.Len())
	}
}

func TestStore_RunStopsOnCancel(t *testing.T) {
	st := NewStore(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
