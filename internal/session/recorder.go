package session

import (
	"context"
	"log/slog"

	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/store"
)

// Recorder appends session and answer events to the history log. A nil
// Recorder or one without a repo records nothing. Failures are logged and
// never interrupt a quiz.
type Recorder struct {
	repo store.EventRepo
}

// NewRecorder returns a Recorder writing to repo.
func NewRecorder(repo store.EventRepo) *Recorder {
	return &Recorder{repo: repo}
}

// Started records a session start.
func (r *Recorder) Started(ctx context.Context, s *Session) {
	if r == nil || r.repo == nil {
		return
	}
	err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       s.ID,
		Action:          store.SessionStart,
		Mode:            string(s.Mode),
		QuestionsServed: s.Size(),
	})
	if err != nil {
		slog.Warn("failed to record session start", "session", s.ID, "error", err)
	}
}

// Answered records one answer to question q.
func (r *Recorder) Answered(ctx context.Context, s *Session, q quiz.Question, res Result) {
	if r == nil || r.repo == nil {
		return
	}
	err := r.repo.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     s.ID,
		Mode:          string(q.Mode),
		ItemKey:       q.Key,
		Prompt:        q.Prompt,
		CorrectAnswer: res.Expected,
		GivenAnswer:   res.Given,
		Correct:       res.Correct,
		TimeMs:        res.Elapsed.Milliseconds(),
	})
	if err != nil {
		slog.Warn("failed to record answer", "session", s.ID, "index", res.Index, "error", err)
	}
}

// Ended records a session end with its final score. Sessions abandoned
// before any answer are not recorded.
func (r *Recorder) Ended(ctx context.Context, s *Session) {
	if r == nil || r.repo == nil {
		return
	}
	sum := s.Summary()
	if sum.Answered == 0 {
		return
	}
	err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       s.ID,
		Action:          store.SessionEnd,
		Mode:            string(s.Mode),
		QuestionsServed: sum.Answered,
		CorrectAnswers:  sum.Score,
		DurationSecs:    int(sum.Duration.Seconds()),
	})
	if err != nil {
		slog.Warn("failed to record session end", "session", s.ID, "error", err)
	}
}
