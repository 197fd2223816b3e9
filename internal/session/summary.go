package session

import (
	"time"

	"github.com/abhisek/jlptquiz/internal/quiz"
)

// Summary is a point-in-time report of a session.
type Summary struct {
	ID       string        `json:"id"`
	Mode     quiz.Mode     `json:"mode"`
	State    State         `json:"state"`
	Size     int           `json:"size"`
	Answered int           `json:"answered"`
	Score    int           `json:"score"`
	Accuracy float64       `json:"accuracy"`
	Duration time.Duration `json:"duration_ns"`
	Results  []Result      `json:"results"`

	// Missed lists the questions answered wrongly, in order.
	Missed []quiz.Question `json:"missed,omitempty"`
}

// Summary builds a report from the current state. Accuracy is the share
// of answered questions that were correct.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{
		ID:       s.ID,
		Mode:     s.Mode,
		State:    s.state,
		Size:     len(s.questions),
		Answered: len(s.results),
		Score:    s.score,
		Results:  append([]Result(nil), s.results...),
	}
	if sum.Answered > 0 {
		sum.Accuracy = float64(sum.Score) / float64(sum.Answered)
	}
	if !s.StartedAt.IsZero() {
		end := s.CompletedAt
		if end.IsZero() {
			end = time.Now()
		}
		sum.Duration = end.Sub(s.StartedAt)
	}
	for _, r := range s.results {
		if !r.Correct {
			sum.Missed = append(sum.Missed, s.questions[r.Index])
		}
	}
	return sum
}
