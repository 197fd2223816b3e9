package session

import (
	"fmt"
	"time"

	"github.com/abhisek/jlptquiz/internal/quiz"
)

// Source draws up to n distinct questions. It returns fewer when its pool
// is smaller and quiz.ErrDataUnavailable when the pool is empty.
type Source interface {
	Questions(n int) ([]quiz.Question, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(n int) ([]quiz.Question, error)

func (f SourceFunc) Questions(n int) ([]quiz.Question, error) { return f(n) }

// Start draws the question sequence and moves the session to
// StateInProgress. A non-positive size means DefaultSize. On failure the
// session stays in StateNotStarted.
func (s *Session) Start(src Source, size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return fmt.Errorf("start session in state %s: %w", s.state, quiz.ErrInvalidSessionState)
	}
	if size <= 0 {
		size = DefaultSize
	}

	qs, err := src.Questions(size)
	if err != nil {
		return fmt.Errorf("draw questions: %w", err)
	}
	if len(qs) == 0 {
		return fmt.Errorf("draw questions: %w", quiz.ErrDataUnavailable)
	}
	if len(qs) > size {
		qs = qs[:size]
	}

	s.questions = qs
	s.index = 0
	s.score = 0
	s.results = make([]Result, 0, len(qs))
	s.state = StateInProgress
	s.StartedAt = time.Now()
	s.servedAt = s.StartedAt
	return nil
}

// Answer submits value for the question at index. Only the current
// question may be answered. Answering the last question completes the
// session.
func (s *Session) Answer(index int, value string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return Result{}, fmt.Errorf("answer in state %s: %w", s.state, quiz.ErrInvalidSessionState)
	}
	if index < 0 || index >= len(s.questions) {
		return Result{}, fmt.Errorf("index %d out of range [0,%d): %w", index, len(s.questions), quiz.ErrInvalidIndex)
	}
	if index != s.index {
		return Result{}, fmt.Errorf("index %d is not the current question %d: %w", index, s.index, quiz.ErrInvalidIndex)
	}

	now := time.Now()
	q := &s.questions[index]
	r := Result{
		Index:    index,
		Given:    value,
		Expected: q.Correct,
		Correct:  q.Check(value),
		Elapsed:  now.Sub(s.servedAt),
	}
	s.servedAt = now
	if r.Correct {
		s.score++
	}
	s.results = append(s.results, r)

	if index == len(s.questions)-1 {
		s.state = StateCompleted
		s.CompletedAt = now
	} else {
		s.index++
	}
	return r, nil
}

// Current returns the question awaiting an answer and its index.
func (s *Session) Current() (quiz.Question, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return quiz.Question{}, 0, fmt.Errorf("current question in state %s: %w", s.state, quiz.ErrInvalidSessionState)
	}
	return s.questions[s.index], s.index, nil
}

// Question returns the question at index regardless of state.
func (s *Session) Question(index int) (quiz.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.questions) {
		return quiz.Question{}, fmt.Errorf("question %d: %w", index, quiz.ErrInvalidIndex)
	}
	return s.questions[index], nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Score returns the number of correct answers so far.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Size returns the number of questions drawn at start.
func (s *Session) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// Answered returns how many questions have been answered.
func (s *Session) Answered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}
