package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/jlptquiz/internal/quiz"
)

// DefaultSize is the number of questions drawn when no size is given.
const DefaultSize = 20

// State is the lifecycle phase of a session.
type State int

const (
	StateNotStarted State = iota // Created, no questions drawn yet
	StateInProgress              // Serving questions
	StateCompleted               // Last question answered; terminal
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	for _, st := range []State{StateNotStarted, StateInProgress, StateCompleted} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", b)
}

// Result records the outcome of one answered question.
type Result struct {
	Index    int    `json:"index"`
	Given    string `json:"given"`
	Expected string `json:"expected"`
	Correct  bool   `json:"correct"`

	// Elapsed is the time between the question being served and answered.
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Session is one scored run through a fixed, non-repeating question
// sequence. It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	// ID identifies the session in logs and history.
	ID string

	// Mode is the quiz mode questions were drawn for.
	Mode quiz.Mode

	// StartedAt is set when Start succeeds.
	StartedAt time.Time

	// CompletedAt is set when the last question is answered.
	CompletedAt time.Time

	state     State
	questions []quiz.Question
	index     int
	servedAt  time.Time
	score     int
	results   []Result
}

// New returns a session in StateNotStarted.
func New(id string, mode quiz.Mode) *Session {
	return &Session{ID: id, Mode: mode}
}
