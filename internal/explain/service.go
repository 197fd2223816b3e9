package explain

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/jlptquiz/internal/llm"
	"github.com/abhisek/jlptquiz/internal/quiz"
)

// Input describes a missed question.
type Input struct {
	Mode    quiz.Mode `json:"mode"`
	Prompt  string    `json:"prompt"`
	Example string    `json:"example,omitempty"`
	Correct string    `json:"correct"`
	Given   string    `json:"given"`
}

// FromQuestion builds an Input for a question answered with given.
func FromQuestion(q quiz.Question, given string) Input {
	return Input{
		Mode:    q.Mode,
		Prompt:  q.Prompt,
		Example: q.Example,
		Correct: q.Correct,
		Given:   given,
	}
}

// Explanation is the tutor's reply.
type Explanation struct {
	Explanation string `json:"explanation"`
	Tip         string `json:"tip"`
}

// Config holds explanation generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one Explain call. Zero means no limit beyond ctx.
	Timeout time.Duration
}

// DefaultConfig returns the settings used by the TUI and the API.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.3,
		Timeout:     30 * time.Second,
	}
}

// Service produces explanations for wrong answers.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu     sync.Mutex
	result Result
	ready  bool
}

// NewService creates an explanation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Explain asks the provider for an explanation and blocks until it
// arrives.
func (s *Service) Explain(ctx context.Context, in Input) (*Explanation, error) {
	if strings.TrimSpace(in.Prompt) == "" || strings.TrimSpace(in.Correct) == "" {
		return nil, fmt.Errorf("explain: prompt and correct answer are required")
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)

	out, _, err := llm.GenerateJSON[Explanation](ctx, s.provider, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(in)),
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}

	out.Explanation = strings.TrimSpace(out.Explanation)
	out.Tip = strings.TrimSpace(out.Tip)
	if out.Explanation == "" {
		return nil, &llm.ValidationError{Field: "explanation", Reason: "empty"}
	}
	return &out, nil
}

// Request starts an explanation in the background. Only one result is
// held at a time; a newer request replaces an unconsumed one.
func (s *Service) Request(ctx context.Context, in Input) {
	go func() {
		out, err := s.Explain(ctx, in)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.result = Result{Input: in, Explanation: out, Err: err}
		s.ready = true
	}()
}

// Result is the outcome of a background request.
type Result struct {
	Input       Input
	Explanation *Explanation
	Err         error
}

// Consume returns the finished background result. It reports false while
// the request is still running. A returned result clears the slot.
func (s *Service) Consume() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return Result{}, false
	}
	r := s.result
	s.result, s.ready = Result{}, false
	return r, true
}
