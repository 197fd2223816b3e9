package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AnswerEventData captures one answered quiz question.
type AnswerEventData struct {
	SessionID     string
	Mode          string
	ItemKey       string
	Prompt        string
	CorrectAnswer string
	GivenAnswer   string
	Correct       bool
	TimeMs        int64
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// Session event actions.
const (
	SessionStart = "start"
	SessionEnd   = "end"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID       string
	Action          string
	Mode            string
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// SessionSummaryRecord describes one finished session.
type SessionSummaryRecord struct {
	SessionID       string
	Timestamp       time.Time
	Mode            string
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// ModeAccuracy aggregates lifetime answers for one quiz mode.
type ModeAccuracy struct {
	Mode     string
	Answered int
	Correct  int
}

// Accuracy returns Correct/Answered, or 0 when nothing was answered.
func (m ModeAccuracy) Accuracy() float64 {
	if m.Answered == 0 {
		return 0
	}
	return float64(m.Correct) / float64(m.Answered)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records one answered question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QueryAnswerEvents returns answer events matching opts.
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// AccuracyByMode returns lifetime answer counts per mode.
	AccuracyByMode(ctx context.Context) ([]ModeAccuracy, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events matching opts.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates LLM usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates LLM usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
