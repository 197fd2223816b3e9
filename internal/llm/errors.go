package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotConfigured is returned by NewProvider when no provider is selected.
var ErrNotConfigured = errors.New("llm: no provider configured")

// ErrRateLimit is a 429 from the vendor. RetryAfter is zero when the
// vendor gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm: rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("llm: rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse carries output that is not JSON or does not match
// the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string { return fmt.Sprintf("llm: invalid response: %v", e.Err) }

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers outages, 5xx answers and transport
// failures.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "llm: provider unavailable"
	}
	return "llm: provider unavailable: " + e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means a structured answer was cut off at
// MaxTokens. Content holds the partial output.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string { return "llm: response truncated at max tokens" }

// ValidationError is raised by consumers for schema-valid output they
// still reject, such as an empty explanation.
type ValidationError struct {
	Field     string
	Reason    string
	Retryable bool
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "llm: output rejected: " + e.Reason
	}
	return "llm: output rejected: " + e.Field + ": " + e.Reason
}

// fromStatus maps a vendor HTTP status onto the error types above.
// Other 4xx answers are configuration problems and stay plain errors.
func fromStatus(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status >= 400 && status < 500:
		return fmt.Errorf("llm: request rejected with status %d: %w", status, err)
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// failure is how the retry loop treats an error.
type failure int

const (
	failFatal     failure = iota // give up
	failTransient                // back off and try again
	failMalformed                // worth exactly one more try
)

func classify(err error) failure {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return failFatal
	}
	var (
		truncated *ErrMaxTokensExceeded
		invalid   *ErrInvalidResponse
		rejected  *ValidationError
		limited   *ErrRateLimit
		down      *ErrProviderUnavailable
	)
	switch {
	case errors.As(err, &truncated):
		return failFatal
	case errors.As(err, &rejected):
		if rejected.Retryable {
			return failTransient
		}
		return failFatal
	case errors.As(err, &invalid):
		return failMalformed
	case errors.As(err, &limited), errors.As(err, &down):
		return failTransient
	}
	return failFatal
}
