package quiz

import "errors"

// Error kinds surfaced by the quiz core. Callers classify with errors.Is.
var (
	// ErrDataUnavailable means no question can be produced: the sheet is
	// not loaded or nothing is left after filtering.
	ErrDataUnavailable = errors.New("no questions available")

	// ErrColumnNotFound means a sheet lacks a column a question kind needs.
	// It is always wrapped together with ErrDataUnavailable when it stops a
	// question from being built.
	ErrColumnNotFound = errors.New("column not found")

	// ErrInvalidSessionState means the session is unknown, not started or
	// already completed.
	ErrInvalidSessionState = errors.New("invalid session state")

	// ErrInvalidIndex means a question index is out of range or not the
	// current one.
	ErrInvalidIndex = errors.New("invalid question index")
)
