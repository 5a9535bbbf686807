package ai

import "errors"

var (
	// ErrNoCredential indicates no API key is configured. This is an
	// expected condition, not a failure: callers fall back silently.
	ErrNoCredential = errors.New("ai credential not configured")

	// ErrUnavailable indicates the planning service could not be reached.
	ErrUnavailable = errors.New("ai service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("ai request timed out")

	// ErrInvalidOutput indicates the response could not be parsed into the
	// expected structured format.
	ErrInvalidOutput = errors.New("invalid ai output format")

	// ErrEmptyPlan indicates normalization resolved zero sessions, meaning
	// the response referenced nothing recognizable from the snapshot.
	ErrEmptyPlan = errors.New("ai plan resolved to zero sessions")
)
