package domain

import "errors"

// Domain errors represent error conditions in the wxship domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrMissingCredentials is returned when station credentials are absent.
	// This is a configuration error: the upload path for the destination is
	// disabled and the worker never starts.
	ErrMissingCredentials = errors.New("wxship: station_id and password are required")

	// ErrAlreadyRunning is returned when Start() is called on a running service.
	ErrAlreadyRunning = errors.New("wxship: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped service.
	ErrNotRunning = errors.New("wxship: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("wxship: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("wxship: invalid configuration")

	// ErrUnknownUnit is returned when a conversion involves a unit the
	// converter does not recognize. The affected field is omitted from the
	// payload; the payload itself still goes out.
	ErrUnknownUnit = errors.New("wxship: unknown unit")
)

// AbortError indicates a record failed a pre-send validity check and must be
// abandoned without any network attempt. It is never retried.
type AbortError struct {
	Reason string
}

func (e *AbortError) Error() string { return "aborted: " + e.Reason }

// RejectedError indicates the destination's response signaled failure. The
// send is retryable and counts against the attempt budget.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return "rejected: " + e.Message }
