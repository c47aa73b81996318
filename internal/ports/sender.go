package ports

import "context"

// Sender performs a single HTTP attempt against the destination.
// Retry policy lives in the worker; implementations do exactly one request
// and report the raw response. A transport-level failure (timeout, refused,
// reset connection) is returned as an error.
type Sender interface {
	Send(ctx context.Context, rawURL string) (Response, error)
}
