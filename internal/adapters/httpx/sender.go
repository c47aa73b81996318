// Package httpx implements the ports.Sender interface over net/http.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/wx-labs/wxship/internal/ports"
)

// maxBodyBytes caps how much of a response body is read. Telemetry sinks
// answer with a few lines of HTML; anything larger is truncated.
const maxBodyBytes = 64 << 10

// Sender performs single GET attempts against the destination.
// Retry policy lives in the worker; Sender does exactly one request.
type Sender struct {
	client ports.HTTPClient
}

// NewSender creates a sender using the given HTTP client.
func NewSender(client ports.HTTPClient) *Sender {
	return &Sender{client: client}
}

// Send issues one GET request and returns the raw status and body.
// The context bounds the whole attempt including reading the body.
func (s *Sender) Send(ctx context.Context, rawURL string) (ports.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ports.Response{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return ports.Response{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return ports.Response{}, fmt.Errorf("read response: %w", err)
	}

	return ports.Response{StatusCode: resp.StatusCode, Body: body}, nil
}
