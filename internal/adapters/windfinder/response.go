package windfinder

import (
	"fmt"
	"strings"

	"github.com/wx-labs/wxship/internal/domain"
	"github.com/wx-labs/wxship/internal/ports"
)

// successToken starts the body text of an accepted upload.
const successToken = "OK"

// ResponseChecker decides whether a WindFinder response means success.
//
// WindFinder signals errors only through free text inside the HTML body;
// there are no status codes to rely on. The status is whatever sits between
// the body tags, and an accepted upload starts with "OK".
type ResponseChecker struct{}

// NewResponseChecker creates a checker.
func NewResponseChecker() *ResponseChecker { return &ResponseChecker{} }

// Check returns nil for an accepted upload and *domain.RejectedError
// otherwise. The rejection message carries the captured body text, or a
// transport-level description when the body has no recognizable shape.
func (ResponseChecker) Check(resp ports.Response) error {
	if resp.StatusCode/100 != 2 {
		return &domain.RejectedError{
			Message: fmt.Sprintf("server returned status %d", resp.StatusCode),
		}
	}

	msg, ok := bodyText(string(resp.Body))
	if !ok {
		return &domain.RejectedError{Message: "unrecognized response body"}
	}
	if strings.HasPrefix(msg, successToken) {
		return nil
	}
	return &domain.RejectedError{Message: msg}
}

// bodyText extracts the trimmed text between the <body ...> and </body>
// markers. Returns false when no body tag is present at all.
func bodyText(s string) (string, bool) {
	start := strings.Index(s, "<body")
	if start < 0 {
		return "", false
	}
	rest := s[start:]
	gt := strings.Index(rest, ">")
	if gt < 0 {
		return "", false
	}
	content := rest[gt+1:]
	if end := strings.Index(content, "</body>"); end >= 0 {
		content = content[:end]
	}
	return strings.TrimSpace(content), true
}
