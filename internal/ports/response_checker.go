package ports

// Response is the raw result of one HTTP attempt.
type Response struct {
	StatusCode int
	Body       []byte
}

// ResponseChecker inspects a raw response and decides Success or Rejected.
// A nil return means the destination accepted the upload. A rejection is
// reported as *domain.RejectedError carrying the destination's message;
// the worker redacts credential values before the message is logged.
type ResponseChecker interface {
	Check(resp Response) error
}
