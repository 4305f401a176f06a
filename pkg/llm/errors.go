package llm

import (
	"errors"
	"fmt"
)

// LLM error taxonomy. Adapters normalize every backend failure into one of
// these; callers match with errors.Is / errors.As.
var (
	// ErrRateLimit marks backend rate limiting. The service retries these with
	// exponential backoff.
	ErrRateLimit = errors.New("llm: rate limited")

	// ErrAPI marks any other backend request/response failure, including
	// request timeouts. Never retried.
	ErrAPI = errors.New("llm: api error")
)

// ResponseParseError is returned when the backend produced non-JSON output
// despite json mode. Snippet holds at most the first 200 characters of the
// offending text so logs stay bounded for large transcripts.
type ResponseParseError struct {
	Snippet string
	Err     error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("llm: invalid JSON response: %v (response: %q)", e.Err, e.Snippet)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}

// snippet truncates s for diagnostics
func snippet(s string) string {
	const maxLen = 200
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}
