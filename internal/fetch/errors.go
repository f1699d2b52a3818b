package fetch

import "fmt"

// Error represents a failure to retrieve or extract blog content:
// unreachable URL, non-text content, or empty extraction. Each fetch is
// a single attempt; there is no retry.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
