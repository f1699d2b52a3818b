package assets

import "fmt"

// PublishError represents a failed upload to durable image storage:
// network failure, quota, or invalid credentials.
type PublishError struct {
	Message string
	Cause   error
}

func (e *PublishError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("publish error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("publish error: %s", e.Message)
}

func (e *PublishError) Unwrap() error {
	return e.Cause
}
