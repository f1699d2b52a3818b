package image

import "fmt"

// GenerationError represents a failed image synthesis, including the
// backend returning zero image payloads. A run must never carry a
// reference to an image that was not actually produced.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("image generation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("image generation error: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
