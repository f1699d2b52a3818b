package llm

import "fmt"

// GenerationError represents a failed language-model invocation:
// timeout, authentication failure, or an empty/malformed response
// after normalization.
type GenerationError struct {
	Step    string
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation error (%s): %s: %v", e.Step, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation error (%s): %s", e.Step, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
