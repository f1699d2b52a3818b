package db

import "fmt"

// PersistenceError represents a failed interaction with the document
// store: connectivity, validation, or decoding failure.
type PersistenceError struct {
	Op      string
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence error (%s): %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("persistence error (%s): %s", e.Op, e.Message)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
