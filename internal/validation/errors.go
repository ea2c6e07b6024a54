// Package validation turns a parsed résumé document into a typed model,
// collecting every problem it finds in one pass.
package validation

import "fmt"

// InternalError represents a defect outside the user's document: a broken
// catalog or schema. It is never shown as a diagnostic.
type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("internal validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("internal validation error: %s", e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

// FileReadError represents an error reading a file
type FileReadError struct {
	Message string
	Cause   error
}

func (e *FileReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("file read error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("file read error: %s", e.Message)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}
