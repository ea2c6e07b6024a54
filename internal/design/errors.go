// Package design validates the design block: built-in themes derived from
// the classic theme, and custom themes supplied by plugins.
package design

import "fmt"

// BuildError represents a malformed theme or plugin definition
type BuildError struct {
	Theme   string
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("design build error: %s: %s: %v", e.Theme, e.Message, e.Cause)
	}
	return fmt.Sprintf("design build error: %s: %s", e.Theme, e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}
