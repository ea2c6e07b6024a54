// Package locale holds the words and month names used to render dates,
// with one variant per supported language.
package locale

import "fmt"

// BuildError represents a malformed locale variant definition
type BuildError struct {
	Variant string
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("locale build error: %s: %s: %v", e.Variant, e.Message, e.Cause)
	}
	return fmt.Sprintf("locale build error: %s: %s", e.Variant, e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}
