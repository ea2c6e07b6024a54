// Package dates parses, formats, and measures the dates written in résumé entries.
package dates

import "fmt"

// FormatError represents a value that should be a date but is not one
type FormatError struct {
	Input   string
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("date format error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("date format error: %s", e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// RangeError represents a start date that falls after its end date
type RangeError struct {
	Start string
	End   string
}

func (e *RangeError) Error() string {
	return "date range error: " + e.Message()
}

// Message is the user-facing description of the inverted range.
func (e *RangeError) Message() string {
	return fmt.Sprintf("`start_date` cannot be after `end_date`. The `start_date` is %s and the `end_date` is %s.", e.Start, e.End)
}
