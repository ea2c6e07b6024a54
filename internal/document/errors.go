// Package document parses résumé source text into a position-annotated tree.
package document

import "fmt"

// ParseError represents a failure to parse the source text into a tree
type ParseError struct {
	Filename string
	Line     int
	Message  string
	Cause    error
}

func (e *ParseError) Error() string {
	location := e.Filename
	if e.Line > 0 {
		location = fmt.Sprintf("%s:%d", e.Filename, e.Line)
	}
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %s: %v", location, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s: %s", location, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
