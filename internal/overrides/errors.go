// Package overrides edits a parsed document at dotted paths before it is
// validated, e.g. `cv.sections.education.0.institution=MIT`.
package overrides

import "fmt"

// Kind classifies an override that could not be applied
type Kind int

const (
	// EmptyPath is a path with no segments or an empty segment ("cv..name")
	EmptyPath Kind = iota
	// NotAnIndex is a non-integer segment addressing a list
	NotAnIndex
	// IndexOutOfRange is an integer segment past the end of a list
	IndexOutOfRange
	// KeyNotFound is a missing key in the middle of a path
	KeyNotFound
	// PathTypeMismatch is a path that continues through a scalar or null
	PathTypeMismatch
)

func (k Kind) String() string {
	switch k {
	case EmptyPath:
		return "empty path"
	case NotAnIndex:
		return "not an index"
	case IndexOutOfRange:
		return "index out of range"
	case KeyNotFound:
		return "key not found"
	case PathTypeMismatch:
		return "path type mismatch"
	default:
		return "unknown"
	}
}

// Error represents an override whose path does not fit the document
type Error struct {
	Kind Kind
	// Path is the override as given
	Path string
	// Resolved is the prefix of Path that was found in the document
	Resolved string
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("override error: %s", e.Message)
}

// ArgumentError represents malformed override arguments on the command line
type ArgumentError struct {
	Message string
	Cause   error
}

func (e *ArgumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("override argument error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("override argument error: %s", e.Message)
}

func (e *ArgumentError) Unwrap() error {
	return e.Cause
}
