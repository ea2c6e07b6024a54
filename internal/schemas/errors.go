package schemas

import (
	"fmt"
	"strings"
)

// Code classifies a FieldError
type Code string

const (
	CodeMissing                  Code = "missing"
	CodeExtraForbidden           Code = "extra_forbidden"
	CodeType                     Code = "type"
	CodeDateFormat               Code = "date_format"
	CodeDateRangeInverted        Code = "date_range_inverted"
	CodeShapeNotFound            Code = "shape_not_found"
	CodeEntryMissing             Code = "entry_missing"
	CodeSectionShapeUndetermined Code = "section_shape_undetermined"
	CodeEntryValidation          Code = "entry_validation"
	CodePattern                  Code = "pattern"
	CodeEnum                     Code = "enum"
	CodeOther                    Code = "other"
)

// FieldError is one problem found at a location in the document. Aggregate
// errors (an invalid section) carry per-entry Causes whose paths are relative
// to the aggregate's own Path.
type FieldError struct {
	Path    Path
	Code    Code
	Message string
	Input   string
	Causes  []FieldError
}

func (e FieldError) String() string {
	loc := e.Path.Visible().String()
	if loc == "" {
		loc = "(root)"
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

// ValidationError collects every FieldError found in one run
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err))
		for _, cause := range err.Causes {
			sb.WriteString(fmt.Sprintf("     - %s\n", cause))
		}
	}
	return sb.String()
}

// Add appends errors.
func (ve *ValidationError) Add(errs ...FieldError) {
	ve.Errors = append(ve.Errors, errs...)
}

// Err returns ve when it holds at least one error, nil otherwise.
func (ve *ValidationError) Err() error {
	if ve == nil || len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}
