package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Kind is the precision a date was written with
type Kind int

const (
	// Absent is the zero Value: no date was given
	Absent Kind = iota
	// YearOnly is `2020` (integer or string)
	YearOnly
	// YearMonth is `2020-09`
	YearMonth
	// YearMonthDay is `2020-09-24`
	YearMonthDay
	// Present is the `present` keyword, resolved against a reference date
	Present
	// Text is free text such as `Fall 2023`
	Text
)

func (k Kind) String() string {
	switch k {
	case YearOnly:
		return "year"
	case YearMonth:
		return "year-month"
	case YearMonthDay:
		return "year-month-day"
	case Present:
		return "present"
	case Text:
		return "text"
	default:
		return "absent"
	}
}

// PresentKeyword is the literal users write for ongoing ranges
const PresentKeyword = "present"

// ExactFormatMessage is shown for values that must be calendar dates
const ExactFormatMessage = "This is not a valid date! Please use either YYYY-MM-DD, YYYY-MM, or YYYY format."

var (
	yearMonthDayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearMonthPattern    = regexp.MustCompile(`^\d{4}-\d{2}$`)
	yearPattern         = regexp.MustCompile(`^\d{4}$`)
)

// Value is a date as written in the document. Only the fields matching Kind
// are meaningful.
type Value struct {
	kind  Kind
	year  int
	month time.Month
	day   int
	raw   string
	// integer reports a YAML integer scalar, re-emitted without quotes
	integer bool
}

// Year builds a year-only value from an integer scalar.
func Year(year int) Value {
	return Value{kind: YearOnly, year: year, month: time.January, day: 1, raw: strconv.Itoa(year), integer: true}
}

// PresentDate is the `present` keyword.
func PresentDate() Value {
	return Value{kind: Present, raw: PresentKeyword}
}

// ParseExact accepts YYYY, YYYY-MM, YYYY-MM-DD, and `present`. Anything else,
// including calendar-invalid dates like 2020-13, is a *FormatError.
func ParseExact(raw string) (Value, error) {
	if raw == PresentKeyword {
		return PresentDate(), nil
	}
	v, ok, err := parseNumeric(raw)
	if err != nil {
		return Value{}, err
	}
	if !ok {
		return Value{}, &FormatError{Input: raw, Message: fmt.Sprintf("%q is not in YYYY-MM-DD, YYYY-MM, or YYYY format", raw)}
	}
	return v, nil
}

// ParseArbitrary validates raw only when it looks like a date; any other
// text is kept as a Text value.
func ParseArbitrary(raw string) (Value, error) {
	if raw == PresentKeyword {
		return PresentDate(), nil
	}
	v, ok, err := parseNumeric(raw)
	if err != nil {
		return Value{}, err
	}
	if ok {
		return v, nil
	}
	return Value{kind: Text, raw: raw}, nil
}

func parseNumeric(raw string) (Value, bool, error) {
	var (
		layout string
		kind   Kind
		input  = raw
	)
	switch {
	case yearMonthDayPattern.MatchString(raw):
		layout, kind = "2006-01-02", YearMonthDay
	case yearMonthPattern.MatchString(raw):
		layout, kind, input = "2006-01-02", YearMonth, raw+"-01"
	case yearPattern.MatchString(raw):
		layout, kind, input = "2006-01-02", YearOnly, raw+"-01-01"
	default:
		return Value{}, false, nil
	}

	t, err := time.Parse(layout, input)
	if err != nil {
		return Value{}, false, &FormatError{Input: raw, Message: fmt.Sprintf("%q is not a calendar date", raw), Cause: err}
	}
	if t.Year() < 1 {
		return Value{}, false, &FormatError{Input: raw, Message: fmt.Sprintf("%q is not a calendar date: years start at 0001", raw)}
	}
	return Value{kind: kind, year: t.Year(), month: t.Month(), day: t.Day(), raw: raw}, true, nil
}

// Kind reports the precision of the value.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether no date was given.
func (v Value) IsZero() bool { return v.kind == Absent }

// IsCalendar reports whether the value resolves to a calendar date.
func (v Value) IsCalendar() bool {
	switch v.kind {
	case YearOnly, YearMonth, YearMonthDay, Present:
		return true
	}
	return false
}

// IsInteger reports whether the value came from an unquoted integer.
func (v Value) IsInteger() bool { return v.integer }

// String returns the value exactly as written.
func (v Value) String() string { return v.raw }

// Time resolves the value to midnight UTC of a calendar day: YYYY is January
// 1st, YYYY-MM the 1st of the month, `present` the reference date.
func (v Value) Time(ref time.Time) (time.Time, bool) {
	switch v.kind {
	case YearOnly, YearMonth, YearMonthDay:
		return time.Date(v.year, v.month, v.day, 0, 0, 0, 0, time.UTC), true
	case Present:
		return time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// MarshalYAML writes the value back the way it was read.
func (v Value) MarshalYAML() (any, error) {
	if v.integer {
		return v.year, nil
	}
	return v.raw, nil
}
