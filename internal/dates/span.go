package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SpanMode selects the arithmetic used by ComputeSpan
type SpanMode int

const (
	// SpanCalendar counts whole calendar months between the endpoints
	SpanCalendar SpanMode = iota
	// SpanLegacy approximates with 365-day years and 30-day months, plus one
	// month. Documents rendered by older tooling use this arithmetic.
	SpanLegacy
)

func (m SpanMode) String() string {
	if m == SpanLegacy {
		return "legacy"
	}
	return "calendar"
}

// ParseSpanMode maps a configuration value to a SpanMode.
func ParseSpanMode(s string) (SpanMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "calendar":
		return SpanCalendar, nil
	case "legacy":
		return SpanLegacy, nil
	}
	return SpanCalendar, fmt.Errorf("unknown span arithmetic %q (want calendar or legacy)", s)
}

// Span is a duration expressed in years and months
type Span struct {
	Years  int
	Months int
}

// ComputeSpan measures the time between start and end. When either endpoint
// is year-only the result is the whole-year difference, never less than one.
func ComputeSpan(start, end Value, ref time.Time, mode SpanMode) (Span, error) {
	startTime, ok := start.Time(ref)
	if !ok {
		return Span{}, &FormatError{Input: start.String(), Message: fmt.Sprintf("start %q is not a calendar date", start.String())}
	}
	endTime, ok := end.Time(ref)
	if !ok {
		return Span{}, &FormatError{Input: end.String(), Message: fmt.Sprintf("end %q is not a calendar date", end.String())}
	}
	if startTime.After(endTime) {
		return Span{}, &RangeError{Start: start.String(), End: end.String()}
	}

	if start.Kind() == YearOnly || end.Kind() == YearOnly {
		years := endTime.Year() - startTime.Year()
		if years < 2 {
			years = 1
		}
		return Span{Years: years}, nil
	}

	if mode == SpanLegacy {
		return legacySpan(startTime, endTime), nil
	}
	return calendarSpan(startTime, endTime), nil
}

func legacySpan(start, end time.Time) Span {
	days := int((end.Unix() - start.Unix()) / 86400)
	span := Span{Years: days / 365, Months: (days%365)/30 + 1}
	if span.Months >= 12 {
		span.Years += span.Months / 12
		span.Months %= 12
	}
	return span
}

func calendarSpan(start, end time.Time) Span {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return Span{Years: months / 12, Months: months % 12}
}

// FormatSpan renders a span with the time-span template. Zero components
// render as empty strings so "3 years" does not read "3 years 0 months".
func FormatSpan(span Span, vocab Vocabulary, template string) string {
	placeholders := map[string]string{
		"HOW_MANY_YEARS":  "",
		"YEARS":           "",
		"HOW_MANY_MONTHS": "",
		"MONTHS":          "",
	}
	if span.Years != 0 {
		placeholders["HOW_MANY_YEARS"] = strconv.Itoa(span.Years)
		placeholders["YEARS"] = vocab.Years
		if span.Years == 1 {
			placeholders["YEARS"] = vocab.Year
		}
	}
	if span.Months != 0 {
		placeholders["HOW_MANY_MONTHS"] = strconv.Itoa(span.Months)
		placeholders["MONTHS"] = vocab.Months
		if span.Months == 1 {
			placeholders["MONTHS"] = vocab.Month
		}
	}
	return strings.Join(strings.Fields(Substitute(template, placeholders)), " ")
}
