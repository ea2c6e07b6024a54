package dates

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Vocabulary holds the locale words used when rendering dates
type Vocabulary struct {
	MonthNames         [12]string
	MonthAbbreviations [12]string
	Present            string
	Year               string
	Years              string
	Month              string
	Months             string
}

// Templates are placeholder strings controlling how dates are rendered.
//
// SingleDate: MONTH_NAME, MONTH_ABBREVIATION, MONTH, MONTH_IN_TWO_DIGITS, YEAR, YEAR_IN_TWO_DIGITS
// DateRange:  START_DATE, END_DATE
// TimeSpan:   HOW_MANY_YEARS, YEARS, HOW_MANY_MONTHS, MONTHS
type Templates struct {
	SingleDate string
	DateRange  string
	TimeSpan   string
}

// DefaultTemplates match the classic theme
var DefaultTemplates = Templates{
	SingleDate: "MONTH_ABBREVIATION YEAR",
	DateRange:  "START_DATE – END_DATE",
	TimeSpan:   "HOW_MANY_YEARS YEARS HOW_MANY_MONTHS MONTHS",
}

// Substitute replaces every placeholder in template with its value. Longer
// placeholders win over their prefixes (YEAR_IN_TWO_DIGITS before YEAR).
// Surrounding whitespace is trimmed.
func Substitute(template string, placeholders map[string]string) string {
	if len(placeholders) == 0 {
		return template
	}
	keys := make([]string, 0, len(placeholders))
	for k := range placeholders {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, placeholders[k])
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(template))
}

// FormatCalendar renders a calendar day with the single-date template.
func FormatCalendar(t time.Time, vocab Vocabulary, template string) string {
	month := int(t.Month())
	return Substitute(template, map[string]string{
		"MONTH_NAME":          vocab.MonthNames[month-1],
		"MONTH_ABBREVIATION":  vocab.MonthAbbreviations[month-1],
		"MONTH":               strconv.Itoa(month),
		"MONTH_IN_TWO_DIGITS": fmt.Sprintf("%02d", month),
		"YEAR":                strconv.Itoa(t.Year()),
		"YEAR_IN_TWO_DIGITS":  fmt.Sprintf("%02d", t.Year()%100),
	})
}

// FormatSingle renders one date. Year-only values print as the bare year,
// `present` as the locale word, and free text unchanged.
func FormatSingle(v Value, vocab Vocabulary, templates Templates) string {
	switch v.kind {
	case YearOnly:
		return strconv.Itoa(v.year)
	case Present:
		return vocab.Present
	case YearMonth, YearMonthDay:
		t, _ := v.Time(time.Time{})
		return FormatCalendar(t, vocab, templates.SingleDate)
	default:
		return v.raw
	}
}

// FormatRange renders a start/end pair with the date-range template.
func FormatRange(start, end Value, vocab Vocabulary, templates Templates) string {
	return Substitute(templates.DateRange, map[string]string{
		"START_DATE": FormatSingle(start, vocab, templates),
		"END_DATE":   FormatSingle(end, vocab, templates),
	})
}
