package diagnostics

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/cvcheck/internal/schemas"
)

const msgEndDate = "This is not a valid `end_date`! Please use either YYYY-MM-DD, YYYY-MM, or YYYY format or \"present\"!"

// rewrites replace generic validator phrasing; the first match wins
var rewrites = []struct {
	match   string
	message string
}{
	{"Invalid type. Expected: string", "This field should be a string."},
	{"Input should be a valid string", "This field should be a string."},
	{"Invalid type. Expected: array", "This field should contain a list of items but it doesn't."},
	{"Input should be a valid list", "This field should contain a list of items but it doesn't."},
	{"Invalid type. Expected: object", "This field should contain key-value pairs but it doesn't."},
	{"Input should be a valid dictionary", "This field should contain key-value pairs but it doesn't."},
	{"Invalid type. Expected: boolean", "This field should be either true or false."},
	{"Additional property", "This field is unknown for this object! Please remove it."},
	{"Field required", "This field is required."},
	{"is required", "This field is required."},
	{"Input should be a valid URL", "This is not a valid URL."},
	{"value is not a valid phone number", "This is not a valid phone number! Please use the international format, e.g. +1 555 123 4567."},
	{"value is not a valid email address", "This is not a valid email address."},
	{`String should match pattern '\b10\..*'`, "This is not a valid DOI! A DOI starts with `10.`."},
}

// prefixes are internal markers that never reach users
var prefixes = []string{"(root): ", "(root) ", "Value error, "}

// Rewrite turns a raw validator message into the text shown to users.
func Rewrite(message string, path schemas.Path) string {
	msg := strings.TrimSpace(message)
	for _, p := range prefixes {
		msg = strings.TrimPrefix(msg, p)
	}
	last := path.Visible().Last()
	if !last.IsIndex && last.Key == "end_date" {
		return msgEndDate
	}
	for _, r := range rewrites {
		if strings.Contains(msg, r.match) {
			return r.message
		}
	}
	if !last.IsIndex && last.Key != "" {
		msg = stripFieldName(msg, last.Key)
	}
	return punctuate(msg)
}

// stripFieldName drops a leading field name, as in "theme must be one of
// the following: ...".
func stripFieldName(msg, field string) string {
	rest, ok := strings.CutPrefix(msg, field+" ")
	if !ok || rest == "" {
		return msg
	}
	return capitalize(rest)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func punctuate(msg string) string {
	if msg == "" {
		return msg
	}
	switch msg[len(msg)-1] {
	case '.', '!', '?':
		return msg
	}
	return msg + "."
}
