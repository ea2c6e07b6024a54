package entries

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/cvcheck/internal/document"
	"github.com/jonathan/cvcheck/internal/schemas"
)

// Section is a titled list of entries sharing one shape
type Section struct {
	Key     string
	Title   string
	Shape   ShapeName
	Entries []Entry
}

// SectionOptions control section validation
type SectionOptions struct {
	// Path locates the section in the document, e.g. cv.sections.experience
	Path schemas.Path
	// ReferenceDate resolves `present`
	ReferenceDate time.Time
}

const (
	msgNotAList          = "Each section should be a list of entries! This is not a list."
	msgShapeUndetermined = "The entry type of this section couldn't be determined. Please check the entries and make sure they are provided correctly."
)

// ValidateSection infers the section's shape from its first recognizable
// entry and decodes every entry against it. Problems come back as a single
// FieldError; entry-level problems are its Causes.
func (c *Catalog) ValidateSection(key string, n *document.Node, opts SectionOptions) (*Section, *schemas.FieldError) {
	if !n.IsList() {
		return nil, &schemas.FieldError{
			Path:    opts.Path,
			Code:    schemas.CodeType,
			Message: msgNotAList,
			Input:   n.InputString(),
		}
	}

	var (
		shapeName ShapeName
		found     bool
	)
	for _, item := range n.Items {
		name, err := c.Infer(item)
		if err == nil {
			shapeName, found = name, true
			break
		}
	}
	if !found {
		return nil, &schemas.FieldError{
			Path:    opts.Path,
			Code:    schemas.CodeSectionShapeUndetermined,
			Message: msgShapeUndetermined,
			Input:   n.InputString(),
		}
	}

	shape := Shape{Name: TextShape}
	if shapeName != TextShape {
		shape, _ = c.Shape(shapeName)
	}

	d := &decoder{ref: opts.ReferenceDate}
	decoded := make([]Entry, 0, n.Len())
	for i, item := range n.Items {
		if e := d.decode(shape, item, i); e != nil {
			decoded = append(decoded, e)
		}
	}
	if len(d.errs) > 0 {
		return nil, &schemas.FieldError{
			Path: opts.Path,
			Code: schemas.CodeEntryValidation,
			Message: fmt.Sprintf("There are problems with the entries. The entry type of this section was detected as %s. The problems are shown below.",
				shapeName),
			Input:  n.InputString(),
			Causes: d.errs,
		}
	}

	return &Section{Key: key, Title: SectionTitle(key), Shape: shapeName, Entries: decoded}, nil
}

var minorWords = map[string]bool{
	"a": true, "and": true, "as": true, "at": true, "but": true, "by": true, "for": true,
	"from": true, "if": true, "in": true, "into": true, "like": true, "near": true, "nor": true,
	"of": true, "off": true, "on": true, "onto": true, "or": true, "over": true, "so": true,
	"than": true, "that": true, "to": true, "upon": true, "when": true, "with": true, "yet": true,
}

// SectionTitle turns a section key into its heading: education_and_training
// becomes "Education and Training". Keys with spaces or capitals are kept.
func SectionTitle(key string) string {
	if strings.Contains(key, " ") || strings.IndexFunc(key, unicode.IsUpper) >= 0 {
		return key
	}
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" || minorWords[w] {
			continue
		}
		r := []rune(w)
		words[i] = string(unicode.ToUpper(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
