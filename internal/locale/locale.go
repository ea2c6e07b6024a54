package locale

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/jonathan/cvcheck/internal/dates"
	"github.com/jonathan/cvcheck/internal/document"
	"github.com/jonathan/cvcheck/internal/schemas"
	"gopkg.in/yaml.v3"
)

//go:embed locale.schema.json
var schemaJSON string

//go:embed variants/*.yaml
var variantFiles embed.FS

// Locale is the vocabulary a résumé is rendered with
type Locale struct {
	Language           string   `yaml:"language" json:"language"`
	LastUpdated        string   `yaml:"last_updated" json:"last_updated"`
	Month              string   `yaml:"month" json:"month"`
	Months             string   `yaml:"months" json:"months"`
	Year               string   `yaml:"year" json:"year"`
	Years              string   `yaml:"years" json:"years"`
	Present            string   `yaml:"present" json:"present"`
	MonthAbbreviations []string `yaml:"month_abbreviations" json:"month_abbreviations"`
	MonthNames         []string `yaml:"month_names" json:"month_names"`
}

// English is the base locale every variant starts from.
func English() Locale {
	return Locale{
		Language:           "english",
		LastUpdated:        "Last updated in",
		Month:              "month",
		Months:             "months",
		Year:               "year",
		Years:              "years",
		Present:            "present",
		MonthAbbreviations: []string{"Jan", "Feb", "Mar", "Apr", "May", "June", "July", "Aug", "Sept", "Oct", "Nov", "Dec"},
		MonthNames:         []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	}
}

// Vocabulary returns the words used by date formatting.
func (l Locale) Vocabulary() dates.Vocabulary {
	v := dates.Vocabulary{
		Present: l.Present,
		Year:    l.Year,
		Years:   l.Years,
		Month:   l.Month,
		Months:  l.Months,
	}
	copy(v.MonthNames[:], l.MonthNames)
	copy(v.MonthAbbreviations[:], l.MonthAbbreviations)
	return v
}

func (l Locale) clone() Locale {
	l.MonthAbbreviations = append([]string(nil), l.MonthAbbreviations...)
	l.MonthNames = append([]string(nil), l.MonthNames...)
	return l
}

// Builder derives locale variants from a base locale. Each variant only
// lists the fields it changes.
type Builder struct {
	order    []string
	base     Locale
	variants map[string]Locale
	err      error
}

// NewBuilder starts a catalog containing base.
func NewBuilder(base Locale) *Builder {
	b := &Builder{base: base, variants: make(map[string]Locale)}
	b.add(base)
	return b
}

// Variant adds a locale whose fields default to the base locale's and are
// overridden by the YAML mapping in defaults. Unknown fields are an error.
func (b *Builder) Variant(name string, defaults []byte) *Builder {
	if b.err != nil {
		return b
	}
	v := b.base.clone()
	dec := yaml.NewDecoder(bytes.NewReader(defaults))
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil {
		b.err = &BuildError{Variant: name, Message: "invalid defaults", Cause: err}
		return b
	}
	if v.Language != name {
		b.err = &BuildError{Variant: name, Message: fmt.Sprintf("language is %q, want %q", v.Language, name)}
		return b
	}
	b.add(v)
	return b
}

func (b *Builder) add(l Locale) {
	if b.err != nil {
		return
	}
	switch {
	case l.Language == "":
		b.err = &BuildError{Variant: "(unnamed)", Message: "language is required"}
	case len(l.MonthNames) != 12 || len(l.MonthAbbreviations) != 12:
		b.err = &BuildError{Variant: l.Language, Message: "month names and abbreviations need 12 items each"}
	default:
		if _, dup := b.variants[l.Language]; dup {
			b.err = &BuildError{Variant: l.Language, Message: "defined twice"}
			return
		}
		b.order = append(b.order, l.Language)
		b.variants[l.Language] = l
	}
}

// Build returns the catalog, or the first definition error.
func (b *Builder) Build() (*Catalog, error) {
	if b.err != nil {
		return nil, b.err
	}
	schema, err := schemas.Compile("locale", schemaJSON)
	if err != nil {
		return nil, err
	}
	variants := make(map[string]Locale, len(b.variants))
	for k, v := range b.variants {
		variants[k] = v.clone()
	}
	return &Catalog{order: append([]string(nil), b.order...), variants: variants, schema: schema}, nil
}

// Catalog is an immutable set of locales; the first one is the default
type Catalog struct {
	order    []string
	variants map[string]Locale
	schema   *schemas.Schema
}

var defaultCatalog = mustDefault()

func mustDefault() *Catalog {
	b := NewBuilder(English())
	files, err := fs.Glob(variantFiles, "variants/*.yaml")
	if err != nil {
		panic(err)
	}
	for _, f := range files {
		data, err := variantFiles.ReadFile(f)
		if err != nil {
			panic(err)
		}
		b.Variant(strings.TrimSuffix(path.Base(f), ".yaml"), data)
	}
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in catalog: english plus the bundled variants.
func Default() *Catalog {
	return defaultCatalog
}

// Languages lists the available languages, default first.
func (c *Catalog) Languages() []string {
	return append([]string(nil), c.order...)
}

// Get returns a copy of the locale for language.
func (c *Catalog) Get(language string) (Locale, bool) {
	l, ok := c.variants[language]
	if !ok {
		return Locale{}, false
	}
	return l.clone(), true
}

// Resolve validates a locale block located at at. The language field picks
// the variant; every other field overrides the variant's default. A missing
// block yields the default locale.
func (c *Catalog) Resolve(n *document.Node, at schemas.Path) (Locale, []schemas.FieldError, error) {
	if n.IsNull() {
		l, _ := c.Get(c.order[0])
		return l, nil, nil
	}
	if !n.IsMap() {
		return Locale{}, []schemas.FieldError{{
			Path: at, Code: schemas.CodeType, Message: "Input should be a valid dictionary", Input: n.InputString(),
		}}, nil
	}

	langNode := n.Get("language")
	if langNode == nil {
		return Locale{}, []schemas.FieldError{{
			Path: at.Append(schemas.Key("language")), Code: schemas.CodeMissing, Message: "Field required",
		}}, nil
	}
	base, ok := c.Get(langNode.Value)
	if !langNode.IsScalar() || !ok {
		return Locale{}, []schemas.FieldError{{
			Path:    at.Append(schemas.Key("language")),
			Code:    schemas.CodeEnum,
			Message: fmt.Sprintf("Input should be one of: %s", strings.Join(c.order, ", ")),
			Input:   langNode.InputString(),
		}}, nil
	}

	errs, err := c.schema.ValidateNode(n, at.Append(schemas.Discriminator(base.Language)))
	if err != nil {
		return Locale{}, nil, err
	}
	if len(errs) > 0 {
		return Locale{}, errs, nil
	}

	if err := n.Decode(&base); err != nil {
		return Locale{}, []schemas.FieldError{{
			Path: at, Code: schemas.CodeType, Message: err.Error(), Input: n.InputString(),
		}}, nil
	}
	return base, nil, nil
}
