package entries

import (
	"fmt"
	"sort"
)

// ShapeName identifies an entry shape
type ShapeName string

// Built-in shapes
const (
	TextShape             ShapeName = "TextEntry"
	OneLineShape          ShapeName = "OneLineEntry"
	NormalShape           ShapeName = "NormalEntry"
	ExperienceShape       ShapeName = "ExperienceEntry"
	EducationShape        ShapeName = "EducationEntry"
	PublicationShape      ShapeName = "PublicationEntry"
	BulletShape           ShapeName = "BulletEntry"
	NumberedShape         ShapeName = "NumberedEntry"
	ReversedNumberedShape ShapeName = "ReversedNumberedEntry"
)

// FieldKind is the value type a field accepts
type FieldKind int

const (
	// StringField is a scalar string
	StringField FieldKind = iota
	// StringListField is a list of strings
	StringListField
	// DateField is YYYY, YYYY-MM, YYYY-MM-DD, or free text
	DateField
	// StartDateField must be YYYY, YYYY-MM, or YYYY-MM-DD
	StartDateField
	// EndDateField is like StartDateField but also accepts `present`
	EndDateField
	// URLField is an http(s) URL
	URLField
	// DOIField is a DOI such as 10.48550/arXiv.2310.03138
	DOIField
)

// FieldSpec describes one modeled field of a shape
type FieldSpec struct {
	Name     string
	Kind     FieldKind
	Required bool
}

// Shape is a named record type. Build turns decoded field values into a
// typed entry; shapes without one decode to *Record.
type Shape struct {
	Name   ShapeName
	Fields []FieldSpec
	Build  func(*Values) Entry
}

// Field returns the spec for name.
func (s Shape) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

func (s Shape) hasDates() bool {
	for _, f := range s.Fields {
		if f.Kind == StartDateField || f.Kind == EndDateField {
			return true
		}
	}
	return false
}

// Catalog is an ordered, immutable set of shapes with their characteristic
// fields: the fields that belong to exactly one shape of the catalog.
type Catalog struct {
	shapes         []Shape
	characteristic map[ShapeName]map[string]bool
}

// NewCatalog builds a catalog. Shape order decides inference ties.
func NewCatalog(shapes ...Shape) (*Catalog, error) {
	if len(shapes) == 0 {
		return nil, &CatalogError{Message: "a catalog needs at least one shape"}
	}

	counts := make(map[string]int)
	seen := make(map[ShapeName]bool, len(shapes))
	for _, s := range shapes {
		if s.Name == "" {
			return nil, &CatalogError{Message: "shape without a name"}
		}
		if s.Name == TextShape {
			return nil, &CatalogError{Shape: s.Name, Message: "the name is reserved for plain text entries"}
		}
		if seen[s.Name] {
			return nil, &CatalogError{Shape: s.Name, Message: "duplicate shape name"}
		}
		seen[s.Name] = true

		fields := make(map[string]bool, len(s.Fields))
		for _, f := range s.Fields {
			if fields[f.Name] {
				return nil, &CatalogError{Shape: s.Name, Message: fmt.Sprintf("field %q declared twice", f.Name)}
			}
			fields[f.Name] = true
			counts[f.Name]++
		}
	}

	c := &Catalog{
		shapes:         append([]Shape(nil), shapes...),
		characteristic: make(map[ShapeName]map[string]bool, len(shapes)),
	}
	for _, s := range shapes {
		set := make(map[string]bool)
		for _, f := range s.Fields {
			if counts[f.Name] == 1 {
				set[f.Name] = true
			}
		}
		if len(set) == 0 {
			return nil, &CatalogError{Shape: s.Name, Message: "no characteristic fields; entries of this shape could never be recognized"}
		}
		c.characteristic[s.Name] = set
	}
	return c, nil
}

// MustNewCatalog is NewCatalog for catalogs defined in code.
func MustNewCatalog(shapes ...Shape) *Catalog {
	c, err := NewCatalog(shapes...)
	if err != nil {
		panic(err)
	}
	return c
}

// Shapes returns the shapes in inference order.
func (c *Catalog) Shapes() []Shape {
	return append([]Shape(nil), c.shapes...)
}

// Shape looks up a shape by name.
func (c *Catalog) Shape(name ShapeName) (Shape, bool) {
	for _, s := range c.shapes {
		if s.Name == name {
			return s, true
		}
	}
	return Shape{}, false
}

// Characteristic returns the sorted characteristic fields of a shape.
func (c *Catalog) Characteristic(name ShapeName) []string {
	set := c.characteristic[name]
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

var dateFields = []FieldSpec{
	{Name: "date", Kind: DateField},
	{Name: "start_date", Kind: StartDateField},
	{Name: "end_date", Kind: EndDateField},
	{Name: "location", Kind: StringField},
	{Name: "summary", Kind: StringField},
	{Name: "highlights", Kind: StringListField},
}

func withDates(fields ...FieldSpec) []FieldSpec {
	return append(fields, dateFields...)
}

// BuiltinShapes returns the eight record shapes in inference order.
func BuiltinShapes() []Shape {
	return []Shape{
		{
			Name: OneLineShape,
			Fields: []FieldSpec{
				{Name: "label", Kind: StringField, Required: true},
				{Name: "details", Kind: StringField, Required: true},
			},
			Build: buildOneLine,
		},
		{
			Name:   NormalShape,
			Fields: withDates(FieldSpec{Name: "name", Kind: StringField, Required: true}),
			Build:  buildNormal,
		},
		{
			Name: ExperienceShape,
			Fields: withDates(
				FieldSpec{Name: "company", Kind: StringField, Required: true},
				FieldSpec{Name: "position", Kind: StringField, Required: true},
			),
			Build: buildExperience,
		},
		{
			Name: EducationShape,
			Fields: withDates(
				FieldSpec{Name: "institution", Kind: StringField, Required: true},
				FieldSpec{Name: "area", Kind: StringField, Required: true},
				FieldSpec{Name: "degree", Kind: StringField},
			),
			Build: buildEducation,
		},
		{
			Name: PublicationShape,
			Fields: []FieldSpec{
				{Name: "title", Kind: StringField, Required: true},
				{Name: "authors", Kind: StringListField, Required: true},
				{Name: "summary", Kind: StringField},
				{Name: "doi", Kind: DOIField},
				{Name: "url", Kind: URLField},
				{Name: "journal", Kind: StringField},
				{Name: "date", Kind: DateField},
			},
			Build: buildPublication,
		},
		{
			Name:   BulletShape,
			Fields: []FieldSpec{{Name: "bullet", Kind: StringField, Required: true}},
			Build:  buildBullet,
		},
		{
			Name:   NumberedShape,
			Fields: []FieldSpec{{Name: "number", Kind: StringField, Required: true}},
			Build:  buildNumbered,
		},
		{
			Name:   ReversedNumberedShape,
			Fields: []FieldSpec{{Name: "reversed_number", Kind: StringField, Required: true}},
			Build:  buildReversedNumbered,
		},
	}
}

var defaultCatalog = MustNewCatalog(BuiltinShapes()...)

// Default returns the built-in catalog. It is shared and read-only.
func Default() *Catalog {
	return defaultCatalog
}
