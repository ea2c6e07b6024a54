package design

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/jonathan/cvcheck/internal/dates"
	"github.com/jonathan/cvcheck/internal/document"
	"github.com/jonathan/cvcheck/internal/schemas"
	"gopkg.in/yaml.v3"
)

//go:embed theme.schema.json
var themeSchemaJSON string

//go:embed themes/*.yaml
var themeFiles embed.FS

const (
	dimensionPattern = `^-?\d+(\.\d+)?(cm|in|pt|mm|ex|em)$`
	msgDimension     = "The value must be a number followed by a unit (cm, in, pt, mm, ex, em). For example, 0.1cm."
	msgColor         = "This is not a valid color! Use a name (e.g. red), a hex code, or rgb(r, g, b)."
)

var customThemeName = regexp.MustCompile(`^[a-z0-9]+$`)

// ThemeProvider supplies a theme that is not built in. Loading and running
// the theme's templates happens elsewhere; validation only needs its schema.
type ThemeProvider interface {
	// Name is the value users put in design.theme
	Name() string
	// Schema is a JSON Schema for the whole design block
	Schema() string
}

// Design is a validated design block
type Design struct {
	// Name is the selected theme
	Name string
	// Builtin holds the options of a built-in theme, nil for custom themes
	Builtin *Theme
	// Options holds the raw options of a custom theme
	Options map[string]any
}

// DateTemplates returns the date templates of the theme, falling back to
// the defaults for custom themes.
func (d Design) DateTemplates() dates.Templates {
	if d.Builtin == nil {
		return dates.DefaultTemplates
	}
	return d.Builtin.DateTemplates()
}

// Builder derives built-in themes from a base theme and registers plugins
type Builder struct {
	base    Theme
	order   []string
	themes  map[string]Theme
	plugins map[string]*schemas.Schema
	err     error
}

// NewBuilder starts a catalog containing base.
func NewBuilder(base Theme) *Builder {
	b := &Builder{base: base, themes: make(map[string]Theme), plugins: make(map[string]*schemas.Schema)}
	b.add(base)
	return b
}

// Variant adds a built-in theme: the base theme overlaid with the YAML
// mapping in defaults. Unknown fields are an error.
func (b *Builder) Variant(name string, defaults []byte) *Builder {
	if b.err != nil {
		return b
	}
	t := b.base
	dec := yaml.NewDecoder(bytes.NewReader(defaults))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		b.err = &BuildError{Theme: name, Message: "invalid defaults", Cause: err}
		return b
	}
	if t.Theme != name {
		b.err = &BuildError{Theme: name, Message: fmt.Sprintf("theme is %q, want %q", t.Theme, name)}
		return b
	}
	b.add(t)
	return b
}

// Plugin registers a custom theme.
func (b *Builder) Plugin(p ThemeProvider) *Builder {
	if b.err != nil {
		return b
	}
	name := p.Name()
	switch {
	case !customThemeName.MatchString(name):
		b.err = &BuildError{Theme: name, Message: "custom theme names may only contain lowercase letters and digits"}
		return b
	case b.known(name):
		b.err = &BuildError{Theme: name, Message: "defined twice"}
		return b
	}
	schema, err := schemas.Compile(name, p.Schema())
	if err != nil {
		b.err = &BuildError{Theme: name, Message: "invalid schema", Cause: err}
		return b
	}
	b.plugins[name] = schema
	return b
}

func (b *Builder) known(name string) bool {
	_, builtin := b.themes[name]
	_, plugin := b.plugins[name]
	return builtin || plugin
}

func (b *Builder) add(t Theme) {
	if b.err != nil {
		return
	}
	if t.Theme == "" {
		b.err = &BuildError{Theme: "(unnamed)", Message: "theme is required"}
		return
	}
	if b.known(t.Theme) {
		b.err = &BuildError{Theme: t.Theme, Message: "defined twice"}
		return
	}
	b.order = append(b.order, t.Theme)
	b.themes[t.Theme] = t
}

// Build returns the catalog, or the first definition error.
func (b *Builder) Build() (*Catalog, error) {
	if b.err != nil {
		return nil, b.err
	}
	schema, err := schemas.Compile("design", themeSchemaJSON)
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		order:   append([]string(nil), b.order...),
		themes:  make(map[string]Theme, len(b.themes)),
		plugins: make(map[string]*schemas.Schema, len(b.plugins)),
		schema:  schema,
	}
	for k, v := range b.themes {
		c.themes[k] = v
	}
	for k, v := range b.plugins {
		c.plugins[k] = v
	}
	return c, nil
}

// Catalog is an immutable set of themes; the first built-in is the default
type Catalog struct {
	order   []string
	themes  map[string]Theme
	plugins map[string]*schemas.Schema
	schema  *schemas.Schema
}

var defaultCatalog = mustDefault()

// DefaultBuilder returns a builder holding the classic theme and the bundled
// variants, ready for plugins to be added.
func DefaultBuilder() *Builder {
	b := NewBuilder(Classic())
	files, err := fs.Glob(themeFiles, "themes/*.yaml")
	if err != nil {
		b.err = err
		return b
	}
	for _, f := range files {
		data, err := themeFiles.ReadFile(f)
		if err != nil {
			b.err = err
			return b
		}
		b.Variant(strings.TrimSuffix(path.Base(f), ".yaml"), data)
	}
	return b
}

func mustDefault() *Catalog {
	c, err := DefaultBuilder().Build()
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in catalog without plugins.
func Default() *Catalog {
	return defaultCatalog
}

// Themes lists the built-in themes, default first.
func (c *Catalog) Themes() []string {
	return append([]string(nil), c.order...)
}

// Get returns a built-in theme.
func (c *Catalog) Get(name string) (Theme, bool) {
	t, ok := c.themes[name]
	return t, ok
}

// Resolve validates a design block located at at. A missing block selects
// the default theme.
func (c *Catalog) Resolve(n *document.Node, at schemas.Path) (Design, []schemas.FieldError, error) {
	if n.IsNull() {
		t := c.themes[c.order[0]]
		return Design{Name: t.Theme, Builtin: &t}, nil, nil
	}
	if !n.IsMap() {
		return Design{}, []schemas.FieldError{{
			Path: at, Code: schemas.CodeType, Message: "Input should be a valid dictionary", Input: n.InputString(),
		}}, nil
	}

	themePath := at.Append(schemas.Key("theme"))
	themeNode := n.Get("theme")
	if themeNode == nil {
		return Design{}, []schemas.FieldError{{Path: themePath, Code: schemas.CodeMissing, Message: "Field required"}}, nil
	}
	if !themeNode.IsScalar() {
		return Design{}, []schemas.FieldError{{
			Path: themePath, Code: schemas.CodeType, Message: "Input should be a valid string", Input: themeNode.InputString(),
		}}, nil
	}
	name := themeNode.Value

	if base, ok := c.themes[name]; ok {
		errs, err := c.schema.ValidateNode(n, at.Append(schemas.Discriminator(name)))
		if err != nil {
			return Design{}, nil, err
		}
		if len(errs) > 0 {
			return Design{}, rewrite(errs), nil
		}
		if err := n.Decode(&base); err != nil {
			return Design{}, []schemas.FieldError{{Path: at, Code: schemas.CodeType, Message: err.Error()}}, nil
		}
		return Design{Name: name, Builtin: &base}, nil, nil
	}

	if !customThemeName.MatchString(name) {
		return Design{}, []schemas.FieldError{{
			Path:    themePath,
			Code:    schemas.CodePattern,
			Message: fmt.Sprintf("The custom theme name should only contain lowercase letters and digits. The provided value is `%s`.", name),
			Input:   name,
		}}, nil
	}
	schema, ok := c.plugins[name]
	if !ok {
		return Design{}, []schemas.FieldError{{
			Path:    themePath,
			Code:    schemas.CodeEnum,
			Message: fmt.Sprintf("The theme `%s` is neither built in nor provided by a plugin. Built-in themes: %s.", name, strings.Join(c.order, ", ")),
			Input:   name,
		}}, nil
	}
	errs, err := schema.ValidateNode(n, at.Append(schemas.Discriminator(name)))
	if err != nil {
		return Design{}, nil, err
	}
	if len(errs) > 0 {
		return Design{}, errs, nil
	}
	options, _ := n.Interface().(map[string]any)
	return Design{Name: name, Options: options}, nil, nil
}

// rewrite replaces raw pattern messages for dimensions and colors.
func rewrite(errs []schemas.FieldError) []schemas.FieldError {
	for i := range errs {
		if errs[i].Code != schemas.CodePattern {
			continue
		}
		if strings.Contains(errs[i].Message, dimensionPattern) {
			errs[i].Message = msgDimension
		} else {
			errs[i].Message = msgColor
		}
	}
	return errs
}
