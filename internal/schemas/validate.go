// Package schemas holds the validation error vocabulary shared by every
// validator and checks document subtrees against JSON Schemas.
package schemas

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jonathan/cvcheck/internal/document"
	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled JSON Schema
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile parses schema content. Errors are *SchemaLoadError: a broken
// schema is a defect, never a problem with the user's document.
func Compile(name, content string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "schema is not valid", Cause: err}
	}
	return &Schema{name: name, schema: s}, nil
}

// MustCompile is Compile for schemas embedded in the binary.
func MustCompile(name, content string) *Schema {
	s, err := Compile(name, content)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the name the schema was compiled under.
func (s *Schema) Name() string {
	return s.name
}

// ValidateNode checks the subtree rooted at node. Every returned FieldError is
// located at base followed by the offending path inside node.
func (s *Schema) ValidateNode(node *document.Node, base Path) ([]FieldError, error) {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(node.Interface()))
	if err != nil {
		return nil, &SchemaLoadError{Name: s.name, Message: "validation failed during load", Cause: err}
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, toFieldError(desc, node, base))
	}
	return errs, nil
}

func toFieldError(desc gojsonschema.ResultError, root *document.Node, base Path) FieldError {
	rel := resolveField(desc.Field(), root)
	fe := FieldError{
		Path:    base.Join(rel),
		Code:    CodeOther,
		Message: desc.Description(),
	}

	switch desc.Type() {
	case "required":
		prop, _ := desc.Details()["property"].(string)
		fe.Path = fe.Path.Append(Key(prop))
		fe.Code = CodeMissing
		return fe
	case "additional_property_not_allowed":
		prop, _ := desc.Details()["property"].(string)
		rel = rel.Append(Key(prop))
		fe.Path = base.Join(rel)
		fe.Code = CodeExtraForbidden
	case "invalid_type":
		fe.Code = CodeType
	case "enum", "const":
		fe.Code = CodeEnum
	case "pattern", "format":
		fe.Code = CodePattern
	}

	fe.Input = lookup(root, rel).InputString()
	return fe
}

// resolveField turns a gojsonschema field ("(root)", "month_names.3") into
// a Path, using the tree to tell list indices from numeric map keys.
func resolveField(field string, root *document.Node) Path {
	if field == "" || field == "(root)" {
		return nil
	}
	var (
		path Path
		cur  = root
	)
	for _, part := range strings.Split(field, ".") {
		if cur != nil && cur.IsList() {
			if i, err := strconv.Atoi(part); err == nil {
				path = append(path, Index(i))
				cur = cur.Index(i)
				continue
			}
		}
		path = append(path, Key(part))
		if cur != nil {
			cur = cur.Get(part)
		}
	}
	return path
}

func lookup(root *document.Node, rel Path) *document.Node {
	cur := root
	for _, seg := range rel {
		if cur == nil {
			return nil
		}
		if seg.IsIndex {
			cur = cur.Index(seg.Index)
		} else {
			cur = cur.Get(seg.Key)
		}
	}
	return cur
}

// FailedKeys returns the keys directly below at that errs point into, in
// order of first appearance. Errors located at at itself are skipped.
func FailedKeys(errs []FieldError, at Path) []string {
	var keys []string
	for _, e := range errs {
		if len(e.Path) <= len(at) || !e.Path.HasPrefix(at) {
			continue
		}
		seg := e.Path[len(at)]
		if seg.IsIndex || slices.Contains(keys, seg.Key) {
			continue
		}
		keys = append(keys, seg.Key)
	}
	return keys
}

// Describe is a short human summary of errs for logs.
func Describe(errs []FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = fmt.Sprint(e)
	}
	return strings.Join(parts, "; ")
}
