// Package diagnostics turns validation errors into messages located in the
// source text, and renders them with source snippets.
package diagnostics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/jonathan/cvcheck/internal/document"
	"github.com/jonathan/cvcheck/internal/overrides"
	"github.com/jonathan/cvcheck/internal/schemas"
)

// Diagnostic is one problem the user has to fix
type Diagnostic struct {
	// Path is the location in the document, e.g. cv, sections, education, 0, area
	Path    []string     `json:"path"`
	Range   hcl.Range    `json:"-"`
	Code    schemas.Code `json:"code"`
	Message string       `json:"message"`
	Input   string       `json:"input,omitempty"`
}

// Location is the dotted path.
func (d Diagnostic) Location() string {
	return strings.Join(d.Path, ".")
}

// Localize flattens err into diagnostics located in doc. A section error is
// followed by one diagnostic per entry problem. Only the first diagnostic
// for a path is kept.
func Localize(err *schemas.ValidationError, doc *document.Document) []Diagnostic {
	if err == nil {
		return nil
	}
	var (
		out  []Diagnostic
		seen = make(map[string]bool)
	)
	var visit func(base schemas.Path, fe schemas.FieldError)
	visit = func(base schemas.Path, fe schemas.FieldError) {
		path := base.Join(fe.Path)
		d := localize(path, fe, doc)
		if key := d.Location(); !seen[key] {
			seen[key] = true
			out = append(out, d)
		}
		for _, cause := range fe.Causes {
			visit(path, cause)
		}
	}
	for _, fe := range err.Errors {
		visit(nil, fe)
	}
	return out
}

func localize(path schemas.Path, fe schemas.FieldError, doc *document.Document) Diagnostic {
	visible := path.Visible()
	target := visible
	if fe.Code == schemas.CodeMissing {
		target = visible.Parent()
	}
	return Diagnostic{
		Path:    visible.Strings(),
		Range:   Resolve(doc, target),
		Code:    fe.Code,
		Message: Rewrite(fe.Message, visible),
		Input:   fe.Input,
	}
}

// Resolve walks path through the document and returns the range of the
// deepest node it reaches. Map fields span from the key to the end of the
// value. With nothing resolved the whole document is returned.
func Resolve(doc *document.Document, path schemas.Path) hcl.Range {
	rng := doc.Range()
	cur := doc.Root
	for _, seg := range path.Visible() {
		if cur.IsList() {
			idx, ok := seg.Index, seg.IsIndex
			if !ok {
				i, err := strconv.Atoi(seg.Key)
				idx, ok = i, err == nil
			}
			item := cur.Index(idx)
			if !ok || item == nil {
				break
			}
			rng, cur = item.Range, item
			continue
		}
		f := cur.Lookup(seg.Key)
		if seg.IsIndex || f == nil {
			break
		}
		rng, cur = f.Range(), f.Value
	}
	return rng
}

// FromError converts the error of a validation run into diagnostics. It
// returns nil for errors that are not about the document's content. doc may
// be nil when err is a *document.ParseError.
func FromError(err error, doc *document.Document) []Diagnostic {
	var (
		verr *schemas.ValidationError
		oerr *overrides.Error
		perr *document.ParseError
	)
	switch {
	case errors.As(err, &perr):
		msg := perr.Message
		if perr.Cause != nil {
			msg = fmt.Sprintf("%s: %v", msg, perr.Cause)
		}
		start := hcl.Pos{Line: max(perr.Line, 1), Column: 1}
		return []Diagnostic{{
			Range:   hcl.Range{Filename: perr.Filename, Start: start, End: start},
			Code:    schemas.CodeOther,
			Message: punctuate(capitalize(msg)),
		}}
	case errors.As(err, &verr):
		return Localize(verr, doc)
	case errors.As(err, &oerr):
		var path schemas.Path
		if oerr.Resolved != "" {
			path = schemas.NewPath(strings.Split(oerr.Resolved, ".")...)
		}
		return []Diagnostic{{
			Path:    path.Strings(),
			Range:   Resolve(doc, path),
			Code:    schemas.CodeOther,
			Message: punctuate(oerr.Message),
			Input:   oerr.Path,
		}}
	}
	return nil
}
