package validation

import (
	"github.com/jonathan/cvcheck/internal/document"
	"github.com/jonathan/cvcheck/internal/entries"
	"github.com/jonathan/cvcheck/internal/schemas"
	"github.com/jonathan/cvcheck/internal/types"
)

// cv validates the header fields and every section. A missing cv block is
// an empty résumé.
func (r *run) cv(n *document.Node) types.Cv {
	var cv types.Cv
	if n.IsNull() {
		return cv
	}
	at := schemas.NewPath(keyCv)

	structural, err := types.CvSchema().ValidateNode(n, at)
	if err != nil {
		r.internal = &InternalError{Message: "failed to check the cv block", Cause: err}
		return cv
	}
	r.errs.Add(structural...)
	if !n.IsMap() {
		return cv
	}

	// fields rejected by the schema are left out of the header
	header := n.Without(schemas.FailedKeys(structural, at)...)
	if err := header.Decode(&cv); err != nil {
		r.errs.Add(schemas.FieldError{Path: at, Code: schemas.CodeType, Message: err.Error(), Input: n.InputString()})
	} else {
		errs, err := cv.Validate(at)
		if err != nil {
			r.internal = &InternalError{Message: "failed to check the cv header", Cause: err}
			return cv
		}
		r.errs.Add(errs...)
	}

	if sections := n.Get("sections"); sections.IsMap() {
		cv.Sections = r.sections(sections, at.Append(schemas.Key("sections")))
	}
	return cv
}

// sections validates each section independently, in source order.
func (r *run) sections(n *document.Node, at schemas.Path) []*entries.Section {
	out := make([]*entries.Section, 0, len(n.Fields))
	for _, f := range n.Fields {
		section, fe := r.opts.Catalog.ValidateSection(f.Key, f.Value, entries.SectionOptions{
			Path:          at.Append(schemas.Key(f.Key)),
			ReferenceDate: r.ref,
		})
		if fe != nil {
			r.log.Debug().Str("section", f.Key).Str("code", string(fe.Code)).Int("causes", len(fe.Causes)).Msg("section rejected")
			r.errs.Add(*fe)
			continue
		}
		r.log.Debug().Str("section", f.Key).Str("shape", string(section.Shape)).Int("entries", len(section.Entries)).Msg("section validated")
		out = append(out, section)
	}
	return out
}
