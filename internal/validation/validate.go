package validation

import (
	"fmt"
	"os"
	"time"

	"github.com/jonathan/cvcheck/internal/dates"
	"github.com/jonathan/cvcheck/internal/design"
	"github.com/jonathan/cvcheck/internal/document"
	"github.com/jonathan/cvcheck/internal/entries"
	"github.com/jonathan/cvcheck/internal/locale"
	"github.com/jonathan/cvcheck/internal/overrides"
	"github.com/jonathan/cvcheck/internal/schemas"
	"github.com/jonathan/cvcheck/internal/types"
	"github.com/rs/zerolog"
)

// Top-level blocks of a document. Other top-level keys are kept in Model.Extra.
const (
	keyCv       = "cv"
	keyDesign   = "design"
	keyLocale   = "locale"
	keySettings = "settings"
)

// Options provides optional parameters for a validation run
type Options struct {
	// Overrides edit the document at dotted paths before validation
	Overrides map[string]string
	// ReferenceDate is used when settings.current_date is not given
	ReferenceDate time.Time
	// Clock supplies today's date when neither of the above is set
	Clock    func() time.Time
	SpanMode dates.SpanMode

	Catalog *entries.Catalog
	Themes  *design.Catalog
	Locales *locale.Catalog

	// Logger receives debug events; the zero Logger discards them
	Logger zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Catalog == nil {
		o.Catalog = entries.Default()
	}
	if o.Themes == nil {
		o.Themes = design.Default()
	}
	if o.Locales == nil {
		o.Locales = locale.Default()
	}
	return o
}

// ValidateFile reads and validates the document at path. The parsed document
// is returned whenever parsing succeeded, so that problems can be located in
// it.
func ValidateFile(path string, opts Options) (*types.Model, *document.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &FileReadError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	doc, err := document.Parse(path, src)
	if err != nil {
		return nil, nil, err
	}
	model, err := Validate(doc, opts)
	return model, doc, err
}

// Validate checks the whole document and builds the model.
//
// A document with problems returns *schemas.ValidationError holding all of
// them; every block is checked even when another one failed. An override
// that does not fit the document returns *overrides.Error before anything
// is checked. Any other error is an *InternalError.
func Validate(doc *document.Document, opts Options) (*types.Model, error) {
	opts = opts.withDefaults()
	log := opts.Logger
	log.Debug().Str("file", doc.Filename).Msg("validation started")

	root := doc.Root
	if len(opts.Overrides) > 0 {
		patched, err := overrides.Apply(root, opts.Overrides)
		if err != nil {
			return nil, err
		}
		root = patched
		log.Debug().Int("count", len(opts.Overrides)).Msg("overrides applied")
	}

	settingsNode := root.Get(keySettings)
	ref := referenceDate(settingsNode, opts)
	log.Debug().Time("reference_date", ref).Str("span_mode", opts.SpanMode.String()).Msg("reference date resolved")

	v := &run{opts: opts, ref: ref, log: log, errs: &schemas.ValidationError{}}
	model := &types.Model{ReferenceDate: ref, SpanMode: opts.SpanMode}

	model.Cv = v.cv(root.Get(keyCv))

	d, errs, err := opts.Themes.Resolve(root.Get(keyDesign), schemas.NewPath(keyDesign))
	if err != nil {
		return nil, &InternalError{Message: "failed to check the design block", Cause: err}
	}
	v.errs.Add(errs...)
	model.Design = d

	l, errs, err := opts.Locales.Resolve(root.Get(keyLocale), schemas.NewPath(keyLocale))
	if err != nil {
		return nil, &InternalError{Message: "failed to check the locale block", Cause: err}
	}
	v.errs.Add(errs...)
	model.Locale = l

	s, errs, err := types.ResolveSettings(settingsNode, schemas.NewPath(keySettings))
	if err != nil {
		return nil, &InternalError{Message: "failed to check the settings block", Cause: err}
	}
	v.errs.Add(errs...)
	model.Settings = s

	for _, f := range root.Fields {
		switch f.Key {
		case keyCv, keyDesign, keyLocale, keySettings:
		default:
			model.Extra = append(model.Extra, entries.ExtraField{Key: f.Key, Value: f.Value})
		}
	}

	if v.internal != nil {
		return nil, v.internal
	}
	if err := v.errs.Err(); err != nil {
		log.Debug().Int("errors", len(v.errs.Errors)).Str("problems", schemas.Describe(v.errs.Errors)).Msg("validation failed")
		return nil, err
	}
	log.Debug().Int("sections", len(model.Cv.Sections)).Msg("validation passed")
	return model, nil
}

// referenceDate picks settings.current_date when it is a valid date, then the
// caller's reference date, then today.
func referenceDate(settings *document.Node, opts Options) time.Time {
	if n := settings.Get("current_date"); n.IsScalar() {
		if d, ok := types.ParseCurrentDate(n.Value); ok {
			t, _ := d.Time(time.Time{})
			return t
		}
	}
	if !opts.ReferenceDate.IsZero() {
		return day(opts.ReferenceDate)
	}
	return day(opts.Clock())
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// run carries the state of one Validate call
type run struct {
	opts     Options
	ref      time.Time
	log      zerolog.Logger
	errs     *schemas.ValidationError
	internal error
}
