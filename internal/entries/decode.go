package entries

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cvcheck/internal/dates"
	"github.com/jonathan/cvcheck/internal/document"
	"github.com/jonathan/cvcheck/internal/schemas"
)

const (
	msgString     = "Input should be a valid string"
	msgList       = "Input should be a valid list"
	msgDictionary = "Input should be a valid dictionary"
	msgRequired   = "Field required"
	msgURL        = "Input should be a valid URL"
	msgDOI        = `String should match pattern '\b10\..*'`
	msgEntryNull  = "The entry cannot be null"
)

var (
	doiPattern = regexp.MustCompile(`\b10\..*`)
	urlChecker = validator.New()
)

// Values are the decoded modeled fields of one entry
type Values struct {
	Shape ShapeName
	Extra Extra

	order   []string
	strings map[string]string
	lists   map[string][]string
	dates   map[string]dates.Value
}

func newValues(shape ShapeName) *Values {
	return &Values{
		Shape:   shape,
		strings: make(map[string]string),
		lists:   make(map[string][]string),
		dates:   make(map[string]dates.Value),
	}
}

// String returns a string field, "" when absent.
func (v *Values) String(name string) string { return v.strings[name] }

// List returns a string-list field.
func (v *Values) List(name string) []string { return v.lists[name] }

// Date returns a date field, the zero Value when absent.
func (v *Values) Date(name string) dates.Value { return v.dates[name] }

// Names lists the decoded fields in shape order.
func (v *Values) Names() []string {
	return append([]string(nil), v.order...)
}

// Has reports whether the field was given.
func (v *Values) Has(name string) bool {
	if _, ok := v.strings[name]; ok {
		return true
	}
	if _, ok := v.lists[name]; ok {
		return true
	}
	d, ok := v.dates[name]
	return ok && !d.IsZero()
}

func (v *Values) facet() DateFacet {
	return DateFacet{Date: v.dates["date"], StartDate: v.dates["start_date"], EndDate: v.dates["end_date"]}
}

func (v *Values) setFacet(f DateFacet) {
	v.dates["date"], v.dates["start_date"], v.dates["end_date"] = f.Date, f.StartDate, f.EndDate
}

func (v *Values) details() Details {
	return Details{
		DateFacet:  v.facet(),
		Location:   v.strings["location"],
		Summary:    v.strings["summary"],
		Highlights: v.lists["highlights"],
	}
}

// decoder decodes entries of one section. Error paths are relative to the
// section: [index, field, ...].
type decoder struct {
	ref  time.Time
	errs []schemas.FieldError
}

func (d *decoder) fail(path schemas.Path, code schemas.Code, msg string, n *document.Node) {
	d.errs = append(d.errs, schemas.FieldError{Path: path, Code: code, Message: msg, Input: n.InputString()})
}

func isText(n *document.Node) bool {
	return n.IsScalar() && (n.Tag == document.TagString || n.Tag == document.TagTimestamp)
}

func (d *decoder) decode(shape Shape, n *document.Node, index int) Entry {
	at := schemas.Path{schemas.Index(index)}
	before := len(d.errs)

	if n.IsNull() {
		d.fail(at, schemas.CodeEntryMissing, msgEntryNull, n)
		return nil
	}
	if shape.Name == TextShape {
		if !isText(n) {
			d.fail(at, schemas.CodeType, msgString, n)
			return nil
		}
		return TextEntry{Text: n.Value}
	}
	if !n.IsMap() {
		d.fail(at, schemas.CodeType, msgDictionary, n)
		return nil
	}

	values := newValues(shape.Name)
	for _, spec := range shape.Fields {
		field := n.Lookup(spec.Name)
		if field == nil || (field.Value.IsNull() && !spec.Required) {
			if spec.Required {
				d.fail(at.Append(schemas.Key(spec.Name)), schemas.CodeMissing, msgRequired, nil)
			}
			continue
		}
		d.decodeField(values, spec, field.Value, at.Append(schemas.Key(spec.Name)))
		if values.Has(spec.Name) {
			values.order = append(values.order, spec.Name)
		}
	}
	for _, f := range n.Fields {
		if _, modeled := shape.Field(f.Key); !modeled {
			values.Extra = append(values.Extra, ExtraField{Key: f.Key, Value: f.Value})
		}
	}

	if len(d.errs) > before {
		return nil
	}

	if shape.hasDates() {
		facet := values.facet()
		if err := facet.Normalize(d.ref); err != nil {
			var rangeErr *dates.RangeError
			msg := err.Error()
			if errors.As(err, &rangeErr) {
				msg = rangeErr.Message()
			}
			d.fail(at, schemas.CodeDateRangeInverted, msg, n)
			return nil
		}
		values.setFacet(facet)
	}

	if shape.Build == nil {
		return Record{Shape: shape.Name, Values: values}
	}
	return shape.Build(values)
}

func (d *decoder) decodeField(values *Values, spec FieldSpec, n *document.Node, path schemas.Path) {
	switch spec.Kind {
	case StringField:
		if !isText(n) {
			d.fail(path, schemas.CodeType, msgString, n)
			return
		}
		values.strings[spec.Name] = n.Value

	case StringListField:
		if !n.IsList() {
			d.fail(path, schemas.CodeType, msgList, n)
			return
		}
		list := make([]string, 0, n.Len())
		ok := true
		for i, item := range n.Items {
			if !isText(item) {
				d.fail(path.Append(schemas.Index(i)), schemas.CodeType, msgString, item)
				ok = false
				continue
			}
			list = append(list, item.Value)
		}
		if ok {
			values.lists[spec.Name] = list
		}

	case DateField, StartDateField, EndDateField:
		v, ok := d.decodeDate(spec.Kind, n, path)
		if ok {
			values.dates[spec.Name] = v
		}

	case URLField:
		if !isText(n) {
			d.fail(path, schemas.CodeType, msgString, n)
			return
		}
		if err := urlChecker.Var(n.Value, "http_url"); err != nil {
			d.fail(path, schemas.CodePattern, msgURL, n)
			return
		}
		values.strings[spec.Name] = n.Value

	case DOIField:
		if !isText(n) {
			d.fail(path, schemas.CodeType, msgString, n)
			return
		}
		if !doiPattern.MatchString(n.Value) {
			d.fail(path, schemas.CodePattern, msgDOI, n)
			return
		}
		values.strings[spec.Name] = n.Value
	}
}

func (d *decoder) decodeDate(kind FieldKind, n *document.Node, path schemas.Path) (dates.Value, bool) {
	if n.IsScalar() && n.Tag == document.TagInt {
		year, err := strconv.Atoi(n.Value)
		if err == nil && year >= 1000 && year <= 9999 {
			return dates.Year(year), true
		}
		if kind == DateField {
			v, _ := dates.ParseArbitrary(n.Value)
			return v, true
		}
		d.fail(path, schemas.CodeDateFormat, dates.ExactFormatMessage, n)
		return dates.Value{}, false
	}
	if !isText(n) {
		d.fail(path, schemas.CodeType, msgString, n)
		return dates.Value{}, false
	}

	var (
		v   dates.Value
		err error
	)
	if kind == DateField {
		v, err = dates.ParseArbitrary(n.Value)
	} else {
		v, err = dates.ParseExact(n.Value)
		if err == nil && kind == StartDateField && v.Kind() == dates.Present {
			err = &dates.FormatError{Input: n.Value, Message: "a start date cannot be `present`"}
		}
	}
	if err != nil {
		d.fail(path, schemas.CodeDateFormat, dates.ExactFormatMessage, n)
		return dates.Value{}, false
	}
	return v, true
}
