package entries

import (
	"time"

	"github.com/jonathan/cvcheck/internal/dates"
	"github.com/jonathan/cvcheck/internal/document"
)

// Entry is one decoded section entry
type Entry interface {
	Kind() ShapeName
}

// ExtraField is an entry field no shape models
type ExtraField struct {
	Key   string
	Value *document.Node
}

// Extra keeps unmodeled fields in source order
type Extra []ExtraField

// Get returns the value stored under key, or nil.
func (e Extra) Get(key string) *document.Node {
	for _, f := range e {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Keys lists the extra field names in source order.
func (e Extra) Keys() []string {
	keys := make([]string, len(e))
	for i, f := range e {
		keys[i] = f.Key
	}
	return keys
}

// DateFacet holds the date fields of entries that can span a period
type DateFacet struct {
	Date      dates.Value
	StartDate dates.Value
	EndDate   dates.Value
}

// Normalize leaves either Date alone or a StartDate/EndDate pair:
//
//  1. a set Date clears the range;
//  2. a lone EndDate becomes Date;
//  3. a lone StartDate gets EndDate `present`;
//  4. a resolved range must not end before it starts (*dates.RangeError).
func (f *DateFacet) Normalize(ref time.Time) error {
	switch {
	case !f.Date.IsZero():
		f.StartDate, f.EndDate = dates.Value{}, dates.Value{}
	case f.StartDate.IsZero() && !f.EndDate.IsZero():
		f.Date = f.EndDate
		f.StartDate, f.EndDate = dates.Value{}, dates.Value{}
	case !f.StartDate.IsZero() && f.EndDate.IsZero():
		f.EndDate = dates.PresentDate()
	}

	if f.StartDate.IsZero() || f.EndDate.IsZero() {
		return nil
	}
	start, okStart := f.StartDate.Time(ref)
	end, okEnd := f.EndDate.Time(ref)
	if okStart && okEnd && start.After(end) {
		return &dates.RangeError{Start: f.StartDate.String(), End: f.EndDate.String()}
	}
	return nil
}

// IsRange reports whether the facet holds a start/end pair.
func (f DateFacet) IsRange() bool {
	return !f.StartDate.IsZero() && !f.EndDate.IsZero()
}

// Details are the fields shared by normal, experience, and education entries
type Details struct {
	DateFacet
	Location   string
	Summary    string
	Highlights []string
}

// TextEntry is a plain string entry
type TextEntry struct {
	Text string
}

// OneLineEntry is a `label: details` line
type OneLineEntry struct {
	Label   string
	Details string
	Extra   Extra
}

// NormalEntry is a generic titled entry (projects, awards, ...)
type NormalEntry struct {
	Name string
	Details
	Extra Extra
}

// ExperienceEntry is a position held at a company
type ExperienceEntry struct {
	Company  string
	Position string
	Details
	Extra Extra
}

// EducationEntry is a course of study
type EducationEntry struct {
	Institution string
	Area        string
	Degree      string
	Details
	Extra Extra
}

// PublicationEntry is a paper or article
type PublicationEntry struct {
	Title   string
	Authors []string
	Summary string
	DOI     string
	URL     string
	Journal string
	Date    dates.Value
	Extra   Extra
}

// DOIURL links to the DOI resolver, or returns "" without a DOI.
func (p PublicationEntry) DOIURL() string {
	if p.DOI == "" {
		return ""
	}
	return "https://doi.org/" + p.DOI
}

// BulletEntry is a single bullet point
type BulletEntry struct {
	Bullet string
	Extra  Extra
}

// NumberedEntry is an item of a numbered list
type NumberedEntry struct {
	Number string
	Extra  Extra
}

// ReversedNumberedEntry is an item of a list numbered from the bottom up
type ReversedNumberedEntry struct {
	ReversedNumber string
	Extra          Extra
}

// Record is an entry of a shape defined outside this package
type Record struct {
	Shape  ShapeName
	Values *Values
}

func (TextEntry) Kind() ShapeName             { return TextShape }
func (OneLineEntry) Kind() ShapeName          { return OneLineShape }
func (NormalEntry) Kind() ShapeName           { return NormalShape }
func (ExperienceEntry) Kind() ShapeName       { return ExperienceShape }
func (EducationEntry) Kind() ShapeName        { return EducationShape }
func (PublicationEntry) Kind() ShapeName      { return PublicationShape }
func (BulletEntry) Kind() ShapeName           { return BulletShape }
func (NumberedEntry) Kind() ShapeName         { return NumberedShape }
func (ReversedNumberedEntry) Kind() ShapeName { return ReversedNumberedShape }
func (r Record) Kind() ShapeName              { return r.Shape }

func buildOneLine(v *Values) Entry {
	return OneLineEntry{Label: v.String("label"), Details: v.String("details"), Extra: v.Extra}
}

func buildNormal(v *Values) Entry {
	return NormalEntry{Name: v.String("name"), Details: v.details(), Extra: v.Extra}
}

func buildExperience(v *Values) Entry {
	return ExperienceEntry{
		Company:  v.String("company"),
		Position: v.String("position"),
		Details:  v.details(),
		Extra:    v.Extra,
	}
}

func buildEducation(v *Values) Entry {
	return EducationEntry{
		Institution: v.String("institution"),
		Area:        v.String("area"),
		Degree:      v.String("degree"),
		Details:     v.details(),
		Extra:       v.Extra,
	}
}

func buildPublication(v *Values) Entry {
	p := PublicationEntry{
		Title:   v.String("title"),
		Authors: v.List("authors"),
		Summary: v.String("summary"),
		DOI:     v.String("doi"),
		URL:     v.String("url"),
		Journal: v.String("journal"),
		Date:    v.Date("date"),
		Extra:   v.Extra,
	}
	if p.DOI != "" {
		p.URL = ""
	}
	return p
}

func buildBullet(v *Values) Entry {
	return BulletEntry{Bullet: v.String("bullet"), Extra: v.Extra}
}

func buildNumbered(v *Values) Entry {
	return NumberedEntry{Number: v.String("number"), Extra: v.Extra}
}

func buildReversedNumbered(v *Values) Entry {
	return ReversedNumberedEntry{ReversedNumber: v.String("reversed_number"), Extra: v.Extra}
}

// Facet returns the dates of an entry; ok is false for shapes without dates.
func Facet(e Entry) (f DateFacet, ok bool) {
	switch x := e.(type) {
	case NormalEntry:
		return x.DateFacet, true
	case ExperienceEntry:
		return x.DateFacet, true
	case EducationEntry:
		return x.DateFacet, true
	case PublicationEntry:
		return DateFacet{Date: x.Date}, true
	case Record:
		f = x.Values.facet()
		return f, !f.Date.IsZero() || !f.StartDate.IsZero() || !f.EndDate.IsZero()
	}
	return DateFacet{}, false
}
