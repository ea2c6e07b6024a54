package types

import (
	"github.com/jonathan/cvcheck/internal/dates"
	"github.com/jonathan/cvcheck/internal/entries"
)

// DateTemplates returns the selected theme's date templates.
func (m *Model) DateTemplates() dates.Templates {
	return m.Design.DateTemplates()
}

// EntryDates renders the date fields of an entry in the document's language,
// "" for entries without dates.
func (m *Model) EntryDates(e entries.Entry) string {
	f, ok := entries.Facet(e)
	if !ok {
		return ""
	}
	vocab := m.Locale.Vocabulary()
	switch {
	case f.IsRange():
		return dates.FormatRange(f.StartDate, f.EndDate, vocab, m.DateTemplates())
	case !f.Date.IsZero():
		return dates.FormatSingle(f.Date, vocab, m.DateTemplates())
	}
	return ""
}

// EntryTimeSpan renders how long a dated range lasted, e.g. "2 years 3
// months". It is "" unless both ends of the range are calendar dates.
func (m *Model) EntryTimeSpan(e entries.Entry) (string, error) {
	f, ok := entries.Facet(e)
	if !ok || !f.IsRange() || !f.StartDate.IsCalendar() || !f.EndDate.IsCalendar() {
		return "", nil
	}
	span, err := dates.ComputeSpan(f.StartDate, f.EndDate, m.ReferenceDate, m.SpanMode)
	if err != nil {
		return "", err
	}
	return dates.FormatSpan(span, m.Locale.Vocabulary(), m.DateTemplates().TimeSpan), nil
}
