package entries

import (
	"github.com/jonathan/cvcheck/internal/dates"
	"gopkg.in/yaml.v3"
)

// Encode renders an entry as a YAML node: modeled fields in shape order,
// then the extra fields in the order they were written.
func Encode(e Entry) *yaml.Node {
	if t, ok := e.(TextEntry); ok {
		return str(t.Text)
	}

	m := &mapping{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
	var extra Extra
	switch x := e.(type) {
	case OneLineEntry:
		m.str("label", x.Label)
		m.str("details", x.Details)
		extra = x.Extra
	case NormalEntry:
		m.str("name", x.Name)
		m.details(x.Details)
		extra = x.Extra
	case ExperienceEntry:
		m.str("company", x.Company)
		m.str("position", x.Position)
		m.details(x.Details)
		extra = x.Extra
	case EducationEntry:
		m.str("institution", x.Institution)
		m.str("area", x.Area)
		m.str("degree", x.Degree)
		m.details(x.Details)
		extra = x.Extra
	case PublicationEntry:
		m.str("title", x.Title)
		m.list("authors", x.Authors)
		m.str("summary", x.Summary)
		m.str("doi", x.DOI)
		m.str("url", x.URL)
		m.str("journal", x.Journal)
		m.date("date", x.Date)
		extra = x.Extra
	case BulletEntry:
		m.str("bullet", x.Bullet)
		extra = x.Extra
	case NumberedEntry:
		m.str("number", x.Number)
		extra = x.Extra
	case ReversedNumberedEntry:
		m.str("reversed_number", x.ReversedNumber)
		extra = x.Extra
	case Record:
		for _, name := range x.Values.order {
			if value, ok := x.Values.strings[name]; ok {
				m.str(name, value)
			} else if value, ok := x.Values.lists[name]; ok {
				m.list(name, value)
			} else {
				m.date(name, x.Values.dates[name])
			}
		}
		extra = x.Values.Extra
	}
	for _, f := range extra {
		m.add(f.Key, f.Value.ToYAML())
	}
	return m.node
}

// MarshalSection writes a section back as YAML: a list of encoded entries.
func MarshalSection(s *Section) ([]byte, error) {
	list := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, e := range s.Entries {
		list.Content = append(list.Content, Encode(e))
	}
	return yaml.Marshal(list)
}

type mapping struct {
	node *yaml.Node
}

func (m *mapping) add(key string, value *yaml.Node) {
	m.node.Content = append(m.node.Content, str(key), value)
}

func (m *mapping) str(key, value string) {
	if value != "" {
		m.add(key, str(value))
	}
}

func (m *mapping) list(key string, values []string) {
	if values == nil {
		return
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, str(v))
	}
	m.add(key, seq)
}

func (m *mapping) date(key string, v dates.Value) {
	if v.IsZero() {
		return
	}
	if v.IsInteger() {
		m.add(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.String()})
		return
	}
	m.add(key, str(v.String()))
}

func (m *mapping) details(d Details) {
	m.date("date", d.Date)
	m.date("start_date", d.StartDate)
	m.date("end_date", d.EndDate)
	m.str("location", d.Location)
	m.str("summary", d.Summary)
	m.list("highlights", d.Highlights)
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
