package schemas

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: a map key or a list index. Discriminator
// segments name the branch of a tagged union (the theme of a design block,
// the language of a locale) and never appear in user-facing output.
type Segment struct {
	Key           string
	Index         int
	IsIndex       bool
	Discriminator bool
}

// Key returns a map-key segment.
func Key(k string) Segment { return Segment{Key: k} }

// Index returns a list-index segment.
func Index(i int) Segment { return Segment{Index: i, IsIndex: true} }

// Discriminator returns a tagged-union branch segment.
func Discriminator(branch string) Segment { return Segment{Key: branch, Discriminator: true} }

func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path locates a value inside a document, from the root
type Path []Segment

// NewPath builds a path of map keys.
func NewPath(keys ...string) Path {
	p := make(Path, 0, len(keys))
	for _, k := range keys {
		p = append(p, Key(k))
	}
	return p
}

// Append returns a new path; p is never modified.
func (p Path) Append(segs ...Segment) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// Join returns p followed by every segment of rest.
func (p Path) Join(rest Path) Path {
	return p.Append(rest...)
}

// Parent drops the last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p.Append()[:len(p)-1]
}

// Last returns the final segment, or the zero Segment for an empty path.
func (p Path) Last() Segment {
	if len(p) == 0 {
		return Segment{}
	}
	return p[len(p)-1]
}

// HasPrefix reports whether p starts with every segment of prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i, s := range prefix {
		if p[i] != s {
			return false
		}
	}
	return true
}

// Visible drops discriminator segments.
func (p Path) Visible() Path {
	out := make(Path, 0, len(p))
	for _, s := range p {
		if !s.Discriminator {
			out = append(out, s)
		}
	}
	return out
}

// Strings renders each segment.
func (p Path) Strings() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.String()
	}
	return out
}

// String renders the path dotted, e.g. cv.sections.experience.0.company.
func (p Path) String() string {
	return strings.Join(p.Strings(), ".")
}
