package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCV = `cv:
  name: John Doe
  email: "john@example.com"
  sections:
    experience:
      - company: Acme
        position: Engineer
        start_date: 2020-01
      - company: Globex
        position: Lead
    skills:
      - label: Languages
        details: Go, Python
`

func TestParse_BuildsTreeWithPositions(t *testing.T) {
	doc, err := Parse("cv.yaml", []byte(sampleCV))
	require.NoError(t, err)
	require.True(t, doc.Root.IsMap())

	cv := doc.Root.Get("cv")
	require.NotNil(t, cv)
	assert.Equal(t, []string{"name", "email", "sections"}, cv.Keys())

	name := cv.Lookup("name")
	require.NotNil(t, name)
	assert.Equal(t, 2, name.KeyRange.Start.Line)
	assert.Equal(t, 3, name.KeyRange.Start.Column)
	assert.Equal(t, "John Doe", name.Value.Value)
	assert.Equal(t, 9, name.Value.Range.Start.Column)
	assert.Equal(t, 17, name.Value.Range.End.Column)

	email := cv.Get("email")
	// quotes are part of the range
	assert.Equal(t, 10, email.Range.Start.Column)
	assert.Equal(t, 28, email.Range.End.Column)
}

func TestParse_ListItemsAndByteOffsets(t *testing.T) {
	doc, err := Parse("cv.yaml", []byte(sampleCV))
	require.NoError(t, err)

	experience := doc.Root.Get("cv").Get("sections").Get("experience")
	require.True(t, experience.IsList())
	require.Equal(t, 2, experience.Len())

	second := experience.Index(1)
	require.NotNil(t, second)
	assert.Equal(t, 9, second.Range.Start.Line)
	assert.Equal(t, "company", second.Fields[0].Key)

	start := second.Range.Start.Byte
	assert.Equal(t, "company: Globex", sampleCV[start:start+len("company: Globex")])

	assert.Nil(t, experience.Index(2))
	assert.Nil(t, experience.Index(-1))
}

func TestParse_KeepsDatesAndIntegersDistinct(t *testing.T) {
	doc, err := Parse("cv.yaml", []byte("a: 2020-01-01\nb: 2020\nc: Fall 2023\nd:\n"))
	require.NoError(t, err)

	a := doc.Root.Get("a")
	assert.Equal(t, "2020-01-01", a.Interface())

	b := doc.Root.Get("b")
	assert.Equal(t, TagInt, b.Tag)
	assert.Equal(t, 2020, b.Interface())

	assert.Equal(t, "Fall 2023", doc.Root.Get("c").Interface())

	d := doc.Root.Lookup("d")
	require.NotNil(t, d)
	assert.True(t, d.Value.IsNull())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{name: "empty", src: "", message: "empty"},
		{name: "comment only", src: "# nothing\n", message: "empty"},
		{name: "list root", src: "- a\n- b\n", message: "must be a mapping"},
		{name: "invalid yaml", src: "cv:\n  name: [unclosed\n", message: "not valid YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("cv.yaml", []byte(tt.src))
			require.Error(t, err)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParse_AliasExpansionIsBounded(t *testing.T) {
	src := `a: &a [x, x, x, x, x, x, x, x, x, x]
b: &b [*a, *a, *a, *a, *a, *a, *a, *a, *a, *a]
c: &c [*b, *b, *b, *b, *b, *b, *b, *b, *b, *b]
d: &d [*c, *c, *c, *c, *c, *c, *c, *c, *c, *c]
e: &e [*d, *d, *d, *d, *d, *d, *d, *d, *d, *d]
f: &f [*e, *e, *e, *e, *e, *e, *e, *e, *e, *e]
`
	_, err := Parse("bomb.yaml", []byte(src))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "aliases are nested too deeply")

	small := "a: &a [x, x]\nb: [*a, *a, *a]\n"
	doc, err := Parse("small.yaml", []byte(small))
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Root.Get("b").Len())
	assert.Equal(t, 2, doc.Root.Get("b").Index(2).Len())
}

func TestParse_MergeKeys(t *testing.T) {
	src := "base: &base\n  a: 1\n  b: 2\nderived:\n  <<: *base\n  b: 3\n"
	doc, err := Parse("x.yaml", []byte(src))
	require.NoError(t, err)

	derived := doc.Root.Get("derived")
	assert.Equal(t, map[string]any{"a": 1, "b": 3}, derived.Interface())
}

func TestNode_CopyIsDeep(t *testing.T) {
	doc, err := Parse("cv.yaml", []byte(sampleCV))
	require.NoError(t, err)

	copied := doc.Root.Copy()
	copied.Get("cv").Get("name").Value = "Jane Doe"
	copied.Get("cv").Set("phone", NewScalar("+1 555 0100", copied.Range))

	assert.Equal(t, "John Doe", doc.Root.Get("cv").Get("name").Value)
	assert.False(t, doc.Root.Get("cv").Has("phone"))
	assert.Equal(t, doc.Root.Get("cv").Lookup("name").KeyRange, copied.Get("cv").Lookup("name").KeyRange)
}

func TestNode_Without(t *testing.T) {
	doc, err := Parse("cv.yaml", []byte(sampleCV))
	require.NoError(t, err)
	cv := doc.Root.Get("cv")

	header := cv.Without("sections", "missing")
	assert.Equal(t, []string{"name", "email"}, header.Keys())
	assert.Equal(t, []string{"name", "email", "sections"}, cv.Keys())
	assert.Same(t, cv, cv.Without())

	name := cv.Get("name")
	assert.Same(t, name, name.Without("name"))
}

func TestDocument_Range(t *testing.T) {
	doc, err := Parse("cv.yaml", []byte("a: 1\nbb: 22\n"))
	require.NoError(t, err)

	rng := doc.Range()
	assert.Equal(t, 1, rng.Start.Line)
	assert.Equal(t, 2, rng.End.Line)
	assert.Equal(t, 7, rng.End.Column)
	assert.Equal(t, "cv.yaml", rng.Filename)
}

func TestNode_InputString(t *testing.T) {
	doc, err := Parse("cv.yaml", []byte(sampleCV))
	require.NoError(t, err)

	cv := doc.Root.Get("cv")
	assert.Equal(t, "John Doe", cv.Get("name").InputString())
	assert.Equal(t, "...", cv.Get("sections").InputString())
	assert.Equal(t, "", (*Node)(nil).InputString())
}
