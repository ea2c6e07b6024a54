package overrides

import (
	"testing"

	"github.com/jonathan/cvcheck/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `cv:
  name: John Doe
  phone: "+15550000000"
  sections:
    education:
      - institution: Bogazici University
        area: Mechanical Engineering
      - institution: MIT
        area: Physics
design:
  theme: classic
`

func parse(t *testing.T) *document.Node {
	t.Helper()
	doc, err := document.Parse("cv.yaml", []byte(source))
	require.NoError(t, err)
	return doc.Root
}

func TestApply(t *testing.T) {
	root := parse(t)
	before := root.Interface()

	out, err := Apply(root, map[string]string{
		"cv.name":                             "Jane Doe",
		"cv.sections.education.1.institution": "Caltech",
		"cv.email":                            "jane@example.com",
		"design.theme":                        "sb2nov",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", out.Get("cv").Get("name").Value)
	assert.Equal(t, document.TagString, out.Get("cv").Get("name").Tag)
	assert.Equal(t, "Caltech", out.Get("cv").Get("sections").Get("education").Index(1).Get("institution").Value)
	assert.Equal(t, "jane@example.com", out.Get("cv").Get("email").Value)
	assert.Equal(t, "sb2nov", out.Get("design").Get("theme").Value)

	// replaced values keep the position of what they replaced
	assert.Equal(t, root.Get("cv").Get("name").Range, out.Get("cv").Get("name").Range)

	assert.Equal(t, before, root.Interface())
}

func TestApply_NoOverrides(t *testing.T) {
	root := parse(t)
	out, err := Apply(root, nil)
	require.NoError(t, err)
	assert.Equal(t, root.Interface(), out.Interface())
	assert.NotSame(t, root, out)
}

func TestApply_ReplacesListItemAndSubtree(t *testing.T) {
	out, err := Apply(parse(t), map[string]string{
		"cv.sections.education.0": "Self-taught",
		"design":                  "classic",
	})
	require.NoError(t, err)
	first := out.Get("cv").Get("sections").Get("education").Index(0)
	assert.True(t, first.IsScalar())
	assert.Equal(t, "Self-taught", first.Value)
	assert.True(t, out.Get("design").IsScalar())
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name         string
		overrides    map[string]string
		wantKind     Kind
		wantResolved string
		wantMsg      string
	}{
		{
			name:         "not an index",
			overrides:    map[string]string{"cv.sections.education.first.area": "x"},
			wantKind:     NotAnIndex,
			wantResolved: "cv.sections.education",
			wantMsg:      "`cv.sections.education` corresponds to a list, but `first` is not an integer.",
		},
		{
			name:         "index out of range",
			overrides:    map[string]string{"cv.sections.education.5.area": "x"},
			wantKind:     IndexOutOfRange,
			wantResolved: "cv.sections.education",
			wantMsg:      "Index 5 is out of range for the list `cv.sections.education`.",
		},
		{
			name:         "negative index",
			overrides:    map[string]string{"cv.sections.education.-1": "x"},
			wantKind:     IndexOutOfRange,
			wantResolved: "cv.sections.education",
		},
		{
			name:         "missing intermediate key",
			overrides:    map[string]string{"cv.sections.experience.0.company": "x"},
			wantKind:     KeyNotFound,
			wantResolved: "cv.sections",
			wantMsg:      "`experience` was not found in `cv.sections`.",
		},
		{
			name:         "through a scalar",
			overrides:    map[string]string{"cv.name.first": "x"},
			wantKind:     PathTypeMismatch,
			wantResolved: "cv.name",
		},
		{
			name:      "empty segment",
			overrides: map[string]string{"cv..name": "x"},
			wantKind:  EmptyPath,
		},
		{
			name:      "empty key",
			overrides: map[string]string{"": "x"},
			wantKind:  EmptyPath,
		},
		{
			name: "sorted order makes the second override fail",
			overrides: map[string]string{
				"cv.sections.education.0.area": "x",
				"cv.sections":                  "none",
			},
			wantKind:     PathTypeMismatch,
			wantResolved: "cv.sections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t)
			before := root.Interface()

			out, err := Apply(root, tt.overrides)
			assert.Nil(t, out)
			var oErr *Error
			require.ErrorAs(t, err, &oErr)
			assert.Equal(t, tt.wantKind, oErr.Kind)
			assert.Equal(t, tt.wantResolved, oErr.Resolved)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, oErr.Message)
			}
			assert.Contains(t, err.Error(), "override error:")
			assert.Equal(t, before, root.Interface())
		})
	}
}

func TestParseArguments(t *testing.T) {
	got, err := ParseArguments([]string{"--cv.name", "Jane Doe", "--cv.phone", "+15551234567", "--cv.name", "Janet"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"cv.name": "Janet", "cv.phone": "+15551234567"}, got)

	got, err = ParseArguments(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseArguments([]string{"--cv.name"})
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Contains(t, argErr.Message, "Each key should have a corresponding value")

	_, err = ParseArguments([]string{"cv.name", "Jane"})
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "The key (cv.name) should start with double dashes!", argErr.Message)
}

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"cv.name=Jane Doe", "cv.website=https://x.dev/?a=b", "cv.headline="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"cv.name":     "Jane Doe",
		"cv.website":  "https://x.dev/?a=b",
		"cv.headline": "",
	}, got)

	for _, bad := range []string{"cv.name", "=Jane", " =x"} {
		_, err := ParseAssignments([]string{bad})
		var argErr *ArgumentError
		assert.ErrorAs(t, err, &argErr, bad)
	}
}

func TestMerge(t *testing.T) {
	got := Merge(map[string]string{"a": "1", "b": "1"}, nil, map[string]string{"b": "2"})
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, got)
}
