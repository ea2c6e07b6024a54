package validation

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/cvcheck/internal/dates"
	"github.com/jonathan/cvcheck/internal/document"
	"github.com/jonathan/cvcheck/internal/entries"
	"github.com/jonathan/cvcheck/internal/overrides"
	"github.com/jonathan/cvcheck/internal/schemas"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCV = `cv:
  name: Jane Doe
  email: jane@example.com
  sections:
    experience:
      - company: Acme
        position: Engineer
        start_date: 2020-01
        end_date: present
    skills:
      - label: Languages
        details: Go, Python
design:
  theme: classic
locale:
  language: english
settings:
  current_date: 2023-04-15
  bold_keywords: [Go, Go]
notes: kept for later
`

func parse(t *testing.T, src string) *document.Document {
	t.Helper()
	doc, err := document.Parse("cv.yaml", []byte(src))
	require.NoError(t, err)
	return doc
}

func validationErrors(t *testing.T, err error) []schemas.FieldError {
	t.Helper()
	var verr *schemas.ValidationError
	require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
	return verr.Errors
}

func TestValidate_ValidDocument(t *testing.T) {
	var logs bytes.Buffer
	model, err := Validate(parse(t, validCV), Options{Logger: zerolog.New(&logs).Level(zerolog.DebugLevel)})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", model.Cv.Name)
	require.Len(t, model.Cv.Sections, 2)
	assert.Equal(t, "experience", model.Cv.Sections[0].Key)
	assert.Equal(t, entries.ExperienceShape, model.Cv.Sections[0].Shape)
	assert.Equal(t, entries.OneLineShape, model.Cv.Sections[1].Shape)

	assert.Equal(t, "classic", model.Design.Name)
	assert.Equal(t, "english", model.Locale.Language)
	assert.Equal(t, []string{"Go"}, model.Settings.BoldKeywords)
	assert.Equal(t, time.Date(2023, 4, 15, 0, 0, 0, 0, time.UTC), model.ReferenceDate)

	assert.Equal(t, []string{"notes"}, model.Extra.Keys())
	assert.Equal(t, "kept for later", model.Extra.Get("notes").Value)

	entry := model.Cv.Sections[0].Entries[0]
	assert.Equal(t, "Jan 2020 – present", model.EntryDates(entry))
	span, err := model.EntryTimeSpan(entry)
	require.NoError(t, err)
	assert.Equal(t, "3 years 3 months", span)

	assert.Contains(t, logs.String(), "validation passed")
}

func TestValidate_LegacySpan(t *testing.T) {
	model, err := Validate(parse(t, validCV), Options{SpanMode: dates.SpanLegacy})
	require.NoError(t, err)

	span, err := model.EntryTimeSpan(model.Cv.Sections[0].Entries[0])
	require.NoError(t, err)
	assert.Equal(t, "3 years 4 months", span)
}

func TestValidate_CollectsEveryBlock(t *testing.T) {
	src := `cv:
  name: 5
  sections:
    intro: hello
design:
  theme: nonexistent
locale:
  language: klingon
settings:
  current_date: tomorrow
`
	_, err := Validate(parse(t, src), Options{})
	require.Error(t, err)

	errs := validationErrors(t, err)
	paths := make([]string, 0, len(errs))
	for _, fe := range errs {
		paths = append(paths, fe.Path.Visible().String())
	}
	assert.Equal(t, []string{
		"cv.name",
		"cv.sections.intro",
		"design.theme",
		"locale.language",
		"settings.current_date",
	}, paths)
	assert.Equal(t, schemas.CodeType, errs[0].Code)
	assert.Equal(t, schemas.CodeEnum, errs[3].Code)
	assert.Equal(t, schemas.CodeDateFormat, errs[4].Code)
}

func TestValidate_HeaderRulesRunBesideSchemaErrors(t *testing.T) {
	src := `cv:
  name: Jane
  email: not-an-email
  phone: abc
  nickname: JD
settings:
  theme: dark
  current_date: tomorrow
`
	var logs bytes.Buffer
	_, err := Validate(parse(t, src), Options{Logger: zerolog.New(&logs).Level(zerolog.DebugLevel)})
	require.Error(t, err)
	assert.Contains(t, logs.String(), "validation failed")
	assert.Contains(t, logs.String(), "cv.nickname")

	errs := validationErrors(t, err)
	paths := make([]string, 0, len(errs))
	for _, fe := range errs {
		paths = append(paths, fe.Path.Visible().String())
	}
	assert.Equal(t, []string{
		"cv.nickname",
		"cv.email",
		"cv.phone",
		"settings.theme",
		"settings.current_date",
	}, paths)
	assert.Equal(t, schemas.CodeExtraForbidden, errs[0].Code)
	assert.Equal(t, schemas.CodeDateFormat, errs[4].Code)
}

func TestValidate_EntryProblems(t *testing.T) {
	src := `cv:
  name: Jane Doe
  sections:
    education:
      - institution: MIT
        area: Physics
        start_date: 2020-13
`
	_, err := Validate(parse(t, src), Options{ReferenceDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	errs := validationErrors(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "cv.sections.education", errs[0].Path.String())
	assert.Equal(t, schemas.CodeEntryValidation, errs[0].Code)
	require.NotEmpty(t, errs[0].Causes)
}

func TestValidate_MissingBlocks(t *testing.T) {
	model, err := Validate(parse(t, "notes: nothing else\n"), Options{
		Clock: func() time.Time { return time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	assert.Empty(t, model.Cv.Name)
	assert.Empty(t, model.Cv.Sections)
	assert.Equal(t, "classic", model.Design.Name)
	assert.Equal(t, "english", model.Locale.Language)
	assert.Equal(t, "rendercv_output/NAME_IN_SNAKE_CASE_CV.pdf", model.Settings.RenderCommand.PDFPath)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), model.ReferenceDate)
}

func TestValidate_ReferenceDate(t *testing.T) {
	clock := func() time.Time { return time.Date(2030, 1, 2, 8, 0, 0, 0, time.UTC) }
	given := time.Date(2025, 6, 7, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name     string
		src      string
		opts     Options
		expected time.Time
	}{
		{
			name:     "settings win",
			src:      "settings:\n  current_date: 2023-04-15\n",
			opts:     Options{ReferenceDate: given, Clock: clock},
			expected: time.Date(2023, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "caller date truncated to the day",
			src:      "cv:\n  name: Jane\n",
			opts:     Options{ReferenceDate: given, Clock: clock},
			expected: time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "clock",
			src:      "cv:\n  name: Jane\n",
			opts:     Options{Clock: clock},
			expected: time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := Validate(parse(t, tt.src), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, model.ReferenceDate)
		})
	}
}

func TestValidate_Overrides(t *testing.T) {
	doc := parse(t, validCV)

	model, err := Validate(doc, Options{Overrides: map[string]string{
		"cv.name":                          "Ada Lovelace",
		"cv.sections.experience.0.company": "Analytical Engines",
		"settings.bold_keywords.0":         "Rust",
	}})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", model.Cv.Name)
	assert.Equal(t, []string{"Rust", "Go"}, model.Settings.BoldKeywords)
	assert.Equal(t, "Jane Doe", doc.Root.Get("cv").Get("name").Value)

	_, err = Validate(doc, Options{Overrides: map[string]string{"cv.sections.awards.0": "x"}})
	var oerr *overrides.Error
	require.True(t, errors.As(err, &oerr))
	assert.Equal(t, overrides.KeyNotFound, oerr.Kind)
	assert.Equal(t, "cv.sections", oerr.Resolved)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Jane_Doe_CV.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validCV), 0o644))

	model, doc, err := ValidateFile(path, Options{})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, path, doc.Filename)
	assert.Equal(t, "Jane Doe", model.Cv.Name)

	_, _, err = ValidateFile(filepath.Join(dir, "missing.yaml"), Options{})
	var ferr *FileReadError
	require.True(t, errors.As(err, &ferr))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("cv: [unclosed\n"), 0o644))
	_, doc, err = ValidateFile(bad, Options{})
	assert.Nil(t, doc)
	var perr *document.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestInternalError(t *testing.T) {
	cause := errors.New("boom")
	err := &InternalError{Message: "failed to check the cv block", Cause: cause}
	assert.Equal(t, "internal validation error: failed to check the cv block: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal validation error: x", (&InternalError{Message: "x"}).Error())
}
