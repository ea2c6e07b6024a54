package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/cvcheck/internal/design"
	"github.com/jonathan/cvcheck/internal/entries"
	"github.com/jonathan/cvcheck/internal/locale"
	"github.com/jonathan/cvcheck/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintModel(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	model := &types.Model{
		Cv: types.Cv{
			Name: "Jane Doe",
			Sections: []*entries.Section{
				{Key: "experience", Title: "Experience", Shape: entries.ExperienceShape, Entries: make([]entries.Entry, 2)},
				{Key: "skills", Title: "Skills", Shape: entries.OneLineShape, Entries: make([]entries.Entry, 3)},
			},
		},
		Design:        design.Design{Name: "classic"},
		Locale:        locale.English(),
		ReferenceDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Extra:         entries.Extra{{Key: "notes"}},
	}

	p.PrintModel("cv.yaml", model)
	output := buf.String()

	assert.Contains(t, output, "VALID: cv.yaml")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "classic")
	assert.Contains(t, output, "english")
	assert.Contains(t, output, "2024-05-01")
	assert.Contains(t, output, "Experience (ExperienceEntry, 2)")
	assert.Contains(t, output, "Skills (OneLineEntry, 3)")
	assert.Contains(t, output, "Extra keys: notes")
}

func TestPrintModel_ManySections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	model := &types.Model{}
	for i := 0; i < maxItemsToShow+2; i++ {
		model.Cv.Sections = append(model.Cv.Sections, &entries.Section{Title: "Section", Shape: entries.TextShape})
	}

	p.PrintModel("cv.yaml", model)
	output := buf.String()

	assert.Contains(t, output, "(no name)")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintModel_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintModel("cv.yaml", nil)

	assert.Empty(t, buf.String())
}

func TestPrintShapes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintShapes(entries.Default())
	output := buf.String()

	assert.Contains(t, output, "ENTRY TYPES")
	assert.Contains(t, output, "ExperienceEntry")
	assert.Contains(t, output, "identified by: company, position")
	assert.Contains(t, output, "required:      institution, area")
	assert.Contains(t, output, "TextEntry")
}

func TestPrintProblemCount(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProblemCount("cv.yaml", 0)
	assert.Contains(t, buf.String(), "NO PROBLEMS FOUND: cv.yaml")

	buf.Reset()
	p.PrintProblemCount("cv.yaml", 1)
	assert.Equal(t, "⚠ cv.yaml: 1 problem\n", buf.String())

	buf.Reset()
	p.PrintProblemCount("cv.yaml", 3)
	assert.Equal(t, "⚠ cv.yaml: 3 problems\n", buf.String())
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(zerolog.InfoLevel, "json", &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("file", "cv.yaml").Msg("validated")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "cv.yaml", entry["file"])
	assert.Equal(t, "validated", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(zerolog.DebugLevel, "console", &buf)

	log.Debug().Str("section", "education").Msg("section validated")

	output := buf.String()
	assert.Contains(t, output, "DBG")
	assert.Contains(t, output, "section validated")
	assert.Contains(t, output, "section=education")
}
