package types

import (
	_ "embed"
	"time"

	"github.com/jonathan/cvcheck/internal/dates"
	"github.com/jonathan/cvcheck/internal/document"
	"github.com/jonathan/cvcheck/internal/schemas"
)

//go:embed settings.schema.json
var settingsSchemaJSON string

var settingsSchema = schemas.MustCompile("settings", settingsSchemaJSON)

const msgCurrentDate = "This is not a valid date! Please use the YYYY-MM-DD format."

// Settings holds the settings block
type Settings struct {
	// CurrentDate overrides today's date for time spans and the
	// "last updated" label. Zero when not given.
	CurrentDate   dates.Value   `yaml:"-" json:"-"`
	BoldKeywords  []string      `yaml:"bold_keywords" json:"bold_keywords"`
	RenderCommand RenderCommand `yaml:"render_command" json:"render_command"`
}

// RenderCommand mirrors the render command's flags. Paths are relative to
// the input file and are not interpreted here.
type RenderCommand struct {
	Design               string `yaml:"design,omitempty" json:"design,omitempty"`
	Locale               string `yaml:"locale,omitempty" json:"locale,omitempty"`
	TypstPath            string `yaml:"typst_path" json:"typst_path"`
	PDFPath              string `yaml:"pdf_path" json:"pdf_path"`
	MarkdownPath         string `yaml:"markdown_path" json:"markdown_path"`
	HTMLPath             string `yaml:"html_path" json:"html_path"`
	PNGPath              string `yaml:"png_path" json:"png_path"`
	DontGenerateMarkdown bool   `yaml:"dont_generate_markdown" json:"dont_generate_markdown"`
	DontGenerateHTML     bool   `yaml:"dont_generate_html" json:"dont_generate_html"`
	DontGenerateTypst    bool   `yaml:"dont_generate_typst" json:"dont_generate_typst"`
	DontGeneratePDF      bool   `yaml:"dont_generate_pdf" json:"dont_generate_pdf"`
	DontGeneratePNG      bool   `yaml:"dont_generate_png" json:"dont_generate_png"`
}

// DefaultSettings returns the settings used when the block is absent.
func DefaultSettings() Settings {
	return Settings{
		BoldKeywords: []string{},
		RenderCommand: RenderCommand{
			TypstPath:    "rendercv_output/NAME_IN_SNAKE_CASE_CV.typ",
			PDFPath:      "rendercv_output/NAME_IN_SNAKE_CASE_CV.pdf",
			MarkdownPath: "rendercv_output/NAME_IN_SNAKE_CASE_CV.md",
			HTMLPath:     "rendercv_output/NAME_IN_SNAKE_CASE_CV.html",
			PNGPath:      "rendercv_output/NAME_IN_SNAKE_CASE_CV.png",
		},
	}
}

// ReferenceDate returns settings.current_date, if it was given.
func (s Settings) ReferenceDate() (time.Time, bool) {
	if s.CurrentDate.Kind() != dates.YearMonthDay {
		return time.Time{}, false
	}
	return s.CurrentDate.Time(time.Time{})
}

// ResolveSettings validates a settings block located at at.
func ResolveSettings(n *document.Node, at schemas.Path) (Settings, []schemas.FieldError, error) {
	settings := DefaultSettings()
	if n.IsNull() {
		return settings, nil, nil
	}
	errs, err := settingsSchema.ValidateNode(n, at)
	if err != nil {
		return Settings{}, nil, err
	}
	if !n.IsMap() {
		return Settings{}, errs, nil
	}

	valid := n.Without(schemas.FailedKeys(errs, at)...)
	if err := valid.Decode(&settings); err != nil {
		return Settings{}, append(errs, schemas.FieldError{
			Path: at, Code: schemas.CodeType, Message: err.Error(), Input: n.InputString(),
		}), nil
	}
	settings.BoldKeywords = uniqueKeywords(settings.BoldKeywords)

	if raw := valid.Get("current_date"); raw != nil {
		date, ok := ParseCurrentDate(raw.Value)
		if !ok {
			errs = append(errs, schemas.FieldError{
				Path:    at.Append(schemas.Key("current_date")),
				Code:    schemas.CodeDateFormat,
				Message: msgCurrentDate,
				Input:   raw.Value,
			})
		}
		settings.CurrentDate = date
	}
	if len(errs) > 0 {
		return Settings{}, errs, nil
	}
	return settings, nil, nil
}

// ParseCurrentDate accepts a full YYYY-MM-DD calendar date only.
func ParseCurrentDate(raw string) (dates.Value, bool) {
	date, err := dates.ParseExact(raw)
	if err != nil || date.Kind() != dates.YearMonthDay {
		return dates.Value{}, false
	}
	return date, true
}

// uniqueKeywords drops repeated keywords, keeping the first occurrence.
func uniqueKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
