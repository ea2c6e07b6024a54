package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/jonathan/cvcheck/internal/document"
	"github.com/jonathan/cvcheck/internal/schemas"
)

var summaries = map[schemas.Code]string{
	schemas.CodeMissing:                  "Missing field",
	schemas.CodeExtraForbidden:           "Unknown field",
	schemas.CodeType:                     "Wrong type",
	schemas.CodeDateFormat:               "Invalid date",
	schemas.CodeDateRangeInverted:        "Invalid date range",
	schemas.CodeShapeNotFound:            "Unknown entry type",
	schemas.CodeEntryMissing:             "Empty entry",
	schemas.CodeSectionShapeUndetermined: "Unknown section type",
	schemas.CodeEntryValidation:          "Invalid section",
	schemas.CodePattern:                  "Invalid value",
	schemas.CodeEnum:                     "Unsupported value",
}

// Summary is a short title for the kind of problem.
func (d Diagnostic) Summary() string {
	if s, ok := summaries[d.Code]; ok {
		return s
	}
	return "Invalid value"
}

// ToHCL converts diagnostics for hcl's diagnostic writers.
func ToHCL(diags []Diagnostic) hcl.Diagnostics {
	out := make(hcl.Diagnostics, 0, len(diags))
	for _, d := range diags {
		detail := d.Message
		if loc := d.Location(); loc != "" {
			detail = fmt.Sprintf("%s\n\nLocation: %s", detail, loc)
		}
		if d.Input != "" && d.Input != "..." {
			detail = fmt.Sprintf("%s\nInput: %s", detail, d.Input)
		}
		rng := d.Range
		out = append(out, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  d.Summary(),
			Detail:   detail,
			Subject:  &rng,
		})
	}
	return out
}

// Write prints diagnostics with source snippets from doc. width wraps the
// detail text; zero disables wrapping.
func Write(w io.Writer, doc *document.Document, diags []Diagnostic, width uint, color bool) error {
	files := map[string]*hcl.File{doc.Filename: {Bytes: doc.Source}}
	return hcl.NewDiagnosticTextWriter(w, files, width, color).WriteDiagnostics(ToHCL(diags))
}

// jsonDiagnostic adds the source position to the JSON form
type jsonDiagnostic struct {
	Diagnostic
	File        string `json:"file"`
	StartLine   int    `json:"start_line"`
	StartColumn int    `json:"start_column"`
	EndLine     int    `json:"end_line"`
	EndColumn   int    `json:"end_column"`
}

// WriteJSON prints diagnostics as a JSON array.
func WriteJSON(w io.Writer, diags []Diagnostic) error {
	out := make([]jsonDiagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, jsonDiagnostic{
			Diagnostic:  d,
			File:        d.Range.Filename,
			StartLine:   d.Range.Start.Line,
			StartColumn: d.Range.Start.Column,
			EndLine:     d.Range.End.Line,
			EndColumn:   d.Range.End.Column,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
