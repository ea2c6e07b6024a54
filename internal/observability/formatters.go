// Package observability provides logging setup and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cvcheck/internal/entries"
	"github.com/jonathan/cvcheck/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for summaries
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// PrintModel outputs a human-readable summary of a validated document.
func (p *Printer) PrintModel(file string, model *types.Model) {
	if model == nil {
		return
	}

	var sb strings.Builder
	name := model.Cv.Name
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	sb.WriteString(fmt.Sprintf("Theme:    %s\n", model.Design.Name))
	sb.WriteString(fmt.Sprintf("Locale:   %s\n", model.Locale.Language))
	sb.WriteString(fmt.Sprintf("Date:     %s\n", model.ReferenceDate.Format("2006-01-02")))

	if len(model.Cv.Sections) > 0 {
		sb.WriteString("\nSections:\n")
		count := min(len(model.Cv.Sections), maxItemsToShow)
		for i := 0; i < count; i++ {
			s := model.Cv.Sections[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s, %d)\n", s.Title, s.Shape, len(s.Entries)))
		}
		if len(model.Cv.Sections) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(model.Cv.Sections)-maxItemsToShow))
		}
	}

	if keys := model.Extra.Keys(); len(keys) > 0 {
		sb.WriteString(fmt.Sprintf("\nExtra keys: %s\n", strings.Join(keys, ", ")))
	}

	p.printBox("VALID: "+file, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintShapes outputs the entry shapes of a catalog with the fields that
// identify each of them.
func (p *Printer) PrintShapes(catalog *entries.Catalog) {
	if catalog == nil {
		return
	}

	var sb strings.Builder
	shapes := catalog.Shapes()
	for i, s := range shapes {
		sb.WriteString(fmt.Sprintf("%s\n", s.Name))
		sb.WriteString(fmt.Sprintf("  identified by: %s\n", strings.Join(catalog.Characteristic(s.Name), ", ")))

		var required []string
		for _, f := range s.Fields {
			if f.Required {
				required = append(required, f.Name)
			}
		}
		if len(required) > 0 {
			sb.WriteString(fmt.Sprintf("  required:      %s\n", strings.Join(required, ", ")))
		}
		if i < len(shapes)-1 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString(fmt.Sprintf("\n%s\n  a plain string", entries.TextShape))

	p.printBox("ENTRY TYPES", sb.String())
}

// PrintProblemCount outputs how many problems were found in a file.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProblemCount(file string, count int) {
	if count == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate("✅ NO PROBLEMS FOUND: "+file, boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}
	noun := "problems"
	if count == 1 {
		noun = "problem"
	}
	fmt.Fprintf(p.out, "⚠ %s: %d %s\n", file, count, noun)
}
