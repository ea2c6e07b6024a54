// Package entries infers the shape of résumé section entries and decodes
// them into typed records.
package entries

import (
	"fmt"
	"strings"
)

// CatalogError represents a defect in a shape catalog definition
type CatalogError struct {
	Shape   ShapeName
	Message string
}

func (e *CatalogError) Error() string {
	if e.Shape != "" {
		return fmt.Sprintf("catalog error: shape %s: %s", e.Shape, e.Message)
	}
	return fmt.Sprintf("catalog error: %s", e.Message)
}

// ShapeNotFoundError is returned when an entry's keys match no shape
type ShapeNotFoundError struct {
	Keys []string
}

func (e *ShapeNotFoundError) Error() string {
	if len(e.Keys) == 0 {
		return "shape not found: the entry does not match any entry type"
	}
	return fmt.Sprintf("shape not found: the entry does not match any entry type (keys: %s)", strings.Join(e.Keys, ", "))
}

// EntryMissingError is returned for null entries
type EntryMissingError struct{}

func (e *EntryMissingError) Error() string {
	return "entry missing: the entry cannot be null"
}
