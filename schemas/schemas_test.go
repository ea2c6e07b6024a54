// Package schemas checks the JSON Schemas embedded by the internal packages.
package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/cvcheck/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schemaFiles(t *testing.T) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("..", "internal", "*", "*.schema.json"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no schema files found")
	return files
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaPath := range schemaFiles(t) {
		t.Run(filepath.Base(schemaPath), func(t *testing.T) {
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaPath)
		})
	}
}

func TestSchemaFiles_ClosedObjects(t *testing.T) {
	for _, schemaPath := range schemaFiles(t) {
		t.Run(filepath.Base(schemaPath), func(t *testing.T) {
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj))

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
			// unknown keys are reported, never ignored
			assert.Equal(t, false, schemaObj["additionalProperties"])
		})
	}
}

func TestSchemaFiles_Compile(t *testing.T) {
	for _, schemaPath := range schemaFiles(t) {
		t.Run(filepath.Base(schemaPath), func(t *testing.T) {
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err)

			s, err := schemas.Compile(filepath.Base(schemaPath), string(data))
			require.NoError(t, err)
			assert.Equal(t, filepath.Base(schemaPath), s.Name())
		})
	}
}
