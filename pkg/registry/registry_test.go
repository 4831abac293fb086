// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()

	assert.Equal(t, []string{"validate", "about", "vibe_planner"}, reg.Names())

	for _, tool := range reg.Tools {
		assert.NotEmpty(t, tool.Description, "tool %s needs a description", tool.Name)
		assert.NotNil(t, tool.InputSchema, "tool %s needs an input schema", tool.Name)
	}
}

func TestDefaultRegistry_SchemasAreValidJSONSchema(t *testing.T) {
	for _, tool := range DefaultRegistry().Tools {
		schemaLoader := gojsonschema.NewGoLoader(tool.InputSchema)
		_, err := gojsonschema.NewSchema(schemaLoader)
		require.NoError(t, err, "input schema of %s should compile", tool.Name)
	}
}

func TestDefaultRegistry_VibePlannerSchema(t *testing.T) {
	tool := DefaultRegistry().FindTool("vibe_planner")
	require.NotNil(t, tool)

	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.InputSchema))
	require.NoError(t, err)

	tests := []struct {
		name      string
		arguments map[string]interface{}
		valid     bool
	}{
		{
			name:      "minimal valid",
			arguments: map[string]interface{}{"vibe_description": "cozy rainy day"},
			valid:     true,
		},
		{
			name: "full valid",
			arguments: map[string]interface{}{
				"vibe_description": "cozy rainy day",
				"location":         "Pune, India",
				"latitude":         18.52,
				"longitude":        73.85,
			},
			valid: true,
		},
		{
			name:      "missing vibe_description",
			arguments: map[string]interface{}{"location": "Pune"},
			valid:     false,
		},
		{
			// Emptiness is a semantic check, made downstream where
			// whitespace-only strings can be caught too.
			name:      "empty vibe_description passes the schema",
			arguments: map[string]interface{}{"vibe_description": ""},
			valid:     true,
		},
		{
			name: "latitude out of range",
			arguments: map[string]interface{}{
				"vibe_description": "fine",
				"latitude":         95.0,
			},
			valid: false,
		},
		{
			name: "wrong type for longitude",
			arguments: map[string]interface{}{
				"vibe_description": "fine",
				"longitude":        "73.85",
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.Validate(gojsonschema.NewGoLoader(tt.arguments))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid())
		})
	}
}

func TestFindTool(t *testing.T) {
	reg := DefaultRegistry()

	assert.NotNil(t, reg.FindTool("vibe_planner"))
	assert.Nil(t, reg.FindTool("does_not_exist"))
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tool-registry.json")

	content := `{
		"version": "2.0.0",
		"lastUpdated": "2025-08-15",
		"tools": [
			{
				"name": "vibe_planner",
				"displayName": "Vibe Planner",
				"description": "Overridden description",
				"category": "search",
				"inputSchema": {"type": "object"}
			}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", reg.Version)
	require.Len(t, reg.Tools, 1)
	assert.Equal(t, "Overridden description", reg.Tools[0].Description)
}

func TestLoadRegistry_Errors(t *testing.T) {
	_, err := LoadRegistry("/does/not/exist.json")
	require.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tools": [`), 0644))

	_, err = LoadRegistry(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing registry")
}
