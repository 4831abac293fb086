// pkg/registry/registry.go
package registry

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// LoadRegistry reads a registry override from disk. Most deployments
// run on DefaultRegistry; a file is only needed to reword descriptions
// without a rebuild.
func LoadRegistry(path string) (*ToolRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ToolRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}
	return &reg, nil
}

// FindTool returns the named tool, or nil when the registry does not
// carry it.
func (r *ToolRegistry) FindTool(name string) *Tool {
	for i := range r.Tools {
		if r.Tools[i].Name == name {
			return &r.Tools[i]
		}
	}
	return nil
}

// Names lists the registered tool names in registry order.
func (r *ToolRegistry) Names() []string {
	names := make([]string, 0, len(r.Tools))
	for _, tool := range r.Tools {
		names = append(names, tool.Name)
	}
	return names
}

// DefaultRegistry returns the built-in tool set.
func DefaultRegistry() *ToolRegistry {
	return &ToolRegistry{
		Version:     "1.0.0",
		LastUpdated: "2025-08-10",
		Tools: []Tool{
			{
				Name:        ToolValidate,
				DisplayName: "Validate",
				Description: "Returns the phone number of the account this server plans for.",
				Category:    "identity",
				InputSchema: map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
				OutputSchema: map[string]interface{}{
					"type":        "string",
					"description": "Phone number in {country_code}{number} format",
				},
			},
			{
				Name:        ToolAbout,
				DisplayName: "About",
				Description: "Describes this server and what it can plan.",
				Category:    "identity",
				InputSchema: map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
				OutputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":        map[string]interface{}{"type": "string"},
						"description": map[string]interface{}{"type": "string"},
					},
				},
			},
			{
				Name:        ToolVibePlanner,
				DisplayName: "Vibe Planner",
				Description: "Plans a day around a mood: playlists, recipe videos, books, movies and nearby cafes in one shot.",
				Category:    "search",
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"vibe_description": map[string]interface{}{
							"type":        "string",
							"description": "Free-form mood to plan around, e.g. \"cozy rainy day\"",
						},
						"location": map[string]interface{}{
							"type":        "string",
							"description": "Optional location text used for the cafe search, e.g. \"Pune, India\"",
						},
						"latitude": map[string]interface{}{
							"type":    "number",
							"minimum": -90,
							"maximum": 90,
						},
						"longitude": map[string]interface{}{
							"type":    "number",
							"minimum": -180,
							"maximum": 180,
						},
					},
					"required": []interface{}{"vibe_description"},
				},
				OutputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"vibe":              map[string]interface{}{"type": "string"},
						"spotify_playlists": map[string]interface{}{"type": "array"},
						"youtube_recipes":   map[string]interface{}{"type": "array"},
						"books":             map[string]interface{}{"type": "array"},
						"movies":            map[string]interface{}{"type": "array"},
						"cafes":             map[string]interface{}{"type": "array"},
						"location_info":     map[string]interface{}{"type": "object"},
					},
				},
				ErrorCodes: []string{"VALIDATION_ERROR", "INVALID_ARGUMENTS"},
				Tags:       []string{"vibe", "planning", "search"},
			},
		},
	}
}
