// pkg/registry/schema.go
package registry

// Tool names served by this process.
const (
	ToolValidate    = "validate"
	ToolAbout       = "about"
	ToolVibePlanner = "vibe_planner"
)

type ToolRegistry struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	Tools       []Tool `json:"tools"`
}

type Tool struct {
	Name         string                 `json:"name"`
	DisplayName  string                 `json:"displayName"`
	Description  string                 `json:"description"`
	Category     string                 `json:"category"`
	InputSchema  map[string]interface{} `json:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema,omitempty"`
	ErrorCodes   []string               `json:"errorCodes,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
}
