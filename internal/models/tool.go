// internal/models/tool.go
package models

// ToolRequest is the body of an inbound tool invocation.
type ToolRequest struct {
	Tool      string                 `json:"tool"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ToolResponse wraps a successful tool result.
type ToolResponse struct {
	Tool      string      `json:"tool"`
	RequestID string      `json:"request_id"`
	Result    interface{} `json:"result"`
}

// AboutInfo describes the service to callers of the about tool.
type AboutInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
