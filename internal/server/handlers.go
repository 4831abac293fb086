// internal/server/handlers.go
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	commonerrors "vibe-planner/internal/common/errors"
	"vibe-planner/internal/common/metrics"
	"vibe-planner/internal/models"
	"vibe-planner/pkg/registry"
)

const aboutDescription = "Turns a mood into a plan: matching playlists, " +
	"recipe videos, books, movies and nearby cafes, gathered from six " +
	"public APIs in one call."

// handleToolInvocation dispatches POST /mcp. The envelope names a tool
// and carries its arguments; arguments are checked against the tool's
// input schema before anything runs.
func (s *Server) handleToolInvocation(w http.ResponseWriter, r *http.Request) {
	var toolRequest models.ToolRequest
	if err := json.NewDecoder(r.Body).Decode(&toolRequest); err != nil {
		s.errorHandler.HandleRequestError(w, r,
			commonerrors.NewValidationError("request body must be a JSON object with tool and arguments"))
		return
	}
	if toolRequest.Tool == "" {
		s.errorHandler.HandleRequestError(w, r,
			commonerrors.NewValidationError("tool name is required"))
		return
	}

	tool := s.registry.FindTool(toolRequest.Tool)
	if tool == nil {
		s.errorHandler.HandleRequestError(w, r,
			commonerrors.NewUnknownToolError(toolRequest.Tool))
		return
	}

	if err := s.validateArguments(tool, toolRequest.Arguments); err != nil {
		s.errorHandler.HandleRequestError(w, r, err)
		return
	}

	requestID := uuid.New().String()
	log := s.logger.With(map[string]interface{}{
		"tool":      tool.Name,
		"requestId": requestID,
	})

	start := time.Now()
	result, err := s.executeTool(r.Context(), tool.Name, toolRequest.Arguments)
	duration := time.Since(start)

	if err != nil {
		code := errorCode(err)
		metrics.ToolInvocationsFailed.WithLabelValues(tool.Name, code).Inc()
		s.obs.RecordToolInvocation(r.Context(), tool.Name, "error")
		s.obs.RecordToolDuration(r.Context(), tool.Name, duration, "error")
		log.Warn("tool invocation failed", map[string]interface{}{
			"errorCode":  code,
			"durationMs": duration.Milliseconds(),
		})
		s.errorHandler.HandleRequestError(w, r, err)
		return
	}

	metrics.ToolInvocationsCompleted.WithLabelValues(tool.Name).Inc()
	metrics.ToolInvocationDuration.WithLabelValues(tool.Name).Observe(duration.Seconds())
	s.obs.RecordToolInvocation(r.Context(), tool.Name, "success")
	s.obs.RecordToolDuration(r.Context(), tool.Name, duration, "success")
	log.Info("tool invocation completed", map[string]interface{}{
		"durationMs": duration.Milliseconds(),
	})

	s.writeJSON(w, http.StatusOK, models.ToolResponse{
		Tool:      tool.Name,
		RequestID: requestID,
		Result:    result,
	})
}

func (s *Server) executeTool(ctx context.Context, tool string, arguments map[string]interface{}) (interface{}, error) {
	switch tool {
	case registry.ToolValidate:
		return s.config.Auth.PhoneNumber, nil
	case registry.ToolAbout:
		return models.AboutInfo{
			Name:        s.config.App.Name,
			Description: aboutDescription,
		}, nil
	case registry.ToolVibePlanner:
		request, err := decodeVibeRequest(arguments)
		if err != nil {
			return nil, err
		}
		return s.planner.Plan(ctx, request)
	}
	return nil, commonerrors.NewUnknownToolError(tool)
}

// validateArguments runs the tool's input schema over the raw
// arguments. Semantic checks the schema cannot express (whitespace-only
// strings) stay with the planner.
func (s *Server) validateArguments(tool *registry.Tool, arguments map[string]interface{}) error {
	schema, ok := s.schemas[tool.Name]
	if !ok {
		return nil
	}
	if arguments == nil {
		arguments = map[string]interface{}{}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(arguments))
	if err != nil {
		return commonerrors.NewInvalidArgumentsError(tool.Name, err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, schemaErr := range result.Errors() {
			details = append(details, schemaErr.String())
		}
		return commonerrors.NewInvalidArgumentsError(tool.Name, strings.Join(details, "; "))
	}
	return nil
}

func decodeVibeRequest(arguments map[string]interface{}) (*models.VibeRequest, error) {
	data, err := json.Marshal(arguments)
	if err != nil {
		return nil, commonerrors.NewInvalidArgumentsError(registry.ToolVibePlanner, err.Error())
	}
	var request models.VibeRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, commonerrors.NewInvalidArgumentsError(registry.ToolVibePlanner, err.Error())
	}
	return &request, nil
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.registry)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": s.config.App.Name,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// No backing stores to probe; ready as soon as config loaded.
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func errorCode(err error) string {
	var stdErr *commonerrors.StandardError
	if errors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	return string(commonerrors.ErrCodeInternal)
}
