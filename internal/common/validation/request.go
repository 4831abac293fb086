package validation

import (
	"fmt"
	"regexp"
	"strings"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateVibeRequest checks the semantic constraints of a vibe_planner
// invocation. Structural checks (types, required keys) happen earlier
// against the tool's JSON schema; this covers what the schema cannot
// express, like whitespace-only descriptions.
func ValidateVibeRequest(vibeDescription string, latitude, longitude *float64) *ValidationResult {
	errors := []ValidationError{}

	if strings.TrimSpace(vibeDescription) == "" {
		errors = append(errors, ValidationError{
			Field:   "vibe_description",
			Message: "must not be empty or whitespace-only",
			Code:    "REQUIRED_FIELD_MISSING",
		})
	}

	if latitude != nil && (*latitude < -90 || *latitude > 90) {
		errors = append(errors, ValidationError{
			Field:   "latitude",
			Message: "value must be between -90 and 90",
			Code:    "RANGE_VIOLATION",
		})
	}

	if longitude != nil && (*longitude < -180 || *longitude > 180) {
		errors = append(errors, ValidationError{
			Field:   "longitude",
			Message: "value must be between -180 and 180",
			Code:    "RANGE_VIOLATION",
		})
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

// ValidateToolNaming validates a tool name follows the naming convention
func ValidateToolNaming(toolName string) error {
	namingPattern := regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	if !namingPattern.MatchString(toolName) {
		return fmt.Errorf("tool name must be snake_case (e.g., vibe_planner)")
	}
	return nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for a specific field
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") || strings.HasPrefix(err.Field, field+"[") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	phonePattern := regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	return phonePattern.MatchString(phone)
}
