// Package errors provides standardized error handling for the vibe planner service.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Request / Provider Errors
const (
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnknownTool      ErrorCode = "UNKNOWN_TOOL"
	ErrCodeInvalidArguments ErrorCode = "INVALID_ARGUMENTS"

	ErrCodeAuthentication ErrorCode = "AUTHENTICATION_ERROR"

	ErrCodeSpotifyAuthFailed    ErrorCode = "SPOTIFY_AUTH_FAILED"
	ErrCodeSpotifySearchFailed  ErrorCode = "SPOTIFY_SEARCH_FAILED"
	ErrCodeSpotifySearchTimeout ErrorCode = "SPOTIFY_SEARCH_TIMEOUT"

	ErrCodeYouTubeSearchFailed  ErrorCode = "YOUTUBE_SEARCH_FAILED"
	ErrCodeYouTubeSearchTimeout ErrorCode = "YOUTUBE_SEARCH_TIMEOUT"

	ErrCodeBooksSearchFailed  ErrorCode = "BOOKS_SEARCH_FAILED"
	ErrCodeBooksSearchTimeout ErrorCode = "BOOKS_SEARCH_TIMEOUT"

	ErrCodeMovieSearchFailed  ErrorCode = "MOVIE_SEARCH_FAILED"
	ErrCodeMovieSearchTimeout ErrorCode = "MOVIE_SEARCH_TIMEOUT"

	ErrCodePlacesSearchFailed  ErrorCode = "PLACES_SEARCH_FAILED"
	ErrCodePlacesSearchTimeout ErrorCode = "PLACES_SEARCH_TIMEOUT"
	ErrCodePlacesRequestDenied ErrorCode = "PLACES_REQUEST_DENIED"
	ErrCodePlacesQuotaExceeded ErrorCode = "PLACES_QUOTA_EXCEEDED"

	ErrCodeGeocodeFailed  ErrorCode = "GEOCODE_FAILED"
	ErrCodeGeocodeTimeout ErrorCode = "GEOCODE_TIMEOUT"

	ErrCodeMissingCredentials ErrorCode = "MISSING_CREDENTIALS"
	ErrCodeConfiguration      ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable request validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownToolError creates a non-retryable unknown tool error.
func NewUnknownToolError(tool string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownTool,
		Message:   "Requested tool is not registered",
		Details:   fmt.Sprintf("tool: %s", tool),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidArgumentsError creates a non-retryable argument validation error.
func NewInvalidArgumentsError(tool, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidArguments,
		Message:   "Tool arguments failed schema validation",
		Details:   fmt.Sprintf("tool: %s, errors: %s", tool, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthenticationError creates a non-retryable authentication error.
func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthentication,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSpotifyAuthFailedError creates a retryable Spotify token exchange error.
func NewSpotifyAuthFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSpotifyAuthFailed,
		Message:   "Spotify token exchange failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSpotifySearchFailedError creates a retryable Spotify search error.
func NewSpotifySearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSpotifySearchFailed,
		Message:   "Spotify playlist search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSpotifySearchTimeoutError creates a non-retryable (returns empty) Spotify timeout error.
func NewSpotifySearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSpotifySearchTimeout,
		Message:   "Spotify playlist search timeout",
		Details:   "Search call exceeded configured timeout",
		Retryable: false, // Provider failures degrade to empty results, no retry
		Timestamp: time.Now().UTC(),
	}
}

// NewYouTubeSearchFailedError creates a retryable YouTube search error.
func NewYouTubeSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeYouTubeSearchFailed,
		Message:   "YouTube recipe search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewYouTubeSearchTimeoutError creates a non-retryable YouTube timeout error.
func NewYouTubeSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeYouTubeSearchTimeout,
		Message:   "YouTube recipe search timeout",
		Details:   "Search call exceeded configured timeout",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBooksSearchFailedError creates a retryable Google Books search error.
func NewBooksSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBooksSearchFailed,
		Message:   "Google Books volume search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBooksSearchTimeoutError creates a non-retryable Google Books timeout error.
func NewBooksSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeBooksSearchTimeout,
		Message:   "Google Books volume search timeout",
		Details:   "Search call exceeded configured timeout",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMovieSearchFailedError creates a retryable OMDb search error.
func NewMovieSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMovieSearchFailed,
		Message:   "OMDb movie search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMovieSearchTimeoutError creates a non-retryable OMDb timeout error.
func NewMovieSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMovieSearchTimeout,
		Message:   "OMDb movie search timeout",
		Details:   "Search call exceeded configured timeout",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPlacesSearchFailedError creates a retryable Places search error.
func NewPlacesSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePlacesSearchFailed,
		Message:   "Google Places search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPlacesSearchTimeoutError creates a non-retryable Places timeout error.
func NewPlacesSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodePlacesSearchTimeout,
		Message:   "Google Places search timeout",
		Details:   "Search call exceeded configured timeout",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPlacesRequestDeniedError creates a non-retryable Places authorization error.
func NewPlacesRequestDeniedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePlacesRequestDenied,
		Message:   "Google Places request denied",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPlacesQuotaExceededError creates a non-retryable Places quota error.
func NewPlacesQuotaExceededError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePlacesQuotaExceeded,
		Message:   "Google Places query limit exceeded",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGeocodeFailedError creates a retryable geocoding error.
func NewGeocodeFailedError(location string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeocodeFailed,
		Message:   "Location geocoding failed",
		Details:   fmt.Sprintf("location: %s, error: %s", location, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGeocodeTimeoutError creates a non-retryable geocoding timeout error.
func NewGeocodeTimeoutError(location string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeocodeTimeout,
		Message:   "Location geocoding timeout",
		Details:   fmt.Sprintf("location: %s", location),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingCredentialsError creates a non-retryable missing credentials error.
// A missing provider credential degrades only that provider.
func NewMissingCredentialsError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingCredentials,
		Message:   fmt.Sprintf("Credentials for provider '%s' are not configured", provider),
		Details:   "provider returns empty results",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationError creates a non-retryable configuration error (fatal at startup).
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   "Service configuration invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError creates a non-retryable internal error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Status Mapping
// ==========================

// HTTPStatusMapping maps internal error codes to HTTP response status codes.
// Provider and geocode failures never reach the wire; the aggregator degrades
// them to empty result lists. They map to 502 so an accidental leak is visible.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeValidation:       400,
	ErrCodeUnknownTool:      400,
	ErrCodeInvalidArguments: 400,

	ErrCodeAuthentication: 401,

	ErrCodeSpotifyAuthFailed:    502,
	ErrCodeSpotifySearchFailed:  502,
	ErrCodeSpotifySearchTimeout: 502,
	ErrCodeYouTubeSearchFailed:  502,
	ErrCodeYouTubeSearchTimeout: 502,
	ErrCodeBooksSearchFailed:    502,
	ErrCodeBooksSearchTimeout:   502,
	ErrCodeMovieSearchFailed:    502,
	ErrCodeMovieSearchTimeout:   502,
	ErrCodePlacesSearchFailed:   502,
	ErrCodePlacesSearchTimeout:  502,
	ErrCodePlacesRequestDenied:  502,
	ErrCodePlacesQuotaExceeded:  502,
	ErrCodeGeocodeFailed:        502,
	ErrCodeGeocodeTimeout:       502,

	ErrCodeMissingCredentials: 500,
	ErrCodeConfiguration:      500,
	ErrCodeInternal:           500,
}

// HTTPStatusFor returns the HTTP status for an error code, 500 when unmapped.
func HTTPStatusFor(code ErrorCode) int {
	if status, exists := HTTPStatusMapping[code]; exists {
		return status
	}
	return 500
}

// ==========================
// 4. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code describes a transient condition.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeSpotifyAuthFailed,
		ErrCodeSpotifySearchFailed,
		ErrCodeYouTubeSearchFailed,
		ErrCodeBooksSearchFailed,
		ErrCodeMovieSearchFailed,
		ErrCodePlacesSearchFailed,
		ErrCodeGeocodeFailed:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "AUTHENTICATION"):
		return "AUTHENTICATION"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "UNKNOWN_TOOL"):
		return "VALIDATION"
	case strings.Contains(codeStr, "GEOCODE"):
		return "GEOCODE"
	case strings.Contains(codeStr, "SPOTIFY") || strings.Contains(codeStr, "YOUTUBE") ||
		strings.Contains(codeStr, "BOOKS") || strings.Contains(codeStr, "MOVIE") ||
		strings.Contains(codeStr, "PLACES") || strings.Contains(codeStr, "CREDENTIALS"):
		return "PROVIDER"
	case strings.Contains(codeStr, "CONFIGURATION"):
		return "CONFIGURATION"
	default:
		return "OTHER"
	}
}
