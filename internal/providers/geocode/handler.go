// internal/providers/geocode/handler.go
package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	commonhttp "vibe-planner/internal/common/http"
	"vibe-planner/internal/models"
)

const (
	ProviderName = "geocode"
)

var (
	ErrGeocodeTimeout = errors.New("GEOCODE_TIMEOUT")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Handler resolves a free-form location string to a coordinate pair.
type Handler struct {
	config *Config
	client *commonhttp.Client
	logger Logger
}

func NewHandler(config *Config, log Logger) *Handler {
	return &Handler{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"provider": ProviderName,
		}),
	}
}

// Resolve returns the coordinates of the location, or nil when the
// location could not be resolved. An unresolvable location is not an
// error; the caller falls back to text-based place search.
func (h *Handler) Resolve(ctx context.Context, location string) (*models.Coordinates, error) {
	if h.config.APIKey == "" {
		h.logger.Warn("api key not configured, skipping geocoding", nil)
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", h.buildGeocodeURL(location), nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded ||
			strings.Contains(err.Error(), "timeout") ||
			strings.Contains(err.Error(), "deadline") ||
			strings.Contains(err.Error(), "Client.Timeout") {
			return nil, ErrGeocodeTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned %d", resp.StatusCode)
	}

	var apiResponse geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	if apiResponse.Status != "OK" || len(apiResponse.Results) == 0 {
		h.logger.Info("location did not resolve", map[string]interface{}{
			"location": location,
			"status":   apiResponse.Status,
		})
		return nil, nil
	}

	coords := &models.Coordinates{
		Lat: apiResponse.Results[0].Geometry.Location.Lat,
		Lng: apiResponse.Results[0].Geometry.Location.Lng,
	}

	h.logger.Info("location resolved", map[string]interface{}{
		"location": location,
		"lat":      coords.Lat,
		"lng":      coords.Lng,
	})

	return coords, nil
}

func (h *Handler) buildGeocodeURL(location string) string {
	baseURL, _ := url.Parse(h.config.BaseURL)
	params := url.Values{}
	params.Add("address", location)
	params.Add("key", h.config.APIKey)
	baseURL.RawQuery = params.Encode()
	return baseURL.String()
}
