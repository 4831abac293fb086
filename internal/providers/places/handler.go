// internal/providers/places/handler.go
package places

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	commonhttp "vibe-planner/internal/common/http"
	"vibe-planner/internal/models"
)

const (
	ProviderName = "places"

	mapsLinkFormat = "https://www.google.com/maps/place/?q=place_id:%s"

	statusOK            = "OK"
	statusZeroResults   = "ZERO_RESULTS"
	statusRequestDenied = "REQUEST_DENIED"
	statusQuotaExceeded = "OVER_QUERY_LIMIT"
)

var (
	ErrPlacesSearchTimeout = errors.New("PLACES_SEARCH_TIMEOUT")
	ErrPlacesRequestDenied = errors.New("PLACES_REQUEST_DENIED")
	ErrPlacesQuotaExceeded = errors.New("PLACES_QUOTA_EXCEEDED")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// searchStrategy is one keyword/type pair tried against the API.
// Strategies widen from the vibe itself down to plain "restaurant" so a
// niche vibe in a small town still finds somewhere to sit.
type searchStrategy struct {
	Keyword   string
	PlaceType string
}

// Handler searches for cafes around a coordinate, or by location text
// when no coordinate could be resolved.
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

// SearchNearby returns cafes around the coordinate, trying each
// strategy in order until one returns results. Records carry the
// coordinate-based strategy label. Without an API key the provider is
// skipped and an empty list is returned.
func (h *Handler) SearchNearby(ctx context.Context, query string, coords models.Coordinates) ([]models.Cafe, error) {
	if h.config.APIKey == "" {
		h.logger.Warn("api key not configured, skipping search", nil)
		return []models.Cafe{}, nil
	}

	buildURL := func(strategy searchStrategy) string {
		return h.buildNearbyURL(strategy, coords)
	}
	return h.runStrategies(ctx, query, buildURL, models.SearchStrategyCoordinate)
}

// SearchByText returns cafes matched against a free-form location
// string. Used when geocoding the location failed; records carry the
// text-based strategy label.
func (h *Handler) SearchByText(ctx context.Context, query string, location string) ([]models.Cafe, error) {
	if h.config.APIKey == "" {
		h.logger.Warn("api key not configured, skipping search", nil)
		return []models.Cafe{}, nil
	}

	buildURL := func(strategy searchStrategy) string {
		return h.buildTextURL(strategy, location)
	}
	return h.runStrategies(ctx, query, buildURL, models.SearchStrategyText)
}

func (h *Handler) runStrategies(ctx context.Context, query string, buildURL func(searchStrategy) string, label models.SearchStrategy) ([]models.Cafe, error) {
	for _, strategy := range h.searchStrategies(query) {
		if ctx.Err() != nil {
			return nil, ErrPlacesSearchTimeout
		}

		apiResponse, err := h.searchOnce(ctx, buildURL(strategy))
		if err != nil {
			if errors.Is(err, ErrPlacesSearchTimeout) {
				return nil, err
			}
			h.logger.Warn("place search strategy failed", map[string]interface{}{
				"keyword": strategy.Keyword,
				"error":   err.Error(),
			})
			continue
		}

		switch apiResponse.Status {
		case statusOK:
			if len(apiResponse.Results) > 0 {
				result := h.processResults(apiResponse.Results, label)
				h.logger.Info("place search completed", map[string]interface{}{
					"keyword":     strategy.Keyword,
					"strategy":    string(label),
					"resultCount": len(result),
				})
				return result, nil
			}
			// OK with an empty result set behaves like ZERO_RESULTS.
		case statusZeroResults:
			// Next strategy.
		case statusRequestDenied:
			return nil, ErrPlacesRequestDenied
		case statusQuotaExceeded:
			return nil, ErrPlacesQuotaExceeded
		default:
			h.logger.Warn("place search returned unexpected status", map[string]interface{}{
				"keyword": strategy.Keyword,
				"status":  apiResponse.Status,
			})
		}
	}

	h.logger.Info("place search exhausted all strategies", map[string]interface{}{
		"query": query,
	})

	return []models.Cafe{}, nil
}

func (h *Handler) searchOnce(ctx context.Context, searchURL string) (*placesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded ||
			strings.Contains(err.Error(), "timeout") ||
			strings.Contains(err.Error(), "deadline") ||
			strings.Contains(err.Error(), "Client.Timeout") {
			return nil, ErrPlacesSearchTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("place search API returned %d", resp.StatusCode)
	}

	var apiResponse placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	return &apiResponse, nil
}

func (h *Handler) searchStrategies(query string) []searchStrategy {
	return []searchStrategy{
		{Keyword: fmt.Sprintf("%s cafe", query), PlaceType: "cafe"},
		{Keyword: "cafe", PlaceType: "cafe"},
		{Keyword: "coffee", PlaceType: "cafe"},
		{Keyword: "restaurant", PlaceType: "restaurant"},
	}
}

func (h *Handler) buildNearbyURL(strategy searchStrategy, coords models.Coordinates) string {
	baseURL, _ := url.Parse(h.config.NearbySearchURL)
	params := url.Values{}
	params.Add("location", fmt.Sprintf("%s,%s",
		strconv.FormatFloat(coords.Lat, 'f', -1, 64),
		strconv.FormatFloat(coords.Lng, 'f', -1, 64)))
	params.Add("radius", fmt.Sprintf("%d", h.config.RadiusMeters))
	params.Add("keyword", strategy.Keyword)
	params.Add("type", strategy.PlaceType)
	params.Add("key", h.config.APIKey)
	baseURL.RawQuery = params.Encode()
	return baseURL.String()
}

func (h *Handler) buildTextURL(strategy searchStrategy, location string) string {
	baseURL, _ := url.Parse(h.config.TextSearchURL)
	params := url.Values{}
	params.Add("query", fmt.Sprintf("%s in %s", strategy.Keyword, location))
	params.Add("key", h.config.APIKey)
	baseURL.RawQuery = params.Encode()
	return baseURL.String()
}

func (h *Handler) processResults(results []placeResult, label models.SearchStrategy) []models.Cafe {
	cafes := make([]models.Cafe, 0, len(results))
	for _, r := range results {
		if len(cafes) >= h.config.MaxResults {
			break
		}
		name := r.Name
		if name == "" {
			name = "Unknown Cafe"
		}
		address := r.Vicinity
		if address == "" {
			address = r.FormattedAddress
		}
		if address == "" {
			address = "Unknown Address"
		}
		mapsLink := ""
		if r.PlaceID != "" {
			mapsLink = fmt.Sprintf(mapsLinkFormat, r.PlaceID)
		}
		cafes = append(cafes, models.Cafe{
			Name:           name,
			Address:        address,
			Rating:         r.Rating,
			MapsLink:       mapsLink,
			SearchStrategy: label,
		})
	}
	return cafes
}
