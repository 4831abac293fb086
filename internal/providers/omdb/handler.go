// internal/providers/omdb/handler.go
package omdb

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
	ProviderName = "omdb"
)

var (
	ErrMovieSearchTimeout = errors.New("MOVIE_SEARCH_TIMEOUT")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Handler searches the movie API for titles matching a vibe query.
// Vibe phrases rarely match movie titles directly, so the handler works
// through a list of fallback terms and keeps the first one that hits.
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

// Search tries the query, then "<query> movie", then the mood genre
// terms, returning the first term's matches. A term that errors or
// comes back empty moves to the next; only an expired context is
// terminal. Without an API key the provider is skipped.
func (h *Handler) Search(ctx context.Context, query string, genreTerms []string) ([]models.Movie, error) {
	if h.config.APIKey == "" {
		h.logger.Warn("api key not configured, skipping search", nil)
		return []models.Movie{}, nil
	}

	terms := h.buildSearchTerms(query, genreTerms)

	for _, term := range terms {
		if ctx.Err() != nil {
			return nil, ErrMovieSearchTimeout
		}

		result, err := h.searchTerm(ctx, term)
		if err != nil {
			if errors.Is(err, ErrMovieSearchTimeout) {
				return nil, err
			}
			h.logger.Warn("movie search term failed", map[string]interface{}{
				"term":  term,
				"error": err.Error(),
			})
			continue
		}
		if len(result) > 0 {
			h.logger.Info("movie search completed", map[string]interface{}{
				"term":        term,
				"resultCount": len(result),
			})
			return result, nil
		}
	}

	h.logger.Info("movie search exhausted all terms", map[string]interface{}{
		"query":     query,
		"termCount": len(terms),
	})

	return []models.Movie{}, nil
}

func (h *Handler) buildSearchTerms(query string, genreTerms []string) []string {
	terms := []string{query, fmt.Sprintf("%s movie", query)}
	return append(terms, genreTerms...)
}

func (h *Handler) searchTerm(ctx context.Context, term string) ([]models.Movie, error) {
	searchURL := h.buildSearchURL(term)

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
			return nil, ErrMovieSearchTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("movie API returned %d", resp.StatusCode)
	}

	var apiResponse searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	if apiResponse.Response == "False" {
		return nil, nil
	}

	return h.processResults(apiResponse.Search), nil
}

func (h *Handler) buildSearchURL(term string) string {
	baseURL, _ := url.Parse(h.config.BaseURL)
	params := url.Values{}
	params.Add("apikey", h.config.APIKey)
	params.Add("s", term)
	baseURL.RawQuery = params.Encode()
	return baseURL.String()
}

func (h *Handler) processResults(entries []movieEntry) []models.Movie {
	result := make([]models.Movie, 0, len(entries))
	for _, entry := range entries {
		if len(result) >= h.config.MaxResults {
			break
		}
		title := entry.Title
		if title == "" {
			title = "Unknown Title"
		}
		year := entry.Year
		if year == "" {
			year = "Unknown"
		}
		movieType := entry.Type
		if movieType == "" {
			movieType = "Unknown"
		}
		result = append(result, models.Movie{
			Title: title,
			Year:  year,
			Type:  movieType,
		})
	}
	return result
}
