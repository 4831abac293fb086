// internal/providers/youtube/handler.go
package youtube

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
	ProviderName = "youtube"

	watchURLFormat = "https://www.youtube.com/watch?v=%s"
)

var (
	ErrYouTubeSearchTimeout = errors.New("YOUTUBE_SEARCH_TIMEOUT")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Handler searches the video API for recipe videos matching a vibe query.
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

// Search returns normalized recipe records for the query. The query is
// suffixed with "recipe" so a mood like "cozy rainy day" finds videos to
// cook along to rather than generic footage. Without an API key the
// provider is skipped and an empty list is returned.
func (h *Handler) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	if h.config.APIKey == "" {
		h.logger.Warn("api key not configured, skipping search", nil)
		return []models.Recipe{}, nil
	}

	searchURL := h.buildSearchURL(query)

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
			return nil, ErrYouTubeSearchTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video search API returned %d", resp.StatusCode)
	}

	var apiResponse searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	result := h.processResults(apiResponse.Items)

	h.logger.Info("recipe search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(result),
	})

	return result, nil
}

func (h *Handler) buildSearchURL(query string) string {
	baseURL, _ := url.Parse(h.config.BaseURL)
	params := url.Values{}
	params.Add("part", "snippet")
	params.Add("q", fmt.Sprintf("%s recipe", query))
	params.Add("type", "video")
	params.Add("maxResults", fmt.Sprintf("%d", h.config.MaxResults))
	params.Add("key", h.config.APIKey)
	baseURL.RawQuery = params.Encode()
	return baseURL.String()
}

// processResults drops items without a video ID or title. Channel and
// playlist stubs come back from the API with those fields empty.
func (h *Handler) processResults(items []searchItem) []models.Recipe {
	result := make([]models.Recipe, 0, len(items))
	for _, item := range items {
		if len(result) >= h.config.MaxResults {
			break
		}
		if item.ID.VideoID == "" || item.Snippet.Title == "" {
			continue
		}
		result = append(result, models.Recipe{
			Title: item.Snippet.Title,
			Link:  fmt.Sprintf(watchURLFormat, item.ID.VideoID),
		})
	}
	return result
}
