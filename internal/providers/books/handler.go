// internal/providers/books/handler.go
package books

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
	ProviderName = "books"
)

var (
	ErrBooksSearchTimeout = errors.New("BOOKS_SEARCH_TIMEOUT")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Handler searches the volumes API for titles matching a vibe query.
// The volumes endpoint is keyless, so this is the one provider that
// never degrades for missing credentials.
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

// Search returns normalized book records for the query, at most
// MaxResults, in provider order.
func (h *Handler) Search(ctx context.Context, query string) ([]models.Book, error) {
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
			return nil, ErrBooksSearchTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("books API returned %d", resp.StatusCode)
	}

	var apiResponse volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	result := h.processResults(apiResponse.Items)

	h.logger.Info("book search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(result),
	})

	return result, nil
}

func (h *Handler) buildSearchURL(query string) string {
	baseURL, _ := url.Parse(h.config.BaseURL)
	params := url.Values{}
	params.Add("q", query)
	params.Add("maxResults", fmt.Sprintf("%d", h.config.MaxResults))
	baseURL.RawQuery = params.Encode()
	return baseURL.String()
}

func (h *Handler) processResults(items []volumeItem) []models.Book {
	result := make([]models.Book, 0, len(items))
	for _, item := range items {
		if len(result) >= h.config.MaxResults {
			break
		}
		authors := item.VolumeInfo.Authors
		if authors == nil {
			authors = []string{}
		}
		result = append(result, models.Book{
			Title:   item.VolumeInfo.Title,
			Authors: authors,
			Link:    item.VolumeInfo.InfoLink,
		})
	}
	return result
}
