// internal/providers/spotify/handler.go
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"vibe-planner/internal/models"
)

const (
	ProviderName = "spotify"
)

var (
	ErrSpotifyAuthFailed    = errors.New("SPOTIFY_AUTH_FAILED")
	ErrSpotifySearchTimeout = errors.New("SPOTIFY_SEARCH_TIMEOUT")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Handler searches the playlist API for playlists matching a vibe
// query. Token exchange runs through the client-credentials transport,
// which caches the bearer token and refreshes it when it expires.
type Handler struct {
	config *Config
	client *http.Client
	logger Logger
}

func NewHandler(config *Config, log Logger) *Handler {
	creds := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	// The token exchange runs on its own client, so it needs its own
	// timeout. The outer timeout bounds the search call.
	base := &http.Client{Timeout: config.Timeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	client := creds.Client(ctx)
	client.Timeout = config.Timeout

	return &Handler{
		config: config,
		client: client,
		logger: log.With(map[string]interface{}{
			"provider": ProviderName,
		}),
	}
}

// Search returns normalized playlist records for the query, at most
// MaxResults, in provider order. Without client credentials the
// provider is skipped and an empty list is returned.
func (h *Handler) Search(ctx context.Context, query string) ([]models.Playlist, error) {
	if h.config.ClientID == "" || h.config.ClientSecret == "" {
		h.logger.Warn("client credentials not configured, skipping search", nil)
		return []models.Playlist{}, nil
	}

	searchURL := h.buildSearchURL(query)

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			h.logger.Error("token exchange rejected", map[string]interface{}{
				"status": retrieveErr.Response.StatusCode,
			})
			return nil, ErrSpotifyAuthFailed
		}
		if ctx.Err() == context.DeadlineExceeded ||
			strings.Contains(err.Error(), "timeout") ||
			strings.Contains(err.Error(), "deadline") ||
			strings.Contains(err.Error(), "Client.Timeout") {
			return nil, ErrSpotifySearchTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("playlist search API returned %d", resp.StatusCode)
	}

	var apiResponse playlistSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	result := h.processResults(apiResponse.Playlists.Items)

	h.logger.Info("playlist search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(result),
	})

	return result, nil
}

func (h *Handler) buildSearchURL(query string) string {
	baseURL, _ := url.Parse(fmt.Sprintf("%s/search", h.config.BaseURL))
	params := url.Values{}
	params.Add("q", query)
	params.Add("type", "playlist")
	params.Add("limit", fmt.Sprintf("%d", h.config.MaxResults))
	baseURL.RawQuery = params.Encode()
	return baseURL.String()
}

func (h *Handler) processResults(items []*playlistItem) []models.Playlist {
	result := make([]models.Playlist, 0, len(items))
	for _, item := range items {
		if len(result) >= h.config.MaxResults {
			break
		}
		if item == nil {
			continue
		}
		name := item.Name
		if name == "" {
			name = "Unknown"
		}
		image := ""
		if len(item.Images) > 0 {
			image = item.Images[0].URL
		}
		result = append(result, models.Playlist{
			Name:  name,
			Link:  item.ExternalURLs.Spotify,
			Image: image,
		})
	}
	return result
}
