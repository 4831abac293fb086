// internal/providers/spotify/models.go
package spotify

// playlistSearchResponse mirrors the playlist search payload. Items are
// pointers because the API pads the array with JSON nulls when a
// playlist in the page has been removed.
type playlistSearchResponse struct {
	Playlists playlistPage `json:"playlists"`
}

type playlistPage struct {
	Items []*playlistItem `json:"items"`
}

type playlistItem struct {
	Name         string          `json:"name"`
	ExternalURLs externalURLs    `json:"external_urls"`
	Images       []playlistImage `json:"images"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

type playlistImage struct {
	URL string `json:"url"`
}
