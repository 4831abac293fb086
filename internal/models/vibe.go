// internal/models/vibe.go
package models

import "strings"

// VibeRequest is the input of the vibe_planner tool. Only the
// description is required; coordinates win over the location string
// when both are supplied.
type VibeRequest struct {
	VibeDescription string   `json:"vibe_description"`
	Location        string   `json:"location,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether a complete coordinate pair was supplied.
// A lone latitude or longitude is ignored, not rejected.
func (r *VibeRequest) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// HasLocation reports whether a usable location string was supplied.
func (r *VibeRequest) HasLocation() bool {
	return strings.TrimSpace(r.Location) != ""
}

// SearchStrategy labels how cafes were found for a request.
type SearchStrategy string

const (
	SearchStrategyCoordinate SearchStrategy = "coordinate-based"
	SearchStrategyText       SearchStrategy = "text-based"
)

// Playlist is a normalized Spotify playlist record.
type Playlist struct {
	Name  string `json:"name"`
	Link  string `json:"link"`
	Image string `json:"image"`
}

// Recipe is a normalized YouTube recipe video record.
type Recipe struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Book is a normalized Google Books volume record.
type Book struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Link    string   `json:"link"`
}

// Movie is a normalized OMDb search record.
type Movie struct {
	Title string `json:"title"`
	Year  string `json:"year"`
	Type  string `json:"type"`
}

// Cafe is a normalized Google Places record. Rating is null when the
// provider has none.
type Cafe struct {
	Name           string         `json:"name"`
	Address        string         `json:"address"`
	Rating         *float64       `json:"rating"`
	MapsLink       string         `json:"maps_link"`
	SearchStrategy SearchStrategy `json:"search_strategy"`
}

// Coordinates is a geographic point resolved by the geocoder or
// supplied directly by the caller.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationInfo echoes what the caller provided and what it resolved to.
// Both fields are null when unavailable.
type LocationInfo struct {
	Provided    *string      `json:"provided"`
	Coordinates *Coordinates `json:"coordinates"`
}

// VibeResponse is the composite result of one vibe_planner invocation.
// Every list is always present; a failed provider contributes an empty
// list, never an error.
type VibeResponse struct {
	Vibe             string       `json:"vibe"`
	SpotifyPlaylists []Playlist   `json:"spotify_playlists"`
	YouTubeRecipes   []Recipe     `json:"youtube_recipes"`
	Books            []Book       `json:"books"`
	Movies           []Movie      `json:"movies"`
	Cafes            []Cafe       `json:"cafes"`
	LocationInfo     LocationInfo `json:"location_info"`
}

// EnsureLists replaces nil slices with empty ones so the wire shape is
// always an array, never null.
func (r *VibeResponse) EnsureLists() {
	if r.SpotifyPlaylists == nil {
		r.SpotifyPlaylists = []Playlist{}
	}
	if r.YouTubeRecipes == nil {
		r.YouTubeRecipes = []Recipe{}
	}
	if r.Books == nil {
		r.Books = []Book{}
	}
	if r.Movies == nil {
		r.Movies = []Movie{}
	}
	if r.Cafes == nil {
		r.Cafes = []Cafe{}
	}
}
