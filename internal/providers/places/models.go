// internal/providers/places/models.go
package places

// placesResponse mirrors both the nearby and the text search payloads.
// The API reports request-level problems through Status, not through
// HTTP status codes.
type placesResponse struct {
	Results []placeResult `json:"results"`
	Status  string        `json:"status"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating"`
}
