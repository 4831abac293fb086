// internal/providers/omdb/models.go
package omdb

// searchResponse mirrors the movie search payload. The API reports "no
// matches" as Response == "False" with an Error string, not as an HTTP
// error.
type searchResponse struct {
	Search   []movieEntry `json:"Search"`
	Response string       `json:"Response"`
	Error    string       `json:"Error"`
}

type movieEntry struct {
	Title string `json:"Title"`
	Year  string `json:"Year"`
	Type  string `json:"Type"`
}
