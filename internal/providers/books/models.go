// internal/providers/books/models.go
package books

// volumesResponse mirrors the volume search payload. Only the fields the
// planner needs are decoded; the rest of the payload is ignored.
type volumesResponse struct {
	Items []volumeItem `json:"items"`
}

type volumeItem struct {
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	InfoLink string   `json:"infoLink"`
}
