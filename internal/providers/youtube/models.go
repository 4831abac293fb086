// internal/providers/youtube/models.go
package youtube

// searchResponse mirrors the video search payload.
type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID      videoID `json:"id"`
	Snippet snippet `json:"snippet"`
}

type videoID struct {
	VideoID string `json:"videoId"`
}

type snippet struct {
	Title string `json:"title"`
}
