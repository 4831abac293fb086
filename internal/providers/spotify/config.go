// internal/providers/spotify/config.go
package spotify

import "time"

type Config struct {
	TokenURL     string
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	MaxResults   int
}
