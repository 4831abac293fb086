// internal/providers/places/config.go
package places

import "time"

type Config struct {
	NearbySearchURL string
	TextSearchURL   string
	APIKey          string
	RadiusMeters    int
	Timeout         time.Duration
	MaxResults      int
}
