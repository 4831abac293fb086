// internal/providers/geocode/config.go
package geocode

import "time"

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}
