// internal/providers/books/config.go
package books

import "time"

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxResults int
}
