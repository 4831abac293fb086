// internal/common/http/client.go

// Package http provides the timeout-bounded client shared by the
// provider adapters. A call that exceeds the configured timeout counts
// as a provider failure.
package http

import (
	"net/http"
	"time"
)

const userAgent = "vibe-planner/1.0"

type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do sends the request with the service User-Agent attached unless the
// caller set its own.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}
	return c.httpClient.Do(req)
}
