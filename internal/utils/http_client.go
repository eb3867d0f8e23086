package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// outbound HTTP defaults for calls to third-party APIs (mail providers)
const (
	clientTimeout    = 10 * time.Second
	clientRetryCount = 2
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance configured
// with the application's outbound defaults: a request timeout and a small
// retry budget for transient network failures.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetTimeout(clientTimeout).
		SetRetryCount(clientRetryCount)

	return &HTTPClient{Client: client}
}
