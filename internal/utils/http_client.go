package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client used by the
// outbound adapters.
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOption tweaks the underlying resty client.
type HTTPClientOption func(c *resty.Client)

// WithBaseURL sets the URL that relative request paths are resolved against.
func WithBaseURL(url string) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetBaseURL(url)
	}
}

// WithTimeout bounds every request made through the client.
func WithTimeout(d time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

// WithRetries retries failed requests count times, waiting at least wait
// between attempts. Only transport errors and 5xx answers are retried.
func WithRetries(count int, wait time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetRetryCount(count).
			SetRetryWaitTime(wait).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= 500
			})
	}
}

// NewHTTPClient creates an independent HTTP client with its own connection
// pool.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.WithTimeout(10 * time.Second))
//	resp, err := client.R().Get("https://api.example.com/health")
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	c := resty.New()
	for _, opt := range opts {
		opt(c)
	}
	return &HTTPClient{Client: c}
}
