// Package notify delivers stream lifecycle notifications to the callback endpoint.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redd82/takatrelay/internal/logging"
)

// Client posts lifecycle notifications. Notifications are advisory telemetry:
// a failed POST is reported but never retried.
type Client struct {
	httpClient *http.Client
	logger     logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a notification client.
func NewClient(logger logging.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post sends payload as JSON to url and returns the HTTP status code. When
// bearerToken is non-empty an Authorization header is attached. A transport
// failure is reported as status 0 together with the error; the response body
// is always discarded.
func (c *Client) Post(ctx context.Context, url string, payload any, bearerToken string) (int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to create notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("notification request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Info("Notification delivered", "url", url, "status", resp.StatusCode)
	return resp.StatusCode, nil
}
