// Package relay talks to the MediaMTX control API and manages its on-disk
// configuration.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redd82/takatrelay/internal/logging"
)

// PathConfig is the subset of MediaMTX path settings this tool manages. The
// same struct serves the control API (JSON) and the config file (YAML).
type PathConfig struct {
	Source            string `json:"source,omitempty" yaml:"source,omitempty"`
	RunOnInit         string `json:"runOnInit,omitempty" yaml:"runOnInit,omitempty"`
	RunOnInitRestart  bool   `json:"runOnInitRestart,omitempty" yaml:"runOnInitRestart,omitempty"`
	RunOnReady        string `json:"runOnReady,omitempty" yaml:"runOnReady,omitempty"`
	RunOnReadyRestart bool   `json:"runOnReadyRestart,omitempty" yaml:"runOnReadyRestart,omitempty"`
	RunOnNotReady     string `json:"runOnNotReady,omitempty" yaml:"runOnNotReady,omitempty"`
}

// PathInfo describes a live path as reported by the control API.
type PathInfo struct {
	Name   string `json:"name"`
	Source struct {
		Type string `json:"type"`
	} `json:"source"`
	Ready bool `json:"ready"`
}

// PathListResponse is the control API paths list envelope.
type PathListResponse struct {
	ItemCount int         `json:"itemCount"`
	Items     []*PathInfo `json:"items"`
}

// Client is an HTTP client for the MediaMTX v3 control API.
type Client struct {
	baseURL    string
	jwt        string
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a control API client. baseURL is the API root, e.g.
// http://127.0.0.1:9997. jwt may be empty when the API is unauthenticated.
func NewClient(baseURL string, jwt string, logger logging.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		jwt:        jwt,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(data)
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.jwt != "" {
		req.Header.Set("Authorization", "Bearer "+c.jwt)
	}
	return c.httpClient.Do(req)
}

// IsAlive reports whether the control API is reachable and answering.
func (c *Client) IsAlive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, "/v3/config/paths/list", nil)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// AddPath registers a new path with the relay server.
func (c *Client) AddPath(ctx context.Context, name string, config PathConfig) error {
	resp, err := c.do(ctx, http.MethodPost, "/v3/config/paths/add/"+name, config)
	if err != nil {
		return fmt.Errorf("failed to add path: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to add path, status: %d", resp.StatusCode)
	}

	c.logger.Info("Added path to relay", "path", name)
	return nil
}

// PatchPath updates an existing path.
func (c *Client) PatchPath(ctx context.Context, name string, config PathConfig) error {
	resp, err := c.do(ctx, http.MethodPatch, "/v3/config/paths/patch/"+name, config)
	if err != nil {
		return fmt.Errorf("failed to patch path: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to patch path, status: %d", resp.StatusCode)
	}

	c.logger.Info("Patched path in relay", "path", name)
	return nil
}

// DeletePath removes a path. A missing path is not an error.
func (c *Client) DeletePath(ctx context.Context, name string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/v3/config/paths/delete/"+name, nil)
	if err != nil {
		return fmt.Errorf("failed to delete path: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("failed to delete path, status: %d", resp.StatusCode)
	}

	c.logger.Info("Deleted path from relay", "path", name)
	return nil
}

// GetPath returns live information about a single path.
func (c *Client) GetPath(ctx context.Context, name string) (*PathInfo, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v3/paths/get/"+name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get path: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get path, status: %d", resp.StatusCode)
	}

	var info PathInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode path info: %w", err)
	}
	return &info, nil
}

// ListPaths returns all configured paths.
func (c *Client) ListPaths(ctx context.Context) ([]*PathInfo, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v3/config/paths/list", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list paths: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to list paths, status: %d", resp.StatusCode)
	}

	var pathList PathListResponse
	if err := json.NewDecoder(resp.Body).Decode(&pathList); err != nil {
		return nil, fmt.Errorf("failed to decode path list: %w", err)
	}
	return pathList.Items, nil
}
