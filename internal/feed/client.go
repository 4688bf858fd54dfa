package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrStatus is returned when a feed answers with anything but 200 OK.
var ErrStatus = errors.New("unexpected status")

// Default feed locations.
const (
	DefaultBuildURL   = "https://maple-pod.github.io/bgm/build.json"
	DefaultCatalogURL = "https://raw.githubusercontent.com/maplestory-music/maplebgm-db/prod/bgm.min.json"
	DefaultUserAgent  = "maplebgm-data"
	DefaultTimeout    = 60 * time.Second
)

// Config locates the feeds.
type Config struct {
	BuildURL   string
	CatalogURL string
	UserAgent  string
	Timeout    time.Duration
}

// DefaultConfig returns the production feeds with a 60 second timeout.
func DefaultConfig() Config {
	return Config{
		BuildURL:   DefaultBuildURL,
		CatalogURL: DefaultCatalogURL,
		UserAgent:  DefaultUserAgent,
		Timeout:    DefaultTimeout,
	}
}

// Client fetches the feeds.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// NewClient creates a Client for the feeds in cfg.
//
// The client is configured with:
//   - cfg.Timeout, or DefaultTimeout when it is zero
//   - cfg.UserAgent, or "maplebgm-data" when it is empty
//
// Example:
//
//	client := NewClient(DefaultConfig())
//	catalog, err := client.Catalog(ctx)
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %w: %s", url, ErrStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	return body, nil
}
