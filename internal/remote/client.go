package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Outcome classes of a failed remote call.
var (
	ErrNotFound       = errors.New("remote resource not found")
	ErrServerError    = errors.New("remote server error")
	ErrNetworkFailure = errors.New("remote network failure")
)

// Observer receives the outcome and latency of every remote call.
type Observer interface {
	ObserveRemote(service, outcome string, elapsed time.Duration)
}

// Client is a plain JSON-over-HTTP client that classifies failures into outcome
// classes. It never retries; callers bound the call through ctx.
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
	observer   Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver attaches a metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient creates a client for the API rooted at baseURL. name labels log lines and metrics.
func NewClient(name, baseURL string, opts ...Option) *Client {
	c := &Client{
		name:       name,
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request and returns the body of a 2xx/3xx response.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	body, err := c.get(ctx, path)
	if c.observer != nil {
		c.observer.ObserveRemote(c.name, Outcome(err), time.Since(start))
	}
	return body, err
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: executing request to %s: %w", ErrNetworkFailure, url, err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: reading response from %s: %w", ErrNetworkFailure, url, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		slog.Debug("remote resource not found", "service", c.name, "url", url)
		return nil, fmt.Errorf("%w: HTTP 404 from %s", ErrNotFound, url)
	case resp.StatusCode >= 500:
		slog.Warn("remote server error", "service", c.name, "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrServerError, resp.StatusCode, url)
	case resp.StatusCode >= 400:
		// Remaining 4xx responses share the server class.
		slog.Warn("remote request rejected", "service", c.name, "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: HTTP %d from %s: %s", ErrServerError, resp.StatusCode, url, truncate(body, 256))
	}

	return body, nil
}

// GetJSON performs a GET request and unmarshals the JSON response.
func (c *Client) GetJSON(ctx context.Context, path string, dest any) error {
	body, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: parsing JSON from %s: %w", ErrNetworkFailure, path, err)
	}
	return nil
}

// Outcome returns the metric label for err.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrServerError):
		return "server_error"
	default:
		return "network_failure"
	}
}

// IsUnreachable reports whether err is a server or network outcome, the class
// surfaced to users as "service unreachable".
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrServerError) || errors.Is(err, ErrNetworkFailure)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
