package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voice-session-bot/internal/metrics"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://www.youtube.com"

	// maxPageBytes bounds how much of a watch page is read; the metadata
	// lives in the head.
	maxPageBytes = 2 << 20
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient builds a client that issues at most ratePerSec requests per second.
func NewClient(baseURL string, timeout time.Duration, ratePerSec float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if ratePerSec <= 0 {
		ratePerSec = 2
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: NewMetricsRoundTripper(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
	}
}

// NewTestClient creates an unthrottled client with a custom base URL for testing.
func NewTestClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

// SearchURL builds the results page URL for a free-text query.
func (c *Client) SearchURL(query string) string {
	return fmt.Sprintf("%s/results?search_query=%s", c.baseURL, url.QueryEscape(query))
}

// WatchURL builds a canonical watch URL for a video ID.
func (c *Client) WatchURL(videoID string) string {
	return fmt.Sprintf("%s/watch?v=%s", c.baseURL, url.QueryEscape(videoID))
}

// FetchPage returns the body of pageURL, capped at maxPageBytes.
func (c *Client) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// -- Middleware --

type MetricsRoundTripper struct {
	Proxied http.RoundTripper
}

func NewMetricsRoundTripper(proxied http.RoundTripper) *MetricsRoundTripper {
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	return &MetricsRoundTripper{Proxied: proxied}
}

func (mrt *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mrt.Proxied.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}

	endpoint := endpointLabel(req.URL.Path)
	metrics.ResolverRequestDuration.WithLabelValues(endpoint, status).Observe(duration)
	metrics.ResolverRequests.WithLabelValues(endpoint, status).Inc()

	return resp, err
}

func endpointLabel(path string) string {
	switch {
	case strings.HasPrefix(path, "/results"):
		return "search"
	case strings.HasPrefix(path, "/watch"):
		return "watch"
	default:
		return "other"
	}
}
