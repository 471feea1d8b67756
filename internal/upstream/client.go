// Package upstream talks to the dividends API that pre-computes the upcoming
// ex-dividend payload.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/exdivpulse/internal/domain/models"
	"github.com/guttosm/exdivpulse/internal/logger"
)

// upcomingPath is appended to the configured base URL.
const upcomingPath = "/api/dividends/upcoming/ex"

// Fetcher loads the upcoming ex-dividend payload.
type Fetcher interface {
	FetchUpcomingEx(ctx context.Context, days int, includeToday bool) (*models.UpcomingResponse, error)
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	text := strings.TrimSpace(strings.TrimPrefix(e.Status, strconv.Itoa(e.StatusCode)))
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch: %d %s", e.StatusCode, text)
}

// Client is an HTTP Fetcher. It never retries and never caches.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for baseURL. A zero timeout leaves the request
// bounded only by its context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the underlying *http.Client (tests, custom transports).
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// UpcomingURL renders the request URL for the given parameters.
func (c *Client) UpcomingURL(days int, includeToday bool) string {
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))
	q.Set("include_today", strconv.FormatBool(includeToday))
	return c.baseURL + upcomingPath + "?" + q.Encode()
}

// FetchUpcomingEx performs GET {base}/api/dividends/upcoming/ex?days=N&include_today=B.
func (c *Client) FetchUpcomingEx(ctx context.Context, days int, includeToday bool) (*models.UpcomingResponse, error) {
	endpoint := c.UpcomingURL(days, includeToday)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	log := logger.Component("upstream")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Warn().
			Int("status", resp.StatusCode).
			Str("url", endpoint).
			Dur("elapsed", time.Since(start)).
			Msg("upstream returned non-2xx")
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var out models.UpcomingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode upstream payload: %w", err)
	}

	log.Debug().
		Int("groups", len(out.Groups)).
		Int("days", days).
		Dur("elapsed", time.Since(start)).
		Msg("upstream payload loaded")
	return &out, nil
}

// Ping issues the smallest possible request to check the API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.FetchUpcomingEx(ctx, 1, false)
	return err
}

// CloseIdleConnections releases pooled connections on shutdown.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}
