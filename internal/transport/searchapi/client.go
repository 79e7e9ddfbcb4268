// Package searchapi is the HTTP client for the external semantic search
// backend.
package searchapi

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

	"go.uber.org/zap"

	"github.com/kailas-cloud/caselens/internal/domain/catalog"
	"github.com/kailas-cloud/caselens/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// Client calls the search backend's GET endpoint:
//
//	GET {base}/search?q=<query>&limit=<n>
//
// The response carries a sequence of matches, each with a relevance score and
// a case record payload.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	logger  *zap.Logger
}

// Config holds the search backend settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a search backend client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Search runs a relevance-ranked query. All failures wrap
// catalog.ErrSearchBackend so callers can treat them uniformly as
// "search did nothing".
func (c *Client) Search(ctx context.Context, query string, limit int) ([]catalog.ScoredRecord, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	endpoint := c.baseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", catalog.ErrSearchBackend, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %w", catalog.ErrSearchBackend, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", catalog.ErrSearchBackend, resp.StatusCode, string(body))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: decode response: %w", catalog.ErrSearchBackend, err)
	}

	metrics.SearchRequestsTotal.WithLabelValues("success").Inc()
	metrics.SearchRequestDuration.Observe(duration.Seconds())

	matches := make([]catalog.ScoredRecord, len(payload.Results))
	for i := range payload.Results {
		matches[i] = payload.Results[i].toDomain()
	}

	c.logger.Debug("search backend responded",
		zap.String("query", query),
		zap.Int("matches", len(matches)),
		zap.Duration("latency", duration),
	)
	return matches, nil
}

// HealthCheck verifies backend reachability: any HTTP response counts.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?q=&limit=0", http.NoBody)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("search backend unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}
