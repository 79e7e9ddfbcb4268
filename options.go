package caselens

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baselinePath    string
	baselineURL     string
	baselineRecords []Record

	searchBaseURL string
	searchAPIKey  string
	searchTimeout time.Duration
	searcher      Searcher

	redisAddrs    []string
	redisPassword string
	cacheTTL      time.Duration

	pageSize    int
	searchLimit int

	logger *zap.Logger
}

// WithBaselineFile loads the curated dataset from a local JSON file.
func WithBaselineFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baselinePath = path
	})
}

// WithBaselineURL loads the curated dataset from an HTTP endpoint.
func WithBaselineURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baselineURL = url
	})
}

// WithBaselineRecords supplies the curated dataset directly, skipping any
// file or network load. Useful for tests and embedded datasets.
func WithBaselineRecords(records []Record) Option {
	return optionFunc(func(c *clientConfig) {
		c.baselineRecords = records
	})
}

// WithSearchBackend points the client at a relevance search HTTP API.
// apiKey may be empty for unauthenticated backends.
func WithSearchBackend(baseURL, apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchBaseURL = baseURL
		c.searchAPIKey = apiKey
	})
}

// WithSearchTimeout bounds each backend call. Default: 10s.
func WithSearchTimeout(timeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchTimeout = timeout
	})
}

// WithSearcher plugs in a custom search implementation instead of the HTTP
// backend. Takes precedence over WithSearchBackend.
func WithSearcher(s Searcher) Option {
	return optionFunc(func(c *clientConfig) {
		c.searcher = s
	})
}

// WithRedisCache caches backend responses in a Redis or Valkey instance.
// ttl bounds how long a cached response is served; zero means no expiry.
func WithRedisCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.redisPassword = password
		c.cacheTTL = ttl
	})
}

// WithPageSize sets how many records each page holds. Default: 20.
func WithPageSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = size
	})
}

// WithSearchLimit caps how many matches a single search requests. Default: 50.
func WithSearchLimit(limit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchLimit = limit
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
