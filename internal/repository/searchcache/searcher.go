// Package searchcache caches search backend responses in a key-value store,
// so repeated queries skip the backend entirely.
package searchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/caselens/internal/db"
	"github.com/kailas-cloud/caselens/internal/domain/catalog"
)

const cacheKeyPrefix = "caselens:search_cache:"

// Searcher is the inner search contract being decorated.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]catalog.ScoredRecord, error)
}

// store is the consumer interface for the response cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSearcher caches backend responses. Cache failures degrade to a
// backend call, never to an error.
type CachedSearcher struct {
	inner      Searcher
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. cacheTotal is a counter vec with label
// "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Searcher,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSearcher {
	return &CachedSearcher{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Search returns cached matches or calls the inner searcher.
func (c *CachedSearcher) Search(ctx context.Context, query string, limit int) ([]catalog.ScoredRecord, error) {
	key := cacheKey(query, limit)

	if matches, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return matches, nil
	}

	c.incCache("miss")

	matches, err := c.inner.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search backend: %w", err)
	}

	c.putToCache(ctx, key, matches)
	return matches, nil
}

func (c *CachedSearcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(query string, limit int) string {
	h := sha256.Sum256([]byte(query + "\x00" + strconv.Itoa(limit)))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedSearcher) getFromCache(ctx context.Context, key string) ([]catalog.ScoredRecord, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached search response", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	matches, err := decodeMatches(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached search response", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return matches, true
}

func (c *CachedSearcher) putToCache(ctx context.Context, key string, matches []catalog.ScoredRecord) {
	data, err := encodeMatches(matches)
	if err != nil {
		c.logger.Warn("Failed to encode search response", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache search response", zap.String("key", key), zap.Error(err))
	}
}

// matchDTO is the cache serialization of a scored record.
type matchDTO struct {
	Score      float64 `json:"score"`
	CaseNumber string  `json:"caseNumber"`
	Year       string  `json:"year"`
	PolicyArea string  `json:"policyArea"`
	Topic      string  `json:"topic"`
	Text       string  `json:"text"`
	Link       string  `json:"link"`
}

func encodeMatches(matches []catalog.ScoredRecord) ([]byte, error) {
	dtos := make([]matchDTO, len(matches))
	for i := range matches {
		rec := matches[i].Record()
		dtos[i] = matchDTO{
			Score:      matches[i].Score(),
			CaseNumber: rec.CaseNumber(),
			Year:       rec.Year(),
			PolicyArea: rec.PolicyArea(),
			Topic:      rec.Topic(),
			Text:       rec.Text(),
			Link:       rec.Link(),
		}
	}
	return json.Marshal(dtos)
}

func decodeMatches(data []byte) ([]catalog.ScoredRecord, error) {
	var dtos []matchDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, err
	}
	matches := make([]catalog.ScoredRecord, len(dtos))
	for i, d := range dtos {
		rec := catalog.NewRecord(d.CaseNumber, d.Year, d.PolicyArea, d.Topic, d.Text, d.Link)
		matches[i] = catalog.NewScoredRecord(rec, d.Score)
	}
	return matches, nil
}
