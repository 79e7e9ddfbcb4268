// Package caselens embeds the case catalog browsing engine: a curated
// baseline dataset, an optional relevance search backend, facet filters,
// sorting, and pagination behind a single Client.
package caselens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/caselens/internal/db"
	dbRedis "github.com/kailas-cloud/caselens/internal/db/redis"
	"github.com/kailas-cloud/caselens/internal/domain/catalog"
	"github.com/kailas-cloud/caselens/internal/repository/baseline"
	"github.com/kailas-cloud/caselens/internal/repository/searchcache"
	"github.com/kailas-cloud/caselens/internal/transport/searchapi"
	"github.com/kailas-cloud/caselens/internal/usecase/highlight"
	sessionuc "github.com/kailas-cloud/caselens/internal/usecase/session"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the caselens SDK entry point. Methods are safe for concurrent
// use.
type Client struct {
	session *sessionuc.Controller
	store   db.Store
}

// New creates a caselens Client, loading the baseline dataset from
// whichever source is configured.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	records, err := loadBaseline(cfg)
	if err != nil {
		return nil, err
	}

	searcher, store, err := buildSearcher(cfg, logger)
	if err != nil {
		return nil, err
	}

	session := sessionuc.New(records, searcher, logger)
	if cfg.pageSize > 0 {
		session = session.WithPageSize(cfg.pageSize)
	}
	if cfg.searchLimit > 0 {
		session = session.WithSearchLimit(cfg.searchLimit)
	}

	return &Client{session: session, store: store}, nil
}

func loadBaseline(cfg *clientConfig) ([]catalog.Record, error) {
	if cfg.baselineRecords != nil {
		records := make([]catalog.Record, len(cfg.baselineRecords))
		for i, r := range cfg.baselineRecords {
			records[i] = toInternalRecord(r)
		}
		return records, nil
	}

	var loader *baseline.Loader
	switch {
	case cfg.baselinePath != "":
		loader = baseline.NewFile(cfg.baselinePath)
	case cfg.baselineURL != "":
		loader = baseline.NewHTTP(cfg.baselineURL)
	default:
		return nil, errors.New(
			"caselens: baseline dataset required (use WithBaselineFile, WithBaselineURL or WithBaselineRecords)",
		)
	}

	records, err := loader.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("caselens: load baseline: %w", err)
	}
	return records, nil
}

func buildSearcher(cfg *clientConfig, logger *zap.Logger) (sessionuc.Searcher, db.Store, error) {
	var searcher sessionuc.Searcher
	switch {
	case cfg.searcher != nil:
		searcher = &searcherAdapter{inner: cfg.searcher}
	case cfg.searchBaseURL != "":
		searcher = searchapi.NewClient(&searchapi.Config{
			BaseURL: cfg.searchBaseURL,
			APIKey:  cfg.searchAPIKey,
			Timeout: cfg.searchTimeout,
			Logger:  logger,
		})
	default:
		searcher = noopSearcher{}
	}

	if len(cfg.redisAddrs) == 0 {
		return searcher, nil, nil
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.redisAddrs,
		Password: cfg.redisPassword,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("caselens: create cache store: %w", err)
	}
	if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("caselens: cache store not ready: %w", err)
	}

	return searchcache.New(searcher, store, cfg.cacheTTL, nil, logger), store, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Search submits a query and switches the view to relevance-ranked search
// results. An empty or whitespace query returns to the baseline view. On
// backend failure the current view is left untouched and the error returned.
func (c *Client) Search(ctx context.Context, query string) error {
	if err := c.session.Submit(ctx, query); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return nil
}

// Clear returns to the baseline view and resets filters, sort and page.
func (c *Client) Clear() {
	c.session.Clear()
}

// SetYear constrains the view to a publication year. Empty clears it.
func (c *Client) SetYear(year string) {
	c.session.SetYear(year)
}

// SetPolicyArea constrains the view to a policy area. Empty clears it.
func (c *Client) SetPolicyArea(area string) {
	c.session.SetPolicyArea(area)
}

// SetSort switches the baseline ordering: "newest" or "oldest".
func (c *Client) SetSort(mode string) error {
	m, err := catalog.ParseSortMode(mode)
	if err != nil {
		return fmt.Errorf("set sort: %w", err)
	}
	c.session.SetSortMode(m)
	return nil
}

// GoToPage jumps to a page by number. An out-of-range page returns
// catalog.ErrPageOutOfRange and keeps the current page.
func (c *Client) GoToPage(page int) error {
	if err := c.session.GoToPage(page); err != nil {
		return fmt.Errorf("go to page: %w", err)
	}
	return nil
}

// NextPage advances one page, saturating at the last page.
func (c *Client) NextPage() {
	c.session.NextPage()
}

// PreviousPage retreats one page, saturating at page 1.
func (c *Client) PreviousPage() {
	c.session.PreviousPage()
}

// View renders the current page, with the active query emphasized in each
// record's text.
func (c *Client) View() View {
	snap := c.session.Snapshot()

	hl := highlight.New(snap.Query)
	entries := snap.Page.Entries()
	items := make([]Item, len(entries))
	for i := range entries {
		record := entries[i].Record()
		items[i] = Item{
			Record:   fromInternalRecord(record),
			Score:    entries[i].Score(),
			Segments: fromInternalSegments(hl.Segments(record.Text())),
		}
	}

	return View{
		Mode:       snap.Mode.String(),
		Query:      snap.Query,
		Filters:    Filters{Year: snap.Filters.Year, PolicyArea: snap.Filters.PolicyArea},
		Sort:       snap.Sort.String(),
		Page:       snap.Page.Index(),
		TotalPages: snap.Page.TotalPages(),
		InFlight:   snap.InFlight,
		Items:      items,
	}
}

// searcherAdapter wraps the public Searcher to satisfy the internal one.
type searcherAdapter struct {
	inner Searcher
}

func (a *searcherAdapter) Search(ctx context.Context, query string, limit int) ([]catalog.ScoredRecord, error) {
	matches, err := a.inner.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrSearchBackend, err)
	}
	out := make([]catalog.ScoredRecord, len(matches))
	for i, m := range matches {
		out[i] = catalog.NewScoredRecord(toInternalRecord(m.Record), m.Score)
	}
	return out, nil
}

// noopSearcher rejects queries when no backend is configured.
type noopSearcher struct{}

func (noopSearcher) Search(_ context.Context, _ string, _ int) ([]catalog.ScoredRecord, error) {
	return nil, fmt.Errorf(
		"%w: no search backend configured (use WithSearchBackend or WithSearcher)",
		catalog.ErrSearchBackend,
	)
}
