// Package session owns the transition between browsing the baseline dataset
// and viewing search results, plus the filter, sort, and pagination state
// that hangs off it.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/caselens/internal/domain/catalog"
	"github.com/kailas-cloud/caselens/internal/usecase/compose"
	"github.com/kailas-cloud/caselens/internal/usecase/page"
)

const (
	defaultPageSize    = 20
	defaultSearchLimit = 50
)

// Controller coordinates the result source, filters, sort mode, and page
// index for one catalog session. All state lives behind a single mutex;
// the only work done outside it is the backend search call.
type Controller struct {
	searcher Searcher
	baseline []catalog.Record
	limit    int
	pageSize int
	logger   *zap.Logger

	mu       sync.Mutex
	source   catalog.Source
	query    string
	filters  catalog.Filters
	sortMode catalog.SortMode
	index    int
	seq      uint64
	inFlight int
}

// Snapshot is the observable session state: the composed, paginated page
// plus every input that produced it.
type Snapshot struct {
	Mode     catalog.SourceKind
	Query    string
	Filters  catalog.Filters
	Sort     catalog.SortMode
	Page     catalog.Page
	InFlight bool
}

// New creates a controller browsing the given baseline dataset.
func New(baseline []catalog.Record, searcher Searcher, logger *zap.Logger) *Controller {
	return &Controller{
		searcher: searcher,
		baseline: baseline,
		limit:    defaultSearchLimit,
		pageSize: defaultPageSize,
		logger:   logger,
		source:   catalog.BaselineSource(baseline),
		index:    1,
	}
}

// WithPageSize overrides the page size.
func (c *Controller) WithPageSize(size int) *Controller {
	if size > 0 {
		c.pageSize = size
	}
	return c
}

// WithSearchLimit overrides the result-count limit passed to the backend.
func (c *Controller) WithSearchLimit(limit int) *Controller {
	if limit > 0 {
		c.limit = limit
	}
	return c
}

// Submit runs a search and, on success, makes its matches the active source.
// An empty or whitespace-only query returns to baseline mode without a
// backend call. A failed search leaves the session untouched: the error is
// logged and returned for transport-level reporting, but the view the user
// sees is exactly what it was.
//
// Overlapping submissions resolve last-submitted-wins: each call takes a
// monotonic token and a response is discarded if a newer submission was
// issued while it was in flight.
func (c *Controller) Submit(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)

	c.mu.Lock()
	if query == "" {
		c.toBaselineLocked()
		c.mu.Unlock()
		return nil
	}
	c.seq++
	token := c.seq
	c.inFlight++
	c.mu.Unlock()

	matches, err := c.searcher.Search(ctx, query, c.limit)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--

	if err != nil {
		c.logger.Warn("search failed, keeping prior result set",
			zap.String("query", query),
			zap.Error(err),
		)
		return fmt.Errorf("search %q: %w", query, err)
	}

	if token != c.seq {
		c.logger.Debug("discarding stale search response",
			zap.String("query", query),
			zap.Uint64("token", token),
			zap.Uint64("latest", c.seq),
		)
		return nil
	}

	c.source = catalog.SearchSource(matches, query)
	c.query = query
	c.index = 1
	c.logger.Info("search results active",
		zap.String("query", query),
		zap.Int("matches", len(matches)),
	)
	return nil
}

// Clear unconditionally returns to baseline mode with default filters, sort
// mode, and page.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toBaselineLocked()
	c.filters = catalog.Filters{}
	c.sortMode = catalog.SortNewest
}

// SetYear sets or clears ("" clears) the year filter and resets to page 1.
func (c *Controller) SetYear(year string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.Year = year
	c.index = 1
}

// SetPolicyArea sets or clears the policy area filter and resets to page 1.
func (c *Controller) SetPolicyArea(area string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.PolicyArea = area
	c.index = 1
}

// SetSortMode switches the baseline ordering and resets to page 1.
func (c *Controller) SetSortMode(mode catalog.SortMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortMode = mode
	c.index = 1
}

// GoToPage jumps to a page by direct entry. An out-of-range index returns
// catalog.ErrPageOutOfRange and leaves the current page unchanged.
func (c *Controller) GoToPage(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := compose.Compose(c.source, c.filters, c.sortMode)
	if _, err := page.Paginate(view, index, c.pageSize); err != nil {
		return err
	}
	c.index = index
	return nil
}

// NextPage advances one page, saturating at the last page.
func (c *Controller) NextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := compose.Compose(c.source, c.filters, c.sortMode)
	c.index = page.Next(c.index, page.TotalPages(len(view), c.pageSize))
}

// PreviousPage retreats one page, saturating at page 1.
func (c *Controller) PreviousPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = page.Previous(c.index)
}

// Snapshot recomposes the view from the current inputs and returns the
// current page of it together with the inputs themselves.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := compose.Compose(c.source, c.filters, c.sortMode)
	p, err := page.Paginate(view, c.index, c.pageSize)
	if err != nil {
		// The index is reset on every structural change, so this only
		// triggers if state was corrupted; degrade to page 1.
		c.index = 1
		p, _ = page.Paginate(view, 1, c.pageSize)
	}

	return Snapshot{
		Mode:     c.source.Kind(),
		Query:    c.query,
		Filters:  c.filters,
		Sort:     c.sortMode,
		Page:     p,
		InFlight: c.inFlight > 0,
	}
}

// toBaselineLocked drops any active search results and clears the query.
// Caller holds c.mu.
func (c *Controller) toBaselineLocked() {
	c.source = catalog.BaselineSource(c.baseline)
	// Invalidate any in-flight responses.
	c.seq++
	c.query = ""
	c.index = 1
}
