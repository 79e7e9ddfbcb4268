package session

import (
	"context"

	"github.com/kailas-cloud/caselens/internal/domain/catalog"
)

// Searcher executes a relevance-ranked query against the external semantic
// search backend.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]catalog.ScoredRecord, error)
}
