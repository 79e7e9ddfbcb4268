// Package baseline loads the full case dataset once at startup, from a local
// JSON file or an HTTP endpoint.
package baseline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kailas-cloud/caselens/internal/domain/catalog"
)

const defaultHTTPTimeout = 30 * time.Second

// Loader fetches the baseline dataset. Exactly one of path or url is set.
type Loader struct {
	path   string
	url    string
	client *http.Client
}

// NewFile creates a loader reading a local JSON file.
func NewFile(path string) *Loader {
	return &Loader{path: path}
}

// NewHTTP creates a loader fetching a JSON document over HTTP.
func NewHTTP(url string) *Loader {
	return &Loader{url: url, client: &http.Client{Timeout: defaultHTTPTimeout}}
}

// Load fetches and decodes the dataset. Errors wrap
// catalog.ErrBaselineUnavailable; the caller degrades to an empty dataset.
func (l *Loader) Load(ctx context.Context) ([]catalog.Record, error) {
	data, err := l.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalog.ErrBaselineUnavailable, err)
	}

	var dtos []recordDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("%w: decode dataset: %w", catalog.ErrBaselineUnavailable, err)
	}

	records := make([]catalog.Record, len(dtos))
	for i := range dtos {
		records[i] = dtos[i].toDomain()
	}
	return records, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if l.url == "" {
		data, err := os.ReadFile(filepath.Clean(l.path))
		if err != nil {
			return nil, fmt.Errorf("read dataset file: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build dataset request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset: unexpected status %d", resp.StatusCode)
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read dataset response: %w", err)
	}
	return buf, nil
}
