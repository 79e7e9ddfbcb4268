package caselens

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/caselens/internal/domain/catalog"
)

type mockSearcher struct {
	fn func(ctx context.Context, query string, limit int) ([]Match, error)
}

func (m *mockSearcher) Search(ctx context.Context, query string, limit int) ([]Match, error) {
	return m.fn(ctx, query, limit)
}

func sampleRecords() []Record {
	records := make([]Record, 0, 30)
	years := []string{"2018", "2020", "2022"}
	for i := 0; i < 30; i++ {
		records = append(records, Record{
			CaseNumber: fmt.Sprintf("AT.%d", 40000+i),
			Year:       years[i/10],
			PolicyArea: "Antitrust",
			Topic:      "abuse of dominance",
			Text:       fmt.Sprintf("commitment decision %d on market conduct", i),
			Link:       "https://example.org",
		})
	}
	return records
}

func TestNew_NoBaseline(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error when no baseline source provided")
	}
}

func TestNew_MissingBaselineFile(t *testing.T) {
	_, err := New(WithBaselineFile("/does/not/exist.json"))
	if err == nil {
		t.Fatal("expected error for missing baseline file")
	}
	if !errors.Is(err, catalog.ErrBaselineUnavailable) {
		t.Errorf("expected ErrBaselineUnavailable, got %v", err)
	}
}

func TestView_Baseline(t *testing.T) {
	client, err := New(WithBaselineRecords(sampleRecords()), WithPageSize(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	view := client.View()
	if view.Mode != "baseline" {
		t.Errorf("mode = %q, want baseline", view.Mode)
	}
	if view.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", view.TotalPages)
	}
	if len(view.Items) != 10 {
		t.Errorf("items = %d, want 10", len(view.Items))
	}
	if view.Items[0].Record.Year != "2022" {
		t.Errorf("newest-first by default, got year %s", view.Items[0].Record.Year)
	}
}

func TestSearch_CustomSearcher(t *testing.T) {
	var gotQuery string
	var gotLimit int
	searcher := &mockSearcher{
		fn: func(_ context.Context, query string, limit int) ([]Match, error) {
			gotQuery = query
			gotLimit = limit
			return []Match{{
				Record: Record{
					CaseNumber: "M.9660",
					Year:       "2021",
					PolicyArea: "Mergers",
					Topic:      "media",
					Text:       "the merger was cleared with remedies",
				},
				Score: 0.88,
			}}, nil
		},
	}

	client, err := New(
		WithBaselineRecords(sampleRecords()),
		WithSearcher(searcher),
		WithSearchLimit(7),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if err := client.Search(context.Background(), "  merger  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "merger" {
		t.Errorf("query = %q, want trimmed %q", gotQuery, "merger")
	}
	if gotLimit != 7 {
		t.Errorf("limit = %d, want 7", gotLimit)
	}

	view := client.View()
	if view.Mode != "search" {
		t.Errorf("mode = %q, want search", view.Mode)
	}
	if len(view.Items) != 1 || view.Items[0].Score != 0.88 {
		t.Fatalf("unexpected items: %+v", view.Items)
	}

	var emphasized bool
	for _, seg := range view.Items[0].Segments {
		if seg.Emphasized && seg.Text == "merger" {
			emphasized = true
		}
	}
	if !emphasized {
		t.Errorf("expected the query emphasized, got %v", view.Items[0].Segments)
	}
}

func TestSearch_NoBackendConfigured(t *testing.T) {
	client, err := New(WithBaselineRecords(sampleRecords()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	err = client.Search(context.Background(), "merger")
	if err == nil {
		t.Fatal("expected error without a search backend")
	}
	if !errors.Is(err, catalog.ErrSearchBackend) {
		t.Errorf("expected ErrSearchBackend, got %v", err)
	}

	if view := client.View(); view.Mode != "baseline" {
		t.Errorf("failed search must keep the baseline view, got %q", view.Mode)
	}
}

func TestSearcherAdapter_WrapsErrors(t *testing.T) {
	adapter := &searcherAdapter{inner: &mockSearcher{
		fn: func(_ context.Context, _ string, _ int) ([]Match, error) {
			return nil, errors.New("boom")
		},
	}}

	_, err := adapter.Search(context.Background(), "q", 10)
	if !errors.Is(err, catalog.ErrSearchBackend) {
		t.Errorf("expected ErrSearchBackend, got %v", err)
	}
}

func TestFiltersSortAndPaging(t *testing.T) {
	client, err := New(WithBaselineRecords(sampleRecords()), WithPageSize(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	client.SetYear("2020")
	view := client.View()
	if len(view.Items) != 10 || view.TotalPages != 1 {
		t.Errorf("year filter: items %d pages %d, want 10/1", len(view.Items), view.TotalPages)
	}

	client.SetYear("")
	if err := client.SetSort("oldest"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view := client.View(); view.Items[0].Record.Year != "2018" {
		t.Errorf("oldest-first: got year %s", view.Items[0].Record.Year)
	}
	if err := client.SetSort("upside-down"); err == nil {
		t.Error("expected error for unknown sort mode")
	}

	if err := client.GoToPage(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := client.GoToPage(17); !errors.Is(err, catalog.ErrPageOutOfRange) {
		t.Errorf("expected ErrPageOutOfRange, got %v", err)
	}
	if view := client.View(); view.Page != 3 {
		t.Errorf("rejected jump must keep page 3, got %d", view.Page)
	}

	client.NextPage()
	if view := client.View(); view.Page != 3 {
		t.Errorf("next must saturate at 3, got %d", view.Page)
	}
	client.PreviousPage()
	if view := client.View(); view.Page != 2 {
		t.Errorf("previous: got %d, want 2", view.Page)
	}

	client.Clear()
	view = client.View()
	if view.Page != 1 || view.Sort != "newest" || view.Filters != (Filters{}) {
		t.Errorf("clear must reset the session, got %+v", view)
	}
}
