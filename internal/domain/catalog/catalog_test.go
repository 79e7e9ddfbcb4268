package catalog

import (
	"errors"
	"testing"
)

func TestSource_Variants(t *testing.T) {
	record := NewRecord("AT.40099", "2018", "Antitrust", "Android", "decision text", "https://example.org")

	base := BaselineSource([]Record{record})
	if base.Kind() != SourceBaseline || base.IsSearch() {
		t.Error("baseline source must report baseline kind")
	}
	if len(base.Records()) != 1 || base.Matches() != nil || base.Query() != "" {
		t.Error("baseline source must only carry records")
	}
	if got := base.Kind().String(); got != "baseline" {
		t.Errorf("kind string = %q, want baseline", got)
	}

	match := NewScoredRecord(record, 0.91)
	search := SearchSource([]ScoredRecord{match}, "android")
	if !search.IsSearch() {
		t.Error("search source must report search kind")
	}
	if search.Records() != nil || len(search.Matches()) != 1 {
		t.Error("search source must only carry matches")
	}
	if search.Query() != "android" {
		t.Errorf("query = %q, want android", search.Query())
	}
	if got := search.Kind().String(); got != "search" {
		t.Errorf("kind string = %q, want search", got)
	}
}

func TestScoredRecord(t *testing.T) {
	record := NewRecord("M.8677", "2019", "Mergers", "Rail", "text", "")
	scored := NewScoredRecord(record, 0.42)
	if scored.Score() != 0.42 {
		t.Errorf("score = %v, want 0.42", scored.Score())
	}
	if got := scored.Record(); got.CaseNumber() != "M.8677" {
		t.Errorf("case number = %q, want M.8677", got.CaseNumber())
	}
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SortMode
		wantErr bool
	}{
		{"newest", SortNewest, false},
		{"oldest", SortOldest, false},
		{"", 0, true},
		{"NEWEST", 0, true},
		{"random", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSortMode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSortMode(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSortMode(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSortMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("round trip: %v.String() = %q, want %q", got, got.String(), tt.in)
		}
	}
}

func TestFilters_IsZero(t *testing.T) {
	if !(Filters{}).IsZero() {
		t.Error("empty filters must be zero")
	}
	if (Filters{Year: "2020"}).IsZero() {
		t.Error("year filter is not zero")
	}
	if (Filters{PolicyArea: "Antitrust"}).IsZero() {
		t.Error("policy area filter is not zero")
	}
}

func TestPage_Accessors(t *testing.T) {
	entries := []Entry{
		NewEntry(NewRecord("AT.1", "2020", "Antitrust", "t", "x", ""), 0),
	}
	page := NewPage(entries, 2, 20, 3)
	if page.Index() != 2 || page.Size() != 20 || page.TotalPages() != 3 {
		t.Errorf("unexpected page shape: %d/%d/%d", page.Index(), page.Size(), page.TotalPages())
	}
	if len(page.Entries()) != 1 {
		t.Errorf("entries = %d, want 1", len(page.Entries()))
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	sentinels := []error{ErrPageOutOfRange, ErrSearchBackend, ErrBaselineUnavailable}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v must not match %v", a, b)
			}
		}
	}
}
