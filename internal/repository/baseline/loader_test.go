package baseline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/caselens/internal/domain/catalog"
)

const sampleDataset = `[
	{
		"caseNumber": "AT.40099",
		"year": "2024",
		"policyArea": "Antitrust",
		"topic": "App store rules",
		"text": "Commission decision on app store anti-steering provisions",
		"link": "https://example.org/AT.40099"
	},
	{
		"caseNumber": "M.10615",
		"year": 2022,
		"policyArea": "Mergers",
		"topic": "Airline consolidation",
		"text": "Conditional clearance with slot remedies",
		"link": "https://example.org/M.10615"
	}
]`

func writeDataset(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.json")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestLoad_FromFile(t *testing.T) {
	loader := NewFile(writeDataset(t, sampleDataset))

	records, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].CaseNumber() != "AT.40099" {
		t.Errorf("expected AT.40099, got %s", records[0].CaseNumber())
	}
	if records[1].Year() != "2022" {
		t.Errorf("numeric year must decode as string, got %q", records[1].Year())
	}
	if records[1].PolicyArea() != "Mergers" {
		t.Errorf("expected Mergers, got %s", records[1].PolicyArea())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	loader := NewFile(filepath.Join(t.TempDir(), "absent.json"))

	_, err := loader.Load(context.Background())
	if !errors.Is(err, catalog.ErrBaselineUnavailable) {
		t.Fatalf("expected ErrBaselineUnavailable, got %v", err)
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	loader := NewFile(writeDataset(t, `{"not": "an array"`))

	_, err := loader.Load(context.Background())
	if !errors.Is(err, catalog.ErrBaselineUnavailable) {
		t.Fatalf("expected ErrBaselineUnavailable, got %v", err)
	}
}

func TestLoad_FromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleDataset))
	}))
	defer srv.Close()

	records, err := NewHTTP(srv.URL).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

func TestLoad_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL).Load(context.Background())
	if !errors.Is(err, catalog.ErrBaselineUnavailable) {
		t.Fatalf("expected ErrBaselineUnavailable, got %v", err)
	}
}
