package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:    HTTPConfig{Port: 8080},
		Search:  SearchConfig{BaseURL: "https://search.example.org"},
		Catalog: CatalogConfig{BaselinePath: "data/cases.json"},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingSearchBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Search.BaseURL = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing search.base_url")
	}
	if !strings.Contains(err.Error(), "search.base_url") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestValidate_MissingBaseline(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.BaselinePath = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when neither baseline source is set")
	}

	cfg.Catalog.BaselineURL = "https://data.example.org/cases.json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("baseline_url alone is valid: %v", err)
	}

	cfg.Catalog.BaselinePath = "data/cases.json"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when both baseline sources are set")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_YearRange(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.YearFrom = 2025
	cfg.Catalog.YearTo = 2016

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted year range")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.Catalog.PageSize != 20 {
		t.Errorf("expected default page size 20, got %d", cfg.Catalog.PageSize)
	}
	if cfg.Search.Limit != 50 {
		t.Errorf("expected default search limit 50, got %d", cfg.Search.Limit)
	}
	if cfg.Search.CacheTTLSec != 300 {
		t.Errorf("expected default cache TTL 300, got %d", cfg.Search.CacheTTLSec)
	}
	if len(cfg.Catalog.PolicyAreas) == 0 {
		t.Error("expected default policy areas")
	}
	if cfg.Catalog.YearFrom > cfg.Catalog.YearTo {
		t.Errorf("default year range is inverted: %d..%d", cfg.Catalog.YearFrom, cfg.Catalog.YearTo)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.PageSize = 10
	cfg.Search.Limit = 25
	cfg.ApplyDefaults()

	if cfg.Catalog.PageSize != 10 {
		t.Errorf("explicit page size overwritten: %d", cfg.Catalog.PageSize)
	}
	if cfg.Search.Limit != 25 {
		t.Errorf("explicit search limit overwritten: %d", cfg.Search.Limit)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CASELENS_TEST_KEY", "sekrit")

	in := []byte("api_key: ${CASELENS_TEST_KEY}\nbase_url: ${CASELENS_TEST_URL:-https://fallback}")
	out := string(expandEnvVars(in))

	if !strings.Contains(out, "sekrit") {
		t.Errorf("expected env substitution, got %q", out)
	}
	if !strings.Contains(out, "https://fallback") {
		t.Errorf("expected default substitution, got %q", out)
	}
}
