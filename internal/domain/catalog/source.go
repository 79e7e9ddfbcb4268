package catalog

// SourceKind discriminates the active result source.
type SourceKind int

const (
	// SourceBaseline means the full dataset loaded at startup is active.
	SourceBaseline SourceKind = iota
	// SourceSearch means a relevance-ranked search result set is active.
	SourceSearch
)

// String returns the wire name of the source kind.
func (k SourceKind) String() string {
	if k == SourceSearch {
		return "search"
	}
	return "baseline"
}

// Source is the tagged union of the two competing data sources. Exactly one
// variant is active at a time; "which mode am I in" is always answerable from
// this one value.
type Source struct {
	kind    SourceKind
	records []Record
	matches []ScoredRecord
	query   string
}

// BaselineSource creates a baseline source over the loaded dataset.
func BaselineSource(records []Record) Source {
	return Source{kind: SourceBaseline, records: records}
}

// SearchSource creates a search result source tagged with the query that
// produced it. The session controller guarantees the query is non-empty.
func SearchSource(matches []ScoredRecord, query string) Source {
	return Source{kind: SourceSearch, matches: matches, query: query}
}

// Kind returns the active variant.
func (s Source) Kind() SourceKind { return s.kind }

// IsSearch reports whether search results are active.
func (s Source) IsSearch() bool { return s.kind == SourceSearch }

// Records returns the baseline records; nil for a search source.
func (s Source) Records() []Record { return s.records }

// Matches returns the scored search matches; nil for a baseline source.
func (s Source) Matches() []ScoredRecord { return s.matches }

// Query returns the query that produced a search source, "" for baseline.
func (s Source) Query() string { return s.query }
