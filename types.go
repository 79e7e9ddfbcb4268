package caselens

import (
	"context"

	"github.com/kailas-cloud/caselens/internal/domain/catalog"
)

// Record is a published case record.
type Record struct {
	CaseNumber string
	Year       string
	PolicyArea string
	Topic      string
	Text       string
	Link       string
}

// Match pairs a record with its relevance score.
type Match struct {
	Record Record
	Score  float64
}

// Searcher supplies relevance-ranked matches for a query. Implement it to
// plug a custom backend into the client via WithSearcher.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Match, error)
}

// Segment is a run of record text, emphasized where the active query matched.
type Segment struct {
	Text       string
	Emphasized bool
}

// Item is one rendered record on a page. Score is meaningful only in
// search mode.
type Item struct {
	Record   Record
	Score    float64
	Segments []Segment
}

// Filters are the active facet constraints. Empty string means unset.
type Filters struct {
	Year       string
	PolicyArea string
}

// View is the current page of the catalog as the user sees it.
type View struct {
	Mode       string // "baseline" or "search"
	Query      string
	Filters    Filters
	Sort       string // "newest" or "oldest"
	Page       int
	TotalPages int
	InFlight   bool
	Items      []Item
}

func toInternalRecord(r Record) catalog.Record {
	return catalog.NewRecord(r.CaseNumber, r.Year, r.PolicyArea, r.Topic, r.Text, r.Link)
}

func fromInternalRecord(r catalog.Record) Record {
	return Record{
		CaseNumber: r.CaseNumber(),
		Year:       r.Year(),
		PolicyArea: r.PolicyArea(),
		Topic:      r.Topic(),
		Text:       r.Text(),
		Link:       r.Link(),
	}
}

func fromInternalSegments(segs []catalog.Segment) []Segment {
	if segs == nil {
		return nil
	}
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = Segment{Text: s.Text, Emphasized: s.Emphasized}
	}
	return out
}
