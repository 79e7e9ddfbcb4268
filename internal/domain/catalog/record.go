package catalog

// Record is a single case entry in the catalog. Records are immutable once
// loaded; the composition pipeline only derives views over them.
type Record struct {
	caseNumber string
	year       string
	policyArea string
	topic      string
	text       string
	link       string
}

// NewRecord creates a case record.
func NewRecord(caseNumber, year, policyArea, topic, text, link string) Record {
	return Record{
		caseNumber: caseNumber,
		year:       year,
		policyArea: policyArea,
		topic:      topic,
		text:       text,
		link:       link,
	}
}

// CaseNumber returns the stable case identifier.
func (r *Record) CaseNumber() string { return r.caseNumber }

// Year returns the case year as loaded (string, possibly non-numeric).
func (r *Record) Year() string { return r.year }

// PolicyArea returns the free-form policy area label.
func (r *Record) PolicyArea() string { return r.policyArea }

// Topic returns the case topic.
func (r *Record) Topic() string { return r.topic }

// Text returns the case prose, the field eligible for highlighting.
func (r *Record) Text() string { return r.text }

// Link returns the URI of the source document.
func (r *Record) Link() string { return r.link }

// ScoredRecord is a Record plus a relevance score from the search backend.
// Only the search path produces scored records.
type ScoredRecord struct {
	record Record
	score  float64
}

// NewScoredRecord creates a scored record.
func NewScoredRecord(record Record, score float64) ScoredRecord {
	return ScoredRecord{record: record, score: score}
}

// Record returns the underlying case record.
func (s *ScoredRecord) Record() Record { return s.record }

// Score returns the relevance score; higher is more relevant.
func (s *ScoredRecord) Score() float64 { return s.score }
