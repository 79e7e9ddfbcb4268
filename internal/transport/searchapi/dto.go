package searchapi

import "github.com/kailas-cloud/caselens/internal/domain/catalog"

// searchResponse is the backend's wire envelope.
type searchResponse struct {
	Results []matchDTO `json:"results"`
}

// matchDTO is one ranked match: a relevance score plus the record payload.
type matchDTO struct {
	Score float64   `json:"score"`
	Case  recordDTO `json:"case"`
}

type recordDTO struct {
	CaseNumber string `json:"caseNumber"`
	Year       string `json:"year"`
	PolicyArea string `json:"policyArea"`
	Topic      string `json:"topic"`
	Text       string `json:"text"`
	Link       string `json:"link"`
}

func (m *matchDTO) toDomain() catalog.ScoredRecord {
	rec := catalog.NewRecord(
		m.Case.CaseNumber, m.Case.Year, m.Case.PolicyArea,
		m.Case.Topic, m.Case.Text, m.Case.Link,
	)
	return catalog.NewScoredRecord(rec, m.Score)
}
