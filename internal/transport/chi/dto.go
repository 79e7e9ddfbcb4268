package chi

import (
	"github.com/kailas-cloud/caselens/internal/domain/catalog"
	"github.com/kailas-cloud/caselens/internal/usecase/highlight"
	"github.com/kailas-cloud/caselens/internal/usecase/session"
)

// segmentDTO is one run of record text with its emphasis flag.
type segmentDTO struct {
	Text       string `json:"text"`
	Emphasized bool   `json:"emphasized,omitempty"`
}

// itemDTO is one rendered record. Score is present only in search mode.
type itemDTO struct {
	CaseNumber string       `json:"caseNumber"`
	Year       string       `json:"year"`
	PolicyArea string       `json:"policyArea"`
	Topic      string       `json:"topic"`
	Link       string       `json:"link"`
	Score      *float64     `json:"score,omitempty"`
	Text       []segmentDTO `json:"text"`
}

// filtersDTO mirrors catalog.Filters on the wire; empty means absent.
type filtersDTO struct {
	Year       string `json:"year"`
	PolicyArea string `json:"policyArea"`
}

// viewResponse is the composed, paginated state returned by every mutating
// endpoint and GET /api/view.
type viewResponse struct {
	Mode       string     `json:"mode"`
	Query      string     `json:"query"`
	Filters    filtersDTO `json:"filters"`
	Sort       string     `json:"sort"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
	PageSize   int        `json:"pageSize"`
	InFlight   bool       `json:"inFlight"`
	Items      []itemDTO  `json:"items"`
}

// facetsResponse lists the fixed facet controls the UI renders.
type facetsResponse struct {
	PolicyAreas []string `json:"policyAreas"`
	Years       []int    `json:"years"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	codeBadRequest    = "bad_request"
	codeSearchFailed  = "search_backend_error"
	codeUnauthorized  = "unauthorized"
	codeInternalError = "internal_error"
)

// viewFromSnapshot renders a session snapshot, highlighting record text with
// the snapshot's query.
func viewFromSnapshot(snap session.Snapshot) viewResponse {
	hl := highlight.New(snap.Query)

	entries := snap.Page.Entries()
	items := make([]itemDTO, len(entries))
	for i := range entries {
		rec := entries[i].Record()
		item := itemDTO{
			CaseNumber: rec.CaseNumber(),
			Year:       rec.Year(),
			PolicyArea: rec.PolicyArea(),
			Topic:      rec.Topic(),
			Link:       rec.Link(),
			Text:       segmentsToDTO(hl.Segments(rec.Text())),
		}
		if snap.Mode == catalog.SourceSearch {
			score := entries[i].Score()
			item.Score = &score
		}
		items[i] = item
	}

	return viewResponse{
		Mode:       snap.Mode.String(),
		Query:      snap.Query,
		Filters:    filtersDTO{Year: snap.Filters.Year, PolicyArea: snap.Filters.PolicyArea},
		Sort:       snap.Sort.String(),
		Page:       snap.Page.Index(),
		TotalPages: snap.Page.TotalPages(),
		PageSize:   snap.Page.Size(),
		InFlight:   snap.InFlight,
		Items:      items,
	}
}

func segmentsToDTO(segments []catalog.Segment) []segmentDTO {
	out := make([]segmentDTO, len(segments))
	for i, s := range segments {
		out[i] = segmentDTO{Text: s.Text, Emphasized: s.Emphasized}
	}
	return out
}
