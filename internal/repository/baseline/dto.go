package baseline

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/caselens/internal/domain/catalog"
)

// flexString accepts both JSON strings and numbers; baseline exports carry
// the year either way.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year must be a string or number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// recordDTO is the wire shape of a baseline case record.
type recordDTO struct {
	CaseNumber string     `json:"caseNumber"`
	Year       flexString `json:"year"`
	PolicyArea string     `json:"policyArea"`
	Topic      string     `json:"topic"`
	Text       string     `json:"text"`
	Link       string     `json:"link"`
}

func (d *recordDTO) toDomain() catalog.Record {
	return catalog.NewRecord(d.CaseNumber, string(d.Year), d.PolicyArea, d.Topic, d.Text, d.Link)
}
