package catalog

import "fmt"

// Filters constrains the view on two independent dimensions. An empty field
// means no constraint on that dimension; set fields combine with AND.
type Filters struct {
	Year       string
	PolicyArea string
}

// IsZero reports whether no dimension is constrained.
func (f Filters) IsZero() bool { return f.Year == "" && f.PolicyArea == "" }

// SortMode orders baseline views by year. It is ignored while search results
// are active: those always order by descending score.
type SortMode int

const (
	// SortNewest orders by year descending (default).
	SortNewest SortMode = iota
	// SortOldest orders by year ascending.
	SortOldest
)

// String returns the wire name of the sort mode.
func (m SortMode) String() string {
	if m == SortOldest {
		return "oldest"
	}
	return "newest"
}

// ParseSortMode parses a wire sort mode name.
func ParseSortMode(s string) (SortMode, error) {
	switch s {
	case "newest":
		return SortNewest, nil
	case "oldest":
		return SortOldest, nil
	default:
		return SortNewest, fmt.Errorf("unknown sort mode %q", s)
	}
}
