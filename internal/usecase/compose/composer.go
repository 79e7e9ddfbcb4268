// Package compose derives the display view from the active result source.
package compose

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/caselens/internal/domain/catalog"
)

// Compose produces the filtered, sorted view over the active source. It is
// purely functional: any change to source, filters, or sort mode requires a
// full recompute, since changing the sort dimension changes total order.
//
// Search sources order by descending score with a stable sort, so equal
// scores retain backend order. Baseline sources order by year parsed as an
// integer, descending for SortNewest and ascending for SortOldest; the sort
// mode is ignored while search results are active.
func Compose(source catalog.Source, filters catalog.Filters, mode catalog.SortMode) catalog.View {
	keep := predicate(filters)
	var view catalog.View

	if source.IsSearch() {
		for _, m := range source.Matches() {
			if rec := m.Record(); keep(rec) {
				view = append(view, catalog.NewEntry(rec, m.Score()))
			}
		}
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Score() > view[j].Score()
		})
		return view
	}

	for _, rec := range source.Records() {
		if keep(rec) {
			view = append(view, catalog.NewEntry(rec, 0))
		}
	}
	sort.SliceStable(view, func(i, j int) bool {
		ri, rj := view[i].Record(), view[j].Record()
		a := yearValue(ri.Year())
		b := yearValue(rj.Year())
		if mode == catalog.SortOldest {
			return a < b
		}
		return a > b
	})
	return view
}

// predicate builds the filter conjunction: year by exact value, policy area
// by normalized label. Absent dimensions pass.
func predicate(filters catalog.Filters) func(catalog.Record) bool {
	policy := Normalize(filters.PolicyArea)
	return func(rec catalog.Record) bool {
		if filters.Year != "" && filters.Year != rec.Year() {
			return false
		}
		if filters.PolicyArea != "" && policy != Normalize(rec.PolicyArea()) {
			return false
		}
		return true
	}
}

// yearValue parses a year field for ordering. Non-numeric or missing years
// sort as the lowest possible value rather than failing.
func yearValue(year string) int {
	n, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return math.MinInt
	}
	return n
}
