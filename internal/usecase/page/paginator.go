// Package page slices a composed view into fixed-size pages.
package page

import (
	"fmt"

	"github.com/kailas-cloud/caselens/internal/domain/catalog"
)

// Paginate returns the requested page of the view. TotalPages is zero for an
// empty view, which still renders as page 1 with no items. An index outside
// [1, max(totalPages, 1)] is rejected with catalog.ErrPageOutOfRange; the
// caller keeps its current page instead of clamping.
func Paginate(view catalog.View, pageIndex, pageSize int) (catalog.Page, error) {
	if pageSize <= 0 {
		return catalog.Page{}, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	totalPages := TotalPages(len(view), pageSize)
	if pageIndex < 1 || pageIndex > max(totalPages, 1) {
		return catalog.Page{}, fmt.Errorf("%w: page %d of %d", catalog.ErrPageOutOfRange, pageIndex, totalPages)
	}

	start := (pageIndex - 1) * pageSize
	end := min(start+pageSize, len(view))
	if start > len(view) {
		start = len(view)
	}

	return catalog.NewPage(view[start:end], pageIndex, pageSize, totalPages), nil
}

// TotalPages is ceil(n / pageSize).
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Next advances one page, saturating at the last page.
func Next(current, totalPages int) int {
	if current < max(totalPages, 1) {
		return current + 1
	}
	return max(totalPages, 1)
}

// Previous retreats one page, saturating at page 1.
func Previous(current int) int {
	if current > 1 {
		return current - 1
	}
	return 1
}
