package catalog

import "errors"

var (
	// ErrPageOutOfRange signals a page index outside [1, totalPages].
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrSearchBackend signals a failed call to the external search backend.
	ErrSearchBackend = errors.New("search backend error")
	// ErrBaselineUnavailable signals a failed baseline dataset load.
	ErrBaselineUnavailable = errors.New("baseline dataset unavailable")
)
