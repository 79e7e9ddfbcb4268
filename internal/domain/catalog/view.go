package catalog

// Entry is a single view element: a record plus the score it carried into the
// view. The score is meaningful only when the entry was composed from search
// results; baseline entries carry zero.
type Entry struct {
	record Record
	score  float64
}

// NewEntry creates a view entry.
func NewEntry(record Record, score float64) Entry {
	return Entry{record: record, score: score}
}

// Record returns the case record.
func (e *Entry) Record() Record { return e.record }

// Score returns the relevance score carried into the view.
func (e *Entry) Score() float64 { return e.score }

// View is the filtered, sorted sequence currently eligible for display. It is
// recomputed wholesale whenever any composition input changes, and is always a
// subsequence by content of the active source's records.
type View []Entry

// Page is a contiguous slice of a view plus its navigation metadata.
type Page struct {
	entries    []Entry
	index      int
	size       int
	totalPages int
}

// NewPage creates a page. index is 1-based.
func NewPage(entries []Entry, index, size, totalPages int) Page {
	return Page{entries: entries, index: index, size: size, totalPages: totalPages}
}

// Entries returns the records on this page.
func (p *Page) Entries() []Entry { return p.entries }

// Index returns the 1-based page index.
func (p *Page) Index() int { return p.index }

// Size returns the configured page size.
func (p *Page) Size() int { return p.size }

// TotalPages returns the page count; zero for an empty view.
func (p *Page) TotalPages() int { return p.totalPages }

// Segment is a run of text with an emphasis flag. The highlighter returns
// segments instead of marked-up strings so the rendering layer decides how to
// display emphasis, leaving no injection surface.
type Segment struct {
	Text       string
	Emphasized bool
}
