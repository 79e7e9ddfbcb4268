// Package highlight marks query occurrences inside record text for emphasis.
package highlight

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/caselens/internal/domain/catalog"
)

// Highlighter splits text into emphasized and plain segments around a fixed
// search term. The term is matched case-insensitively as a literal substring;
// regexp metacharacters in it have no special meaning.
type Highlighter struct {
	re *regexp.Regexp
}

// New compiles a highlighter for the given term. An empty or whitespace-only
// term yields a pass-through highlighter.
func New(term string) *Highlighter {
	term = strings.TrimSpace(term)
	if term == "" {
		return &Highlighter{}
	}
	return &Highlighter{re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))}
}

// Segments splits text around every match of the term. Empty text yields nil;
// a pass-through highlighter yields the text as a single plain segment.
func (h *Highlighter) Segments(text string) []catalog.Segment {
	if text == "" {
		return nil
	}
	if h.re == nil {
		return []catalog.Segment{{Text: text}}
	}

	locs := h.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []catalog.Segment{{Text: text}}
	}

	segments := make([]catalog.Segment, 0, len(locs)*2+1)
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			segments = append(segments, catalog.Segment{Text: text[prev:loc[0]]})
		}
		segments = append(segments, catalog.Segment{Text: text[loc[0]:loc[1]], Emphasized: true})
		prev = loc[1]
	}
	if prev < len(text) {
		segments = append(segments, catalog.Segment{Text: text[prev:]})
	}
	return segments
}

// Segments is a convenience for one-shot highlighting.
func Segments(text, term string) []catalog.Segment {
	return New(term).Segments(text)
}
