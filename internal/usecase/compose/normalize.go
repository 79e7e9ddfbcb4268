package compose

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a free-form facet label for equality comparison:
// lower-cased, stripped of everything that is not a letter, digit, whitespace
// or '&', and trimmed. Cosmetic differences in case or punctuation never cause
// a false filter miss.
func Normalize(label string) string {
	if label == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(label))
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '&' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
