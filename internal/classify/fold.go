// Package classify holds the keyword heuristics used to classify practices:
// metadata card resolution, difficulty levels, durations and media kinds.
// Every matcher works on folded text (see Fold) so Hungarian, English and
// German spellings match with or without diacritics.
package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s, strips combining marks and collapses whitespace.
// "  Könnyű  Szint " becomes "konnyu szint".
func Fold(s string) string {
	if s == "" {
		return ""
	}
	// transformers carry state; build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}

func containsAny(haystack string, needles []string) bool {
	if haystack == "" {
		return false
	}
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func equalsAny(s string, values []string) bool {
	if s == "" {
		return false
	}
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
