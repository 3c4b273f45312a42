package classify

import (
	"regexp"
	"strconv"
)

// ShortMaxMinutes is the inclusive upper bound of the "short" bucket.
const ShortMaxMinutes = 10

var durationPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:perc|min|p)`)

// ParseDurationMinutes extracts the first "<n> p|perc|min" from text.
func ParseDurationMinutes(text string) (int, bool) {
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsShort reports whether parsed minutes fall into the short bucket.
func IsShort(minutes int) bool {
	return minutes <= ShortMaxMinutes
}
