package utils

import "time"

// DefaultRange is the window used when no range tag is supplied.
const DefaultRange = "24h"

// ValidRanges defines the allowed coarse range tags for historical queries.
var ValidRanges = map[string]time.Duration{
	"1h":  1 * time.Hour,
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// NormalizeRange maps a request range tag onto a supported one. Unknown or
// empty tags fall back to DefaultRange rather than erroring, matching the
// lenient behavior of the historical-data endpoint.
func NormalizeRange(tag string) string {
	if _, ok := ValidRanges[tag]; ok {
		return tag
	}
	return DefaultRange
}

// RangeWindow calculates the trailing [from, to] window for a range tag.
func RangeWindow(tag string) (time.Time, time.Time) {
	d, ok := ValidRanges[tag]
	if !ok {
		d = ValidRanges[DefaultRange]
	}
	now := time.Now()
	return now.Add(-d), now
}
