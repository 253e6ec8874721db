package transform

import (
	"strings"
	"time"
)

// Expected source format for appointment dates (MM/DD/YYYY).
const strictDateLayout = "01/02/2006"

// lenientDateLayouts are tried in order when the strict parse fails. Sources
// have been seen with ISO dates, datetimes, and unpadded variants.
var lenientDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006",
	"2006/01/02",
	"02-Jan-2006",
	time.RFC3339,
}

// ParseTimestamp converts a free-form date value into a timestamp. The strict
// MM/DD/YYYY layout is attempted first, then the lenient layout list. The
// second return is false when nothing matches; a per-row parse failure is
// data, not control flow. Timestamps are naive local time, midnight when the
// source carries no time of day.
func ParseTimestamp(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.ParseInLocation(strictDateLayout, s, time.Local); err == nil {
		return t, true
	}
	for _, layout := range lenientDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
