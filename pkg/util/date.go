package util

import (
	"strconv"
	"strings"
	"time"
)

// ISODateLayout is the calendar date format accepted by the market endpoints.
const ISODateLayout = "2006-01-02"

// zone-less layouts are interpreted in UTC
var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	ISODateLayout,
}

// ParseTime tries RFC3339, exchange date-time layouts, plain dates and unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return UnixAuto(ts), true
	}
	return time.Time{}, false
}

// UnixAuto treats values above 1e12 as milliseconds, otherwise seconds.
func UnixAuto(ts int64) time.Time {
	if ts > 1_000_000_000_000 {
		return time.UnixMilli(ts).UTC()
	}
	return time.Unix(ts, 0).UTC()
}

// ISODate formats t as a UTC calendar date.
func ISODate(t time.Time) string {
	return t.UTC().Format(ISODateLayout)
}
