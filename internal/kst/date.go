// Package kst provides calendar-day and week arithmetic anchored to the
// fixed UTC+9 civil calendar. All report bucketing uses these canonical
// YYYY-MM-DD strings so results do not depend on the host timezone.
package kst

import (
	"regexp"
	"strconv"
	"time"
)

// Zone is the fixed UTC+9 zone. KST has no daylight saving.
var Zone = time.FixedZone("KST", 9*60*60)

// DayFormat is the canonical calendar-day layout.
const DayFormat = "2006-01-02"

var dayPrefixRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// Day converts an instant to its canonical KST calendar-day string.
// The zero time is treated as unparseable and returns ok=false.
func Day(t time.Time) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	return t.In(Zone).Format(DayFormat), true
}

// NormalizeDay converts a date-like string to a canonical KST calendar day.
//
// A string that already starts with an explicit YYYY-MM-DD prefix is taken
// literally; it is never re-shifted through the timezone, so calling
// NormalizeDay on an already-canonical string is a no-op. Anything else is
// treated as an absolute instant (RFC 3339 or a unix-millisecond number)
// and shifted into KST before truncating to a date.
//
// Unparseable input returns ("", false); it never panics.
func NormalizeDay(s string) (string, bool) {
	if s == "" {
		return "", false
	}

	if dayPrefixRegex.MatchString(s) {
		day := s[:10]
		// Reject prefixes like 2025-02-30 that match the shape but are
		// not real calendar dates.
		if _, err := time.ParseInLocation(DayFormat, day, Zone); err != nil {
			return "", false
		}
		return day, true
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Day(t)
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Day(time.UnixMilli(ms))
	}

	return "", false
}

// Parts decomposes a canonical day string into integer year, month, day.
func Parts(day string) (year, month, dom int, ok bool) {
	t, err := time.ParseInLocation(DayFormat, day, Zone)
	if err != nil {
		return 0, 0, 0, false
	}
	return t.Year(), int(t.Month()), t.Day(), true
}

// Midnight reconstructs the instant at 00:00 KST for a canonical day string,
// for callers that need a real instant (e.g. "is this week in progress").
func Midnight(day string) (time.Time, bool) {
	t, err := time.ParseInLocation(DayFormat, day, Zone)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
