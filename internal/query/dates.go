package query

import (
	"strings"
	"time"
)

// dateLayouts are the formats tried, in order, when interpreting free-text
// event dates. The interview UI writes ISO dates, but migrated legacy records
// carry whatever the user typed.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"02/01/2006",
	"02.01.2006",
	"January 2, 2006",
	"2 January 2006",
}

// parseDate attempts to interpret a free-text date. The zero time and false
// are returned when no layout matches.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// compareDates orders two free-text dates. Parsed dates compare as calendar
// dates; a parseable date sorts before an unparseable one; two unparseable
// dates fall back to lexicographic comparison.
func compareDates(a, b string) int {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	switch {
	case okA && okB:
		if ta.Before(tb) {
			return -1
		}
		if ta.After(tb) {
			return 1
		}
		return 0
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// DatesNonDecreasing reports whether the given free-text dates are already in
// chronological order. Unparseable or empty entries are skipped rather than
// breaking the run.
func DatesNonDecreasing(dates []string) bool {
	var prev time.Time
	var hasPrev bool
	for _, d := range dates {
		t, ok := parseDate(d)
		if !ok {
			continue
		}
		if hasPrev && t.Before(prev) {
			return false
		}
		prev = t
		hasPrev = true
	}
	return true
}
