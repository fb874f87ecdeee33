package fortune

import (
	"strings"
	"time"
)

// DateLayout is the canonical date format accepted and printed everywhere.
const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, "2006/1/2", "20060102"}

// ParseDate parses s as a civil date in loc. Leading and trailing space is
// ignored. A nil loc means UTC.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, &InvalidInputError{Field: "date", Value: s, Reason: "date is empty"}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &InvalidInputError{
		Field:  "date",
		Value:  s,
		Reason: "expected YYYY-MM-DD",
	}
}

// civilDate truncates t to midnight of its own calendar day.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
