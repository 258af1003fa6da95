package validation

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the storage and response format for calendar dates.
const DateLayout = "2006-01-02"

var errInvalidDate = errors.New("invalid date")

var acceptedDateLayouts = []string{
	DateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate accepts a plain date or a timestamp and returns midnight UTC of
// that calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errInvalidDate
}

// NormalizeDate rewrites a valid date in place to DateLayout. Invalid input
// is left for validation to report.
func NormalizeDate(s *string) {
	if s == nil {
		return
	}
	if t, err := ParseDate(*s); err == nil {
		*s = t.Format(DateLayout)
	}
}
