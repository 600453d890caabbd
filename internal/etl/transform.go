package etl

import (
	"strings"
	"time"
)

// Date formats tried in order; first successful parse wins.
var dateFormats = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"20060102",
	"02/01/06",
	"2006/01/02",
}

var timeFormats = []string{
	"15:04",
	"1504",
	"15:04:05",
}

// ParseDate converts a source date string to a date. Returns ok=false for
// empty or unparseable input, never an error.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// ParseTime converts a source time-of-day string. Same absent-on-failure
// contract as ParseDate.
func ParseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, format := range timeFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}

// Age returns whole years between birth and reference, counting a year only
// once its anniversary has been reached.
func Age(birth, reference time.Time) int {
	age := reference.Year() - birth.Year()

	if reference.Month() < birth.Month() ||
		(reference.Month() == birth.Month() && reference.Day() < birth.Day()) {
		age--
	}

	return age
}

// TenureYears returns employment length in fractional years between admission
// and end (termination date or today).
func TenureYears(admission, end time.Time) float64 {
	return end.Sub(admission).Hours() / 24 / 365.25
}

// BusinessDays counts Monday-Friday days between start and end, inclusive of
// both endpoints. Zero when the range is inverted.
func BusinessDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}
