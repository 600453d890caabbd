package etl

import (
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail accepts empty input (optional field) and otherwise requires a
// conservative local@domain.tld shape.
func ValidEmail(email string) bool {
	if email == "" {
		return true
	}
	return emailPattern.MatchString(email)
}

// ValidDateOrder accepts an absent end or an end on/after start.
func ValidDateOrder(start time.Time, end time.Time, hasEnd bool) bool {
	if !hasEnd {
		return true
	}
	return !end.Before(start)
}
