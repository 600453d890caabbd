package etl

import (
	"strconv"
	"strings"
	"time"
)

// Row is one raw source record: field name to scalar value.
// A missing key and an empty value both mean "absent".
type Row map[string]string

// Get returns the trimmed value and whether it is present.
func (r Row) Get(field string) (string, bool) {
	value, ok := r[field]
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// GetInt parses the field as an integer; absent or unparseable yields ok=false.
func (r Row) GetInt(field string) (int, bool) {
	value, ok := r.Get(field)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GetFloat parses the field as a float; absent or unparseable yields ok=false.
func (r Row) GetFloat(field string) (float64, bool) {
	value, ok := r.Get(field)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// GetBool treats "1", "true", "TRUE", "t" as true; anything else as false.
func (r Row) GetBool(field string) bool {
	value, ok := r.Get(field)
	if !ok {
		return false
	}
	switch strings.ToLower(value) {
	case "1", "true", "t", "sim", "s":
		return true
	}
	return false
}

// GetDate parses the field through the supported date formats.
func (r Row) GetDate(field string) (time.Time, bool) {
	value, ok := r.Get(field)
	if !ok {
		return time.Time{}, false
	}
	return ParseDate(value)
}

// GetTime parses the field through the supported time-of-day formats.
func (r Row) GetTime(field string) (time.Time, bool) {
	value, ok := r.Get(field)
	if !ok {
		return time.Time{}, false
	}
	return ParseTime(value)
}
