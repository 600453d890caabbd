package etl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Formats(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"15/03/2024",
		"2024-03-15",
		"15-03-2024",
		"20240315",
		"2024/03/15",
	} {
		got, ok := ParseDate(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), // leap day
		time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	formats := []string{"02/01/2006", "2006-01-02", "02-01-2006", "20060102", "2006/01/02"}

	for _, d := range dates {
		for _, f := range formats {
			got, ok := ParseDate(d.Format(f))
			require.True(t, ok, "date %v format %s", d, f)
			assert.Equal(t, d, got, "date %v format %s", d, f)
		}
	}
}

func TestParseDate_TwoDigitYear(t *testing.T) {
	got, ok := ParseDate("15/03/24")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_Absent(t *testing.T) {
	for _, input := range []string{"", "  ", "not-a-date", "31/02/2024", "2024-13-01"} {
		_, ok := ParseDate(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in        string
		hour, min int
		sec       int
		ok        bool
	}{
		{"08:30", 8, 30, 0, true},
		{"0830", 8, 30, 0, true},
		{"08:30:45", 8, 30, 45, true},
		{"", 0, 0, 0, false},
		{"25:99", 0, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseTime(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.hour, got.Hour(), "input %q", tt.in)
			assert.Equal(t, tt.min, got.Minute(), "input %q", tt.in)
			assert.Equal(t, tt.sec, got.Second(), "input %q", tt.in)
		}
	}
}

func TestAge_AnniversarySemantics(t *testing.T) {
	birth := time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 23, Age(birth, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, Age(birth, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, Age(birth, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestTenureYears(t *testing.T) {
	admission := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.InDelta(t, 366.0/365.25, TenureYears(admission, end), 1e-9)
}

func TestBusinessDays(t *testing.T) {
	mon := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	fri := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, BusinessDays(mon, fri), "full work week")
	assert.Equal(t, 5, BusinessDays(mon, sun), "weekend excluded")
	assert.Equal(t, 1, BusinessDays(mon, mon), "single weekday inclusive")
	assert.Equal(t, 0, BusinessDays(sun, sun), "single weekend day")
	assert.Equal(t, 0, BusinessDays(fri, mon), "inverted range")
}
