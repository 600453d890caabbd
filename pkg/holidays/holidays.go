package holidays

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CalendarJSON is the on-disk format of a yearly holiday calendar.
type CalendarJSON struct {
	Year   int             `json:"year"`
	Months []MonthHolidays `json:"months"`
}

type MonthHolidays struct {
	Month int    `json:"month"`
	Days  string `json:"days"`
}

// Holiday is a single calendar holiday.
type Holiday struct {
	Date  time.Time `json:"date"`
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Day   int       `json:"day"`
}

// ParseCalendarJSON reads a holiday calendar file and returns the holidays.
// Day lists are comma separated, markers (+, *) after a day are tolerated.
func ParseCalendarJSON(filePath string) ([]Holiday, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}

	var calendar CalendarJSON
	if err := json.Unmarshal(data, &calendar); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	holidayList := []Holiday{}

	for _, monthData := range calendar.Months {
		dayStrings := strings.Split(monthData.Days, ",")

		for _, dayStr := range dayStrings {
			dayStr = strings.TrimSpace(dayStr)
			dayStr = strings.TrimSuffix(dayStr, "+")
			dayStr = strings.TrimSuffix(dayStr, "*")

			if dayStr == "" {
				continue
			}

			day, err := strconv.Atoi(dayStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse day '%s' in month %d: %w",
					dayStr, monthData.Month, err)
			}

			date := time.Date(calendar.Year, time.Month(monthData.Month), day, 0, 0, 0, 0, time.UTC)

			holidayList = append(holidayList, Holiday{
				Date:  date,
				Year:  calendar.Year,
				Month: monthData.Month,
				Day:   day,
			})
		}
	}

	return holidayList, nil
}

// DateSet indexes holidays by their yyyy-mm-dd key for flag lookups.
func DateSet(holidayList []Holiday) map[string]bool {
	set := make(map[string]bool, len(holidayList))
	for _, h := range holidayList {
		set[h.Date.Format("2006-01-02")] = true
	}
	return set
}

// IsHoliday checks a date against an indexed holiday set.
func IsHoliday(set map[string]bool, date time.Time) bool {
	return set[date.Format("2006-01-02")]
}
