package models

import "time"

// TimeDay is one row of the calendar dimension: exactly one per date in the
// loaded range. Weekday follows ISO numbering (1=Monday .. 7=Sunday).
type TimeDay struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Year        int       `gorm:"not null;index:idx_time_year_month" json:"year"`
	Quarter     int       `gorm:"not null" json:"quarter"`
	Month       int       `gorm:"not null;index:idx_time_year_month" json:"month"`
	Day         int       `gorm:"not null" json:"day"`
	Weekday     int       `gorm:"not null" json:"weekday"`
	WeekOfYear  int       `gorm:"not null" json:"week_of_year"`
	MonthName   string    `gorm:"type:varchar(20);not null" json:"month_name"`
	WeekdayName string    `gorm:"type:varchar(20);not null" json:"weekday_name"`
	IsWeekend   bool      `gorm:"not null;default:false" json:"is_weekend"`
	IsHoliday   bool      `gorm:"not null;default:false" json:"is_holiday"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (TimeDay) TableName() string {
	return "dim_time"
}

// NewTimeDay derives every calendar attribute for a date.
func NewTimeDay(date time.Time, holiday bool) TimeDay {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // time.Sunday is 0, ISO wants 7
	}
	_, week := date.ISOWeek()

	return TimeDay{
		Date:        date,
		Year:        date.Year(),
		Quarter:     (int(date.Month())-1)/3 + 1,
		Month:       int(date.Month()),
		Day:         date.Day(),
		Weekday:     weekday,
		WeekOfYear:  week,
		MonthName:   date.Month().String(),
		WeekdayName: date.Weekday().String(),
		IsWeekend:   weekday == 6 || weekday == 7,
		IsHoliday:   holiday,
	}
}
