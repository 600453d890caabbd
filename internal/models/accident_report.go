package models

import "time"

// AccidentReport is one CAT (work accident communication). The external
// report number is globally unique; up to three calendar rows are referenced,
// only the accident date being required.
type AccidentReport struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EmployeeID        uint  `gorm:"not null;index" json:"employee_id"`
	AccidentDayID     uint  `gorm:"not null;index" json:"accident_day_id"`
	AttendanceDayID   *uint `json:"attendance_day_id"`
	RegistrationDayID *uint `json:"registration_day_id"`

	// Natural key
	CompanyCode  int    `gorm:"not null;index" json:"company_code"`
	EmployeeCode int    `gorm:"not null" json:"employee_code"`
	ReportNumber string `gorm:"type:varchar(20);uniqueIndex;not null" json:"report_number"`

	// Accident
	AccidentDate      time.Time `gorm:"type:date;not null" json:"accident_date"`
	AccidentTime      string    `gorm:"type:varchar(8)" json:"accident_time"`
	Location          string    `gorm:"type:varchar(200)" json:"location"`
	LocationDetail    string    `gorm:"type:text" json:"location_detail"`
	Occurrence        string    `gorm:"type:text" json:"occurrence"`
	BodyPartAffected  string    `gorm:"type:varchar(200)" json:"body_part_affected"`
	Kind              string    `gorm:"type:varchar(100)" json:"kind"`
	PotentialAccident bool      `gorm:"default:false" json:"potential_accident"`

	// Attendance
	AttendanceDate   *time.Time `gorm:"type:date" json:"attendance_date"`
	AttendanceTime   string     `gorm:"type:varchar(8)" json:"attendance_time"`
	RegistrationDate *time.Time `gorm:"type:date" json:"registration_date"`

	// Consequences
	Death                bool       `gorm:"default:false" json:"death"`
	Retired              bool       `gorm:"default:false" json:"retired"`
	Leave                bool       `gorm:"default:false" json:"leave"`
	LeaveDuringTreatment bool       `gorm:"default:false" json:"leave_during_treatment"`
	LastWorkDay          *time.Time `gorm:"type:date" json:"last_work_day"`

	// Metrics
	DaysLost   int     `gorm:"default:0" json:"days_lost"`
	DaysAway   int     `gorm:"default:0" json:"days_away"`
	Cost       float64 `gorm:"default:0" json:"cost"`
	AgeAtEvent int     `json:"age_at_event"`

	// Organization snapshot
	UnitCode   string `gorm:"type:varchar(20)" json:"unit_code"`
	SectorCode string `gorm:"type:varchar(20)" json:"sector_code"`
	Area       string `gorm:"type:varchar(100)" json:"area"`
	LocalCNPJ  string `gorm:"type:varchar(20)" json:"local_cnpj"`
	Reason     string `gorm:"type:text" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

func (AccidentReport) TableName() string {
	return "fact_accident"
}
