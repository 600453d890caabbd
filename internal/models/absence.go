package models

import "time"

// Absence is one medical-leave record. It references the employee version
// and start/end calendar rows by surrogate key and keeps a denormalized copy
// of the natural-key fields used by the fuzzy employee lookup.
type Absence struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EmployeeID uint  `gorm:"not null;index" json:"employee_id"`
	StartDayID uint  `gorm:"not null;index" json:"start_day_id"`
	EndDayID   *uint `gorm:"index" json:"end_day_id"`

	// Degenerate dimension: the composite key the lookup matched on.
	CompanyCode  int       `gorm:"not null;index" json:"company_code"`
	UnitName     string    `gorm:"type:varchar(130)" json:"unit_name"`
	SectorName   string    `gorm:"type:varchar(130)" json:"sector_name"`
	BirthDate    time.Time `gorm:"type:date;not null" json:"birth_date"`
	Sex          int       `gorm:"not null" json:"sex"`
	Registration string    `gorm:"type:varchar(30)" json:"registration"`

	// Event
	CertificateType int        `gorm:"not null" json:"certificate_type"`
	StartDate       time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate         *time.Time `gorm:"type:date" json:"end_date"`
	StartTime       string     `gorm:"type:varchar(5)" json:"start_time"`
	EndTime         string     `gorm:"type:varchar(5)" json:"end_time"`

	// Metrics
	DaysAbsent  float64 `gorm:"default:0" json:"days_absent"`
	HoursAbsent string  `gorm:"type:varchar(5)" json:"hours_absent"`
	AgeAtStart  int     `json:"age_at_start"`

	// Medical
	ICDCode        string `gorm:"type:varchar(10);index" json:"icd_code"`
	ICDDescription string `gorm:"type:varchar(264)" json:"icd_description"`
	PathologyGroup string `gorm:"type:varchar(80)" json:"pathology_group"`
	LeaveType      string `gorm:"type:varchar(100)" json:"leave_type"`

	// Derived
	SexLabel             string `gorm:"type:varchar(20)" json:"sex_label"`
	CertificateTypeLabel string `gorm:"type:varchar(20)" json:"certificate_type_label"`
	DurationBucket       string `gorm:"type:varchar(12)" json:"duration_bucket"`

	CreatedAt time.Time `json:"created_at"`
}

func (Absence) TableName() string {
	return "fact_absence"
}

// Duration buckets by day count, inclusive-lowest binning.
const (
	Bucket1Day   = "1 dia"
	Bucket2To3   = "2-3 dias"
	Bucket4To7   = "4-7 dias"
	Bucket8To15  = "8-15 dias"
	Bucket16To30 = "16-30 dias"
	BucketOver30 = ">30 dias"
)

// DurationBucketFor assigns the duration bucket for a day count.
func DurationBucketFor(days float64) string {
	switch {
	case days <= 1:
		return Bucket1Day
	case days <= 3:
		return Bucket2To3
	case days <= 7:
		return Bucket4To7
	case days <= 15:
		return Bucket8To15
	case days <= 30:
		return Bucket16To30
	default:
		return BucketOver30
	}
}
