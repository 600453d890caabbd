package models

import "time"

// ExamType is an occupational exam kind, keyed by the exam code.
// PeriodicityDays is the required interval between exams.
type ExamType struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ExamCode        int       `gorm:"uniqueIndex;not null" json:"exam_code"`
	Name            string    `gorm:"type:varchar(200);not null" json:"name"`
	PeriodicityDays int       `json:"periodicity_days"`
	Mandatory       bool      `gorm:"default:true" json:"mandatory"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (ExamType) TableName() string {
	return "dim_exam_type"
}
