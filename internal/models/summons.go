package models

import "time"

// Summons is the current exam-convocation state of one employee/exam pair,
// not an event log: the pair (employee code, exam code) is unique and a
// reload replaces the row rather than appending.
type Summons struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EmployeeID       uint  `gorm:"not null;index" json:"employee_id"`
	ExamTypeID       uint  `gorm:"not null;index" json:"exam_type_id"`
	LastRequestDayID *uint `json:"last_request_day_id"`
	ResultDayID      *uint `json:"result_day_id"`

	// Natural key
	CompanyCode  int `gorm:"not null;index" json:"company_code"`
	EmployeeCode int `gorm:"not null;uniqueIndex:uk_employee_exam" json:"employee_code"`
	ExamCode     int `gorm:"not null;uniqueIndex:uk_employee_exam" json:"exam_code"`

	// Employee snapshot
	CPF           string     `gorm:"type:varchar(19)" json:"cpf"`
	Registration  string     `gorm:"type:varchar(30)" json:"registration"`
	AdmissionDate *time.Time `gorm:"type:date" json:"admission_date"`
	EmployeeName  string     `gorm:"type:varchar(120)" json:"employee_name"`
	Email         string     `gorm:"type:varchar(400)" json:"email"`
	Phone         string     `gorm:"type:varchar(20)" json:"phone"`

	// Exam state
	ExamName        string     `gorm:"type:varchar(200)" json:"exam_name"`
	LastRequestDate *time.Time `gorm:"type:date" json:"last_request_date"`
	ResultDate      *time.Time `gorm:"type:date" json:"result_date"`
	PeriodicityDays int        `json:"periodicity_days"`
	Redo            bool       `gorm:"default:false" json:"redo"`

	// Location snapshot
	UnitName   string `gorm:"type:varchar(130)" json:"unit_name"`
	City       string `gorm:"type:varchar(50)" json:"city"`
	State      string `gorm:"type:varchar(20)" json:"state"`
	District   string `gorm:"type:varchar(80)" json:"district"`
	Address    string `gorm:"type:varchar(110)" json:"address"`
	PostalCode string `gorm:"type:varchar(10)" json:"postal_code"`
	UnitCNPJ   string `gorm:"type:varchar(20)" json:"unit_cnpj"`
	SectorName string `gorm:"type:varchar(130)" json:"sector_name"`
	RoleName   string `gorm:"type:varchar(130)" json:"role_name"`

	// Derived
	ConvocationKind string `gorm:"type:varchar(20)" json:"convocation_kind"`

	CreatedAt time.Time `json:"created_at"`
}

func (Summons) TableName() string {
	return "fact_summons"
}

// Convocation kinds, in precedence order: a redo flag wins, then a pair with
// no prior request is a first exam, anything else is periodic.
const (
	ConvocationRedo      = "REFAZER"
	ConvocationFirstExam = "PRIMEIRO_EXAME"
	ConvocationPeriodic  = "PERIODICO"
)

// ClassifyConvocation applies the precedence above.
func ClassifyConvocation(redo bool, hasLastRequest bool) string {
	switch {
	case redo:
		return ConvocationRedo
	case !hasLastRequest:
		return ConvocationFirstExam
	default:
		return ConvocationPeriodic
	}
}
