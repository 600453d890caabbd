package models

import "time"

// Employee is the versioned employee dimension (SCD Type 2). The natural key
// is (company code, employee code); each row is one version with a validity
// window. At most one version per natural key is active at any instant.
type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Natural key
	EmployeeCode int `gorm:"not null;index:idx_employee_natural" json:"employee_code"`
	CompanyCode  int `gorm:"not null;index:idx_employee_natural" json:"company_code"`

	// Personal
	Name          string    `gorm:"type:varchar(120);not null" json:"name"`
	CPF           string    `gorm:"type:varchar(19);not null;index" json:"cpf"`
	RG            string    `gorm:"type:varchar(19)" json:"rg"`
	RGState       string    `gorm:"type:varchar(10)" json:"rg_state"`
	RGIssuer      string    `gorm:"type:varchar(20)" json:"rg_issuer"`
	BirthDate     time.Time `gorm:"type:date;not null" json:"birth_date"`
	Sex           int       `gorm:"not null" json:"sex"`
	MaritalStatus int       `json:"marital_status"`
	Color         int       `json:"color"`
	Education     int       `json:"education"`
	BirthPlace    string    `gorm:"type:varchar(50)" json:"birth_place"`
	MotherName    string    `gorm:"type:varchar(120)" json:"mother_name"`

	// Employment
	Registration   string     `gorm:"type:varchar(30);not null" json:"registration"`
	RegistrationHR string     `gorm:"type:varchar(30)" json:"registration_hr"`
	Situation      string     `gorm:"type:varchar(12);not null" json:"situation"`
	AdmissionDate  time.Time  `gorm:"type:date;not null" json:"admission_date"`
	DismissalDate  *time.Time `gorm:"type:date" json:"dismissal_date"`
	ContractType   int        `json:"contract_type"`

	// Organization
	UnitCode       string `gorm:"type:varchar(20)" json:"unit_code"`
	UnitName       string `gorm:"type:varchar(130)" json:"unit_name"`
	SectorCode     string `gorm:"type:varchar(12)" json:"sector_code"`
	SectorName     string `gorm:"type:varchar(130)" json:"sector_name"`
	RoleCode       string `gorm:"type:varchar(10)" json:"role_code"`
	RoleName       string `gorm:"type:varchar(130)" json:"role_name"`
	RoleCBO        string `gorm:"type:varchar(10)" json:"role_cbo"`
	CostCenter     string `gorm:"type:varchar(50)" json:"cost_center"`
	CostCenterName string `gorm:"type:varchar(130)" json:"cost_center_name"`

	// Contact
	Address       string `gorm:"type:varchar(110)" json:"address"`
	AddressNumber string `gorm:"type:varchar(20)" json:"address_number"`
	District      string `gorm:"type:varchar(80)" json:"district"`
	City          string `gorm:"type:varchar(50)" json:"city"`
	State         string `gorm:"type:varchar(20)" json:"state"`
	PostalCode    string `gorm:"type:varchar(10)" json:"postal_code"`
	HomePhone     string `gorm:"type:varchar(20)" json:"home_phone"`
	MobilePhone   string `gorm:"type:varchar(20)" json:"mobile_phone"`
	WorkPhone     string `gorm:"type:varchar(20)" json:"work_phone"`
	Email         string `gorm:"type:varchar(400)" json:"email"`
	Extension     string `gorm:"type:varchar(10)" json:"extension"`

	// Work regime
	ShiftRotation int    `json:"shift_rotation"`
	WorkRegime    string `gorm:"type:varchar(500)" json:"work_regime"`
	WorkShift     int    `json:"work_shift"`

	// Disability
	Disabled   bool   `gorm:"default:false" json:"disabled"`
	Disability string `gorm:"type:varchar(861)" json:"disability"`

	// Documents
	PIS        string `gorm:"type:varchar(20)" json:"pis"`
	CTPS       string `gorm:"type:varchar(30)" json:"ctps"`
	CTPSSeries string `gorm:"type:varchar(25)" json:"ctps_series"`

	// Version validity window
	ValidFrom time.Time  `gorm:"not null" json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to"`
	Active    bool       `gorm:"not null;default:true;index" json:"active"`

	LastChangedAt *time.Time `gorm:"type:date" json:"last_changed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Employee) TableName() string {
	return "dim_employee"
}

// Employment situation values carried by the source system.
const (
	EmployeeSituationActive    = "ATIVO"
	EmployeeSituationDismissed = "DEMITIDO"
	EmployeeSituationAway      = "AFASTADO"
)

// IsEmployed reports whether the version has no dismissal date.
func (e *Employee) IsEmployed() bool {
	return e.DismissalDate == nil
}

// TrackedAttributesEqual compares the attributes whose change opens a new
// version. Validity metadata and timestamps are not tracked.
func (e *Employee) TrackedAttributesEqual(other *Employee) bool {
	if e.Name != other.Name ||
		e.CPF != other.CPF ||
		e.RG != other.RG ||
		e.RGState != other.RGState ||
		e.RGIssuer != other.RGIssuer ||
		!e.BirthDate.Equal(other.BirthDate) ||
		e.Sex != other.Sex ||
		e.MaritalStatus != other.MaritalStatus ||
		e.Color != other.Color ||
		e.Education != other.Education ||
		e.BirthPlace != other.BirthPlace ||
		e.MotherName != other.MotherName {
		return false
	}
	if e.Registration != other.Registration ||
		e.RegistrationHR != other.RegistrationHR ||
		e.Situation != other.Situation ||
		!e.AdmissionDate.Equal(other.AdmissionDate) ||
		!datePtrEqual(e.DismissalDate, other.DismissalDate) ||
		e.ContractType != other.ContractType {
		return false
	}
	if e.UnitCode != other.UnitCode ||
		e.UnitName != other.UnitName ||
		e.SectorCode != other.SectorCode ||
		e.SectorName != other.SectorName ||
		e.RoleCode != other.RoleCode ||
		e.RoleName != other.RoleName ||
		e.RoleCBO != other.RoleCBO ||
		e.CostCenter != other.CostCenter ||
		e.CostCenterName != other.CostCenterName {
		return false
	}
	if e.Address != other.Address ||
		e.AddressNumber != other.AddressNumber ||
		e.District != other.District ||
		e.City != other.City ||
		e.State != other.State ||
		e.PostalCode != other.PostalCode ||
		e.HomePhone != other.HomePhone ||
		e.MobilePhone != other.MobilePhone ||
		e.WorkPhone != other.WorkPhone ||
		e.Email != other.Email ||
		e.Extension != other.Extension {
		return false
	}
	if e.ShiftRotation != other.ShiftRotation ||
		e.WorkRegime != other.WorkRegime ||
		e.WorkShift != other.WorkShift ||
		e.Disabled != other.Disabled ||
		e.Disability != other.Disability ||
		e.PIS != other.PIS ||
		e.CTPS != other.CTPS ||
		e.CTPSSeries != other.CTPSSeries {
		return false
	}
	return true
}

func datePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// AgeBracket buckets a current age the way the source reports do.
func AgeBracket(age int) string {
	switch {
	case age < 25:
		return "<25"
	case age <= 34:
		return "25-34"
	case age <= 44:
		return "35-44"
	case age <= 54:
		return "45-54"
	case age <= 64:
		return "55-64"
	default:
		return "65+"
	}
}
