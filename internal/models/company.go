package models

import "time"

// Company is a reference dimension keyed by the company code. Reloads
// overwrite attributes in place, no history is kept.
type Company struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyCode int       `gorm:"uniqueIndex;not null" json:"company_code"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	CNPJ        string    `gorm:"type:varchar(20)" json:"cnpj"`
	Situation   string    `gorm:"type:varchar(20);default:'ATIVA'" json:"situation"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "dim_company"
}

const (
	CompanySituationActive   = "ATIVA"
	CompanySituationInactive = "INATIVA"
)
