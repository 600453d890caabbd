package models

import "time"

// Unit is an organizational unit of a company, keyed by (company code,
// unit code).
type Unit struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CompanyCode int    `gorm:"not null;index;uniqueIndex:uk_unit_natural" json:"company_code"`
	UnitCode    string `gorm:"type:varchar(20);not null;uniqueIndex:uk_unit_natural" json:"unit_code"`

	Name       string `gorm:"type:varchar(130);not null" json:"name"`
	Status     string `gorm:"type:varchar(20)" json:"status"`
	CNPJ       string `gorm:"type:varchar(20)" json:"cnpj"`
	Address    string `gorm:"type:varchar(110)" json:"address"`
	Number     string `gorm:"type:varchar(20)" json:"number"`
	District   string `gorm:"type:varchar(80)" json:"district"`
	City       string `gorm:"type:varchar(50)" json:"city"`
	State      string `gorm:"type:varchar(20)" json:"state"`
	PostalCode string `gorm:"type:varchar(10)" json:"postal_code"`
	CNAE       string `gorm:"type:varchar(20)" json:"cnae"`
	CNAE20     string `gorm:"type:varchar(20)" json:"cnae_2_0"`
	CNAE7      string `gorm:"type:varchar(20)" json:"cnae_7"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Unit) TableName() string {
	return "dim_unit"
}
