package models

import "time"

// Sector is keyed by (company code, sector code).
type Sector struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyCode int       `gorm:"not null;index;uniqueIndex:uk_sector_natural" json:"company_code"`
	SectorCode  string    `gorm:"type:varchar(12);not null;uniqueIndex:uk_sector_natural" json:"sector_code"`
	Name        string    `gorm:"type:varchar(130);not null" json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Sector) TableName() string {
	return "dim_sector"
}
