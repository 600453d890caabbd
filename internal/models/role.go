package models

import "time"

// Role is a job role, keyed by the role code. CBO is the Brazilian
// occupation classification code.
type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoleCode  string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"role_code"`
	Name      string    `gorm:"type:varchar(130);not null" json:"name"`
	CBO       string    `gorm:"type:varchar(10)" json:"cbo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Role) TableName() string {
	return "dim_role"
}
