package models

import "time"

// DocumentExpiration tracks the due date of a company document or service.
// Status is derived from days-to-expiry; an absent expiry date is its own
// terminal category and never compared numerically.
type DocumentExpiration struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyID        uint  `gorm:"not null;index" json:"company_id"`
	ExpiryDayID      *uint `gorm:"index" json:"expiry_day_id"`
	LastServiceDayID *uint `json:"last_service_day_id"`
	ForecastDayID    *uint `json:"forecast_day_id"`

	// Natural key
	CompanyCode int    `gorm:"not null;index" json:"company_code"`
	UnitCode    string `gorm:"type:varchar(20)" json:"unit_code"`
	ProductCode string `gorm:"type:varchar(20);not null" json:"product_code"`

	// Snapshot
	CompanyName string `gorm:"type:varchar(200)" json:"company_name"`
	UnitName    string `gorm:"type:varchar(130)" json:"unit_name"`
	UnitStatus  string `gorm:"type:varchar(20)" json:"unit_status"`
	UnitCNPJ    string `gorm:"type:varchar(20)" json:"unit_cnpj"`

	// Document
	ProductName string     `gorm:"type:varchar(200);not null" json:"product_name"`
	ExpiryDate  *time.Time `gorm:"type:date" json:"expiry_date"`
	Situation   string     `gorm:"type:varchar(50);index" json:"situation"`
	RiskLevel   string     `gorm:"type:varchar(10)" json:"risk_level"`
	Legend      string     `gorm:"type:varchar(100)" json:"legend"`

	// Services
	LastServiceDate     *time.Time `gorm:"type:date" json:"last_service_date"`
	ForecastServiceDate *time.Time `gorm:"type:date" json:"forecast_service_date"`
	LastServiceNote     string     `gorm:"type:text" json:"last_service_note"`

	// Derived
	DaysToExpiry *int   `json:"days_to_expiry"`
	Status       string `gorm:"type:varchar(12);index" json:"status"`
	Expired      bool   `gorm:"default:false;index:idx_expiration_flags" json:"expired"`
	Critical     bool   `gorm:"default:false;index:idx_expiration_flags" json:"critical"`
	Warning      bool   `gorm:"default:false" json:"warning"`

	CreatedAt time.Time `json:"created_at"`
}

func (DocumentExpiration) TableName() string {
	return "fact_expiration"
}

// Expiry statuses by days-to-expiry threshold.
const (
	StatusExpired     = "VENCIDO"  // < 0
	StatusCritical    = "CRITICO"  // 0-15
	StatusWarningHigh = "ATENCAO"  // 16-30
	StatusWarningLow  = "ALERTA"   // 31-60
	StatusOK          = "OK"       // > 60
	StatusNoDate      = "SEM_DATA" // absent expiry date
)

// ExpiryStatusFor classifies days-to-expiry. hasDate=false yields SEM_DATA.
func ExpiryStatusFor(days int, hasDate bool) string {
	switch {
	case !hasDate:
		return StatusNoDate
	case days < 0:
		return StatusExpired
	case days <= 15:
		return StatusCritical
	case days <= 30:
		return StatusWarningHigh
	case days <= 60:
		return StatusWarningLow
	default:
		return StatusOK
	}
}
