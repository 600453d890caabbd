package repository

import (
	"sst-warehouse/internal/models"

	"gorm.io/gorm"
)

type ExpirationRepository interface {
	WithTx(tx *gorm.DB) ExpirationRepository
	Create(expiration *models.DocumentExpiration) error
	GetByStatus(status string) ([]models.DocumentExpiration, error)
	GetAll() ([]models.DocumentExpiration, error)
	DeleteAll() error
}

type GormExpirationRepository struct {
	db *gorm.DB
}

func NewGormExpirationRepository(db *gorm.DB) (ExpirationRepository, error) {
	if err := db.AutoMigrate(&models.DocumentExpiration{}); err != nil {
		return nil, err
	}
	return &GormExpirationRepository{db: db}, nil
}

func (r *GormExpirationRepository) WithTx(tx *gorm.DB) ExpirationRepository {
	return &GormExpirationRepository{db: tx}
}

func (r *GormExpirationRepository) Create(expiration *models.DocumentExpiration) error {
	return r.db.Create(expiration).Error
}

func (r *GormExpirationRepository) GetByStatus(status string) ([]models.DocumentExpiration, error) {
	var expirations []models.DocumentExpiration
	err := r.db.Where("status = ?", status).Order("expiry_date ASC").Find(&expirations).Error
	return expirations, err
}

func (r *GormExpirationRepository) GetAll() ([]models.DocumentExpiration, error) {
	var expirations []models.DocumentExpiration
	err := r.db.Find(&expirations).Error
	return expirations, err
}

func (r *GormExpirationRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM fact_expiration").Error
}
