package repository

import (
	"errors"

	"sst-warehouse/internal/models"

	"gorm.io/gorm"
)

type SectorRepository interface {
	WithTx(tx *gorm.DB) SectorRepository
	Create(sector *models.Sector) error
	Update(sector *models.Sector) error
	FindByNaturalKey(companyCode int, sectorCode string) (*models.Sector, error)
	DeleteAll() error
}

type GormSectorRepository struct {
	db *gorm.DB
}

func NewGormSectorRepository(db *gorm.DB) (SectorRepository, error) {
	if err := db.AutoMigrate(&models.Sector{}); err != nil {
		return nil, err
	}
	return &GormSectorRepository{db: db}, nil
}

func (r *GormSectorRepository) WithTx(tx *gorm.DB) SectorRepository {
	return &GormSectorRepository{db: tx}
}

func (r *GormSectorRepository) Create(sector *models.Sector) error {
	return r.db.Create(sector).Error
}

func (r *GormSectorRepository) Update(sector *models.Sector) error {
	return r.db.Save(sector).Error
}

func (r *GormSectorRepository) FindByNaturalKey(companyCode int, sectorCode string) (*models.Sector, error) {
	var sector models.Sector
	err := r.db.Where("company_code = ? AND sector_code = ?", companyCode, sectorCode).First(&sector).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sector, nil
}

func (r *GormSectorRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM dim_sector").Error
}
