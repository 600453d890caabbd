package repository

import (
	"errors"

	"sst-warehouse/internal/models"

	"gorm.io/gorm"
)

type UnitRepository interface {
	WithTx(tx *gorm.DB) UnitRepository
	Create(unit *models.Unit) error
	Update(unit *models.Unit) error
	FindByNaturalKey(companyCode int, unitCode string) (*models.Unit, error)
	DeleteAll() error
}

type GormUnitRepository struct {
	db *gorm.DB
}

func NewGormUnitRepository(db *gorm.DB) (UnitRepository, error) {
	if err := db.AutoMigrate(&models.Unit{}); err != nil {
		return nil, err
	}
	return &GormUnitRepository{db: db}, nil
}

func (r *GormUnitRepository) WithTx(tx *gorm.DB) UnitRepository {
	return &GormUnitRepository{db: tx}
}

func (r *GormUnitRepository) Create(unit *models.Unit) error {
	return r.db.Create(unit).Error
}

func (r *GormUnitRepository) Update(unit *models.Unit) error {
	return r.db.Save(unit).Error
}

func (r *GormUnitRepository) FindByNaturalKey(companyCode int, unitCode string) (*models.Unit, error) {
	var unit models.Unit
	err := r.db.Where("company_code = ? AND unit_code = ?", companyCode, unitCode).First(&unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *GormUnitRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM dim_unit").Error
}
