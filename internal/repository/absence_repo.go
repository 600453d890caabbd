package repository

import (
	"sst-warehouse/internal/models"

	"gorm.io/gorm"
)

type AbsenceRepository interface {
	WithTx(tx *gorm.DB) AbsenceRepository
	Create(absence *models.Absence) error
	CountByEmployee(employeeID uint) (int64, error)
	GetAll() ([]models.Absence, error)
	DeleteAll() error
}

type GormAbsenceRepository struct {
	db *gorm.DB
}

func NewGormAbsenceRepository(db *gorm.DB) (AbsenceRepository, error) {
	if err := db.AutoMigrate(&models.Absence{}); err != nil {
		return nil, err
	}
	return &GormAbsenceRepository{db: db}, nil
}

func (r *GormAbsenceRepository) WithTx(tx *gorm.DB) AbsenceRepository {
	return &GormAbsenceRepository{db: tx}
}

func (r *GormAbsenceRepository) Create(absence *models.Absence) error {
	return r.db.Create(absence).Error
}

func (r *GormAbsenceRepository) CountByEmployee(employeeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Absence{}).Where("employee_id = ?", employeeID).Count(&count).Error
	return count, err
}

func (r *GormAbsenceRepository) GetAll() ([]models.Absence, error) {
	var absences []models.Absence
	err := r.db.Order("start_date ASC").Find(&absences).Error
	return absences, err
}

func (r *GormAbsenceRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM fact_absence").Error
}
