package repository

import (
	"sst-warehouse/internal/models"

	"gorm.io/gorm"
)

type AccidentRepository interface {
	WithTx(tx *gorm.DB) AccidentRepository
	Create(report *models.AccidentReport) error
	ExistsByReportNumber(reportNumber string) (bool, error)
	GetAll() ([]models.AccidentReport, error)
	DeleteAll() error
}

type GormAccidentRepository struct {
	db *gorm.DB
}

func NewGormAccidentRepository(db *gorm.DB) (AccidentRepository, error) {
	if err := db.AutoMigrate(&models.AccidentReport{}); err != nil {
		return nil, err
	}
	return &GormAccidentRepository{db: db}, nil
}

func (r *GormAccidentRepository) WithTx(tx *gorm.DB) AccidentRepository {
	return &GormAccidentRepository{db: tx}
}

func (r *GormAccidentRepository) Create(report *models.AccidentReport) error {
	return r.db.Create(report).Error
}

func (r *GormAccidentRepository) ExistsByReportNumber(reportNumber string) (bool, error) {
	var count int64
	err := r.db.Model(&models.AccidentReport{}).
		Where("report_number = ?", reportNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *GormAccidentRepository) GetAll() ([]models.AccidentReport, error) {
	var reports []models.AccidentReport
	err := r.db.Order("accident_date ASC").Find(&reports).Error
	return reports, err
}

func (r *GormAccidentRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM fact_accident").Error
}
