package repository

import (
	"errors"
	"time"

	"sst-warehouse/internal/models"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	WithTx(tx *gorm.DB) EmployeeRepository
	Create(employee *models.Employee) error
	FindActive(companyCode, employeeCode int) (*models.Employee, error)
	FindActiveByProfile(companyCode int, unitName, sectorName string, birthDate time.Time, sex int) (*models.Employee, error)
	GetVersions(companyCode, employeeCode int) ([]models.Employee, error)
	CloseVersion(id uint, asOf time.Time) error
	DeleteAll() error
}

type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) (EmployeeRepository, error) {
	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		return nil, err
	}
	return &GormEmployeeRepository{db: db}, nil
}

func (r *GormEmployeeRepository) WithTx(tx *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: tx}
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// FindActive returns the single active version for a natural key, or nil.
func (r *GormEmployeeRepository) FindActive(companyCode, employeeCode int) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where("company_code = ? AND employee_code = ? AND active = ?",
		companyCode, employeeCode, true).
		First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindActiveByProfile matches an active version by the composite profile key
// used when the source feed carries no employee code.
func (r *GormEmployeeRepository) FindActiveByProfile(companyCode int, unitName, sectorName string, birthDate time.Time, sex int) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where(
		"company_code = ? AND unit_name = ? AND sector_name = ? AND birth_date = ? AND sex = ? AND active = ?",
		companyCode, unitName, sectorName, birthDate, sex, true).
		First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetVersions returns every version for a natural key ordered by validity
// start.
func (r *GormEmployeeRepository) GetVersions(companyCode, employeeCode int) ([]models.Employee, error) {
	var versions []models.Employee
	err := r.db.Where("company_code = ? AND employee_code = ?", companyCode, employeeCode).
		Order("valid_from ASC").
		Find(&versions).Error
	return versions, err
}

// CloseVersion bounds a version's validity window and clears its active flag.
func (r *GormEmployeeRepository) CloseVersion(id uint, asOf time.Time) error {
	return r.db.Model(&models.Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"valid_to": asOf, "active": false}).Error
}

func (r *GormEmployeeRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM dim_employee").Error
}
