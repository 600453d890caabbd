package repository

import (
	"errors"

	"sst-warehouse/internal/models"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	WithTx(tx *gorm.DB) CompanyRepository
	Create(company *models.Company) error
	Update(company *models.Company) error
	FindByCode(companyCode int) (*models.Company, error)
	GetAll() ([]models.Company, error)
	DeleteAll() error
}

type GormCompanyRepository struct {
	db *gorm.DB
}

func NewGormCompanyRepository(db *gorm.DB) (CompanyRepository, error) {
	if err := db.AutoMigrate(&models.Company{}); err != nil {
		return nil, err
	}
	return &GormCompanyRepository{db: db}, nil
}

func (r *GormCompanyRepository) WithTx(tx *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: tx}
}

func (r *GormCompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *GormCompanyRepository) Update(company *models.Company) error {
	return r.db.Save(company).Error
}

func (r *GormCompanyRepository) FindByCode(companyCode int) (*models.Company, error) {
	var company models.Company
	err := r.db.Where("company_code = ?", companyCode).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *GormCompanyRepository) GetAll() ([]models.Company, error) {
	var companies []models.Company
	err := r.db.Order("company_code ASC").Find(&companies).Error
	return companies, err
}

func (r *GormCompanyRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM dim_company").Error
}
