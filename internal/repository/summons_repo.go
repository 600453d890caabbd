package repository

import (
	"sst-warehouse/internal/models"

	"gorm.io/gorm"
)

type SummonsRepository interface {
	WithTx(tx *gorm.DB) SummonsRepository
	Create(summons *models.Summons) error
	ExistsByEmployeeAndExam(employeeCode, examCode int) (bool, error)
	GetAll() ([]models.Summons, error)
	DeleteAll() error
}

type GormSummonsRepository struct {
	db *gorm.DB
}

func NewGormSummonsRepository(db *gorm.DB) (SummonsRepository, error) {
	if err := db.AutoMigrate(&models.Summons{}); err != nil {
		return nil, err
	}
	return &GormSummonsRepository{db: db}, nil
}

func (r *GormSummonsRepository) WithTx(tx *gorm.DB) SummonsRepository {
	return &GormSummonsRepository{db: tx}
}

func (r *GormSummonsRepository) Create(summons *models.Summons) error {
	return r.db.Create(summons).Error
}

// ExistsByEmployeeAndExam probes the unique business key of the fact.
func (r *GormSummonsRepository) ExistsByEmployeeAndExam(employeeCode, examCode int) (bool, error) {
	var count int64
	err := r.db.Model(&models.Summons{}).
		Where("employee_code = ? AND exam_code = ?", employeeCode, examCode).
		Count(&count).Error
	return count > 0, err
}

func (r *GormSummonsRepository) GetAll() ([]models.Summons, error) {
	var summonses []models.Summons
	err := r.db.Find(&summonses).Error
	return summonses, err
}

func (r *GormSummonsRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM fact_summons").Error
}
