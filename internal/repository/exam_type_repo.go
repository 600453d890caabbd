package repository

import (
	"errors"

	"sst-warehouse/internal/models"

	"gorm.io/gorm"
)

type ExamTypeRepository interface {
	WithTx(tx *gorm.DB) ExamTypeRepository
	Create(examType *models.ExamType) error
	Update(examType *models.ExamType) error
	FindByCode(examCode int) (*models.ExamType, error)
	DeleteAll() error
}

type GormExamTypeRepository struct {
	db *gorm.DB
}

func NewGormExamTypeRepository(db *gorm.DB) (ExamTypeRepository, error) {
	if err := db.AutoMigrate(&models.ExamType{}); err != nil {
		return nil, err
	}
	return &GormExamTypeRepository{db: db}, nil
}

func (r *GormExamTypeRepository) WithTx(tx *gorm.DB) ExamTypeRepository {
	return &GormExamTypeRepository{db: tx}
}

func (r *GormExamTypeRepository) Create(examType *models.ExamType) error {
	return r.db.Create(examType).Error
}

func (r *GormExamTypeRepository) Update(examType *models.ExamType) error {
	return r.db.Save(examType).Error
}

func (r *GormExamTypeRepository) FindByCode(examCode int) (*models.ExamType, error) {
	var examType models.ExamType
	err := r.db.Where("exam_code = ?", examCode).First(&examType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &examType, nil
}

func (r *GormExamTypeRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM dim_exam_type").Error
}
