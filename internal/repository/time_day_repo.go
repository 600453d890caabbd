package repository

import (
	"errors"
	"time"

	"sst-warehouse/internal/models"

	"gorm.io/gorm"
)

type TimeDayRepository interface {
	WithTx(tx *gorm.DB) TimeDayRepository
	UpsertByDate(day *models.TimeDay) error
	FindByDate(date time.Time) (*models.TimeDay, error)
	CountInRange(start, end time.Time) (int64, error)
	DeleteAll() error
}

type GormTimeDayRepository struct {
	db *gorm.DB
}

func NewGormTimeDayRepository(db *gorm.DB) (TimeDayRepository, error) {
	if err := db.AutoMigrate(&models.TimeDay{}); err != nil {
		return nil, err
	}
	return &GormTimeDayRepository{db: db}, nil
}

func (r *GormTimeDayRepository) WithTx(tx *gorm.DB) TimeDayRepository {
	return &GormTimeDayRepository{db: tx}
}

// UpsertByDate inserts the day or refreshes the attributes of the existing
// row for the same date, keeping one row per date.
func (r *GormTimeDayRepository) UpsertByDate(day *models.TimeDay) error {
	existing, err := r.FindByDate(day.Date)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(day).Error
	}

	day.ID = existing.ID
	day.CreatedAt = existing.CreatedAt
	return r.db.Save(day).Error
}

func (r *GormTimeDayRepository) FindByDate(date time.Time) (*models.TimeDay, error) {
	var day models.TimeDay
	err := r.db.Where("date = ?", date).First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *GormTimeDayRepository) CountInRange(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.TimeDay{}).
		Where("date BETWEEN ? AND ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *GormTimeDayRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM dim_time").Error
}
