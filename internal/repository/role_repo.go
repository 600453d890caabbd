package repository

import (
	"errors"

	"sst-warehouse/internal/models"

	"gorm.io/gorm"
)

type RoleRepository interface {
	WithTx(tx *gorm.DB) RoleRepository
	Create(role *models.Role) error
	Update(role *models.Role) error
	FindByCode(roleCode string) (*models.Role, error)
	DeleteAll() error
}

type GormRoleRepository struct {
	db *gorm.DB
}

func NewGormRoleRepository(db *gorm.DB) (RoleRepository, error) {
	if err := db.AutoMigrate(&models.Role{}); err != nil {
		return nil, err
	}
	return &GormRoleRepository{db: db}, nil
}

func (r *GormRoleRepository) WithTx(tx *gorm.DB) RoleRepository {
	return &GormRoleRepository{db: tx}
}

func (r *GormRoleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

func (r *GormRoleRepository) Update(role *models.Role) error {
	return r.db.Save(role).Error
}

func (r *GormRoleRepository) FindByCode(roleCode string) (*models.Role, error) {
	var role models.Role
	err := r.db.Where("role_code = ?", roleCode).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *GormRoleRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM dim_role").Error
}
