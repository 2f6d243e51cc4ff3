package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultAdminCodeRepository struct {
	DB *gorm.DB
}

func NewDefaultAdminCodeRepository(db *gorm.DB) *DefaultAdminCodeRepository {
	return &DefaultAdminCodeRepository{DB: db}
}

func (r *DefaultAdminCodeRepository) CreateAdminCode(code *domain.AdminCode) error {
	model := models.AdminCodeModel{
		ID:          code.ID,
		Code:        code.Code,
		Description: code.Description,
		ExpiresAt:   code.ExpiresAt,
		CreatedAt:   code.CreatedAt,
	}
	if model.ID == "" {
		model.ID = uuid.New().String()
	}

	if err := r.DB.Create(&model).Error; err != nil {
		return err
	}

	code.ID = model.ID
	return nil
}

func (r *DefaultAdminCodeRepository) ValidateCode(code string, now time.Time) (bool, error) {
	var model models.AdminCodeModel
	err := r.DB.Where("code = ? AND expires_at > ?", code, now).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *DefaultAdminCodeRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.DB.Where("expires_at <= ?", now).Delete(&models.AdminCodeModel{})
	return result.RowsAffected, result.Error
}
