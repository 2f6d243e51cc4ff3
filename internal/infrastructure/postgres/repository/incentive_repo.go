package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/mappers"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultIncentiveRepository struct {
	DB *gorm.DB
}

func NewDefaultIncentiveRepository(db *gorm.DB) *DefaultIncentiveRepository {
	return &DefaultIncentiveRepository{DB: db}
}

func (r *DefaultIncentiveRepository) CreateIncentive(incentive *domain.Incentive) error {
	model := mappers.ToGORMIncentive(incentive)
	if model.ID == "" {
		model.ID = uuid.New().String()
	}

	if err := r.DB.Create(model).Error; err != nil {
		return err
	}

	incentive.ID = model.ID
	return nil
}

func (r *DefaultIncentiveRepository) GetIncentiveByID(incentiveID string) (*domain.Incentive, error) {
	var model models.IncentiveModel
	if err := r.DB.Where("id = ?", incentiveID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIncentiveNotFound
		}
		return nil, err
	}
	return mappers.ToDomainIncentive(&model), nil
}

func (r *DefaultIncentiveRepository) UpdateIncentive(incentive *domain.Incentive) error {
	updateData := map[string]interface{}{
		"eligible_categories": mappers.ToGORMIncentive(incentive).EligibleCategories,
		"amount":              incentive.Amount,
		"mode":                incentive.Mode,
		"description":         incentive.Description,
		"is_available":        incentive.IsAvailable,
	}

	return r.DB.Model(&models.IncentiveModel{}).
		Where("id = ?", incentive.ID).
		Updates(updateData).Error
}

// DisableIncentive soft-disables via the availability flag.
func (r *DefaultIncentiveRepository) DisableIncentive(incentiveID string) error {
	return r.DB.Model(&models.IncentiveModel{}).
		Where("id = ?", incentiveID).
		Update("is_available", false).Error
}

func (r *DefaultIncentiveRepository) ListIncentives(page, limit int32) ([]*domain.Incentive, int64, error) {
	var incentiveModels []models.IncentiveModel
	var total int64

	r.DB.Model(&models.IncentiveModel{}).Count(&total)

	offset := (page - 1) * limit
	if err := r.DB.Offset(int(offset)).Limit(int(limit)).
		Order("created_at DESC").
		Find(&incentiveModels).Error; err != nil {
		return nil, 0, err
	}

	incentives := make([]*domain.Incentive, len(incentiveModels))
	for i := range incentiveModels {
		incentives[i] = mappers.ToDomainIncentive(&incentiveModels[i])
	}
	return incentives, total, nil
}

func (r *DefaultIncentiveRepository) GetIncentivesByBusiness(businessID string) ([]*domain.Incentive, error) {
	var incentiveModels []models.IncentiveModel
	if err := r.DB.Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&incentiveModels).Error; err != nil {
		return nil, err
	}

	incentives := make([]*domain.Incentive, len(incentiveModels))
	for i := range incentiveModels {
		incentives[i] = mappers.ToDomainIncentive(&incentiveModels[i])
	}
	return incentives, nil
}

func (r *DefaultIncentiveRepository) GetAvailableByBusiness(businessID string) ([]*domain.Incentive, error) {
	var incentiveModels []models.IncentiveModel
	if err := r.DB.Where("business_id = ? AND is_available = ?", businessID, true).
		Order("created_at DESC").
		Find(&incentiveModels).Error; err != nil {
		return nil, err
	}

	incentives := make([]*domain.Incentive, len(incentiveModels))
	for i := range incentiveModels {
		incentives[i] = mappers.ToDomainIncentive(&incentiveModels[i])
	}
	return incentives, nil
}
