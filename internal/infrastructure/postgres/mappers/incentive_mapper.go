package mappers

import (
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
)

func ToDomainIncentive(model *models.IncentiveModel) *domain.Incentive {
	return &domain.Incentive{
		ID:                 model.ID,
		BusinessID:         model.BusinessID,
		EligibleCategories: model.EligibleCategories,
		Amount:             model.Amount,
		Mode:               model.Mode,
		Description:        model.Description,
		IsAvailable:        model.IsAvailable,
		CreatedBy:          model.CreatedBy,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

func ToGORMIncentive(incentive *domain.Incentive) *models.IncentiveModel {
	return &models.IncentiveModel{
		ID:                 incentive.ID,
		BusinessID:         incentive.BusinessID,
		EligibleCategories: incentive.EligibleCategories,
		Amount:             incentive.Amount,
		Mode:               incentive.Mode,
		Description:        incentive.Description,
		IsAvailable:        incentive.IsAvailable,
		CreatedBy:          incentive.CreatedBy,
		CreatedAt:          incentive.CreatedAt,
		UpdatedAt:          incentive.UpdatedAt,
	}
}
