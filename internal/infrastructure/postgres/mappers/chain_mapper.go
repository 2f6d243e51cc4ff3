package mappers

import (
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
)

func ToDomainChain(model *models.ChainModel) *domain.Chain {
	incentives := make([]domain.ChainIncentive, len(model.Incentives))
	for i, record := range model.Incentives {
		incentives[i] = domain.ChainIncentive{
			ID:                 record.ID,
			EligibleCategories: record.EligibleCategories,
			Amount:             record.Amount,
			Mode:               record.Mode,
			Description:        record.Description,
			IsActive:           record.IsActive,
			CreatedBy:          record.CreatedBy,
			CreatedAt:          record.CreatedAt,
			UpdatedAt:          record.UpdatedAt,
		}
	}
	return &domain.Chain{
		ID:                  model.ID,
		Name:                model.Name,
		Category:            model.Category,
		UniversalIncentives: model.UniversalIncentives,
		Incentives:          incentives,
		CreatedBy:           model.CreatedBy,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

func ToGORMChain(chain *domain.Chain) *models.ChainModel {
	return &models.ChainModel{
		ID:                  chain.ID,
		Name:                chain.Name,
		Category:            chain.Category,
		UniversalIncentives: chain.UniversalIncentives,
		Incentives:          ToChainIncentiveRecords(chain.Incentives),
		CreatedBy:           chain.CreatedBy,
		CreatedAt:           chain.CreatedAt,
		UpdatedAt:           chain.UpdatedAt,
	}
}

func ToChainIncentiveRecords(incentives []domain.ChainIncentive) []models.ChainIncentiveRecord {
	records := make([]models.ChainIncentiveRecord, len(incentives))
	for i, incentive := range incentives {
		records[i] = models.ChainIncentiveRecord{
			ID:                 incentive.ID,
			EligibleCategories: incentive.EligibleCategories,
			Amount:             incentive.Amount,
			Mode:               incentive.Mode,
			Description:        incentive.Description,
			IsActive:           incentive.IsActive,
			CreatedBy:          incentive.CreatedBy,
			CreatedAt:          incentive.CreatedAt,
			UpdatedAt:          incentive.UpdatedAt,
		}
	}
	return records
}
