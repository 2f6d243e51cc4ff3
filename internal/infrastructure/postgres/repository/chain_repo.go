package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/mappers"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultChainRepository struct {
	DB *gorm.DB
}

func NewDefaultChainRepository(db *gorm.DB) *DefaultChainRepository {
	return &DefaultChainRepository{DB: db}
}

func (r *DefaultChainRepository) CreateChain(chain *domain.Chain) error {
	model := mappers.ToGORMChain(chain)
	if model.ID == "" {
		model.ID = uuid.New().String()
	}
	if model.Incentives == nil {
		model.Incentives = []models.ChainIncentiveRecord{}
	}

	if err := r.DB.Create(model).Error; err != nil {
		return err
	}

	chain.ID = model.ID
	return nil
}

func (r *DefaultChainRepository) GetChainByID(chainID string) (*domain.Chain, error) {
	var model models.ChainModel
	if err := r.DB.Where("id = ?", chainID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChainNotFound
		}
		return nil, err
	}
	return mappers.ToDomainChain(&model), nil
}

func (r *DefaultChainRepository) UpdateChain(chain *domain.Chain) error {
	updateData := map[string]interface{}{
		"name":                 chain.Name,
		"category":             chain.Category,
		"universal_incentives": chain.UniversalIncentives,
	}

	return r.DB.Model(&models.ChainModel{}).
		Where("id = ?", chain.ID).
		Updates(updateData).Error
}

func (r *DefaultChainRepository) UpdateChainIncentives(chainID string, incentives []domain.ChainIncentive) error {
	records := mappers.ToChainIncentiveRecords(incentives)
	return r.DB.Model(&models.ChainModel{}).
		Where("id = ?", chainID).
		Update("incentives", records).Error
}

func (r *DefaultChainRepository) DeleteChain(chainID string) error {
	return r.DB.Delete(&models.ChainModel{ID: chainID}).Error
}

func (r *DefaultChainRepository) ListChains(page, limit int32) ([]*domain.Chain, int64, error) {
	var chainModels []models.ChainModel
	var total int64

	r.DB.Model(&models.ChainModel{}).Count(&total)

	offset := (page - 1) * limit
	if err := r.DB.Offset(int(offset)).Limit(int(limit)).
		Order("name ASC").
		Find(&chainModels).Error; err != nil {
		return nil, 0, err
	}

	chains := make([]*domain.Chain, len(chainModels))
	for i := range chainModels {
		chains[i] = mappers.ToDomainChain(&chainModels[i])
	}
	return chains, total, nil
}

func (r *DefaultChainRepository) SearchChainsByName(name string) ([]*domain.Chain, error) {
	var chainModels []models.ChainModel
	pattern := "%" + strings.ToLower(name) + "%"
	if err := r.DB.Where("LOWER(name) LIKE ?", pattern).
		Order("name ASC").
		Find(&chainModels).Error; err != nil {
		return nil, err
	}

	chains := make([]*domain.Chain, len(chainModels))
	for i := range chainModels {
		chains[i] = mappers.ToDomainChain(&chainModels[i])
	}
	return chains, nil
}

func (r *DefaultChainRepository) SetUniversalIncentives(chainIDs []string, enabled bool) (int64, error) {
	result := r.DB.Model(&models.ChainModel{}).
		Where("id IN ?", chainIDs).
		Update("universal_incentives", enabled)
	return result.RowsAffected, result.Error
}
