package usecase

import (
	"strings"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

type DefaultBusinessUsecase struct {
	BusinessRepo domain.BusinessRepository
	ChainRepo    domain.ChainRepository
}

func NewDefaultBusinessUsecase(businessRepo domain.BusinessRepository, chainRepo domain.ChainRepository) *DefaultBusinessUsecase {
	return &DefaultBusinessUsecase{BusinessRepo: businessRepo, ChainRepo: chainRepo}
}

func (uc *DefaultBusinessUsecase) AddBusiness(business *domain.Business) error {
	business.Name = strings.TrimSpace(business.Name)
	if business.Status == "" {
		business.Status = domain.BusinessActive
	}

	// A business created into a chain picks up the chain's inheritance flag.
	if business.ChainID != "" {
		chain, err := uc.ChainRepo.GetChainByID(business.ChainID)
		if err != nil {
			return err
		}
		business.UniversalIncentives = chain.UniversalIncentives
		if business.Category == "" {
			business.Category = chain.Category
		}
	}

	return uc.BusinessRepo.CreateBusiness(business)
}

func (uc *DefaultBusinessUsecase) EditBusiness(business *domain.Business) error {
	if _, err := uc.BusinessRepo.GetBusinessByID(business.ID); err != nil {
		return err
	}
	return uc.BusinessRepo.UpdateBusiness(business)
}

// RemoveBusiness is a soft delete: the record stays, status flips.
func (uc *DefaultBusinessUsecase) RemoveBusiness(businessID string) error {
	if _, err := uc.BusinessRepo.GetBusinessByID(businessID); err != nil {
		return err
	}
	return uc.BusinessRepo.DeactivateBusiness(businessID)
}

func (uc *DefaultBusinessUsecase) GetBusinessByID(businessID string) (*domain.Business, error) {
	return uc.BusinessRepo.GetBusinessByID(businessID)
}

func (uc *DefaultBusinessUsecase) ListBusinesses(page, limit int32) ([]*domain.Business, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return uc.BusinessRepo.ListBusinesses(page, limit)
}
