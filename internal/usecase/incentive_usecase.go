package usecase

import (
	"log/slog"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

type DefaultIncentiveUsecase struct {
	IncentiveRepo domain.IncentiveRepository
	BusinessRepo  domain.BusinessRepository
	ChainRepo     domain.ChainRepository
}

func NewDefaultIncentiveUsecase(
	incentiveRepo domain.IncentiveRepository,
	businessRepo domain.BusinessRepository,
	chainRepo domain.ChainRepository,
) *DefaultIncentiveUsecase {
	return &DefaultIncentiveUsecase{
		IncentiveRepo: incentiveRepo,
		BusinessRepo:  businessRepo,
		ChainRepo:     chainRepo,
	}
}

// ResolveForBusiness decides where a business's active offers come from:
// inherited from its chain (membership + inheritance flag) or its own
// standalone records. The two sources are mutually exclusive and never
// merged. Lookup failures degrade to an empty offer list; the caller's
// request does not fail on this step.
func (uc *DefaultIncentiveUsecase) ResolveForBusiness(businessID string) *domain.ResolvedIncentives {
	business, err := uc.BusinessRepo.GetBusinessByID(businessID)
	if err != nil {
		slog.Warn("incentive resolution: business lookup failed", "business_id", businessID, "err", err)
		return &domain.ResolvedIncentives{BusinessID: businessID, Source: domain.SourceOwn, Incentives: []*domain.Incentive{}}
	}

	if business.ChainID != "" && business.UniversalIncentives {
		return uc.resolveInherited(business)
	}
	return uc.resolveOwned(businessID)
}

func (uc *DefaultIncentiveUsecase) resolveInherited(business *domain.Business) *domain.ResolvedIncentives {
	resolved := &domain.ResolvedIncentives{
		BusinessID: business.ID,
		Source:     domain.SourceChain,
		ChainID:    business.ChainID,
		Incentives: []*domain.Incentive{},
	}

	chain, err := uc.ChainRepo.GetChainByID(business.ChainID)
	if err != nil {
		slog.Warn("incentive resolution: chain lookup failed", "chain_id", business.ChainID, "err", err)
		return resolved
	}

	for _, chainIncentive := range chain.Incentives {
		if !chainIncentive.IsActive {
			continue
		}
		// Materialize the chain record as an offer scoped to this
		// location, marked chain-derived.
		resolved.Incentives = append(resolved.Incentives, &domain.Incentive{
			ID:                 chainIncentive.ID,
			BusinessID:         business.ID,
			EligibleCategories: chainIncentive.EligibleCategories,
			Amount:             chainIncentive.Amount,
			Mode:               chainIncentive.Mode,
			Description:        chainIncentive.Description,
			IsAvailable:        true,
			CreatedAt:          chainIncentive.CreatedAt,
			UpdatedAt:          chainIncentive.UpdatedAt,
		})
	}
	return resolved
}

func (uc *DefaultIncentiveUsecase) resolveOwned(businessID string) *domain.ResolvedIncentives {
	resolved := &domain.ResolvedIncentives{
		BusinessID: businessID,
		Source:     domain.SourceOwn,
		Incentives: []*domain.Incentive{},
	}

	incentives, err := uc.IncentiveRepo.GetAvailableByBusiness(businessID)
	if err != nil {
		slog.Warn("incentive resolution: standalone lookup failed", "business_id", businessID, "err", err)
		return resolved
	}
	resolved.Incentives = incentives
	return resolved
}

// AddIncentive validates the eligibility set and rejects standalone records
// for businesses currently inheriting their chain's incentives.
func (uc *DefaultIncentiveUsecase) AddIncentive(incentive *domain.Incentive) error {
	if err := normalizeEligibility(incentive); err != nil {
		return err
	}

	business, err := uc.BusinessRepo.GetBusinessByID(incentive.BusinessID)
	if err != nil {
		return err
	}
	if business.ChainID != "" && business.UniversalIncentives {
		return domain.ErrChainInheritsOffers
	}

	return uc.IncentiveRepo.CreateIncentive(incentive)
}

func (uc *DefaultIncentiveUsecase) EditIncentive(incentive *domain.Incentive) error {
	if err := normalizeEligibility(incentive); err != nil {
		return err
	}
	if _, err := uc.IncentiveRepo.GetIncentiveByID(incentive.ID); err != nil {
		return err
	}
	return uc.IncentiveRepo.UpdateIncentive(incentive)
}

func (uc *DefaultIncentiveUsecase) DisableIncentive(incentiveID string) error {
	if _, err := uc.IncentiveRepo.GetIncentiveByID(incentiveID); err != nil {
		return err
	}
	return uc.IncentiveRepo.DisableIncentive(incentiveID)
}

func (uc *DefaultIncentiveUsecase) GetIncentiveByID(incentiveID string) (*domain.Incentive, error) {
	return uc.IncentiveRepo.GetIncentiveByID(incentiveID)
}

func (uc *DefaultIncentiveUsecase) ListIncentives(page, limit int32) ([]*domain.Incentive, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return uc.IncentiveRepo.ListIncentives(page, limit)
}

func (uc *DefaultIncentiveUsecase) GetIncentivesByBusiness(businessID string) ([]*domain.Incentive, error) {
	return uc.IncentiveRepo.GetIncentivesByBusiness(businessID)
}

func normalizeEligibility(incentive *domain.Incentive) error {
	if len(incentive.EligibleCategories) == 0 {
		return domain.ErrEmptyEligibilitySet
	}
	for _, category := range incentive.EligibleCategories {
		if !domain.ValidEligibleCategory(category) {
			return domain.ErrInvalidEligibility
		}
	}
	return nil
}

// MigrateEligibility converts a legacy single "type" field to the eligible
// category set. A record with neither migrates to the "NA" sentinel, never
// to an empty set.
func MigrateEligibility(legacyType string, existing []domain.EligibleCategory) []domain.EligibleCategory {
	if len(existing) > 0 {
		return existing
	}
	if legacyType != "" && domain.ValidEligibleCategory(domain.EligibleCategory(legacyType)) {
		return []domain.EligibleCategory{domain.EligibleCategory(legacyType)}
	}
	return []domain.EligibleCategory{domain.EligibleNotAvailable}
}
