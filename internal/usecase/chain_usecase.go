package usecase

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

type DefaultChainUsecase struct {
	ChainRepo    domain.ChainRepository
	BusinessRepo domain.BusinessRepository
}

func NewDefaultChainUsecase(chainRepo domain.ChainRepository, businessRepo domain.BusinessRepository) *DefaultChainUsecase {
	return &DefaultChainUsecase{ChainRepo: chainRepo, BusinessRepo: businessRepo}
}

func (uc *DefaultChainUsecase) AddChain(chain *domain.Chain) error {
	chain.Name = strings.TrimSpace(chain.Name)
	if chain.Incentives == nil {
		chain.Incentives = []domain.ChainIncentive{}
	}
	return uc.ChainRepo.CreateChain(chain)
}

func (uc *DefaultChainUsecase) GetChainByID(chainID string) (*domain.Chain, error) {
	return uc.ChainRepo.GetChainByID(chainID)
}

func (uc *DefaultChainUsecase) ListChains(page, limit int32) ([]*domain.Chain, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return uc.ChainRepo.ListChains(page, limit)
}

// EditChain updates the chain record only. Member locations do NOT pick up a
// changed inheritance flag until SyncLocations is called explicitly.
func (uc *DefaultChainUsecase) EditChain(chain *domain.Chain) error {
	if _, err := uc.ChainRepo.GetChainByID(chain.ID); err != nil {
		return err
	}
	return uc.ChainRepo.UpdateChain(chain)
}

// RemoveChain deletes the chain and strips chain references from member
// businesses; the businesses themselves are kept.
func (uc *DefaultChainUsecase) RemoveChain(chainID string) (int64, error) {
	if _, err := uc.ChainRepo.GetChainByID(chainID); err != nil {
		return 0, err
	}

	detached, err := uc.BusinessRepo.StripChainRefs(chainID)
	if err != nil {
		return 0, err
	}
	if err := uc.ChainRepo.DeleteChain(chainID); err != nil {
		return detached, err
	}
	return detached, nil
}

func (uc *DefaultChainUsecase) SearchChains(name string) ([]*domain.Chain, error) {
	return uc.ChainRepo.SearchChainsByName(name)
}

var chainNameNoise = regexp.MustCompile(`[^a-z0-9]+`)

func normalizeChainName(name string) string {
	return chainNameNoise.ReplaceAllString(strings.ToLower(name), "")
}

// FindMatch locates the chain whose normalized name matches the candidate
// business name (punctuation and spacing insensitive), used to suggest chain
// membership for new businesses.
func (uc *DefaultChainUsecase) FindMatch(businessName string) (*domain.Chain, error) {
	candidates, err := uc.ChainRepo.SearchChainsByName(strings.TrimSpace(businessName))
	if err != nil {
		return nil, err
	}

	normalized := normalizeChainName(businessName)
	for _, chain := range candidates {
		chainNorm := normalizeChainName(chain.Name)
		if chainNorm == normalized ||
			strings.Contains(normalized, chainNorm) ||
			strings.Contains(chainNorm, normalized) {
			return chain, nil
		}
	}
	return nil, domain.ErrChainNotFound
}

// --- embedded incentive operations ---

func (uc *DefaultChainUsecase) AddChainIncentive(chainID string, incentive domain.ChainIncentive) (*domain.Chain, error) {
	chain, err := uc.ChainRepo.GetChainByID(chainID)
	if err != nil {
		return nil, err
	}

	if len(incentive.EligibleCategories) == 0 {
		return nil, domain.ErrEmptyEligibilitySet
	}
	for _, category := range incentive.EligibleCategories {
		if !domain.ValidEligibleCategory(category) {
			return nil, domain.ErrInvalidEligibility
		}
	}

	if incentive.ID == "" {
		incentive.ID = uuid.New().String()
	}
	now := time.Now()
	incentive.CreatedAt = now
	incentive.UpdatedAt = now

	chain.Incentives = append(chain.Incentives, incentive)
	if err := uc.ChainRepo.UpdateChainIncentives(chainID, chain.Incentives); err != nil {
		return nil, err
	}
	return chain, nil
}

func (uc *DefaultChainUsecase) UpdateChainIncentive(chainID string, incentive domain.ChainIncentive) (*domain.Chain, error) {
	chain, err := uc.ChainRepo.GetChainByID(chainID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range chain.Incentives {
		if chain.Incentives[i].ID == incentive.ID {
			incentive.CreatedAt = chain.Incentives[i].CreatedAt
			incentive.CreatedBy = chain.Incentives[i].CreatedBy
			incentive.UpdatedAt = time.Now()
			chain.Incentives[i] = incentive
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrIncentiveNotFound
	}

	if err := uc.ChainRepo.UpdateChainIncentives(chainID, chain.Incentives); err != nil {
		return nil, err
	}
	return chain, nil
}

func (uc *DefaultChainUsecase) RemoveChainIncentive(chainID, incentiveID string) (*domain.Chain, error) {
	chain, err := uc.ChainRepo.GetChainByID(chainID)
	if err != nil {
		return nil, err
	}

	kept := make([]domain.ChainIncentive, 0, len(chain.Incentives))
	found := false
	for _, incentive := range chain.Incentives {
		if incentive.ID == incentiveID {
			found = true
			continue
		}
		kept = append(kept, incentive)
	}
	if !found {
		return nil, domain.ErrIncentiveNotFound
	}

	chain.Incentives = kept
	if err := uc.ChainRepo.UpdateChainIncentives(chainID, kept); err != nil {
		return nil, err
	}
	return chain, nil
}

func (uc *DefaultChainUsecase) GetChainIncentives(chainID string) ([]domain.ChainIncentive, error) {
	chain, err := uc.ChainRepo.GetChainByID(chainID)
	if err != nil {
		return nil, err
	}
	return chain.Incentives, nil
}

// --- location operations ---

func (uc *DefaultChainUsecase) AddLocation(chainID, businessID string) error {
	chain, err := uc.ChainRepo.GetChainByID(chainID)
	if err != nil {
		return err
	}
	if _, err := uc.BusinessRepo.GetBusinessByID(businessID); err != nil {
		return err
	}
	return uc.BusinessRepo.SetChainMembership(businessID, chainID, chain.UniversalIncentives)
}

func (uc *DefaultChainUsecase) RemoveLocation(businessID string) error {
	if _, err := uc.BusinessRepo.GetBusinessByID(businessID); err != nil {
		return err
	}
	return uc.BusinessRepo.SetChainMembership(businessID, "", false)
}

func (uc *DefaultChainUsecase) GetLocations(chainID string) ([]*domain.Business, error) {
	if _, err := uc.ChainRepo.GetChainByID(chainID); err != nil {
		return nil, err
	}
	return uc.BusinessRepo.GetBusinessesByChain(chainID)
}

// SyncLocations pushes the chain's inheritance flag to every member
// location. This is a batch of independent updates: a partial failure leaves
// some locations synced and others not, surfaced only through the returned
// count. Re-running with no intervening chain change is safe and leaves
// state unchanged.
func (uc *DefaultChainUsecase) SyncLocations(chainID string) (int64, error) {
	chain, err := uc.ChainRepo.GetChainByID(chainID)
	if err != nil {
		return 0, err
	}
	return uc.BusinessRepo.SyncChainFlags(chainID, chain.UniversalIncentives)
}

// BulkUpdateUniversalIncentives flips the inheritance flag on a set of
// chains at once. Member locations still need an explicit sync per chain.
func (uc *DefaultChainUsecase) BulkUpdateUniversalIncentives(chainIDs []string, enabled bool) (int64, error) {
	if len(chainIDs) == 0 {
		return 0, nil
	}
	return uc.ChainRepo.SetUniversalIncentives(chainIDs, enabled)
}

func (uc *DefaultChainUsecase) GetSummary(chainID string) (*domain.ChainSummary, error) {
	chain, err := uc.ChainRepo.GetChainByID(chainID)
	if err != nil {
		return nil, err
	}

	locations, err := uc.BusinessRepo.GetBusinessesByChain(chainID)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, incentive := range chain.Incentives {
		if incentive.IsActive {
			active++
		}
	}

	return &domain.ChainSummary{
		Chain:            chain,
		LocationCount:    int64(len(locations)),
		ActiveIncentives: active,
	}, nil
}
