package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBusinessRepo struct {
	domain.BusinessRepository
	business *domain.Business
	err      error
}

func (s *stubBusinessRepo) GetBusinessByID(string) (*domain.Business, error) {
	return s.business, s.err
}

type stubChainRepo struct {
	domain.ChainRepository
	chain *domain.Chain
	err   error
}

func (s *stubChainRepo) GetChainByID(string) (*domain.Chain, error) {
	return s.chain, s.err
}

type stubIncentiveRepo struct {
	domain.IncentiveRepository
	available []*domain.Incentive
	err       error
	created   *domain.Incentive
}

func (s *stubIncentiveRepo) GetAvailableByBusiness(string) ([]*domain.Incentive, error) {
	return s.available, s.err
}

func (s *stubIncentiveRepo) CreateIncentive(incentive *domain.Incentive) error {
	s.created = incentive
	return nil
}

func TestResolveForBusinessInheritsChainIncentives(t *testing.T) {
	chain := &domain.Chain{
		ID:                  "chain-1",
		UniversalIncentives: true,
		Incentives: []domain.ChainIncentive{
			{ID: "ci-1", IsActive: true, Amount: 10, EligibleCategories: []domain.EligibleCategory{domain.EligibleVeteran}},
			{ID: "ci-2", IsActive: false, Amount: 20},
		},
	}
	uc := NewDefaultIncentiveUsecase(
		&stubIncentiveRepo{available: []*domain.Incentive{{ID: "own-1"}}},
		&stubBusinessRepo{business: &domain.Business{ID: "b1", ChainID: "chain-1", UniversalIncentives: true}},
		&stubChainRepo{chain: chain},
	)

	resolved := uc.ResolveForBusiness("b1")

	assert.Equal(t, domain.SourceChain, resolved.Source)
	assert.Equal(t, "chain-1", resolved.ChainID)
	// Only the active chain record materializes; standalone records are
	// never mixed in.
	require.Len(t, resolved.Incentives, 1)
	assert.Equal(t, "ci-1", resolved.Incentives[0].ID)
	assert.Equal(t, "b1", resolved.Incentives[0].BusinessID)
	assert.True(t, resolved.Incentives[0].IsAvailable)
}

func TestResolveForBusinessOwnIncentives(t *testing.T) {
	uc := NewDefaultIncentiveUsecase(
		&stubIncentiveRepo{available: []*domain.Incentive{{ID: "own-1"}, {ID: "own-2"}}},
		&stubBusinessRepo{business: &domain.Business{ID: "b1", ChainID: "chain-1", UniversalIncentives: false}},
		&stubChainRepo{},
	)

	resolved := uc.ResolveForBusiness("b1")

	// Chain membership without the inheritance flag resolves to own records.
	assert.Equal(t, domain.SourceOwn, resolved.Source)
	assert.Len(t, resolved.Incentives, 2)
}

func TestResolveForBusinessChainLookupFailureDegrades(t *testing.T) {
	uc := NewDefaultIncentiveUsecase(
		&stubIncentiveRepo{},
		&stubBusinessRepo{business: &domain.Business{ID: "b1", ChainID: "chain-1", UniversalIncentives: true}},
		&stubChainRepo{err: errors.New("db down")},
	)

	resolved := uc.ResolveForBusiness("b1")

	assert.Equal(t, domain.SourceChain, resolved.Source)
	assert.NotNil(t, resolved.Incentives)
	assert.Empty(t, resolved.Incentives)
}

func TestResolveForBusinessBusinessLookupFailureDegrades(t *testing.T) {
	uc := NewDefaultIncentiveUsecase(
		&stubIncentiveRepo{},
		&stubBusinessRepo{err: domain.ErrBusinessNotFound},
		&stubChainRepo{},
	)

	resolved := uc.ResolveForBusiness("missing")

	assert.NotNil(t, resolved.Incentives)
	assert.Empty(t, resolved.Incentives)
}

func TestAddIncentiveRejectedWhenChainInherits(t *testing.T) {
	uc := NewDefaultIncentiveUsecase(
		&stubIncentiveRepo{},
		&stubBusinessRepo{business: &domain.Business{ID: "b1", ChainID: "chain-1", UniversalIncentives: true}},
		&stubChainRepo{},
	)

	err := uc.AddIncentive(&domain.Incentive{
		BusinessID:         "b1",
		EligibleCategories: []domain.EligibleCategory{domain.EligibleVeteran},
	})

	assert.ErrorIs(t, err, domain.ErrChainInheritsOffers)
}

func TestAddIncentiveEligibilityValidation(t *testing.T) {
	repo := &stubIncentiveRepo{}
	uc := NewDefaultIncentiveUsecase(
		repo,
		&stubBusinessRepo{business: &domain.Business{ID: "b1"}},
		&stubChainRepo{},
	)

	err := uc.AddIncentive(&domain.Incentive{BusinessID: "b1"})
	assert.ErrorIs(t, err, domain.ErrEmptyEligibilitySet)

	err = uc.AddIncentive(&domain.Incentive{
		BusinessID:         "b1",
		EligibleCategories: []domain.EligibleCategory{"BOGUS"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEligibility)

	err = uc.AddIncentive(&domain.Incentive{
		BusinessID:         "b1",
		EligibleCategories: []domain.EligibleCategory{domain.EligibleVeteran, domain.EligibleSpouse},
	})
	require.NoError(t, err)
	assert.NotNil(t, repo.created)
}

func TestMigrateEligibility(t *testing.T) {
	existing := []domain.EligibleCategory{domain.EligibleActiveDuty}
	assert.Equal(t, existing, MigrateEligibility("VT", existing), "existing set wins")

	assert.Equal(t,
		[]domain.EligibleCategory{domain.EligibleVeteran},
		MigrateEligibility("VT", nil))

	// Neither field present: the sentinel, never an empty set.
	assert.Equal(t,
		[]domain.EligibleCategory{domain.EligibleNotAvailable},
		MigrateEligibility("", nil))
	assert.Equal(t,
		[]domain.EligibleCategory{domain.EligibleNotAvailable},
		MigrateEligibility("garbage", nil))
}

func TestChainIncentiveTimestampsPreservedOnUpdate(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	chainRepo := &recordingChainRepo{chain: &domain.Chain{
		ID: "chain-1",
		Incentives: []domain.ChainIncentive{
			{ID: "ci-1", CreatedAt: created, CreatedBy: "admin-1", Amount: 10},
		},
	}}
	uc := NewDefaultChainUsecase(chainRepo, &stubBusinessRepo{})

	updated, err := uc.UpdateChainIncentive("chain-1", domain.ChainIncentive{
		ID:                 "ci-1",
		Amount:             15,
		EligibleCategories: []domain.EligibleCategory{domain.EligibleVeteran},
	})

	require.NoError(t, err)
	require.Len(t, updated.Incentives, 1)
	assert.Equal(t, created, updated.Incentives[0].CreatedAt)
	assert.Equal(t, "admin-1", updated.Incentives[0].CreatedBy)
	assert.Equal(t, 15.0, updated.Incentives[0].Amount)
}

type recordingChainRepo struct {
	domain.ChainRepository
	chain *domain.Chain
	saved []domain.ChainIncentive
}

func (r *recordingChainRepo) GetChainByID(string) (*domain.Chain, error) { return r.chain, nil }

func (r *recordingChainRepo) UpdateChainIncentives(_ string, incentives []domain.ChainIncentive) error {
	r.saved = incentives
	return nil
}
