package repository

import (
	"testing"
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncentiveEligibilityRoundTrip(t *testing.T) {
	db := newTestDB(t)
	business := seedBusiness(t, NewDefaultBusinessRepository(db), &domain.Business{Name: "Host"})
	repo := NewDefaultIncentiveRepository(db)

	incentive := &domain.Incentive{
		BusinessID:         business.ID,
		EligibleCategories: []domain.EligibleCategory{domain.EligibleVeteran, domain.EligibleFirstResponder},
		Amount:             15,
		Mode:               domain.DiscountPercentage,
		IsAvailable:        true,
	}
	require.NoError(t, repo.CreateIncentive(incentive))
	require.NotEmpty(t, incentive.ID)

	fetched, err := repo.GetIncentiveByID(incentive.ID)

	require.NoError(t, err)
	assert.Equal(t, business.ID, fetched.BusinessID)
	assert.Equal(t, []domain.EligibleCategory{domain.EligibleVeteran, domain.EligibleFirstResponder}, fetched.EligibleCategories)
	assert.Equal(t, domain.DiscountPercentage, fetched.Mode)
}

func TestGetAvailableByBusinessSkipsDisabled(t *testing.T) {
	db := newTestDB(t)
	business := seedBusiness(t, NewDefaultBusinessRepository(db), &domain.Business{Name: "Host"})
	repo := NewDefaultIncentiveRepository(db)

	active := &domain.Incentive{
		BusinessID:         business.ID,
		EligibleCategories: []domain.EligibleCategory{domain.EligibleVeteran},
		IsAvailable:        true,
		CreatedAt:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	disabled := &domain.Incentive{
		BusinessID:         business.ID,
		EligibleCategories: []domain.EligibleCategory{domain.EligibleSpouse},
		IsAvailable:        true,
		CreatedAt:          time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateIncentive(active))
	require.NoError(t, repo.CreateIncentive(disabled))
	require.NoError(t, repo.DisableIncentive(disabled.ID))

	available, err := repo.GetAvailableByBusiness(business.ID)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, active.ID, available[0].ID)

	// The full listing still carries the disabled record.
	all, err := repo.GetIncentivesByBusiness(business.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateIncentiveReplacesEligibility(t *testing.T) {
	db := newTestDB(t)
	business := seedBusiness(t, NewDefaultBusinessRepository(db), &domain.Business{Name: "Host"})
	repo := NewDefaultIncentiveRepository(db)

	incentive := &domain.Incentive{
		BusinessID:         business.ID,
		EligibleCategories: []domain.EligibleCategory{domain.EligibleVeteran},
		Amount:             10,
		IsAvailable:        true,
	}
	require.NoError(t, repo.CreateIncentive(incentive))

	incentive.EligibleCategories = []domain.EligibleCategory{domain.EligibleNotAvailable}
	incentive.Amount = 0
	incentive.IsAvailable = false
	require.NoError(t, repo.UpdateIncentive(incentive))

	fetched, err := repo.GetIncentiveByID(incentive.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.EligibleCategory{domain.EligibleNotAvailable}, fetched.EligibleCategories)
	assert.Zero(t, fetched.Amount)
	assert.False(t, fetched.IsAvailable)
}

func TestGetIncentiveByIDNotFound(t *testing.T) {
	repo := NewDefaultIncentiveRepository(newTestDB(t))

	_, err := repo.GetIncentiveByID("missing")

	assert.ErrorIs(t, err, domain.ErrIncentiveNotFound)
}
