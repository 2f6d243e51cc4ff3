package repository

import (
	"testing"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBusiness(t *testing.T, repo *DefaultBusinessRepository, business *domain.Business) *domain.Business {
	t.Helper()
	require.NoError(t, repo.CreateBusiness(business))
	return business
}

func searchNames(t *testing.T, repo *DefaultBusinessRepository, filter *domain.BusinessFilter) []string {
	t.Helper()
	businesses, err := repo.SearchBusinesses(filter)
	require.NoError(t, err)
	names := make([]string, len(businesses))
	for i, business := range businesses {
		names[i] = business.Name
	}
	return names
}

func TestSearchBusinessesExcludesInactive(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	seedBusiness(t, repo, &domain.Business{Name: "Open Diner"})
	closed := seedBusiness(t, repo, &domain.Business{Name: "Closed Diner"})
	require.NoError(t, repo.DeactivateBusiness(closed.ID))

	names := searchNames(t, repo, &domain.BusinessFilter{})

	assert.Equal(t, []string{"Open Diner"}, names)
}

func TestSearchBusinessesAdministrativeArea(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	seedBusiness(t, repo, &domain.Business{Name: "Norfolk Deli", City: "Norfolk", State: "VA", Zip: "23505"})
	seedBusiness(t, repo, &domain.Business{Name: "Richmond Deli", City: "Richmond", State: "VA", Zip: "23220"})

	names := searchNames(t, repo, &domain.BusinessFilter{Zip: "23505"})
	assert.Equal(t, []string{"Norfolk Deli"}, names)

	// City and state clauses compare case-insensitively.
	names = searchNames(t, repo, &domain.BusinessFilter{City: "NORFOLK", State: "va"})
	assert.Equal(t, []string{"Norfolk Deli"}, names)
}

func TestSearchBusinessesGeoBoundingBox(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	seedBusiness(t, repo, &domain.Business{
		Name: "Inside", Location: &domain.GeoPoint{Lat: 36.86, Lng: -76.28},
	})
	seedBusiness(t, repo, &domain.Business{
		Name: "Outside", Location: &domain.GeoPoint{Lat: 37.86, Lng: -76.28},
	})
	seedBusiness(t, repo, &domain.Business{Name: "Ungeocoded", Zip: "23505"})

	names := searchNames(t, repo, &domain.BusinessFilter{
		Geo: &domain.GeoFilter{Center: domain.GeoPoint{Lat: 36.85, Lng: -76.28}, RadiusMiles: 25},
	})

	// Ungeocoded rows can never satisfy a radius search.
	assert.Equal(t, []string{"Inside"}, names)
}

func TestSearchBusinessesCategory(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	seedBusiness(t, repo, &domain.Business{Name: "Burger Hut", Category: domain.CategoryRestaurant})
	seedBusiness(t, repo, &domain.Business{Name: "Bolt Depot", Category: domain.CategoryHardware})

	names := searchNames(t, repo, &domain.BusinessFilter{Category: domain.CategoryRestaurant})

	assert.Equal(t, []string{"Burger Hut"}, names)
}

func TestSearchBusinessesTextWithCategoryAlternatives(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	seedBusiness(t, repo, &domain.Business{Name: "Pasta Palace", Description: "Fresh noodles daily"})
	seedBusiness(t, repo, &domain.Business{Name: "Corner Store", Category: domain.CategoryGrocery})
	seedBusiness(t, repo, &domain.Business{Name: "Tire Shop", Category: domain.CategoryAutomotive})

	names := searchNames(t, repo, &domain.BusinessFilter{
		Text:                 "noodles",
		CategoryAlternatives: []domain.BusinessCategory{domain.CategoryGrocery},
	})

	// The text clause ORs the description match with the keyword-derived
	// category alternatives.
	assert.ElementsMatch(t, []string{"Pasta Palace", "Corner Store"}, names)
}

func TestSearchBusinessesAddressLike(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	seedBusiness(t, repo, &domain.Business{Name: "On Granby", Address1: "123 Granby St", City: "Norfolk"})
	seedBusiness(t, repo, &domain.Business{Name: "On Main", Address1: "9 Main St", City: "Suffolk"})

	names := searchNames(t, repo, &domain.BusinessFilter{AddressLike: "granby"})

	assert.Equal(t, []string{"On Granby"}, names)
}

func TestSearchBusinessesServiceCategorySubquery(t *testing.T) {
	db := newTestDB(t)
	repo := NewDefaultBusinessRepository(db)
	incentives := NewDefaultIncentiveRepository(db)

	veteran := seedBusiness(t, repo, &domain.Business{Name: "Veteran Friendly"})
	spouseOnly := seedBusiness(t, repo, &domain.Business{Name: "Spouse Only"})
	disabled := seedBusiness(t, repo, &domain.Business{Name: "Offer Disabled"})
	seedBusiness(t, repo, &domain.Business{Name: "No Offers"})

	require.NoError(t, incentives.CreateIncentive(&domain.Incentive{
		BusinessID:         veteran.ID,
		EligibleCategories: []domain.EligibleCategory{domain.EligibleVeteran, domain.EligibleActiveDuty},
		IsAvailable:        true,
	}))
	require.NoError(t, incentives.CreateIncentive(&domain.Incentive{
		BusinessID:         spouseOnly.ID,
		EligibleCategories: []domain.EligibleCategory{domain.EligibleSpouse},
		IsAvailable:        true,
	}))
	require.NoError(t, incentives.CreateIncentive(&domain.Incentive{
		BusinessID:         disabled.ID,
		EligibleCategories: []domain.EligibleCategory{domain.EligibleVeteran},
		IsAvailable:        false,
	}))

	names := searchNames(t, repo, &domain.BusinessFilter{ServiceCategory: domain.EligibleVeteran})

	assert.Equal(t, []string{"Veteran Friendly"}, names)
}

func TestSearchBusinessesNamePatternPostFilter(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	seedBusiness(t, repo, &domain.Business{Name: "Lowe's Home Improvement"})
	seedBusiness(t, repo, &domain.Business{Name: "Ace Hardware"})

	names := searchNames(t, repo, &domain.BusinessFilter{NamePatterns: []string{`lowe'?s`}})
	assert.Equal(t, []string{"Lowe's Home Improvement"}, names)

	// With DeferName the patterns only feed ranking; nothing is dropped.
	names = searchNames(t, repo, &domain.BusinessFilter{
		NamePatterns: []string{`lowe'?s`},
		DeferName:    true,
	})
	assert.Len(t, names, 2)
}

func TestSearchBusinessesInvalidPatternIgnored(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	seedBusiness(t, repo, &domain.Business{Name: "Anything"})

	names := searchNames(t, repo, &domain.BusinessFilter{NamePatterns: []string{`([`}})

	assert.Equal(t, []string{"Anything"}, names)
}

func TestListBusinessesPaginatesAlphabetically(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	seedBusiness(t, repo, &domain.Business{Name: "Charlie"})
	seedBusiness(t, repo, &domain.Business{Name: "Alpha"})
	seedBusiness(t, repo, &domain.Business{Name: "Bravo"})

	businesses, total, err := repo.ListBusinesses(1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, businesses, 2)
	assert.Equal(t, "Alpha", businesses[0].Name)
	assert.Equal(t, "Bravo", businesses[1].Name)

	businesses, _, err = repo.ListBusinesses(2, 2)
	require.NoError(t, err)
	require.Len(t, businesses, 1)
	assert.Equal(t, "Charlie", businesses[0].Name)
}

func TestGetBusinessByIDNotFound(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))

	_, err := repo.GetBusinessByID("missing")

	assert.ErrorIs(t, err, domain.ErrBusinessNotFound)
}

func TestCreateBusinessDefaults(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))

	business := seedBusiness(t, repo, &domain.Business{Name: "Fresh"})

	assert.NotEmpty(t, business.ID)
	assert.Equal(t, domain.BusinessActive, business.Status)
}

func TestLocationRoundTrip(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	seeded := seedBusiness(t, repo, &domain.Business{
		Name:     "Geocoded",
		Location: &domain.GeoPoint{Lat: 36.8508, Lng: -76.2859},
	})

	fetched, err := repo.GetBusinessByID(seeded.ID)

	require.NoError(t, err)
	require.NotNil(t, fetched.Location)
	assert.InDelta(t, 36.8508, fetched.Location.Lat, 1e-9)
	assert.InDelta(t, -76.2859, fetched.Location.Lng, 1e-9)
}

func TestUpdateBusinessClearsFlags(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	seeded := seedBusiness(t, repo, &domain.Business{
		Name:                "Flagged",
		Description:         "Veteran run since 1998",
		ChainID:             "chain-1",
		UniversalIncentives: true,
		IsVeteranOwned:      true,
		VeteranVerified:     true,
		IsFeatured:          true,
	})

	err := repo.UpdateBusiness(&domain.Business{ID: seeded.ID, Name: "Flagged"})

	require.NoError(t, err)
	fetched, err := repo.GetBusinessByID(seeded.ID)
	require.NoError(t, err)
	// An edit that unsets a flag or detaches the chain must actually land.
	assert.False(t, fetched.IsFeatured)
	assert.False(t, fetched.IsVeteranOwned)
	assert.False(t, fetched.VeteranVerified)
	assert.False(t, fetched.UniversalIncentives)
	assert.Empty(t, fetched.ChainID)
	assert.Empty(t, fetched.Description)
}

func TestStripChainRefsDetachesMembers(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	member := seedBusiness(t, repo, &domain.Business{
		Name: "Member", ChainID: "chain-1", UniversalIncentives: true,
	})
	other := seedBusiness(t, repo, &domain.Business{Name: "Other", ChainID: "chain-2"})

	detached, err := repo.StripChainRefs("chain-1")

	require.NoError(t, err)
	assert.EqualValues(t, 1, detached)

	fetched, err := repo.GetBusinessByID(member.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.ChainID)
	assert.False(t, fetched.UniversalIncentives)

	untouched, err := repo.GetBusinessByID(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "chain-2", untouched.ChainID)
}

func TestSyncChainFlags(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	a := seedBusiness(t, repo, &domain.Business{Name: "A", ChainID: "chain-1"})
	b := seedBusiness(t, repo, &domain.Business{Name: "B", ChainID: "chain-1"})
	seedBusiness(t, repo, &domain.Business{Name: "C", ChainID: "chain-2"})

	updated, err := repo.SyncChainFlags("chain-1", true)

	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)
	for _, id := range []string{a.ID, b.ID} {
		fetched, err := repo.GetBusinessByID(id)
		require.NoError(t, err)
		assert.True(t, fetched.UniversalIncentives)
	}

	// Re-running the sync with no intervening change is stable.
	updated, err = repo.SyncChainFlags("chain-1", true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)
}

func TestGetVBOStats(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	seedBusiness(t, repo, &domain.Business{Name: "Plain"})
	seedBusiness(t, repo, &domain.Business{Name: "Vet", IsVeteranOwned: true})
	seedBusiness(t, repo, &domain.Business{Name: "Vet Featured", IsVeteranOwned: true, IsFeatured: true})
	inactive := seedBusiness(t, repo, &domain.Business{Name: "Gone", IsVeteranOwned: true})
	require.NoError(t, repo.DeactivateBusiness(inactive.ID))

	stats, err := repo.GetVBOStats()

	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 2, stats.VeteranOwned)
	assert.EqualValues(t, 1, stats.Featured)
}

func TestSetChainMembership(t *testing.T) {
	repo := NewDefaultBusinessRepository(newTestDB(t))
	business := seedBusiness(t, repo, &domain.Business{Name: "Solo"})

	require.NoError(t, repo.SetChainMembership(business.ID, "chain-1", true))

	fetched, err := repo.GetBusinessByID(business.ID)
	require.NoError(t, err)
	assert.Equal(t, "chain-1", fetched.ChainID)
	assert.True(t, fetched.UniversalIncentives)

	members, err := repo.GetBusinessesByChain("chain-1")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, business.ID, members[0].ID)
}
