package search

import (
	"testing"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func resultNames(results []domain.SearchResult) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Business.Name
	}
	return names
}

func TestSortResultsPriorityTuple(t *testing.T) {
	results := []domain.SearchResult{
		{Business: &domain.Business{Name: "plain far"}, Distance: 10},
		{Business: &domain.Business{Name: "plain near"}, Distance: 1},
		{Business: &domain.Business{Name: "name match"}, Distance: 5, NameMatch: true},
		{Business: &domain.Business{Name: "veteran owned", IsVeteranOwned: true}, Distance: 20},
		{Business: &domain.Business{Name: "featured", IsFeatured: true}, Distance: 30},
	}

	SortResults(results, true)

	assert.Equal(t, []string{
		"featured",
		"veteran owned",
		"name match",
		"plain near",
		"plain far",
	}, resultNames(results))
}

func TestSortResultsDistanceBreaksTies(t *testing.T) {
	results := []domain.SearchResult{
		{Business: &domain.Business{Name: "vet far", IsVeteranOwned: true}, Distance: 8},
		{Business: &domain.Business{Name: "vet near", IsVeteranOwned: true}, Distance: 2},
	}

	SortResults(results, true)

	assert.Equal(t, []string{"vet near", "vet far"}, resultNames(results))
}

func TestSortResultsAlphabeticalWithoutGeo(t *testing.T) {
	results := []domain.SearchResult{
		{Business: &domain.Business{Name: "zeta diner", IsFeatured: true}},
		{Business: &domain.Business{Name: "Alpha Cafe"}},
		{Business: &domain.Business{Name: "beta grill"}},
	}

	SortResults(results, false)

	// No coordinate basis: case-insensitive alphabetical, flags ignored.
	assert.Equal(t, []string{"Alpha Cafe", "beta grill", "zeta diner"}, resultNames(results))
}
