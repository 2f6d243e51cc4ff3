package search

import (
	"sort"
	"strings"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

// SortResults orders combined results in place by the priority tuple:
// featured veteran-owned first, then any veteran-owned, then name matches,
// then nearest. Without a coordinate basis the fallback is alphabetical.
func SortResults(results []domain.SearchResult, hasGeo bool) {
	if !hasGeo {
		sort.SliceStable(results, func(i, j int) bool {
			return strings.ToLower(results[i].Business.Name) < strings.ToLower(results[j].Business.Name)
		})
		return
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Business.IsFeatured != b.Business.IsFeatured {
			return a.Business.IsFeatured
		}
		if a.Business.IsVeteranOwned != b.Business.IsVeteranOwned {
			return a.Business.IsVeteranOwned
		}
		if a.NameMatch != b.NameMatch {
			return a.NameMatch
		}
		return a.Distance < b.Distance
	})
}
