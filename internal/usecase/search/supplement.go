package search

import (
	"strings"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/places"
)

// Two coordinates closer than this are treated as the same business
// (~100 meters).
const dedupRadiusMiles = 0.06

const metersPerMile = 1609.34

// categoryTerms derives an external text-search term from a category filter.
var categoryTerms = map[domain.BusinessCategory]string{
	domain.CategoryRestaurant: "restaurant",
	domain.CategoryRetail:     "store",
	domain.CategoryGrocery:    "grocery store",
	domain.CategoryAutomotive: "auto repair",
	domain.CategoryHardware:   "hardware store",
	domain.CategoryBeauty:     "beauty salon",
	domain.CategoryFitness:    "gym",
	domain.CategoryTechnology: "electronics store",
	domain.CategoryFurniture:  "furniture store",
}

// nearbyPlaceTypes is the curated multi-type set for generic "near me"
// searches: business types known to commonly offer the discounts this system
// tracks. Keeps law offices and the like out of generic results.
var nearbyPlaceTypes = []string{
	"restaurant",
	"grocery_or_supermarket",
	"department_store",
	"clothing_store",
	"electronics_store",
	"gas_station",
	"pharmacy",
	"hardware_store",
	"furniture_store",
	"sporting_goods_store",
	"car_repair",
	"beauty_salon",
	"gym",
}

// SelectTerm picks the external query term: explicit business name, then
// free-text query, then a category-derived term. Empty means "use the
// curated multi-type nearby search".
func SelectTerm(params Params) string {
	if name := strings.TrimSpace(params.BusinessName); name != "" {
		return name
	}
	if q := strings.TrimSpace(params.Query); q != "" {
		return q
	}
	if term, ok := categoryTerms[params.Category]; ok {
		return term
	}
	return ""
}

// FetchExternal queries the places directory around the coordinate basis.
func FetchExternal(directory places.Directory, params Params, geo *domain.GeoFilter) ([]places.Place, error) {
	radiusMeters := int(geo.RadiusMiles * metersPerMile)

	if term := SelectTerm(params); term != "" {
		return directory.TextSearch(term, geo.Center.Lat, geo.Center.Lng, radiusMeters)
	}

	var combined []places.Place
	seen := map[string]bool{}
	for _, placeType := range nearbyPlaceTypes {
		results, err := directory.NearbySearch(geo.Center.Lat, geo.Center.Lng, radiusMeters, placeType)
		if err != nil {
			return nil, err
		}
		for _, place := range results {
			if seen[place.PlaceID] {
				continue
			}
			seen[place.PlaceID] = true
			combined = append(combined, place)
		}
	}
	return combined, nil
}

// DeduplicateExternal drops external candidates that duplicate a local
// record: matching external identifier stored locally, or coordinates within
// dedupRadiusMiles of a local business. Either condition suffices.
func DeduplicateExternal(candidates []places.Place, locals []*domain.Business) []places.Place {
	localIDs := make(map[string]bool, len(locals))
	for _, business := range locals {
		if business.PlaceID != "" {
			localIDs[business.PlaceID] = true
		}
	}

	kept := make([]places.Place, 0, len(candidates))
	for _, candidate := range candidates {
		if localIDs[candidate.PlaceID] {
			continue
		}
		duplicate := false
		for _, business := range locals {
			if business.Location == nil {
				continue
			}
			point := domain.GeoPoint{Lat: candidate.Lat, Lng: candidate.Lng}
			if Haversine(*business.Location, point) <= dedupRadiusMiles {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, candidate)
		}
	}
	return kept
}
