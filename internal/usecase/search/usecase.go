package search

import (
	"log/slog"
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/geocode"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/metrics"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/places"
)

// Output is the assembled discovery search response.
type Output struct {
	Results    []domain.SearchResult
	Total      int
	SearchType string
	// Echo of the constraints actually applied, for the client.
	Filters  AppliedFilters
	VBOStats *domain.VBOStats
}

type AppliedFilters struct {
	Name            string                  `json:"name,omitempty"`
	Zip             string                  `json:"zip,omitempty"`
	City            string                  `json:"city,omitempty"`
	State           string                  `json:"state,omitempty"`
	Category        domain.BusinessCategory `json:"category,omitempty"`
	ServiceCategory domain.EligibleCategory `json:"service_category,omitempty"`
	RadiusMiles     float64                 `json:"radius_miles,omitempty"`
	GeoFallback     bool                    `json:"geo_fallback,omitempty"`
}

type DefaultSearchUsecase struct {
	BusinessRepo domain.BusinessRepository
	Geocoder     geocode.Geocoder
	Directory    places.Directory
	Metrics      *metrics.PatriotMetrics
}

func NewDefaultSearchUsecase(
	businessRepo domain.BusinessRepository,
	geocoder geocode.Geocoder,
	directory places.Directory,
	m *metrics.PatriotMetrics,
) *DefaultSearchUsecase {
	return &DefaultSearchUsecase{
		BusinessRepo: businessRepo,
		Geocoder:     geocoder,
		Directory:    directory,
		Metrics:      m,
	}
}

// Search runs the full discovery flow: resolve the coordinate basis, build
// and run the local query, supplement from the external directory when a
// coordinate basis exists, deduplicate, rank, and attach ownership stats.
func (uc *DefaultSearchUsecase) Search(params Params) (*Output, error) {
	start := time.Now()

	geo, fallbackZip, geocodeErr := ResolveCenter(params, uc.Geocoder.GeocodeZip)
	if geocodeErr != nil {
		slog.Warn("geocoding failed, falling back to exact zip match",
			"zip", fallbackZip, "err", geocodeErr)
		uc.Metrics.GeocodeFallbacks.Inc()
		params.Zip = fallbackZip
	}

	filter := BuildFilter(params, geo)

	locals, err := uc.BusinessRepo.SearchBusinesses(filter)
	if err != nil {
		return nil, err
	}

	matchName := CompileNameMatcher(filter.NamePatterns)
	results := make([]domain.SearchResult, 0, len(locals))
	for _, business := range locals {
		result := domain.SearchResult{Business: business, Distance: -1}
		if matchName != nil {
			result.NameMatch = matchName(business.Name)
		}
		if geo != nil {
			if business.Location == nil {
				continue
			}
			result.Distance = Haversine(geo.Center, *business.Location)
			// Exact spherical-cap cut; the store query only bounds a box.
			if result.Distance > geo.RadiusMiles {
				continue
			}
		}
		results = append(results, result)
	}
	localCount := len(results)

	// External supplementation only makes sense with a coordinate basis to
	// bound the query; failures degrade to local-only results.
	if geo != nil && uc.Directory != nil {
		candidates, err := FetchExternal(uc.Directory, params, geo)
		if err != nil {
			slog.Warn("places supplementation failed", "err", err)
			uc.Metrics.SupplementFailures.Inc()
		} else {
			for _, place := range DeduplicateExternal(candidates, locals) {
				point := domain.GeoPoint{Lat: place.Lat, Lng: place.Lng}
				distance := Haversine(geo.Center, point)
				if distance > geo.RadiusMiles {
					continue
				}
				result := domain.SearchResult{
					Business: &domain.Business{
						Name:     place.Name,
						Address1: place.Address,
						Location: &point,
						Status:   domain.BusinessActive,
						PlaceID:  place.PlaceID,
					},
					Distance:   distance,
					External:   true,
					ExternalID: place.PlaceID,
				}
				if matchName != nil {
					result.NameMatch = matchName(place.Name)
				}
				results = append(results, result)
			}
		}
	}

	SortResults(results, geo != nil)

	vboStats, err := uc.BusinessRepo.GetVBOStats()
	if err != nil {
		slog.Warn("vbo stats lookup failed", "err", err)
		vboStats = &domain.VBOStats{}
	}

	searchType := classifySearch(params, geo)
	uc.Metrics.SearchesTotal.WithLabelValues(searchType).Inc()
	uc.Metrics.SearchDuration.WithLabelValues(searchType).Observe(time.Since(start).Seconds())
	uc.Metrics.SearchResultsCount.WithLabelValues("local").Observe(float64(localCount))
	uc.Metrics.SearchResultsCount.WithLabelValues("external").Observe(float64(len(results) - localCount))

	output := &Output{
		Results:    results,
		Total:      len(results),
		SearchType: searchType,
		VBOStats:   vboStats,
		Filters: AppliedFilters{
			Name:            params.BusinessName,
			Zip:             filter.Zip,
			City:            filter.City,
			State:           filter.State,
			Category:        params.Category,
			ServiceCategory: params.ServiceCategory,
			GeoFallback:     fallbackZip != "",
		},
	}
	if geo != nil {
		output.Filters.RadiusMiles = geo.RadiusMiles
	}
	return output, nil
}

func classifySearch(params Params, geo *domain.GeoFilter) string {
	switch {
	case geo != nil:
		return "proximity"
	case params.BusinessName != "":
		return "name"
	case params.Category != "":
		return "category"
	case params.Query != "":
		return "text"
	default:
		return "general"
	}
}
