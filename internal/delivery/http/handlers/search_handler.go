package handlers

import (
	"net/http"
	"strconv"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/usecase/search"
)

type SearchHandler struct {
	Search  *search.DefaultSearchUsecase
	Respond *Responder
}

func NewSearchHandler(searchUsecase *search.DefaultSearchUsecase, respond *Responder) *SearchHandler {
	return &SearchHandler{Search: searchUsecase, Respond: respond}
}

type searchResultResponse struct {
	ID                  string                  `json:"id,omitempty"`
	Name                string                  `json:"name"`
	Address1            string                  `json:"address1,omitempty"`
	Address2            string                  `json:"address2,omitempty"`
	City                string                  `json:"city,omitempty"`
	State               string                  `json:"state,omitempty"`
	Zip                 string                  `json:"zip,omitempty"`
	Phone               string                  `json:"phone,omitempty"`
	Category            domain.BusinessCategory `json:"category,omitempty"`
	Lat                 *float64                `json:"lat,omitempty"`
	Lng                 *float64                `json:"lng,omitempty"`
	ChainID             string                  `json:"chain_id,omitempty"`
	UniversalIncentives bool                    `json:"universal_incentives,omitempty"`
	IsVeteranOwned      bool                    `json:"is_veteran_owned"`
	IsFeatured          bool                    `json:"is_featured"`
	DistanceMiles       *float64                `json:"distance_miles,omitempty"`
	NameMatch           bool                    `json:"name_match"`
	External            bool                    `json:"external"`
	PlaceID             string                  `json:"place_id,omitempty"`
}

type searchResponse struct {
	Results    []searchResultResponse `json:"results"`
	Total      int                    `json:"total"`
	SearchType string                 `json:"searchType"`
	Filters    search.AppliedFilters  `json:"filters"`
	VBOStats   *domain.VBOStats       `json:"vboStats"`
}

func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := search.Params{
		BusinessName:    q.Get("businessName"),
		Address:         q.Get("address"),
		Query:           q.Get("q"),
		City:            q.Get("city"),
		State:           q.Get("state"),
		Zip:             q.Get("zip"),
		ServiceCategory: domain.EligibleCategory(q.Get("serviceType")),
	}

	// Both spellings of the category parameter are accepted.
	if category := q.Get("type"); category != "" {
		params.Category = domain.BusinessCategory(category)
	} else if category := q.Get("category"); category != "" {
		params.Category = domain.BusinessCategory(category)
	}

	if latStr, lngStr := q.Get("lat"), q.Get("lng"); latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			h.Respond.Message(w, http.StatusBadRequest, "lat and lng must be decimal degrees")
			return
		}
		params.Lat, params.Lng = &lat, &lng
	}

	if radiusStr := q.Get("radius"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || radius <= 0 {
			h.Respond.Message(w, http.StatusBadRequest, "radius must be a positive number of miles")
			return
		}
		params.RadiusMiles = radius
	}

	output, err := h.Search.Search(params)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}

	results := make([]searchResultResponse, 0, len(output.Results))
	for _, result := range output.Results {
		business := result.Business
		entry := searchResultResponse{
			ID:                  business.ID,
			Name:                business.Name,
			Address1:            business.Address1,
			Address2:            business.Address2,
			City:                business.City,
			State:               business.State,
			Zip:                 business.Zip,
			Phone:               business.Phone,
			Category:            business.Category,
			ChainID:             business.ChainID,
			UniversalIncentives: business.UniversalIncentives,
			IsVeteranOwned:      business.IsVeteranOwned,
			IsFeatured:          business.IsFeatured,
			NameMatch:           result.NameMatch,
			External:            result.External,
			PlaceID:             business.PlaceID,
		}
		if business.Location != nil {
			lat, lng := business.Location.Lat, business.Location.Lng
			entry.Lat, entry.Lng = &lat, &lng
		}
		if result.Distance >= 0 {
			distance := result.Distance
			entry.DistanceMiles = &distance
		}
		results = append(results, entry)
	}

	h.Respond.JSON(w, http.StatusOK, searchResponse{
		Results:    results,
		Total:      output.Total,
		SearchType: output.SearchType,
		Filters:    output.Filters,
		VBOStats:   output.VBOStats,
	})
}
