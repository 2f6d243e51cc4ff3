package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/usecase"
)

type BusinessHandler struct {
	Business *usecase.DefaultBusinessUsecase
	Respond  *Responder
}

func NewBusinessHandler(business *usecase.DefaultBusinessUsecase, respond *Responder) *BusinessHandler {
	return &BusinessHandler{Business: business, Respond: respond}
}

type businessRequest struct {
	ID                  string                  `json:"id"`
	Name                string                  `json:"name"`
	Description         string                  `json:"description"`
	Address1            string                  `json:"address1"`
	Address2            string                  `json:"address2"`
	City                string                  `json:"city"`
	State               string                  `json:"state"`
	Zip                 string                  `json:"zip"`
	Phone               string                  `json:"phone"`
	Category            domain.BusinessCategory `json:"category"`
	Lat                 *float64                `json:"lat"`
	Lng                 *float64                `json:"lng"`
	ChainID             string                  `json:"chain_id"`
	UniversalIncentives bool                    `json:"universal_incentives"`
	IsVeteranOwned      bool                    `json:"is_veteran_owned"`
	IsFeatured          bool                    `json:"is_featured"`
	PlaceID             string                  `json:"place_id"`
}

func (req *businessRequest) toDomain() *domain.Business {
	business := &domain.Business{
		ID:                  req.ID,
		Name:                req.Name,
		Description:         req.Description,
		Address1:            req.Address1,
		Address2:            req.Address2,
		City:                req.City,
		State:               req.State,
		Zip:                 req.Zip,
		Phone:               req.Phone,
		Category:            req.Category,
		ChainID:             req.ChainID,
		UniversalIncentives: req.UniversalIncentives,
		IsVeteranOwned:      req.IsVeteranOwned,
		IsFeatured:          req.IsFeatured,
		PlaceID:             req.PlaceID,
	}
	if req.Lat != nil && req.Lng != nil {
		business.Location = &domain.GeoPoint{Lat: *req.Lat, Lng: *req.Lng}
	}
	return business
}

// Handle dispatches on the "operation" query parameter, mirroring the
// single-endpoint API the frontend expects.
func (h *BusinessHandler) Handle(w http.ResponseWriter, r *http.Request) {
	operation := r.URL.Query().Get("operation")

	switch operation {
	case "create", "update", "delete":
		if r.Method == http.MethodGet {
			h.Respond.Message(w, http.StatusMethodNotAllowed, "operation requires POST")
			return
		}
	}

	switch operation {
	case "list", "":
		h.list(w, r)
	case "get":
		h.get(w, r)
	case "create":
		h.create(w, r)
	case "update":
		h.update(w, r)
	case "delete":
		h.remove(w, r)
	default:
		h.Respond.Message(w, http.StatusBadRequest, "unknown operation")
	}
}

func pageParams(r *http.Request) (int32, int32) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32)
	return int32(page), int32(limit)
}

func (h *BusinessHandler) list(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	businesses, total, err := h.Business.ListBusinesses(page, limit)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{
		"results": businesses,
		"total":   total,
	})
}

func (h *BusinessHandler) get(w http.ResponseWriter, r *http.Request) {
	business, err := h.Business.GetBusinessByID(r.URL.Query().Get("id"))
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, business)
}

func (h *BusinessHandler) create(w http.ResponseWriter, r *http.Request) {
	var req businessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		h.Respond.Message(w, http.StatusBadRequest, "name is required")
		return
	}

	business := req.toDomain()
	if err := h.Business.AddBusiness(business); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusCreated, business)
}

func (h *BusinessHandler) update(w http.ResponseWriter, r *http.Request) {
	var req businessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		req.ID = r.URL.Query().Get("id")
	}
	if req.ID == "" {
		h.Respond.Message(w, http.StatusBadRequest, "id is required")
		return
	}

	business := req.toDomain()
	if err := h.Business.EditBusiness(business); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, business)
}

func (h *BusinessHandler) remove(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.Respond.Message(w, http.StatusBadRequest, "id is required")
		return
	}
	if err := h.Business.RemoveBusiness(id); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.Message(w, http.StatusOK, "business deactivated")
}
