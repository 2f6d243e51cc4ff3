package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/patriot-thanks/patriot-thanks-service/internal/delivery/http/middleware"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/usecase"
)

type IncentiveHandler struct {
	Incentive *usecase.DefaultIncentiveUsecase
	Respond   *Responder
}

func NewIncentiveHandler(incentive *usecase.DefaultIncentiveUsecase, respond *Responder) *IncentiveHandler {
	return &IncentiveHandler{Incentive: incentive, Respond: respond}
}

type incentiveRequest struct {
	ID                 string                    `json:"id"`
	BusinessID         string                    `json:"business_id"`
	EligibleCategories []domain.EligibleCategory `json:"eligible_categories"`
	// Legacy single-category field, migrated into eligible_categories.
	Type        string              `json:"type"`
	Amount      float64             `json:"amount"`
	Mode        domain.DiscountMode `json:"mode"`
	Description string              `json:"description"`
	IsAvailable *bool               `json:"is_available"`
}

func (req *incentiveRequest) toDomain() *domain.Incentive {
	incentive := &domain.Incentive{
		ID:                 req.ID,
		BusinessID:         req.BusinessID,
		EligibleCategories: usecase.MigrateEligibility(req.Type, req.EligibleCategories),
		Amount:             req.Amount,
		Mode:               req.Mode,
		Description:        req.Description,
		IsAvailable:        true,
	}
	if req.IsAvailable != nil {
		incentive.IsAvailable = *req.IsAvailable
	}
	if incentive.Mode == "" {
		incentive.Mode = domain.DiscountPercentage
	}
	return incentive
}

func (h *IncentiveHandler) Handle(w http.ResponseWriter, r *http.Request) {
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
	case "by-business":
		h.byBusiness(w, r)
	case "resolve":
		h.resolve(w, r)
	case "create":
		h.create(w, r)
	case "update":
		h.update(w, r)
	case "delete":
		h.disable(w, r)
	default:
		h.Respond.Message(w, http.StatusBadRequest, "unknown operation")
	}
}

func (h *IncentiveHandler) list(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	incentives, total, err := h.Incentive.ListIncentives(page, limit)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{
		"results": incentives,
		"total":   total,
	})
}

func (h *IncentiveHandler) get(w http.ResponseWriter, r *http.Request) {
	incentive, err := h.Incentive.GetIncentiveByID(r.URL.Query().Get("id"))
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, incentive)
}

func (h *IncentiveHandler) byBusiness(w http.ResponseWriter, r *http.Request) {
	businessID := r.URL.Query().Get("business_id")
	if businessID == "" {
		h.Respond.Message(w, http.StatusBadRequest, "business_id is required")
		return
	}
	incentives, err := h.Incentive.GetIncentivesByBusiness(businessID)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{"results": incentives})
}

// resolve returns a business's effective active offers, either its own
// standalone records or its chain's set, tagged with the source.
func (h *IncentiveHandler) resolve(w http.ResponseWriter, r *http.Request) {
	businessID := r.URL.Query().Get("business_id")
	if businessID == "" {
		h.Respond.Message(w, http.StatusBadRequest, "business_id is required")
		return
	}
	resolved := h.Incentive.ResolveForBusiness(businessID)
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{
		"business_id": resolved.BusinessID,
		"source":      resolved.Source,
		"chain_id":    resolved.ChainID,
		"incentives":  resolved.Incentives,
	})
}

func (h *IncentiveHandler) create(w http.ResponseWriter, r *http.Request) {
	var req incentiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BusinessID == "" {
		h.Respond.Message(w, http.StatusBadRequest, "business_id is required")
		return
	}

	incentive := req.toDomain()
	incentive.CreatedBy = middleware.UserID(r.Context())
	if err := h.Incentive.AddIncentive(incentive); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusCreated, incentive)
}

func (h *IncentiveHandler) update(w http.ResponseWriter, r *http.Request) {
	var req incentiveRequest
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

	incentive := req.toDomain()
	if err := h.Incentive.EditIncentive(incentive); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, incentive)
}

func (h *IncentiveHandler) disable(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.Respond.Message(w, http.StatusBadRequest, "id is required")
		return
	}
	if err := h.Incentive.DisableIncentive(id); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.Message(w, http.StatusOK, "incentive disabled")
}
