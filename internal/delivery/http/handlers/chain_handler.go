package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/patriot-thanks/patriot-thanks-service/internal/delivery/http/middleware"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/usecase"
)

type ChainHandler struct {
	Chain   *usecase.DefaultChainUsecase
	Respond *Responder
}

func NewChainHandler(chain *usecase.DefaultChainUsecase, respond *Responder) *ChainHandler {
	return &ChainHandler{Chain: chain, Respond: respond}
}

type chainRequest struct {
	ID                  string                  `json:"id"`
	Name                string                  `json:"name"`
	Category            domain.BusinessCategory `json:"category"`
	UniversalIncentives bool                    `json:"universal_incentives"`
}

type chainIncentiveRequest struct {
	ID                 string                    `json:"id"`
	EligibleCategories []domain.EligibleCategory `json:"eligible_categories"`
	Type               string                    `json:"type"`
	Amount             float64                   `json:"amount"`
	Mode               domain.DiscountMode       `json:"mode"`
	Description        string                    `json:"description"`
	IsActive           *bool                     `json:"is_active"`
}

func (req *chainIncentiveRequest) toDomain() domain.ChainIncentive {
	incentive := domain.ChainIncentive{
		ID:                 req.ID,
		EligibleCategories: usecase.MigrateEligibility(req.Type, req.EligibleCategories),
		Amount:             req.Amount,
		Mode:               req.Mode,
		Description:        req.Description,
		IsActive:           true,
	}
	if req.IsActive != nil {
		incentive.IsActive = *req.IsActive
	}
	if incentive.Mode == "" {
		incentive.Mode = domain.DiscountPercentage
	}
	return incentive
}

func (h *ChainHandler) Handle(w http.ResponseWriter, r *http.Request) {
	operation := r.URL.Query().Get("operation")

	// Mutations must not ride in on the public GET route.
	if r.Method == http.MethodGet && !readOnlyChainOp(operation) {
		h.Respond.Message(w, http.StatusMethodNotAllowed, "operation requires POST")
		return
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
	case "search":
		h.search(w, r)
	case "find_match":
		h.findMatch(w, r)
	case "add_incentive":
		h.addIncentive(w, r)
	case "update_incentive":
		h.updateIncentive(w, r)
	case "remove_incentive":
		h.removeIncentive(w, r)
	case "get_incentives":
		h.getIncentives(w, r)
	case "add_location":
		h.addLocation(w, r)
	case "remove_location":
		h.removeLocation(w, r)
	case "get_locations":
		h.getLocations(w, r)
	case "sync_locations":
		h.syncLocations(w, r)
	case "bulk_update_universal_incentives":
		h.bulkUpdateUniversal(w, r)
	case "summary":
		h.summary(w, r)
	default:
		h.Respond.Message(w, http.StatusBadRequest, "unknown operation")
	}
}

func readOnlyChainOp(operation string) bool {
	switch operation {
	case "", "list", "get", "search", "find_match", "get_incentives", "get_locations", "summary":
		return true
	}
	return false
}

func (h *ChainHandler) chainID(r *http.Request) string {
	if id := r.URL.Query().Get("chain_id"); id != "" {
		return id
	}
	return r.URL.Query().Get("id")
}

func (h *ChainHandler) list(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	chains, total, err := h.Chain.ListChains(page, limit)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{
		"results": chains,
		"total":   total,
	})
}

func (h *ChainHandler) get(w http.ResponseWriter, r *http.Request) {
	chain, err := h.Chain.GetChainByID(h.chainID(r))
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, chain)
}

func (h *ChainHandler) create(w http.ResponseWriter, r *http.Request) {
	var req chainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		h.Respond.Message(w, http.StatusBadRequest, "name is required")
		return
	}

	chain := &domain.Chain{
		Name:                req.Name,
		Category:            req.Category,
		UniversalIncentives: req.UniversalIncentives,
	}
	if err := h.Chain.AddChain(chain); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusCreated, chain)
}

func (h *ChainHandler) update(w http.ResponseWriter, r *http.Request) {
	var req chainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		req.ID = h.chainID(r)
	}
	if req.ID == "" {
		h.Respond.Message(w, http.StatusBadRequest, "id is required")
		return
	}

	existing, err := h.Chain.GetChainByID(req.ID)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	existing.Name = req.Name
	existing.Category = req.Category
	existing.UniversalIncentives = req.UniversalIncentives
	if err := h.Chain.EditChain(existing); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, existing)
}

func (h *ChainHandler) remove(w http.ResponseWriter, r *http.Request) {
	id := h.chainID(r)
	if id == "" {
		h.Respond.Message(w, http.StatusBadRequest, "id is required")
		return
	}
	detached, err := h.Chain.RemoveChain(id)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{
		"message":            "chain removed",
		"locations_detached": detached,
	})
}

func (h *ChainHandler) search(w http.ResponseWriter, r *http.Request) {
	chains, err := h.Chain.SearchChains(r.URL.Query().Get("name"))
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{"results": chains})
}

func (h *ChainHandler) findMatch(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("business_name")
	if name == "" {
		h.Respond.Message(w, http.StatusBadRequest, "business_name is required")
		return
	}
	chain, err := h.Chain.FindMatch(name)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, chain)
}

func (h *ChainHandler) addIncentive(w http.ResponseWriter, r *http.Request) {
	id := h.chainID(r)
	var req chainIncentiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	incentive := req.toDomain()
	incentive.CreatedBy = middleware.UserID(r.Context())
	chain, err := h.Chain.AddChainIncentive(id, incentive)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusCreated, chain)
}

func (h *ChainHandler) updateIncentive(w http.ResponseWriter, r *http.Request) {
	id := h.chainID(r)
	var req chainIncentiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		h.Respond.Message(w, http.StatusBadRequest, "incentive id is required")
		return
	}

	chain, err := h.Chain.UpdateChainIncentive(id, req.toDomain())
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, chain)
}

func (h *ChainHandler) removeIncentive(w http.ResponseWriter, r *http.Request) {
	chain, err := h.Chain.RemoveChainIncentive(h.chainID(r), r.URL.Query().Get("incentive_id"))
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, chain)
}

func (h *ChainHandler) getIncentives(w http.ResponseWriter, r *http.Request) {
	incentives, err := h.Chain.GetChainIncentives(h.chainID(r))
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{"results": incentives})
}

func (h *ChainHandler) addLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChainID    string `json:"chain_id"`
		BusinessID string `json:"business_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ChainID == "" {
		req.ChainID = h.chainID(r)
	}
	if req.ChainID == "" || req.BusinessID == "" {
		h.Respond.Message(w, http.StatusBadRequest, "chain_id and business_id are required")
		return
	}
	if err := h.Chain.AddLocation(req.ChainID, req.BusinessID); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.Message(w, http.StatusOK, "location added")
}

func (h *ChainHandler) removeLocation(w http.ResponseWriter, r *http.Request) {
	businessID := r.URL.Query().Get("business_id")
	if businessID == "" {
		h.Respond.Message(w, http.StatusBadRequest, "business_id is required")
		return
	}
	if err := h.Chain.RemoveLocation(businessID); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.Message(w, http.StatusOK, "location removed")
}

func (h *ChainHandler) getLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Chain.GetLocations(h.chainID(r))
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{"results": locations})
}

func (h *ChainHandler) syncLocations(w http.ResponseWriter, r *http.Request) {
	updated, err := h.Chain.SyncLocations(h.chainID(r))
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{"locations_updated": updated})
}

func (h *ChainHandler) bulkUpdateUniversal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChainIDs []string `json:"chain_ids"`
		Enabled  bool     `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.Chain.BulkUpdateUniversalIncentives(req.ChainIDs, req.Enabled)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{"chains_updated": updated})
}

func (h *ChainHandler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Chain.GetSummary(h.chainID(r))
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, summary)
}
