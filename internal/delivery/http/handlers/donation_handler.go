package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/patriot-thanks/patriot-thanks-service/internal/delivery/http/middleware"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/usecase"
)

type DonationHandler struct {
	Donations *usecase.DefaultDonationUsecase
	Respond   *Responder
}

func NewDonationHandler(donations *usecase.DefaultDonationUsecase, respond *Responder) *DonationHandler {
	return &DonationHandler{Donations: donations, Respond: respond}
}

type donationRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Amount    float64 `json:"amount"`
	Anonymous bool    `json:"anonymous"`
	Recurring bool    `json:"recurring"`
	Message   string  `json:"message"`

	// Only read by save-donation: clients that settle with the processor
	// themselves post the outcome here.
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
}

func (req *donationRequest) toInput(userID string) usecase.DonationInput {
	return usecase.DonationInput{
		UserID:    userID,
		Name:      req.Name,
		Email:     req.Email,
		Amount:    req.Amount,
		Anonymous: req.Anonymous,
		Recurring: req.Recurring,
		Message:   req.Message,
	}
}

// Handle dispatches on the "operation" query parameter. Admin-only
// operations are separately mounted; this covers the public set.
func (h *DonationHandler) Handle(w http.ResponseWriter, r *http.Request) {
	operation := r.URL.Query().Get("operation")

	switch operation {
	case "create-payment-intent", "create-paypal-order", "capture-paypal-order", "save-donation", "confirm":
		if r.Method == http.MethodGet {
			h.Respond.Message(w, http.StatusMethodNotAllowed, "operation requires POST")
			return
		}
	}

	switch operation {
	case "create-payment-intent":
		h.createPaymentIntent(w, r)
	case "create-paypal-order":
		h.createWalletOrder(w, r)
	case "capture-paypal-order":
		h.captureWalletOrder(w, r)
	case "save-donation":
		h.save(w, r)
	case "confirm":
		h.confirm(w, r)
	case "recognition":
		h.recognition(w, r)
	case "user-donations":
		h.userDonations(w, r)
	default:
		h.Respond.Message(w, http.StatusBadRequest, "unknown operation")
	}
}

// HandleAdmin covers the admin-gated operations.
func (h *DonationHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("operation") {
	case "list", "":
		h.list(w, r)
	case "stats":
		h.stats(w, r)
	case "export":
		h.export(w, r)
	default:
		h.Respond.Message(w, http.StatusBadRequest, "unknown operation")
	}
}

func (h *DonationHandler) decode(w http.ResponseWriter, r *http.Request) (*donationRequest, bool) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if req.Amount <= 0 {
		h.Respond.Message(w, http.StatusBadRequest, "amount must be positive")
		return nil, false
	}
	return &req, true
}

func (h *DonationHandler) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	donation, clientSecret, err := h.Donations.CreatePaymentIntent(req.toInput(middleware.UserID(r.Context())))
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"donation":      donation,
		"client_secret": clientSecret,
	})
}

func (h *DonationHandler) createWalletOrder(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	donation, err := h.Donations.CreateWalletOrder(req.toInput(middleware.UserID(r.Context())))
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"donation": donation,
		"order_id": donation.OrderID,
	})
}

func (h *DonationHandler) captureWalletOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"order_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
		h.Respond.Message(w, http.StatusBadRequest, "order_id is required")
		return
	}

	donation, err := h.Donations.CaptureWalletOrder(req.OrderID)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, donation)
}

func (h *DonationHandler) save(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	method := domain.PaymentMethod(req.Method)
	if method != domain.PaymentCard && method != domain.PaymentWallet {
		h.Respond.Message(w, http.StatusBadRequest, "unknown payment method")
		return
	}

	donation, err := h.Donations.SaveDonation(req.toInput(middleware.UserID(r.Context())), method, req.TransactionID)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusCreated, donation)
}

func (h *DonationHandler) confirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DonationID string `json:"donation_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DonationID == "" {
		h.Respond.Message(w, http.StatusBadRequest, "donation_id is required")
		return
	}

	donation, err := h.Donations.ConfirmCardDonation(req.DonationID)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, donation)
}

// recognition is the public supporter wall: completed, non-anonymous
// donations with contact details stripped.
func (h *DonationHandler) recognition(w http.ResponseWriter, r *http.Request) {
	donations, err := h.Donations.Recognition()
	if err != nil {
		h.Respond.Error(w, err)
		return
	}

	type supporter struct {
		Name        string  `json:"name"`
		Amount      float64 `json:"amount"`
		Message     string  `json:"message,omitempty"`
		CompletedAt string  `json:"completed_at"`
	}
	wall := make([]supporter, 0, len(donations))
	for _, donation := range donations {
		wall = append(wall, supporter{
			Name:        donation.Name,
			Amount:      donation.Amount,
			Message:     donation.Message,
			CompletedAt: donation.CompletedAt.Format("2006-01-02"),
		})
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{"supporters": wall})
}

func (h *DonationHandler) userDonations(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		h.Respond.Error(w, domain.ErrForbidden)
		return
	}
	donations, err := h.Donations.ListUserDonations(userID)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{"results": donations})
}

func (h *DonationHandler) list(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	donations, total, err := h.Donations.ListDonations(page, limit)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{
		"results": donations,
		"total":   total,
	})
}

func (h *DonationHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Donations.GetStats()
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, stats)
}

func (h *DonationHandler) export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="donations.csv"`)
	if err := h.Donations.ExportCSV(w); err != nil {
		// Headers are already out; all that is left is to log.
		slog.Error("donation export failed", "err", err)
	}
}
