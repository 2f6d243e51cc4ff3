package handlers

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/patriot-thanks/patriot-thanks-service/internal/delivery/http/middleware"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/metrics"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/ratelimit"
	"github.com/patriot-thanks/patriot-thanks-service/internal/usecase"
)

type AuthHandler struct {
	Users   *usecase.DefaultUserUsecase
	Tokens  *middleware.TokenManager
	Limiter *ratelimit.Registry
	Metrics *metrics.PatriotMetrics
	Respond *Responder
}

func NewAuthHandler(
	users *usecase.DefaultUserUsecase,
	tokens *middleware.TokenManager,
	limiter *ratelimit.Registry,
	m *metrics.PatriotMetrics,
	respond *Responder,
) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, Limiter: limiter, Metrics: m, Respond: respond}
}

// clientIP relies on chi's RealIP middleware having rewritten RemoteAddr
// from the forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ServiceCategory string `json:"service_category"`
	City            string `json:"city"`
	State           string `json:"state"`
	Zip             string `json:"zip"`
	AdminCode       string `json:"admin_code"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.Limiter != nil && !h.Limiter.Allow(clientIP(r)) {
		h.Metrics.RegistrationsRateLimited.Inc()
		h.Respond.Error(w, domain.ErrRateLimited)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || len(req.Password) < 8 {
		h.Respond.Message(w, http.StatusBadRequest, "email and a password of at least 8 characters are required")
		return
	}

	user, err := h.Users.Register(usecase.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ServiceCategory: domain.EligibleCategory(req.ServiceCategory),
		City:            req.City,
		State:           req.State,
		Zip:             req.Zip,
		AdminCode:       req.AdminCode,
	})
	if err != nil {
		h.Respond.Error(w, err)
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Users.Login(req.Email, req.Password)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.Respond.Error(w, domain.ErrTokenInvalid)
		return
	}
	if err := h.Users.VerifyEmail(token); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.Message(w, http.StatusOK, "email verified")
}

func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		h.Respond.Message(w, http.StatusBadRequest, "email is required")
		return
	}
	if err := h.Users.ResendVerification(req.Email); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.Message(w, http.StatusOK, "verification email sent")
}

func (h *AuthHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewEmail string `json:"new_email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewEmail == "" {
		h.Respond.Message(w, http.StatusBadRequest, "new_email and password are required")
		return
	}
	if err := h.Users.UpdateEmail(middleware.UserID(r.Context()), req.NewEmail, req.Password); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.Message(w, http.StatusOK, "confirmation sent to new address")
}

func (h *AuthHandler) VerifyNewEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.Respond.Error(w, domain.ErrTokenInvalid)
		return
	}
	if err := h.Users.VerifyNewEmail(token); err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.Message(w, http.StatusOK, "email address updated")
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetUserByID(middleware.UserID(r.Context()))
	if err != nil {
		h.Respond.Error(w, err)
		return
	}
	h.Respond.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BusinessID  string `json:"business_id"`
		IncentiveID string `json:"incentive_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := middleware.UserID(r.Context())
	switch {
	case req.BusinessID != "":
		favorites, err := h.Users.ToggleFavoriteBusiness(userID, req.BusinessID)
		if err != nil {
			h.Respond.Error(w, err)
			return
		}
		h.Respond.JSON(w, http.StatusOK, map[string]interface{}{"favorite_business_ids": favorites})
	case req.IncentiveID != "":
		favorites, err := h.Users.ToggleFavoriteIncentive(userID, req.IncentiveID)
		if err != nil {
			h.Respond.Error(w, err)
			return
		}
		h.Respond.JSON(w, http.StatusOK, map[string]interface{}{"favorite_incentive_ids": favorites})
	default:
		h.Respond.Message(w, http.StatusBadRequest, "business_id or incentive_id is required")
	}
}
