package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

// Responder centralizes JSON responses and the error-to-status mapping.
// Dependency failure details are only exposed outside production.
type Responder struct {
	Development bool
}

func (rs *Responder) JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func (rs *Responder) Message(w http.ResponseWriter, status int, message string) {
	rs.JSON(w, status, map[string]string{"message": message})
}

func (rs *Responder) Error(w http.ResponseWriter, err error) {
	status, message := statusFor(err)

	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "err", err)
		if !rs.Development {
			rs.JSON(w, status, map[string]string{"message": message})
			return
		}
		rs.JSON(w, status, map[string]string{"message": message, "error": err.Error()})
		return
	}
	rs.JSON(w, status, map[string]string{"message": message})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrBusinessNotFound),
		errors.Is(err, domain.ErrIncentiveNotFound),
		errors.Is(err, domain.ErrChainNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrDonationNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrChainInheritsOffers),
		errors.Is(err, domain.ErrEmptyEligibilitySet),
		errors.Is(err, domain.ErrInvalidEligibility):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrCaptureFailed):
		return http.StatusBadGateway, "payment capture failed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
