package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Mutating operations must not be reachable through the public GET routes;
// only POST/PUT/DELETE pass through the auth middleware.

func TestBusinessHandlerRejectsMutationViaGet(t *testing.T) {
	h := NewBusinessHandler(nil, &Responder{})

	for _, operation := range []string{"create", "update", "delete"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/businesses?operation="+operation, nil)

		h.Handle(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "operation %s", operation)
	}
}

func TestIncentiveHandlerRejectsMutationViaGet(t *testing.T) {
	h := NewIncentiveHandler(nil, &Responder{})

	for _, operation := range []string{"create", "update", "delete"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/incentives?operation="+operation, nil)

		h.Handle(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "operation %s", operation)
	}
}

func TestChainHandlerRejectsMutationViaGet(t *testing.T) {
	h := NewChainHandler(nil, &Responder{})

	mutations := []string{
		"create", "update", "delete", "add_incentive", "update_incentive",
		"remove_incentive", "add_location", "remove_location",
		"sync_locations", "bulk_update_universal_incentives",
	}
	for _, operation := range mutations {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/chains?operation="+operation, nil)

		h.Handle(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "operation %s", operation)
	}
}

func TestDonationHandlerRejectsMutationViaGet(t *testing.T) {
	h := NewDonationHandler(nil, &Responder{})

	for _, operation := range []string{"create-payment-intent", "create-paypal-order", "capture-paypal-order", "save-donation", "confirm"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/donations?operation="+operation, nil)

		h.Handle(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "operation %s", operation)
	}
}

func TestDonationHandlerUnknownOperation(t *testing.T) {
	h := NewDonationHandler(nil, &Responder{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/donations?operation=refund", nil)

	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveDonationRejectsUnknownMethod(t *testing.T) {
	h := NewDonationHandler(nil, &Responder{})
	rec := httptest.NewRecorder()
	body := `{"amount": 25, "method": "barter", "transaction_id": "txn-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/donations?operation=save-donation", strings.NewReader(body))

	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchHandlerValidatesCoordinates(t *testing.T) {
	h := NewSearchHandler(nil, &Responder{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/search?lat=abc&lng=-76.2", nil)
	h.HandleSearch(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/search?zip=23505&radius=-5", nil)
	h.HandleSearch(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
