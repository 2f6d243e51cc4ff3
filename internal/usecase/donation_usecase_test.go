package usecase

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/metrics"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/payments"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDonationRepo struct {
	domain.DonationRepository
	byOrder   *domain.Donation
	byID      *domain.Donation
	created   *domain.Donation
	updated   map[string]interface{}
	completed []*domain.Donation
}

func (s *stubDonationRepo) CreateDonation(donation *domain.Donation) error {
	donation.ID = "don-1"
	s.created = donation
	return nil
}

func (s *stubDonationRepo) GetByOrderID(string) (*domain.Donation, error) {
	if s.byOrder == nil {
		return nil, domain.ErrDonationNotFound
	}
	return s.byOrder, nil
}

func (s *stubDonationRepo) GetDonationByID(string) (*domain.Donation, error) {
	if s.byID == nil {
		return nil, domain.ErrDonationNotFound
	}
	return s.byID, nil
}

func (s *stubDonationRepo) UpdateDonationFields(_ string, fields map[string]interface{}) error {
	s.updated = fields
	return nil
}

func (s *stubDonationRepo) ListCompleted() ([]*domain.Donation, error) {
	return s.completed, nil
}

type stubCard struct {
	intent *payments.Intent
	err    error
}

func (s *stubCard) CreateIntent(int64, string, string) (*payments.Intent, error) {
	return s.intent, s.err
}
func (s *stubCard) GetIntent(string) (*payments.Intent, error) { return s.intent, s.err }

type stubWallet struct {
	order   *payments.WalletOrder
	capture *payments.WalletCapture
	err     error
}

func (s *stubWallet) CreateOrder(float64, string) (*payments.WalletOrder, error) {
	return s.order, s.err
}
func (s *stubWallet) CaptureOrder(string) (*payments.WalletCapture, error) {
	return s.capture, s.err
}

func newDonationUsecase(repo *stubDonationRepo, card *stubCard, wallet *stubWallet) *DefaultDonationUsecase {
	return NewDefaultDonationUsecase(
		repo, card, wallet, nil, nil,
		metrics.NewPatriotMetricsWith(prometheus.NewRegistry()),
	)
}

func TestCreatePaymentIntentRecordsPending(t *testing.T) {
	repo := &stubDonationRepo{}
	uc := newDonationUsecase(repo, &stubCard{intent: &payments.Intent{ID: "pi_1", ClientSecret: "secret"}}, &stubWallet{})

	donation, clientSecret, err := uc.CreatePaymentIntent(DonationInput{Amount: 25, Email: "a@b.com"})

	require.NoError(t, err)
	assert.Equal(t, "secret", clientSecret)
	assert.Equal(t, domain.DonationPending, donation.Status)
	assert.Equal(t, "pi_1", donation.IntentID)
	assert.Equal(t, domain.PaymentCard, repo.created.Method)
}

func TestCaptureWalletOrderCompletesOnSuccess(t *testing.T) {
	repo := &stubDonationRepo{byOrder: &domain.Donation{
		ID: "don-1", OrderID: "order-1", Status: domain.DonationPending,
		Method: domain.PaymentWallet, Amount: 50,
	}}
	wallet := &stubWallet{capture: &payments.WalletCapture{
		OrderID: "order-1", TransactionID: "txn-1", Status: "COMPLETED",
	}}
	uc := newDonationUsecase(repo, &stubCard{}, wallet)

	donation, err := uc.CaptureWalletOrder("order-1")

	require.NoError(t, err)
	assert.Equal(t, domain.DonationCompleted, donation.Status)
	assert.Equal(t, "txn-1", donation.TransactionID)
	assert.Equal(t, domain.DonationCompleted, repo.updated["status"])
}

func TestCaptureWalletOrderFailureFailsConfirmation(t *testing.T) {
	repo := &stubDonationRepo{byOrder: &domain.Donation{ID: "don-1", Status: domain.DonationPending}}
	wallet := &stubWallet{err: errors.New("processor unreachable")}
	uc := newDonationUsecase(repo, &stubCard{}, wallet)

	_, err := uc.CaptureWalletOrder("order-1")

	// The capture IS the donation: its failure must surface, never a
	// silently-completed record.
	assert.ErrorIs(t, err, domain.ErrCaptureFailed)
	assert.Nil(t, repo.updated)
}

func TestCaptureWalletOrderNonCompletedStatusFails(t *testing.T) {
	repo := &stubDonationRepo{byOrder: &domain.Donation{ID: "don-1", Status: domain.DonationPending}}
	wallet := &stubWallet{capture: &payments.WalletCapture{Status: "DECLINED"}}
	uc := newDonationUsecase(repo, &stubCard{}, wallet)

	_, err := uc.CaptureWalletOrder("order-1")
	assert.ErrorIs(t, err, domain.ErrCaptureFailed)
}

func TestCaptureWalletOrderIdempotent(t *testing.T) {
	repo := &stubDonationRepo{byOrder: &domain.Donation{
		ID: "don-1", Status: domain.DonationCompleted, TransactionID: "txn-1",
	}}
	uc := newDonationUsecase(repo, &stubCard{}, &stubWallet{err: errors.New("must not be called")})

	donation, err := uc.CaptureWalletOrder("order-1")

	require.NoError(t, err)
	assert.Equal(t, "txn-1", donation.TransactionID)
}

func TestSaveDonationWithTransactionCompletesImmediately(t *testing.T) {
	repo := &stubDonationRepo{}
	uc := newDonationUsecase(repo, &stubCard{}, &stubWallet{})

	donation, err := uc.SaveDonation(DonationInput{Amount: 40, Email: "a@b.com"}, domain.PaymentWallet, "txn-9")

	require.NoError(t, err)
	assert.Equal(t, domain.DonationCompleted, donation.Status)
	assert.Equal(t, "txn-9", donation.TransactionID)
	assert.False(t, donation.CompletedAt.IsZero())
}

func TestSaveDonationWithoutTransactionStaysPending(t *testing.T) {
	repo := &stubDonationRepo{}
	uc := newDonationUsecase(repo, &stubCard{}, &stubWallet{})

	donation, err := uc.SaveDonation(DonationInput{Amount: 40}, domain.PaymentCard, "")

	require.NoError(t, err)
	assert.Equal(t, domain.DonationPending, donation.Status)
}

func TestConfirmCardDonationRequiresSucceededIntent(t *testing.T) {
	repo := &stubDonationRepo{byID: &domain.Donation{
		ID: "don-1", IntentID: "pi_1", Status: domain.DonationPending,
	}}
	uc := newDonationUsecase(repo, &stubCard{intent: &payments.Intent{ID: "pi_1", Status: "requires_payment_method"}}, &stubWallet{})

	_, err := uc.ConfirmCardDonation("don-1")
	assert.ErrorIs(t, err, domain.ErrCaptureFailed)

	uc = newDonationUsecase(repo, &stubCard{intent: &payments.Intent{ID: "pi_1", Status: "succeeded"}}, &stubWallet{})
	donation, err := uc.ConfirmCardDonation("don-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DonationCompleted, donation.Status)
}

func TestRecognitionExcludesAnonymous(t *testing.T) {
	repo := &stubDonationRepo{completed: []*domain.Donation{
		{ID: "d1", Name: "Public Pat", Anonymous: false},
		{ID: "d2", Name: "Private Pam", Anonymous: true},
	}}
	uc := newDonationUsecase(repo, &stubCard{}, &stubWallet{})

	public, err := uc.Recognition()

	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Public Pat", public[0].Name)
}

func TestExportCSV(t *testing.T) {
	completed := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	repo := &stubDonationRepo{completed: []*domain.Donation{{
		ID: "d1", Name: "Pat", Email: "pat@example.com", Amount: 25.5,
		Recurring: true, Method: domain.PaymentCard, TransactionID: "txn-1",
		CompletedAt: completed,
	}}}
	uc := newDonationUsecase(repo, &stubCard{}, &stubWallet{})

	var buf bytes.Buffer
	require.NoError(t, uc.ExportCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,email,amount,recurring,method,transaction_id,completed_at", lines[0])
	assert.Contains(t, lines[1], "25.50")
	assert.Contains(t, lines[1], "txn-1")
}
