package usecase

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	publisher "github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/kafka"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/mailer"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/metrics"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/payments"
)

type DonationInput struct {
	UserID    string
	Name      string
	Email     string
	Amount    float64
	Anonymous bool
	Recurring bool
	Message   string
}

type DefaultDonationUsecase struct {
	DonationRepo domain.DonationRepository
	Card         payments.CardProcessor
	Wallet       payments.WalletProcessor
	Publisher    publisher.NotificationPublisher
	Mailer       mailer.Mailer
	Metrics      *metrics.PatriotMetrics
}

func NewDefaultDonationUsecase(
	donationRepo domain.DonationRepository,
	card payments.CardProcessor,
	wallet payments.WalletProcessor,
	pub publisher.NotificationPublisher,
	mail mailer.Mailer,
	m *metrics.PatriotMetrics,
) *DefaultDonationUsecase {
	return &DefaultDonationUsecase{
		DonationRepo: donationRepo,
		Card:         card,
		Wallet:       wallet,
		Publisher:    pub,
		Mailer:       mail,
		Metrics:      m,
	}
}

// CreatePaymentIntent opens a card payment and records the pending donation.
// Returns the client secret the frontend needs to complete the charge.
func (uc *DefaultDonationUsecase) CreatePaymentIntent(input DonationInput) (*domain.Donation, string, error) {
	intent, err := uc.Card.CreateIntent(int64(input.Amount*100), "usd", input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	donation := &domain.Donation{
		UserID:    input.UserID,
		Name:      input.Name,
		Email:     input.Email,
		Amount:    input.Amount,
		Anonymous: input.Anonymous,
		Recurring: input.Recurring,
		Message:   input.Message,
		Method:    domain.PaymentCard,
		IntentID:  intent.ID,
		Status:    domain.DonationPending,
	}
	if err := uc.DonationRepo.CreateDonation(donation); err != nil {
		return nil, "", err
	}

	uc.Metrics.DonationsCreatedTotal.WithLabelValues(string(domain.PaymentCard)).Inc()
	return donation, intent.ClientSecret, nil
}

// CreateWalletOrder opens a wallet checkout order and records the pending
// donation.
func (uc *DefaultDonationUsecase) CreateWalletOrder(input DonationInput) (*domain.Donation, error) {
	order, err := uc.Wallet.CreateOrder(input.Amount, "USD")
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet order: %w", err)
	}

	donation := &domain.Donation{
		UserID:    input.UserID,
		Name:      input.Name,
		Email:     input.Email,
		Amount:    input.Amount,
		Anonymous: input.Anonymous,
		Recurring: input.Recurring,
		Message:   input.Message,
		Method:    domain.PaymentWallet,
		OrderID:   order.ID,
		Status:    domain.DonationPending,
	}
	if err := uc.DonationRepo.CreateDonation(donation); err != nil {
		return nil, err
	}

	uc.Metrics.DonationsCreatedTotal.WithLabelValues(string(domain.PaymentWallet)).Inc()
	return donation, nil
}

// CaptureWalletOrder captures the wallet payment and completes the donation.
// A capture failure legitimately fails the confirmation: the capture IS the
// donation.
func (uc *DefaultDonationUsecase) CaptureWalletOrder(orderID string) (*domain.Donation, error) {
	donation, err := uc.DonationRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if donation.Status == domain.DonationCompleted {
		return donation, nil
	}

	capture, err := uc.Wallet.CaptureOrder(orderID)
	if err != nil {
		uc.Metrics.CaptureFailuresTotal.Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrCaptureFailed, err)
	}
	if capture.Status != "COMPLETED" {
		uc.Metrics.CaptureFailuresTotal.Inc()
		return nil, fmt.Errorf("%w: capture status %s", domain.ErrCaptureFailed, capture.Status)
	}

	return uc.complete(donation, capture.TransactionID)
}

// ConfirmCardDonation checks the card intent succeeded and completes the
// donation.
func (uc *DefaultDonationUsecase) ConfirmCardDonation(donationID string) (*domain.Donation, error) {
	donation, err := uc.DonationRepo.GetDonationByID(donationID)
	if err != nil {
		return nil, err
	}
	if donation.Status == domain.DonationCompleted {
		return donation, nil
	}

	intent, err := uc.Card.GetIntent(donation.IntentID)
	if err != nil {
		uc.Metrics.CaptureFailuresTotal.Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrCaptureFailed, err)
	}
	if intent.Status != "succeeded" {
		uc.Metrics.CaptureFailuresTotal.Inc()
		return nil, fmt.Errorf("%w: intent status %s", domain.ErrCaptureFailed, intent.Status)
	}

	return uc.complete(donation, intent.ID)
}

// SaveDonation records a donation the client already settled with the
// processor directly. A transaction id marks the record completed on
// arrival; without one it is stored pending for a later confirm.
func (uc *DefaultDonationUsecase) SaveDonation(input DonationInput, method domain.PaymentMethod, transactionID string) (*domain.Donation, error) {
	donation := &domain.Donation{
		UserID:        input.UserID,
		Name:          input.Name,
		Email:         input.Email,
		Amount:        input.Amount,
		Anonymous:     input.Anonymous,
		Recurring:     input.Recurring,
		Message:       input.Message,
		Method:        method,
		TransactionID: transactionID,
		Status:        domain.DonationPending,
	}
	if transactionID != "" {
		donation.Status = domain.DonationCompleted
		donation.CompletedAt = time.Now()
	}
	if err := uc.DonationRepo.CreateDonation(donation); err != nil {
		return nil, err
	}

	uc.Metrics.DonationsCreatedTotal.WithLabelValues(string(method)).Inc()
	if donation.Status == domain.DonationCompleted {
		uc.Metrics.DonationsCompletedTotal.WithLabelValues(string(method)).Inc()
		uc.Metrics.DonationsCompletedAmount.Add(donation.Amount)
		uc.sendReceipt(donation)
	}
	return donation, nil
}

func (uc *DefaultDonationUsecase) complete(donation *domain.Donation, transactionID string) (*domain.Donation, error) {
	now := time.Now()
	if err := uc.DonationRepo.UpdateDonationFields(donation.ID, map[string]interface{}{
		"status":         domain.DonationCompleted,
		"transaction_id": transactionID,
		"completed_at":   now,
	}); err != nil {
		return nil, err
	}
	donation.Status = domain.DonationCompleted
	donation.TransactionID = transactionID
	donation.CompletedAt = now

	uc.Metrics.DonationsCompletedTotal.WithLabelValues(string(donation.Method)).Inc()
	uc.Metrics.DonationsCompletedAmount.Add(donation.Amount)

	uc.sendReceipt(donation)
	return donation, nil
}

func (uc *DefaultDonationUsecase) sendReceipt(donation *domain.Donation) {
	if donation.Email == "" {
		return
	}
	event := publisher.NotificationEvent{
		Kind:      publisher.KindDonationReceipt,
		Recipient: donation.Email,
		Subject:   "Thank you for supporting Patriot Thanks",
		Body: fmt.Sprintf(
			"<p>Your donation of $%.2f has been received.</p><p>Transaction: %s</p>",
			donation.Amount, donation.TransactionID,
		),
		UserID:    donation.UserID,
		Timestamp: time.Now(),
	}
	uc.Metrics.EmailsQueuedTotal.WithLabelValues(event.Kind).Inc()

	if uc.Publisher != nil {
		if err := uc.Publisher.PublishNotification(event); err == nil {
			return
		} else {
			slog.Warn("receipt publish failed, sending directly", "err", err)
		}
	}
	if uc.Mailer != nil {
		if err := uc.Mailer.Send(event.Recipient, event.Subject, event.Body); err != nil {
			slog.Warn("receipt mail send failed", "err", err)
		}
	}
}

func (uc *DefaultDonationUsecase) GetDonationByID(donationID string) (*domain.Donation, error) {
	return uc.DonationRepo.GetDonationByID(donationID)
}

func (uc *DefaultDonationUsecase) ListDonations(page, limit int32) ([]*domain.Donation, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return uc.DonationRepo.ListDonations(page, limit)
}

func (uc *DefaultDonationUsecase) ListUserDonations(userID string) ([]*domain.Donation, error) {
	return uc.DonationRepo.ListByUser(userID)
}

func (uc *DefaultDonationUsecase) GetStats() (*domain.DonationStats, error) {
	return uc.DonationRepo.GetStats(time.Now())
}

// Recognition lists completed, non-anonymous donations for the public
// supporter wall.
func (uc *DefaultDonationUsecase) Recognition() ([]*domain.Donation, error) {
	donations, err := uc.DonationRepo.ListCompleted()
	if err != nil {
		return nil, err
	}

	public := make([]*domain.Donation, 0, len(donations))
	for _, donation := range donations {
		if donation.Anonymous {
			continue
		}
		public = append(public, donation)
	}
	return public, nil
}

// ExportCSV streams all donations as CSV for the admin export.
func (uc *DefaultDonationUsecase) ExportCSV(w io.Writer) error {
	donations, err := uc.DonationRepo.ListCompleted()
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"id", "name", "email", "amount", "recurring", "method", "transaction_id", "completed_at"}); err != nil {
		return err
	}
	for _, donation := range donations {
		record := []string{
			donation.ID,
			donation.Name,
			donation.Email,
			strconv.FormatFloat(donation.Amount, 'f', 2, 64),
			strconv.FormatBool(donation.Recurring),
			string(donation.Method),
			donation.TransactionID,
			donation.CompletedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}
