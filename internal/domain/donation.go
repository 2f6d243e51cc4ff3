package domain

import "time"

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationCancelled DonationStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
)

type Donation struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`

	Name      string  `json:"name,omitempty"`
	Email     string  `json:"email,omitempty"`
	Amount    float64 `json:"amount"`
	Anonymous bool    `json:"anonymous"`
	Recurring bool    `json:"recurring"`
	Message   string  `json:"message,omitempty"`

	Method PaymentMethod `json:"method"`
	// Processor identifiers: intent id for card payments, order id for
	// wallet payments, transaction id once captured.
	IntentID      string `json:"intent_id,omitempty"`
	OrderID       string `json:"order_id,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`

	Status      DonationStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt time.Time      `json:"completed_at,omitempty"`
}

type DonationStats struct {
	TotalAmount     float64 `json:"total_amount"`
	TotalCount      int64   `json:"total_count"`
	RecurringCount  int64   `json:"recurring_count"`
	AverageAmount   float64 `json:"average_amount"`
	ThisMonthAmount float64 `json:"this_month_amount"`
}

type DonationRepository interface {
	CreateDonation(donation *Donation) error
	GetDonationByID(donationID string) (*Donation, error)
	GetByOrderID(orderID string) (*Donation, error)
	UpdateDonationFields(donationID string, fields map[string]interface{}) error
	ListDonations(page, limit int32) ([]*Donation, int64, error)
	ListByUser(userID string) ([]*Donation, error)
	ListCompleted() ([]*Donation, error)
	GetStats(now time.Time) (*DonationStats, error)
	CancelStalePending(olderThan time.Time) (int64, error)
}
