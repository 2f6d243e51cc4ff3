package models

import (
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

type DonationModel struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID string `gorm:"type:uuid;index:idx_donations_user"`

	Name      string
	Email     string
	Amount    float64 `gorm:"index:idx_donations_amount"`
	Anonymous bool
	Recurring bool
	Message   string

	Method        domain.PaymentMethod
	IntentID      string `gorm:"index:idx_donations_intent"`
	OrderID       string `gorm:"index:idx_donations_order"`
	TransactionID string

	Status      domain.DonationStatus `gorm:"index:idx_donations_status"`
	CreatedAt   time.Time             `gorm:"index:idx_donations_created"`
	CompletedAt time.Time
	UpdatedAt   time.Time
}

func (DonationModel) TableName() string {
	return "donations"
}
