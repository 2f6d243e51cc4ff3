package models

import (
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

type IncentiveModel struct {
	ID         string        `gorm:"primaryKey;type:uuid"`
	BusinessID string        `gorm:"type:uuid;not null;index:idx_incentive_business"`
	Business   BusinessModel `gorm:"foreignKey:BusinessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	// Non-empty set drawn from the fixed eligibility enumeration; the
	// "NA" sentinel stands in for "no incentive available".
	EligibleCategories []domain.EligibleCategory `gorm:"serializer:json"`

	Amount      float64
	Mode        domain.DiscountMode
	Description string
	IsAvailable bool `gorm:"index:idx_incentive_available"`

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (IncentiveModel) TableName() string {
	return "incentives"
}
