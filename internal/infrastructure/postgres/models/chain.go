package models

import (
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

// ChainIncentiveRecord mirrors domain.ChainIncentive for the embedded
// JSON collection on the chain row.
type ChainIncentiveRecord struct {
	ID                 string                    `json:"id"`
	EligibleCategories []domain.EligibleCategory `json:"eligible_categories"`
	Amount             float64                   `json:"amount"`
	Mode               domain.DiscountMode       `json:"mode"`
	Description        string                    `json:"description"`
	IsActive           bool                      `json:"is_active"`
	CreatedBy          string                    `json:"created_by"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

type ChainModel struct {
	ID                  string                  `gorm:"primaryKey;type:uuid"`
	Name                string                  `gorm:"index:idx_chain_name;not null"`
	Category            domain.BusinessCategory `gorm:"index:idx_chain_category"`
	UniversalIncentives bool

	// Embedded ordered incentive collection, same shape as standalone
	// incentives plus the activation flag.
	Incentives []ChainIncentiveRecord `gorm:"serializer:json"`

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ChainModel) TableName() string {
	return "patriot_thanks_chains"
}
