package domain

import "time"

// ChainIncentive is a chain-level incentive record embedded in the chain
// document. Same shape as a standalone incentive plus an activation flag
// and per-record audit fields.
type ChainIncentive struct {
	ID                 string             `json:"id"`
	EligibleCategories []EligibleCategory `json:"eligible_categories"`
	Amount             float64            `json:"amount"`
	Mode               DiscountMode       `json:"mode"`
	Description        string             `json:"description,omitempty"`
	IsActive           bool               `json:"is_active"`
	CreatedBy          string             `json:"created_by,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type Chain struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category BusinessCategory `json:"category,omitempty"`
	// When true, member locations inherit the chain incentive set instead
	// of owning their own records.
	UniversalIncentives bool             `json:"universal_incentives"`
	Incentives          []ChainIncentive `json:"incentives"`
	CreatedBy           string           `json:"created_by,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

type ChainSummary struct {
	Chain            *Chain `json:"chain"`
	LocationCount    int64  `json:"location_count"`
	ActiveIncentives int    `json:"active_incentives"`
}

type ChainRepository interface {
	CreateChain(chain *Chain) error
	GetChainByID(chainID string) (*Chain, error)
	UpdateChain(chain *Chain) error
	UpdateChainIncentives(chainID string, incentives []ChainIncentive) error
	DeleteChain(chainID string) error
	ListChains(page, limit int32) ([]*Chain, int64, error)
	SearchChainsByName(name string) ([]*Chain, error)
	SetUniversalIncentives(chainIDs []string, enabled bool) (int64, error)
}
