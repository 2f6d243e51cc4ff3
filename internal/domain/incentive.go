package domain

import "time"

// EligibleCategory classifies who an incentive applies to.
type EligibleCategory string

const (
	EligibleVeteran        EligibleCategory = "VT"
	EligibleActiveDuty     EligibleCategory = "AD"
	EligibleFirstResponder EligibleCategory = "FR"
	EligibleSpouse         EligibleCategory = "SP"
	EligibleOther          EligibleCategory = "OT"
	// Sentinel for "no incentive available"; an eligible set is never empty.
	EligibleNotAvailable EligibleCategory = "NA"
)

func ValidEligibleCategory(c EligibleCategory) bool {
	switch c {
	case EligibleVeteran, EligibleActiveDuty, EligibleFirstResponder,
		EligibleSpouse, EligibleOther, EligibleNotAvailable:
		return true
	}
	return false
}

type DiscountMode string

const (
	DiscountPercentage DiscountMode = "percentage"
	DiscountFlat       DiscountMode = "dollar"
)

type Incentive struct {
	ID                 string             `json:"id"`
	BusinessID         string             `json:"business_id"`
	EligibleCategories []EligibleCategory `json:"eligible_categories"`
	Amount             float64            `json:"amount"`
	Mode               DiscountMode       `json:"mode"`
	Description        string             `json:"description,omitempty"`
	IsAvailable        bool               `json:"is_available"`
	CreatedBy          string             `json:"created_by,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type IncentiveSource string

const (
	SourceOwn   IncentiveSource = "own"
	SourceChain IncentiveSource = "chain"
)

// ResolvedIncentives is the per-business resolution result. A business either
// owns its incentives or inherits the chain set; the two are never merged.
type ResolvedIncentives struct {
	BusinessID string
	Source     IncentiveSource
	ChainID    string
	Incentives []*Incentive
}

type IncentiveRepository interface {
	CreateIncentive(incentive *Incentive) error
	GetIncentiveByID(incentiveID string) (*Incentive, error)
	UpdateIncentive(incentive *Incentive) error
	DisableIncentive(incentiveID string) error
	ListIncentives(page, limit int32) ([]*Incentive, int64, error)
	GetIncentivesByBusiness(businessID string) ([]*Incentive, error)
	GetAvailableByBusiness(businessID string) ([]*Incentive, error)
}
