package models

import (
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

type BusinessModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Name        string `gorm:"index:idx_business_name;not null"`
	Description string
	Address1    string
	Address2    string
	City        string `gorm:"index:idx_business_city"`
	State       string `gorm:"index:idx_business_state"`
	Zip         string `gorm:"index:idx_business_zip"`
	Phone       string
	Category    domain.BusinessCategory `gorm:"index:idx_business_category"`
	Status      domain.BusinessStatus   `gorm:"index:idx_business_status"`

	// Geographic point; nil when the record was never geocoded.
	Lat *float64 `gorm:"index:idx_business_lat"`
	Lng *float64 `gorm:"index:idx_business_lng"`

	ChainID             string `gorm:"type:uuid;index:idx_business_chain"`
	UniversalIncentives bool

	IsVeteranOwned  bool
	VeteranVerified bool
	IsFeatured      bool

	PlaceID string `gorm:"index:idx_business_place_id"`

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BusinessModel) TableName() string {
	return "business"
}
