package domain

import "time"

type BusinessCategory string

const (
	CategoryRestaurant BusinessCategory = "REST"
	CategoryRetail     BusinessCategory = "RETAIL"
	CategoryGrocery    BusinessCategory = "GROC"
	CategoryAutomotive BusinessCategory = "AUTO"
	CategoryHardware   BusinessCategory = "HARDWARE"
	CategoryBeauty     BusinessCategory = "BEAUTY"
	CategoryFitness    BusinessCategory = "FITNESS"
	CategoryTechnology BusinessCategory = "TECH"
	CategoryFurniture  BusinessCategory = "FURN"
	CategoryService    BusinessCategory = "SERV"
	CategoryOther      BusinessCategory = "OTHER"
)

type BusinessStatus string

const (
	BusinessActive   BusinessStatus = "active"
	BusinessInactive BusinessStatus = "inactive"
)

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Business struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Address1    string           `json:"address1,omitempty"`
	Address2    string           `json:"address2,omitempty"`
	City        string           `json:"city,omitempty"`
	State       string           `json:"state,omitempty"`
	Zip         string           `json:"zip,omitempty"`
	Phone       string           `json:"phone,omitempty"`
	Category    BusinessCategory `json:"category,omitempty"`
	Status      BusinessStatus   `json:"status"`
	Location    *GeoPoint        `json:"location,omitempty"`

	// Chain membership
	ChainID             string `json:"chain_id,omitempty"`
	UniversalIncentives bool   `json:"universal_incentives"`

	// Veteran ownership metadata
	IsVeteranOwned  bool `json:"is_veteran_owned"`
	VeteranVerified bool `json:"veteran_verified"`
	IsFeatured      bool `json:"is_featured"`

	// External places directory id, set when the record was imported
	// from the directory; used for dedup on supplemented searches.
	PlaceID string `json:"place_id,omitempty"`

	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GeoFilter is a spherical-cap containment filter: center plus radius.
type GeoFilter struct {
	Center      GeoPoint
	RadiusMiles float64
}

// BusinessFilter is the normalized output of the search query builder.
// All fields are optional; zero values mean "no constraint".
type BusinessFilter struct {
	// Case-insensitive POSIX regex alternatives for the business name.
	NamePatterns []string
	// When true, name patterns are not applied as a hard filter and are
	// only used for post-query ranking (geo search active).
	DeferName bool

	AddressLike string
	City        string
	State       string
	Zip         string

	Category BusinessCategory
	// Keyword-derived category alternatives OR-ed with the free-text match.
	CategoryAlternatives []BusinessCategory
	// Free-text term matched against name and description fields.
	Text string

	// Restrict to businesses carrying an available incentive for this
	// service category.
	ServiceCategory EligibleCategory

	Geo *GeoFilter
}

type VBOStats struct {
	Total        int64 `json:"total"`
	VeteranOwned int64 `json:"veteran_owned"`
	Featured     int64 `json:"featured"`
}

type BusinessRepository interface {
	CreateBusiness(business *Business) error
	GetBusinessByID(businessID string) (*Business, error)
	UpdateBusiness(business *Business) error
	UpdateBusinessFields(businessID string, fields map[string]interface{}) error
	DeactivateBusiness(businessID string) error
	ListBusinesses(page, limit int32) ([]*Business, int64, error)
	SearchBusinesses(filter *BusinessFilter) ([]*Business, error)

	GetBusinessesByChain(chainID string) ([]*Business, error)
	SetChainMembership(businessID, chainID string, universalIncentives bool) error
	StripChainRefs(chainID string) (int64, error)
	SyncChainFlags(chainID string, universalIncentives bool) (int64, error)

	GetVBOStats() (*VBOStats, error)
}
