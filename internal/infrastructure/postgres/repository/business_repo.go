package repository

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/mappers"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultBusinessRepository struct {
	DB *gorm.DB
}

func NewDefaultBusinessRepository(db *gorm.DB) *DefaultBusinessRepository {
	return &DefaultBusinessRepository{DB: db}
}

func (r *DefaultBusinessRepository) CreateBusiness(business *domain.Business) error {
	model := mappers.ToGORMBusiness(business)
	if model.ID == "" {
		model.ID = uuid.New().String()
	}
	if model.Status == "" {
		model.Status = domain.BusinessActive
	}

	if err := r.DB.Create(model).Error; err != nil {
		return err
	}

	business.ID = model.ID
	business.Status = model.Status
	return nil
}

func (r *DefaultBusinessRepository) GetBusinessByID(businessID string) (*domain.Business, error) {
	var model models.BusinessModel
	if err := r.DB.Where("id = ?", businessID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, err
	}
	return mappers.ToDomainBusiness(&model), nil
}

// UpdateBusiness writes every editable column by map: zero values are
// legitimate updates here (clearing a featured flag, detaching a chain),
// and a struct update would silently drop them.
func (r *DefaultBusinessRepository) UpdateBusiness(business *domain.Business) error {
	model := mappers.ToGORMBusiness(business)
	updateData := map[string]interface{}{
		"name":                 model.Name,
		"description":          model.Description,
		"address1":             model.Address1,
		"address2":             model.Address2,
		"city":                 model.City,
		"state":                model.State,
		"zip":                  model.Zip,
		"phone":                model.Phone,
		"category":             model.Category,
		"lat":                  model.Lat,
		"lng":                  model.Lng,
		"chain_id":             model.ChainID,
		"universal_incentives": model.UniversalIncentives,
		"is_veteran_owned":     model.IsVeteranOwned,
		"veteran_verified":     model.VeteranVerified,
		"is_featured":          model.IsFeatured,
		"place_id":             model.PlaceID,
	}

	return r.DB.Model(&models.BusinessModel{}).
		Where("id = ?", business.ID).
		Updates(updateData).Error
}

func (r *DefaultBusinessRepository) UpdateBusinessFields(businessID string, fields map[string]interface{}) error {
	return r.DB.Model(&models.BusinessModel{}).
		Where("id = ?", businessID).
		Updates(fields).Error
}

// DeactivateBusiness soft-deletes via status flip.
func (r *DefaultBusinessRepository) DeactivateBusiness(businessID string) error {
	return r.UpdateBusinessFields(businessID, map[string]interface{}{
		"status": domain.BusinessInactive,
	})
}

func (r *DefaultBusinessRepository) ListBusinesses(page, limit int32) ([]*domain.Business, int64, error) {
	var businessModels []models.BusinessModel
	var total int64

	r.DB.Model(&models.BusinessModel{}).Where("status = ?", domain.BusinessActive).Count(&total)

	offset := (page - 1) * limit
	if err := r.DB.Where("status = ?", domain.BusinessActive).
		Offset(int(offset)).Limit(int(limit)).
		Order("name ASC").
		Find(&businessModels).Error; err != nil {
		return nil, 0, err
	}

	businesses := make([]*domain.Business, len(businessModels))
	for i := range businessModels {
		businesses[i] = mappers.ToDomainBusiness(&businessModels[i])
	}
	return businesses, total, nil
}

// SearchBusinesses translates the normalized filter into SQL clauses. Name
// patterns are regular expressions and are applied as an in-process
// post-filter so the same repository works against postgres and the sqlite
// driver used in tests; every other clause narrows the candidate set in SQL.
func (r *DefaultBusinessRepository) SearchBusinesses(filter *domain.BusinessFilter) ([]*domain.Business, error) {
	query := r.DB.Model(&models.BusinessModel{}).Where("status = ?", domain.BusinessActive)

	if filter.AddressLike != "" {
		pattern := "%" + strings.ToLower(filter.AddressLike) + "%"
		query = query.Where(
			"LOWER(address1) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR zip LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	if filter.Geo != nil {
		query = applyGeoBounds(query, filter.Geo)
	} else {
		// Exact administrative-area clauses are mutually exclusive with a
		// radius search; the builder strips them when geo is present.
		if filter.Zip != "" {
			query = query.Where("zip = ?", filter.Zip)
		}
		if filter.City != "" {
			query = query.Where("LOWER(city) = ?", strings.ToLower(filter.City))
		}
		if filter.State != "" {
			query = query.Where("LOWER(state) = ?", strings.ToLower(filter.State))
		}
	}

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if filter.Text != "" {
		pattern := "%" + strings.ToLower(filter.Text) + "%"
		if len(filter.CategoryAlternatives) > 0 {
			query = query.Where(
				"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR category IN ?",
				pattern, pattern, filter.CategoryAlternatives,
			)
		} else {
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}
	}

	if filter.ServiceCategory != "" {
		// Eligible categories are stored as a JSON array of quoted codes.
		// The column is jsonb on postgres and text on the sqlite test
		// driver; the cast makes the containment match legal on both.
		sub := r.DB.Model(&models.IncentiveModel{}).
			Select("business_id").
			Where("is_available = ?", true).
			Where("CAST(eligible_categories AS TEXT) LIKE ?", `%"`+string(filter.ServiceCategory)+`"%`)
		query = query.Where("id IN (?)", sub)
	}

	var businessModels []models.BusinessModel
	if err := query.Find(&businessModels).Error; err != nil {
		return nil, err
	}

	matchers := compileNamePatterns(filter.NamePatterns)
	businesses := make([]*domain.Business, 0, len(businessModels))
	for i := range businessModels {
		business := mappers.ToDomainBusiness(&businessModels[i])
		if len(matchers) > 0 && !filter.DeferName && !matchesAny(matchers, business.Name) {
			continue
		}
		businesses = append(businesses, business)
	}
	return businesses, nil
}

// applyGeoBounds narrows by a bounding box around the spherical cap; the
// exact great-circle cut happens during distance annotation in the search
// usecase.
func applyGeoBounds(query *gorm.DB, geo *domain.GeoFilter) *gorm.DB {
	latDelta := geo.RadiusMiles / 69.0
	lngScale := math.Cos(geo.Center.Lat * math.Pi / 180)
	if lngScale < 0.01 {
		lngScale = 0.01
	}
	lngDelta := geo.RadiusMiles / (69.0 * lngScale)

	return query.Where("lat IS NOT NULL AND lng IS NOT NULL").
		Where("lat BETWEEN ? AND ?", geo.Center.Lat-latDelta, geo.Center.Lat+latDelta).
		Where("lng BETWEEN ? AND ?", geo.Center.Lng-lngDelta, geo.Center.Lng+lngDelta)
}

func compileNamePatterns(patterns []string) []*regexp.Regexp {
	matchers := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			continue
		}
		matchers = append(matchers, re)
	}
	return matchers
}

func matchesAny(matchers []*regexp.Regexp, name string) bool {
	for _, re := range matchers {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func (r *DefaultBusinessRepository) GetBusinessesByChain(chainID string) ([]*domain.Business, error) {
	var businessModels []models.BusinessModel
	if err := r.DB.Where("chain_id = ?", chainID).Find(&businessModels).Error; err != nil {
		return nil, err
	}

	businesses := make([]*domain.Business, len(businessModels))
	for i := range businessModels {
		businesses[i] = mappers.ToDomainBusiness(&businessModels[i])
	}
	return businesses, nil
}

func (r *DefaultBusinessRepository) SetChainMembership(businessID, chainID string, universalIncentives bool) error {
	return r.UpdateBusinessFields(businessID, map[string]interface{}{
		"chain_id":             chainID,
		"universal_incentives": universalIncentives,
	})
}

// StripChainRefs detaches all member businesses from a chain. The businesses
// themselves are kept.
func (r *DefaultBusinessRepository) StripChainRefs(chainID string) (int64, error) {
	result := r.DB.Model(&models.BusinessModel{}).
		Where("chain_id = ?", chainID).
		Updates(map[string]interface{}{
			"chain_id":             "",
			"universal_incentives": false,
		})
	return result.RowsAffected, result.Error
}

// SyncChainFlags pushes the chain-level inheritance flag onto every member
// location. A batch of independent updates with no atomicity across the
// batch; the affected count is the only completeness signal.
func (r *DefaultBusinessRepository) SyncChainFlags(chainID string, universalIncentives bool) (int64, error) {
	result := r.DB.Model(&models.BusinessModel{}).
		Where("chain_id = ?", chainID).
		Update("universal_incentives", universalIncentives)
	return result.RowsAffected, result.Error
}

func (r *DefaultBusinessRepository) GetVBOStats() (*domain.VBOStats, error) {
	var stats domain.VBOStats

	if err := r.DB.Model(&models.BusinessModel{}).
		Where("status = ?", domain.BusinessActive).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&models.BusinessModel{}).
		Where("status = ? AND is_veteran_owned = ?", domain.BusinessActive, true).
		Count(&stats.VeteranOwned).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&models.BusinessModel{}).
		Where("status = ? AND is_featured = ?", domain.BusinessActive, true).
		Count(&stats.Featured).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
