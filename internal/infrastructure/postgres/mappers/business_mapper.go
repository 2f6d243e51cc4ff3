package mappers

import (
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
)

func ToDomainBusiness(model *models.BusinessModel) *domain.Business {
	business := &domain.Business{
		ID:                  model.ID,
		Name:                model.Name,
		Description:         model.Description,
		Address1:            model.Address1,
		Address2:            model.Address2,
		City:                model.City,
		State:               model.State,
		Zip:                 model.Zip,
		Phone:               model.Phone,
		Category:            model.Category,
		Status:              model.Status,
		ChainID:             model.ChainID,
		UniversalIncentives: model.UniversalIncentives,
		IsVeteranOwned:      model.IsVeteranOwned,
		VeteranVerified:     model.VeteranVerified,
		IsFeatured:          model.IsFeatured,
		PlaceID:             model.PlaceID,
		CreatedBy:           model.CreatedBy,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
	if model.Lat != nil && model.Lng != nil {
		business.Location = &domain.GeoPoint{Lat: *model.Lat, Lng: *model.Lng}
	}
	return business
}

func ToGORMBusiness(business *domain.Business) *models.BusinessModel {
	model := &models.BusinessModel{
		ID:                  business.ID,
		Name:                business.Name,
		Description:         business.Description,
		Address1:            business.Address1,
		Address2:            business.Address2,
		City:                business.City,
		State:               business.State,
		Zip:                 business.Zip,
		Phone:               business.Phone,
		Category:            business.Category,
		Status:              business.Status,
		ChainID:             business.ChainID,
		UniversalIncentives: business.UniversalIncentives,
		IsVeteranOwned:      business.IsVeteranOwned,
		VeteranVerified:     business.VeteranVerified,
		IsFeatured:          business.IsFeatured,
		PlaceID:             business.PlaceID,
		CreatedBy:           business.CreatedBy,
		CreatedAt:           business.CreatedAt,
		UpdatedAt:           business.UpdatedAt,
	}
	if business.Location != nil {
		lat, lng := business.Location.Lat, business.Location.Lng
		model.Lat, model.Lng = &lat, &lng
	}
	return model
}
