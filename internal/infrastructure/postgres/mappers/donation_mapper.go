package mappers

import (
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
)

func ToDomainDonation(model *models.DonationModel) *domain.Donation {
	return &domain.Donation{
		ID:            model.ID,
		UserID:        model.UserID,
		Name:          model.Name,
		Email:         model.Email,
		Amount:        model.Amount,
		Anonymous:     model.Anonymous,
		Recurring:     model.Recurring,
		Message:       model.Message,
		Method:        model.Method,
		IntentID:      model.IntentID,
		OrderID:       model.OrderID,
		TransactionID: model.TransactionID,
		Status:        model.Status,
		CreatedAt:     model.CreatedAt,
		CompletedAt:   model.CompletedAt,
	}
}

func ToGORMDonation(donation *domain.Donation) *models.DonationModel {
	return &models.DonationModel{
		ID:            donation.ID,
		UserID:        donation.UserID,
		Name:          donation.Name,
		Email:         donation.Email,
		Amount:        donation.Amount,
		Anonymous:     donation.Anonymous,
		Recurring:     donation.Recurring,
		Message:       donation.Message,
		Method:        donation.Method,
		IntentID:      donation.IntentID,
		OrderID:       donation.OrderID,
		TransactionID: donation.TransactionID,
		Status:        donation.Status,
		CreatedAt:     donation.CreatedAt,
		CompletedAt:   donation.CompletedAt,
	}
}
