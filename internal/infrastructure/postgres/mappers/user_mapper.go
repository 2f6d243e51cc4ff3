package mappers

import (
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
)

func ToDomainUser(model *models.UserModel) *domain.User {
	return &domain.User{
		ID:                   model.ID,
		Email:                model.Email,
		PasswordHash:         model.PasswordHash,
		FirstName:            model.FirstName,
		LastName:             model.LastName,
		Level:                model.Level,
		ServiceCategory:      model.ServiceCategory,
		City:                 model.City,
		State:                model.State,
		Zip:                  model.Zip,
		EmailVerified:        model.EmailVerified,
		VerificationToken:    model.VerificationToken,
		VerificationExpires:  model.VerificationExpires,
		PendingEmail:         model.PendingEmail,
		PendingEmailToken:    model.PendingEmailToken,
		PendingEmailExpires:  model.PendingEmailExpires,
		FavoriteBusinessIDs:  model.FavoriteBusinessIDs,
		FavoriteIncentiveIDs: model.FavoriteIncentiveIDs,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
}

func ToGORMUser(user *domain.User) *models.UserModel {
	return &models.UserModel{
		ID:                   user.ID,
		Email:                user.Email,
		PasswordHash:         user.PasswordHash,
		FirstName:            user.FirstName,
		LastName:             user.LastName,
		Level:                user.Level,
		ServiceCategory:      user.ServiceCategory,
		City:                 user.City,
		State:                user.State,
		Zip:                  user.Zip,
		EmailVerified:        user.EmailVerified,
		VerificationToken:    user.VerificationToken,
		VerificationExpires:  user.VerificationExpires,
		PendingEmail:         user.PendingEmail,
		PendingEmailToken:    user.PendingEmailToken,
		PendingEmailExpires:  user.PendingEmailExpires,
		FavoriteBusinessIDs:  user.FavoriteBusinessIDs,
		FavoriteIncentiveIDs: user.FavoriteIncentiveIDs,
		CreatedAt:            user.CreatedAt,
		UpdatedAt:            user.UpdatedAt,
	}
}
