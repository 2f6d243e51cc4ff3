package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/mappers"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	DB *gorm.DB
}

func NewDefaultUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{DB: db}
}

func (r *DefaultUserRepository) CreateUser(user *domain.User) error {
	model := mappers.ToGORMUser(user)
	if model.ID == "" {
		model.ID = uuid.New().String()
	}
	model.Email = strings.ToLower(strings.TrimSpace(model.Email))

	if err := r.DB.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return err
	}

	user.ID = model.ID
	user.Email = model.Email
	return nil
}

func (r *DefaultUserRepository) GetUserByID(userID string) (*domain.User, error) {
	var model models.UserModel
	if err := r.DB.Where("id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mappers.ToDomainUser(&model), nil
}

func (r *DefaultUserRepository) GetUserByEmail(email string) (*domain.User, error) {
	var model models.UserModel
	if err := r.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mappers.ToDomainUser(&model), nil
}

func (r *DefaultUserRepository) UpdateUser(user *domain.User) error {
	model := mappers.ToGORMUser(user)
	return r.DB.Model(&models.UserModel{}).
		Where("id = ?", user.ID).
		Updates(model).Error
}

func (r *DefaultUserRepository) UpdateUserFields(userID string, fields map[string]interface{}) error {
	return r.DB.Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(fields).Error
}

func (r *DefaultUserRepository) GetByVerificationToken(token string) (*domain.User, error) {
	var model models.UserModel
	if err := r.DB.Where("verification_token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return mappers.ToDomainUser(&model), nil
}

func (r *DefaultUserRepository) GetByPendingEmailToken(token string) (*domain.User, error) {
	var model models.UserModel
	if err := r.DB.Where("pending_email_token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return mappers.ToDomainUser(&model), nil
}

// PurgeExpiredVerificationTokens clears token state on accounts whose
// verification window lapsed. The accounts themselves are kept.
func (r *DefaultUserRepository) PurgeExpiredVerificationTokens(now time.Time) (int64, error) {
	result := r.DB.Model(&models.UserModel{}).
		Where("verification_token <> '' AND verification_expires < ?", now).
		Updates(map[string]interface{}{
			"verification_token":   "",
			"verification_expires": time.Time{},
		})
	return result.RowsAffected, result.Error
}
