package models

import (
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

type UserModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	Email           string `gorm:"uniqueIndex:idx_users_email;not null"`
	PasswordHash    string `gorm:"not null"`
	FirstName       string
	LastName        string
	Level           domain.UserLevel `gorm:"index:idx_users_level"`
	ServiceCategory domain.EligibleCategory
	City            string
	State           string
	Zip             string

	EmailVerified       bool
	VerificationToken   string `gorm:"index:idx_users_verification_token"`
	VerificationExpires time.Time

	PendingEmail        string
	PendingEmailToken   string `gorm:"index:idx_users_pending_token"`
	PendingEmailExpires time.Time

	FavoriteBusinessIDs  []string `gorm:"serializer:json"`
	FavoriteIncentiveIDs []string `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return "users"
}

type AdminCodeModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Code        string `gorm:"uniqueIndex:idx_admin_codes_code;not null"`
	Description string
	ExpiresAt   time.Time `gorm:"index:idx_admin_codes_expires"`
	CreatedAt   time.Time
}

func (AdminCodeModel) TableName() string {
	return "admin_codes"
}
