package domain

import "time"

type UserLevel string

const (
	LevelFree  UserLevel = "Free"
	LevelVBO   UserLevel = "VBO"
	LevelAdmin UserLevel = "Admin"
)

// VerificationTokenTTL bounds how long an email verification token stays
// valid after issue. Expired tokens are rejected even if unconsumed.
const VerificationTokenTTL = 7 * 24 * time.Hour

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Level        UserLevel `json:"level"`
	// Service-type classification of the account holder, same enumeration
	// as incentive eligibility.
	ServiceCategory EligibleCategory `json:"service_category,omitempty"`
	City            string           `json:"city,omitempty"`
	State           string           `json:"state,omitempty"`
	Zip             string           `json:"zip,omitempty"`

	EmailVerified       bool      `json:"email_verified"`
	VerificationToken   string    `json:"-"`
	VerificationExpires time.Time `json:"-"`

	// Pending email change; the new address must be verified before it
	// replaces Email.
	PendingEmail        string    `json:"pending_email,omitempty"`
	PendingEmailToken   string    `json:"-"`
	PendingEmailExpires time.Time `json:"-"`

	FavoriteBusinessIDs  []string `json:"favorite_business_ids,omitempty"`
	FavoriteIncentiveIDs []string `json:"favorite_incentive_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AdminCode struct {
	ID          string    `json:"id"`
	Code        string    `json:"-"`
	Description string    `json:"description,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserRepository interface {
	CreateUser(user *User) error
	GetUserByID(userID string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	UpdateUser(user *User) error
	UpdateUserFields(userID string, fields map[string]interface{}) error
	GetByVerificationToken(token string) (*User, error)
	GetByPendingEmailToken(token string) (*User, error)
	PurgeExpiredVerificationTokens(now time.Time) (int64, error)
}

type AdminCodeRepository interface {
	CreateAdminCode(code *AdminCode) error
	ValidateCode(code string, now time.Time) (bool, error)
	DeleteExpired(now time.Time) (int64, error)
}
