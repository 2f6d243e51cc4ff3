package domain

import "errors"

var (
	ErrBusinessNotFound  = errors.New("business not found")
	ErrIncentiveNotFound = errors.New("incentive not found")
	ErrChainNotFound     = errors.New("chain not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDonationNotFound  = errors.New("donation not found")

	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrTokenExpired         = errors.New("verification token expired")
	ErrTokenInvalid         = errors.New("verification token invalid")
	ErrChainInheritsOffers  = errors.New("business inherits chain incentives")
	ErrEmptyEligibilitySet  = errors.New("eligible category set is empty")
	ErrInvalidEligibility   = errors.New("unknown eligible category")
	ErrCaptureFailed        = errors.New("payment capture failed")
	ErrRateLimited          = errors.New("too many registration attempts")
	ErrForbidden            = errors.New("insufficient role")
)
