package usecase

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	publisher "github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/kafka"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/mailer"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/metrics"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	ServiceCategory domain.EligibleCategory
	City            string
	State           string
	Zip             string
	AdminCode       string
}

type DefaultUserUsecase struct {
	UserRepo      domain.UserRepository
	AdminCodeRepo domain.AdminCodeRepository
	Publisher     publisher.NotificationPublisher
	Mailer        mailer.Mailer
	Metrics       *metrics.PatriotMetrics
	AppURL        string

	newToken func() string
}

func NewDefaultUserUsecase(
	userRepo domain.UserRepository,
	adminCodeRepo domain.AdminCodeRepository,
	pub publisher.NotificationPublisher,
	mail mailer.Mailer,
	m *metrics.PatriotMetrics,
	appURL string,
) *DefaultUserUsecase {
	tokenGen, err := nanoid.Standard(21)
	if err != nil {
		log.Fatalf("failed to init token generator: %v", err)
	}
	return &DefaultUserUsecase{
		UserRepo:      userRepo,
		AdminCodeRepo: adminCodeRepo,
		Publisher:     pub,
		Mailer:        mail,
		Metrics:       m,
		AppURL:        appURL,
		newToken:      tokenGen,
	}
}

func (uc *DefaultUserUsecase) Register(input RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := uc.UserRepo.GetUserByEmail(email); err == nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	level := domain.LevelFree
	if input.AdminCode != "" && uc.AdminCodeRepo != nil {
		valid, err := uc.AdminCodeRepo.ValidateCode(input.AdminCode, time.Now())
		if err != nil {
			slog.Warn("admin code validation failed", "err", err)
		} else if valid {
			level = domain.LevelAdmin
		}
	}

	user := &domain.User{
		Email:               email,
		PasswordHash:        string(hash),
		FirstName:           strings.TrimSpace(input.FirstName),
		LastName:            strings.TrimSpace(input.LastName),
		Level:               level,
		ServiceCategory:     input.ServiceCategory,
		City:                input.City,
		State:               input.State,
		Zip:                 input.Zip,
		VerificationToken:   uc.newToken(),
		VerificationExpires: time.Now().Add(domain.VerificationTokenTTL),
	}

	if err := uc.UserRepo.CreateUser(user); err != nil {
		return nil, err
	}
	uc.Metrics.RegistrationsTotal.Inc()

	uc.queueEmail(publisher.NotificationEvent{
		Kind:      publisher.KindVerifyEmail,
		Recipient: user.Email,
		Subject:   "Verify your Patriot Thanks account",
		Body:      uc.verificationBody(user.VerificationToken, "verify-email"),
		UserID:    user.ID,
	})

	return user, nil
}

func (uc *DefaultUserUsecase) Login(email, password string) (*domain.User, error) {
	user, err := uc.UserRepo.GetUserByEmail(email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (uc *DefaultUserUsecase) VerifyEmail(token string) error {
	user, err := uc.UserRepo.GetByVerificationToken(token)
	if err != nil {
		return err
	}
	if time.Now().After(user.VerificationExpires) {
		return domain.ErrTokenExpired
	}

	return uc.UserRepo.UpdateUserFields(user.ID, map[string]interface{}{
		"email_verified":       true,
		"verification_token":   "",
		"verification_expires": time.Time{},
	})
}

func (uc *DefaultUserUsecase) ResendVerification(email string) error {
	user, err := uc.UserRepo.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return nil
	}

	token := uc.newToken()
	if err := uc.UserRepo.UpdateUserFields(user.ID, map[string]interface{}{
		"verification_token":   token,
		"verification_expires": time.Now().Add(domain.VerificationTokenTTL),
	}); err != nil {
		return err
	}

	uc.queueEmail(publisher.NotificationEvent{
		Kind:      publisher.KindResendVerify,
		Recipient: user.Email,
		Subject:   "Verify your Patriot Thanks account",
		Body:      uc.verificationBody(token, "verify-email"),
		UserID:    user.ID,
	})
	return nil
}

// UpdateEmail records a pending address change; the new address must be
// verified before it replaces the account email.
func (uc *DefaultUserUsecase) UpdateEmail(userID, newEmail, password string) error {
	user, err := uc.UserRepo.GetUserByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.ErrInvalidCredentials
	}

	newEmail = strings.ToLower(strings.TrimSpace(newEmail))
	if _, err := uc.UserRepo.GetUserByEmail(newEmail); err == nil {
		return domain.ErrEmailTaken
	}

	token := uc.newToken()
	if err := uc.UserRepo.UpdateUserFields(user.ID, map[string]interface{}{
		"pending_email":         newEmail,
		"pending_email_token":   token,
		"pending_email_expires": time.Now().Add(domain.VerificationTokenTTL),
	}); err != nil {
		return err
	}

	uc.queueEmail(publisher.NotificationEvent{
		Kind:      publisher.KindVerifyNewEmail,
		Recipient: newEmail,
		Subject:   "Confirm your new Patriot Thanks email",
		Body:      uc.verificationBody(token, "verify-new-email"),
		UserID:    user.ID,
	})
	return nil
}

func (uc *DefaultUserUsecase) VerifyNewEmail(token string) error {
	user, err := uc.UserRepo.GetByPendingEmailToken(token)
	if err != nil {
		return err
	}
	if time.Now().After(user.PendingEmailExpires) {
		return domain.ErrTokenExpired
	}
	if user.PendingEmail == "" {
		return domain.ErrTokenInvalid
	}

	return uc.UserRepo.UpdateUserFields(user.ID, map[string]interface{}{
		"email":                 user.PendingEmail,
		"email_verified":        true,
		"pending_email":         "",
		"pending_email_token":   "",
		"pending_email_expires": time.Time{},
	})
}

func (uc *DefaultUserUsecase) GetUserByID(userID string) (*domain.User, error) {
	return uc.UserRepo.GetUserByID(userID)
}

// ToggleFavoriteBusiness adds the business to the user's favorites, or
// removes it when already present. Returns the updated favorite set.
func (uc *DefaultUserUsecase) ToggleFavoriteBusiness(userID, businessID string) ([]string, error) {
	user, err := uc.UserRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	user.FavoriteBusinessIDs = toggleID(user.FavoriteBusinessIDs, businessID)
	if err := uc.UserRepo.UpdateUser(user); err != nil {
		return nil, err
	}
	return user.FavoriteBusinessIDs, nil
}

func (uc *DefaultUserUsecase) ToggleFavoriteIncentive(userID, incentiveID string) ([]string, error) {
	user, err := uc.UserRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	user.FavoriteIncentiveIDs = toggleID(user.FavoriteIncentiveIDs, incentiveID)
	if err := uc.UserRepo.UpdateUser(user); err != nil {
		return nil, err
	}
	return user.FavoriteIncentiveIDs, nil
}

func toggleID(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}

func (uc *DefaultUserUsecase) verificationBody(token, path string) string {
	return fmt.Sprintf(
		`<p>Thanks for supporting Patriot Thanks.</p><p><a href="%s/%s?token=%s">Confirm your email address</a></p><p>This link expires in 7 days.</p>`,
		uc.AppURL, path, token,
	)
}

// queueEmail publishes the notification event; if the broker is down the
// mail is sent directly so the user is not left without a link.
func (uc *DefaultUserUsecase) queueEmail(event publisher.NotificationEvent) {
	event.Timestamp = time.Now()
	uc.Metrics.EmailsQueuedTotal.WithLabelValues(event.Kind).Inc()

	if uc.Publisher != nil {
		if err := uc.Publisher.PublishNotification(event); err == nil {
			return
		} else {
			slog.Warn("notification publish failed, sending directly", "kind", event.Kind, "err", err)
		}
	}

	if uc.Mailer != nil {
		if err := uc.Mailer.Send(event.Recipient, event.Subject, event.Body); err != nil {
			slog.Warn("direct mail send failed", "kind", event.Kind, "err", err)
		}
	}
}
