package setup

import (
	"fmt"

	"github.com/patriot-thanks/patriot-thanks-service/internal/config"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/geocode"
	publisher "github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/kafka"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/mailer"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/metrics"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/payments"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/places"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/repository"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/ratelimit"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.PatriotConfig
	DB           *gorm.DB
	Metrics      *metrics.PatriotMetrics
	Publisher    *publisher.DefaultKafkaPublisher
	Subscriber   *publisher.DefaultKafkaSubscriber
	Geocoder     geocode.Geocoder
	Directory    places.Directory
	Card         payments.CardProcessor
	Wallet       payments.WalletProcessor
	Mailer       mailer.Mailer
	RateLimiter  *ratelimit.Registry
	Repositories *Repositories
}

type Repositories struct {
	BusinessRepo  domain.BusinessRepository
	IncentiveRepo domain.IncentiveRepository
	ChainRepo     domain.ChainRepository
	UserRepo      domain.UserRepository
	AdminCodeRepo domain.AdminCodeRepository
	DonationRepo  domain.DonationRepository
}

func InitializeDependencies() (*Dependencies, error) {
	cfg := config.MustLoad()

	db := postgres.MustInitDB(cfg)

	deps := &Dependencies{
		Config:      cfg,
		DB:          db,
		Metrics:     metrics.NewPatriotMetrics(),
		Geocoder:    geocode.NewHTTPGeocoder(cfg.GeocodingService.BaseURL, cfg.GeocodingService.Timeout),
		Card:        payments.NewHTTPCardProcessor(cfg.CardPayments.BaseURL, cfg.CardPayments.SecretKey),
		Wallet:      payments.NewHTTPWalletProcessor(cfg.WalletPayments.BaseURL, cfg.WalletPayments.ClientID, cfg.WalletPayments.ClientSecret),
		RateLimiter: ratelimit.NewRegistry(cfg.RateLimit.RegisterPerHour, cfg.RateLimit.RegisterBurst),
		Repositories: &Repositories{
			BusinessRepo:  repository.NewDefaultBusinessRepository(db),
			IncentiveRepo: repository.NewDefaultIncentiveRepository(db),
			ChainRepo:     repository.NewDefaultChainRepository(db),
			UserRepo:      repository.NewDefaultUserRepository(db),
			AdminCodeRepo: repository.NewDefaultAdminCodeRepository(db),
			DonationRepo:  repository.NewDefaultDonationRepository(db),
		},
	}

	// The places directory is optional: without an API key searches run on
	// local data only.
	if cfg.PlacesService.APIKey != "" {
		deps.Directory = places.NewHTTPDirectory(cfg.PlacesService.BaseURL, cfg.PlacesService.APIKey, cfg.PlacesService.Timeout)
	}

	if cfg.MailService.BaseURL != "" {
		deps.Mailer = mailer.NewHTTPMailer(cfg.MailService.BaseURL, cfg.MailService.APIKey, cfg.MailService.From)
	} else {
		deps.Mailer = mailer.LogMailer{}
	}

	if cfg.KafkaService.Enabled {
		brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
		deps.Publisher = publisher.NewDefaultKafkaPublisher(brokers)
		deps.Subscriber = publisher.NewDefaultKafkaSubscriber(brokers)
	}

	return deps, nil
}
