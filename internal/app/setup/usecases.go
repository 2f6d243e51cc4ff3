package setup

import (
	publisher "github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/kafka"
	"github.com/patriot-thanks/patriot-thanks-service/internal/usecase"
	"github.com/patriot-thanks/patriot-thanks-service/internal/usecase/search"
)

type UseCases struct {
	SearchUsecase    *search.DefaultSearchUsecase
	BusinessUsecase  *usecase.DefaultBusinessUsecase
	IncentiveUsecase *usecase.DefaultIncentiveUsecase
	ChainUsecase     *usecase.DefaultChainUsecase
	UserUsecase      *usecase.DefaultUserUsecase
	DonationUsecase  *usecase.DefaultDonationUsecase
}

func InitializeUseCases(deps *Dependencies) *UseCases {
	repos := deps.Repositories

	// A nil concrete publisher must stay a nil interface, otherwise the
	// usecases would call through it.
	var pub publisher.NotificationPublisher
	if deps.Publisher != nil {
		pub = deps.Publisher
	}

	searchUsecase := search.NewDefaultSearchUsecase(
		repos.BusinessRepo,
		deps.Geocoder,
		deps.Directory,
		deps.Metrics,
	)

	businessUsecase := usecase.NewDefaultBusinessUsecase(repos.BusinessRepo, repos.ChainRepo)
	incentiveUsecase := usecase.NewDefaultIncentiveUsecase(repos.IncentiveRepo, repos.BusinessRepo, repos.ChainRepo)
	chainUsecase := usecase.NewDefaultChainUsecase(repos.ChainRepo, repos.BusinessRepo)

	userUsecase := usecase.NewDefaultUserUsecase(
		repos.UserRepo,
		repos.AdminCodeRepo,
		pub,
		deps.Mailer,
		deps.Metrics,
		deps.Config.MailService.AppURL,
	)

	donationUsecase := usecase.NewDefaultDonationUsecase(
		repos.DonationRepo,
		deps.Card,
		deps.Wallet,
		pub,
		deps.Mailer,
		deps.Metrics,
	)

	return &UseCases{
		SearchUsecase:    searchUsecase,
		BusinessUsecase:  businessUsecase,
		IncentiveUsecase: incentiveUsecase,
		ChainUsecase:     chainUsecase,
		UserUsecase:      userUsecase,
		DonationUsecase:  donationUsecase,
	}
}
