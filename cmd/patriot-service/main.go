package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/patriot-thanks/patriot-thanks-service/internal/app/background"
	"github.com/patriot-thanks/patriot-thanks-service/internal/app/setup"
	httpdelivery "github.com/patriot-thanks/patriot-thanks-service/internal/delivery/http"
	"github.com/patriot-thanks/patriot-thanks-service/internal/delivery/http/handlers"
	"github.com/patriot-thanks/patriot-thanks-service/internal/delivery/http/middleware"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/migrate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	deps, err := setup.InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %v", err)
	}
	cfg := deps.Config

	if cfg.PatriotDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(deps.DB, cfg.PatriotDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	useCases := setup.InitializeUseCases(deps)

	tokens := middleware.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	respond := &handlers.Responder{Development: cfg.Env != "production"}

	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Tokens:    tokens,
		Search:    handlers.NewSearchHandler(useCases.SearchUsecase, respond),
		Business:  handlers.NewBusinessHandler(useCases.BusinessUsecase, respond),
		Incentive: handlers.NewIncentiveHandler(useCases.IncentiveUsecase, respond),
		Chain:     handlers.NewChainHandler(useCases.ChainUsecase, respond),
		Auth:      handlers.NewAuthHandler(useCases.UserUsecase, tokens, deps.RateLimiter, deps.Metrics, respond),
		Donation:  handlers.NewDonationHandler(useCases.DonationUsecase, respond),
	})

	tasks := background.NewBackgroundTasks(
		deps.Repositories.UserRepo,
		deps.Repositories.AdminCodeRepo,
		deps.Repositories.DonationRepo,
		deps.RateLimiter,
		deps.Subscriber,
		deps.Mailer,
	)
	tasks.StartAll(context.Background())

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
