package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/patriot-thanks/patriot-thanks-service/internal/delivery/http/handlers"
	"github.com/patriot-thanks/patriot-thanks-service/internal/delivery/http/middleware"
)

type RouterDeps struct {
	Tokens    *middleware.TokenManager
	Search    *handlers.SearchHandler
	Business  *handlers.BusinessHandler
	Incentive *handlers.IncentiveHandler
	Chain     *handlers.ChainHandler
	Auth      *handlers.AuthHandler
	Donation  *handlers.DonationHandler
}

// NewRouter mounts the public API under /api plus the health and metrics
// endpoints. Mutations require a session; chain management and donation
// administration require the admin level.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger)
	r.Use(deps.Tokens.Authenticate)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/search", deps.Search.HandleSearch)

		api.Get("/businesses", deps.Business.Handle)
		api.Get("/businesses/{id}", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			q.Set("operation", "get")
			q.Set("id", chi.URLParam(r, "id"))
			r.URL.RawQuery = q.Encode()
			deps.Business.Handle(w, r)
		})
		api.With(middleware.RequireAuth).Post("/businesses", deps.Business.Handle)
		api.With(middleware.RequireAuth).Put("/businesses", deps.Business.Handle)
		api.With(middleware.RequireAuth).Delete("/businesses", deps.Business.Handle)

		api.Get("/incentives", deps.Incentive.Handle)
		api.Get("/incentives/{id}", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			q.Set("operation", "get")
			q.Set("id", chi.URLParam(r, "id"))
			r.URL.RawQuery = q.Encode()
			deps.Incentive.Handle(w, r)
		})
		api.With(middleware.RequireAuth).Post("/incentives", deps.Incentive.Handle)
		api.With(middleware.RequireAuth).Put("/incentives", deps.Incentive.Handle)
		api.With(middleware.RequireAuth).Delete("/incentives", deps.Incentive.Handle)

		api.Get("/chains", deps.Chain.Handle)
		api.With(middleware.RequireAdmin).Post("/chains", deps.Chain.Handle)
		api.With(middleware.RequireAdmin).Put("/chains", deps.Chain.Handle)
		api.With(middleware.RequireAdmin).Delete("/chains", deps.Chain.Handle)

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", deps.Auth.Register)
			auth.Post("/login", deps.Auth.Login)
			auth.Get("/verify-email", deps.Auth.VerifyEmail)
			auth.Post("/resend-verification", deps.Auth.ResendVerification)
			auth.Get("/verify-new-email", deps.Auth.VerifyNewEmail)

			auth.Group(func(private chi.Router) {
				private.Use(middleware.RequireAuth)
				private.Get("/profile", deps.Auth.Profile)
				private.Post("/update-email", deps.Auth.UpdateEmail)
				private.Post("/favorites", deps.Auth.ToggleFavorite)
			})
		})

		api.Get("/donations", deps.Donation.Handle)
		api.Post("/donations", deps.Donation.Handle)
		api.With(middleware.RequireAdmin).Get("/admin/donations", deps.Donation.HandleAdmin)
	})

	return r
}
