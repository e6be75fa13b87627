package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"household-ledger-go/internal/config"
	"household-ledger-go/internal/transport/httpserver/handler"
	"household-ledger-go/internal/transport/httpserver/middleware"
	"household-ledger-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/accounts", handlers.Register)
		r.Post("/auth/login", handlers.Login)

		identity := middleware.NewIdentity(handlers.Accounts, log)
		r.Group(func(r chi.Router) {
			r.Use(identity.Middleware)

			r.Get("/accounts/me", handlers.GetMe)
			r.Patch("/accounts/me", handlers.UpdateMe)

			r.Post("/partner/connect", handlers.Connect)
			r.Post("/partner/respond", handlers.Respond)

			r.Get("/debts", handlers.ListDebts)
			r.Post("/debts", handlers.CreateDebt)
			r.Patch("/debts/{id}", handlers.ToggleDebt)
			r.Delete("/debts/{id}", handlers.DeleteDebt)

			r.Get("/balance", handlers.Balance)
			r.Get("/dashboard", handlers.GetDashboard)
		})
	})

	return r
}
