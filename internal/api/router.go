/**
 * @description
 * HTTP router for the platform backend. Defines the route table, applies the
 * standard middleware stack (logging, panic recovery, timeout, CORS), and
 * gates the transaction and admin surfaces behind bearer authentication.
 *
 * @notes
 * - Every transaction route requires a verified user token and every admin
 *   route requires the admin role. Earlier deployments shipped an
 *   unauthenticated variant of these routes; that was a deployment bug, not a
 *   supported configuration.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/token"
)

// NewRouter creates the Chi router and registers all platform routes.
func NewRouter(h *Handlers, issuer *token.Issuer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)

	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/countries", h.Countries)
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(issuer))
			r.Get("/profile", h.Profile)
		})
	})

	r.Route("/api/transactions", func(r chi.Router) {
		r.Get("/payment-methods", h.PaymentMethods)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(issuer))
			r.Get("/user", h.UserTransactions)
			r.Post("/send", h.SendMoney)
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(RequireAdmin(issuer))

		r.Get("/users", h.AdminListUsers)
		r.Put("/users/{id}/status", h.AdminUpdateUserStatus)
		r.Put("/users/{id}/balance", h.AdminUpdateUserBalance)
		r.Put("/users/{id}/payment-details", h.AdminUpdateUserPaymentDetails)
		r.Put("/users/{id}/tier", h.AdminUpdateUserTier)

		r.Get("/transactions", h.AdminTransactions)
		r.Put("/transactions/{id}/status", h.AdminUpdateTransactionStatus)
	})

	return r
}
