package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/visago/visago-backend/internal/transport/middleware"
)

// tokenValidator verifies a bearer token and returns the subject and role.
type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// RouterDeps bundles everything the HTTP router needs.
type RouterDeps struct {
	Applications *ApplicationHandler
	Payments     *PaymentHandler
	Admin        *AdminHandler
	Health       *HealthHandler

	Tokens      tokenValidator
	Middlewares []middleware.Middleware // outermost chain: request id, logging, recovery, CORS, rate limit, metrics
}

// NewRouter assembles the full HTTP surface: probes, metrics and the
// versioned API. Authentication runs on the API subtree only, so probes stay
// reachable without a token.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	for _, mw := range deps.Middlewares {
		r.Use(mw)
	}

	r.Get("/live", deps.Health.Live)
	r.Get("/ready", deps.Health.Ready)
	r.Get("/health", deps.Health.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Tokens))

		r.Route("/applications", func(r chi.Router) {
			r.Post("/draft", deps.Applications.SaveDraft)
			r.Get("/{id}", deps.Applications.Get)
			r.Post("/{id}/submit", deps.Applications.Submit)
			r.Get("/{id}/documents", deps.Applications.ListDocuments)
		})

		r.Post("/bookings", deps.Payments.CreateBooking)

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", deps.Payments.InitiatePayment)
			r.Post("/resolve", deps.Payments.ResolvePayment)
			r.Get("/status/{orderID}", deps.Payments.GetStatus)
		})

		r.Route("/credits", func(r chi.Router) {
			r.Get("/", deps.Payments.ListCredits)
			r.Post("/redeem", deps.Payments.RedeemCredit)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/applications", deps.Admin.ListApplications)
			r.Get("/applications/{id}", deps.Admin.GetApplication)
			r.Patch("/applications/{id}/status", deps.Admin.UpdateApplicationStatus)
			r.Get("/bookings", deps.Admin.ListBookings)
			r.Get("/bookings/{id}", deps.Admin.GetBooking)
			r.Patch("/travelers/{id}/status", deps.Admin.UpdateTravelerStatus)
			r.Get("/payments", deps.Admin.ListPayments)
			r.Get("/audit", deps.Admin.ListAuditLog)
		})
	})

	return r
}
