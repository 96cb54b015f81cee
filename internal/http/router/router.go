// Package router assembles the gateway's HTTP surface.
package router

import (
	"net/http"

	"github.com/dropDatabas3/authgate/internal/http/controllers"
	"github.com/dropDatabas3/authgate/internal/http/middlewares"
	"github.com/dropDatabas3/authgate/internal/rate"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New builds the router with the full middleware chain and all routes.
// limiter is optional; nil disables rate limiting.
func New(ctrl *controllers.Controllers, limiter rate.Limiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middlewares.RequestID)
	r.Use(middlewares.Recover)
	r.Use(middlewares.Metrics)
	r.Use(middlewares.SecurityHeaders)

	r.Route("/v1", func(r chi.Router) {
		if limiter != nil {
			r.Use(middlewares.RateLimit(limiter))
		}
		r.Post("/auth/token", ctrl.Auth.Token)
		r.Post("/signup", ctrl.Signup.Signup)
		r.Post("/signup/validate", ctrl.Signup.Validate)
		r.Post("/fido2/challenge", ctrl.FIDO2.Challenge)
		r.Post("/fido2/register", ctrl.FIDO2.Register)
		r.Post("/fido2/signin", ctrl.FIDO2.Signin)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
