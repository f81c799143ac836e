package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	healthhttp "github.com/MaruthamSatishReddy/easyToBuy/platform/health/http"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// NewRouter собирает роутер сервиса аутентификации
func NewRouter(handler *Handler, logger *zap.Logger, readiness func() bool) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(observability.HTTPMiddleware("iam", logger))

	r.Get("/health", healthhttp.Handler(readiness))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/logout", handler.Logout)
		r.Get("/validate", handler.Validate)
	})

	return r
}
