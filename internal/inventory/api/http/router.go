package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	healthhttp "github.com/MaruthamSatishReddy/easyToBuy/platform/health/http"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// NewRouter собирает роутер сервиса остатков
func NewRouter(handler *Handler, logger *zap.Logger, readiness func() bool) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(observability.HTTPMiddleware("inventory", logger))

	r.Get("/health", healthhttp.Handler(readiness))

	r.Route("/api/inventory", func(r chi.Router) {
		r.Get("/", handler.CheckStock)
		r.Get("/all", handler.ListStock)
		r.Put("/", handler.SetStock)
	})

	return r
}
