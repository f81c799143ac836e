package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	healthhttp "github.com/MaruthamSatishReddy/easyToBuy/platform/health/http"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// NewRouter собирает роутер сервиса оценок
func NewRouter(handler *Handler, logger *zap.Logger, readiness func() bool) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(observability.HTTPMiddleware("rating", logger))

	r.Get("/health", healthhttp.Handler(readiness))

	r.Route("/api/rating", func(r chi.Router) {
		r.Post("/", handler.CreateRating)
		r.Get("/{id}", handler.GetRating)
		r.Put("/{id}", handler.UpdateRating)
		r.Delete("/{id}", handler.DeleteRating)
		r.Post("/{id}/helpful", handler.MarkHelpful)
		r.Get("/product/{productId}", handler.GetProductRatings)
		r.Get("/product/{productId}/average", handler.GetAverageRating)
		r.Get("/user/{userId}", handler.GetUserRatings)
	})

	return r
}
