package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	healthhttp "github.com/MaruthamSatishReddy/easyToBuy/platform/health/http"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// NewRouter собирает роутер каталога товаров
func NewRouter(handler *Handler, logger *zap.Logger, readiness func() bool) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(observability.HTTPMiddleware("product", logger))

	r.Get("/health", healthhttp.Handler(readiness))

	r.Route("/api/product", func(r chi.Router) {
		r.Post("/", handler.CreateProduct)
		r.Get("/", handler.ListProducts)
		r.Get("/{id}", handler.GetProduct)
	})

	r.Route("/api/recommendation", func(r chi.Router) {
		r.Get("/user/{userId}", handler.PersonalizedRecommendations)
		r.Get("/similar/{productId}", handler.SimilarProducts)
		r.Get("/trending", handler.TrendingProducts)
	})

	return r
}
