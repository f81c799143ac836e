package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/api/http/middleware"
	healthhttp "github.com/MaruthamSatishReddy/easyToBuy/platform/health/http"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// NewRouter собирает роутер сервиса заказов
func NewRouter(handler *Handler, logger *zap.Logger, readiness func() bool) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(observability.HTTPMiddleware("order", logger))
	r.Use(middleware.Session)

	r.Get("/health", healthhttp.Handler(readiness))

	r.Route("/api/order", func(r chi.Router) {
		r.Post("/", handler.PlaceOrder)
		r.Get("/", handler.ListOrders)
		r.Get("/{orderNumber}", handler.GetOrder)
	})

	return r
}
