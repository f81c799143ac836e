package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/product/repository"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/product/service"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// Handler HTTP-хендлеры каталога товаров
type Handler struct {
	svc            *service.Service
	recommendation *service.RecommendationService
	logger         *zap.Logger
}

// NewHandler создаёт хендлер
func NewHandler(svc *service.Service, recommendation *service.RecommendationService, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, recommendation: recommendation, logger: logger}
}

// createProductRequest тело POST /api/product
type createProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SkuCode     string  `json:"skuCode"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
}

// productResponse представление товара в ответе
type productResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	SkuCode       string  `json:"skuCode"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	Price         float64 `json:"price"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toProductResponse(p repository.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		SkuCode:       p.SkuCode,
		Category:      p.Category,
		Brand:         p.Brand,
		Price:         p.Price,
		AverageRating: p.AverageRating,
		TotalRatings:  p.TotalRatings,
	}
}

// CreateProduct обрабатывает POST /api/product
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), service.CreateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		SkuCode:     req.SkuCode,
		Category:    req.Category,
		Brand:       req.Brand,
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidName) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		observability.L(r.Context(), h.logger).Error("create product failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

// GetProduct обрабатывает GET /api/product/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		observability.L(r.Context(), h.logger).Error("get product failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// ListProducts обрабатывает GET /api/product
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		observability.L(r.Context(), h.logger).Error("list products failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toProductResponses(products))
}

// PersonalizedRecommendations обрабатывает GET /api/recommendation/user/{userId}?limit=...
func (h *Handler) PersonalizedRecommendations(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	userID := chi.URLParam(r, "userId")

	products, err := h.recommendation.GetPersonalizedRecommendations(r.Context(), userID, limit)
	if err != nil {
		observability.L(r.Context(), h.logger).Error("personalized recommendations failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toProductResponses(products))
}

// SimilarProducts обрабатывает GET /api/recommendation/similar/{productId}?limit=...
func (h *Handler) SimilarProducts(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "productId")

	products, err := h.recommendation.GetSimilarProducts(r.Context(), productID, limit)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		observability.L(r.Context(), h.logger).Error("similar products failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toProductResponses(products))
}

// TrendingProducts обрабатывает GET /api/recommendation/trending?limit=...
func (h *Handler) TrendingProducts(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	products, err := h.recommendation.GetTrendingProducts(r.Context(), limit)
	if err != nil {
		observability.L(r.Context(), h.logger).Error("trending products failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	q := r.URL.Query().Get("limit")
	if q == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(q)
	if err != nil || limit <= 0 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return limit, true
}

func toProductResponses(products []repository.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
