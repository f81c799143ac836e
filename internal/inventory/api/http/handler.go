package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/service"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// Handler HTTP-хендлеры сервиса остатков
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewHandler создаёт хендлер
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// stockCheckResponse ответ на проверку наличия
type stockCheckResponse struct {
	SkuCode   string `json:"skuCode"`
	IsInStock bool   `json:"isInStock"`
}

// stockItemResponse остаток по артикулу
type stockItemResponse struct {
	SkuCode  string `json:"skuCode"`
	Quantity int64  `json:"quantity"`
}

// setStockRequest тело PUT /api/inventory
type setStockRequest struct {
	SkuCode  string `json:"skuCode"`
	Quantity int64  `json:"quantity"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CheckStock обрабатывает GET /api/inventory?skuCode=...&quantity=...
func (h *Handler) CheckStock(w http.ResponseWriter, r *http.Request) {
	skuCode := r.URL.Query().Get("skuCode")
	if skuCode == "" {
		writeError(w, http.StatusBadRequest, "skuCode query parameter is required")
		return
	}

	quantity := int64(1)
	if q := r.URL.Query().Get("quantity"); q != "" {
		parsed, err := strconv.ParseInt(q, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "quantity must be a positive integer")
			return
		}
		quantity = parsed
	}

	inStock, err := h.svc.IsInStock(r.Context(), skuCode, quantity)
	if err != nil {
		observability.L(r.Context(), h.logger).Error("stock check failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, stockCheckResponse{SkuCode: skuCode, IsInStock: inStock})
}

// ListStock обрабатывает GET /api/inventory/all
func (h *Handler) ListStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListStock(r.Context())
	if err != nil {
		observability.L(r.Context(), h.logger).Error("list stock failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]stockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, stockItemResponse{SkuCode: item.SkuCode, Quantity: item.Quantity})
	}
	writeJSON(w, http.StatusOK, out)
}

// SetStock обрабатывает PUT /api/inventory
func (h *Handler) SetStock(w http.ResponseWriter, r *http.Request) {
	var req setStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SkuCode == "" {
		writeError(w, http.StatusBadRequest, "skuCode must not be empty")
		return
	}

	if err := h.svc.SetStock(r.Context(), req.SkuCode, req.Quantity); err != nil {
		observability.L(r.Context(), h.logger).Error("set stock failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, stockItemResponse{SkuCode: req.SkuCode, Quantity: req.Quantity})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
