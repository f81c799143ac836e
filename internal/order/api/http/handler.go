package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/repository"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/service"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// Handler HTTP-хендлеры сервиса заказов
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewHandler создаёт хендлер
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// placeOrderRequest тело POST /api/order
type placeOrderRequest struct {
	SkuCode  string  `json:"skuCode"`
	Price    float64 `json:"price"`
	Quantity int32   `json:"quantity"`
	Email    string  `json:"email"`
}

// orderResponse представление заказа в ответе
type orderResponse struct {
	ID          int64   `json:"id"`
	OrderNumber string  `json:"orderNumber"`
	SkuCode     string  `json:"skuCode"`
	Price       float64 `json:"price"`
	Quantity    int32   `json:"quantity"`
	Email       string  `json:"email"`
	CreatedAt   string  `json:"createdAt"`
}

// errorResponse тело ошибки
type errorResponse struct {
	Error string `json:"error"`
}

func toOrderResponse(o repository.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		SkuCode:     o.SkuCode,
		Price:       o.Price,
		Quantity:    o.Quantity,
		Email:       o.Email,
		CreatedAt:   o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// PlaceOrder обрабатывает POST /api/order
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.svc.PlaceOrder(r.Context(), service.PlaceOrderRequest{
		SkuCode:  req.SkuCode,
		Price:    req.Price,
		Quantity: req.Quantity,
		Email:    req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSkuCode),
			errors.Is(err, service.ErrInvalidQuantity),
			errors.Is(err, service.ErrInvalidPrice),
			errors.Is(err, service.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			observability.L(r.Context(), h.logger).Error("place order failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// ListOrders обрабатывает GET /api/order
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		observability.L(r.Context(), h.logger).Error("list orders failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetOrder обрабатывает GET /api/order/{orderNumber}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")

	order, err := h.svc.GetOrder(r.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		observability.L(r.Context(), h.logger).Error("get order failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
