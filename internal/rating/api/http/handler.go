package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/rating/repository"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/rating/service"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// Handler HTTP-хендлеры сервиса оценок
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewHandler создаёт хендлер
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// createRatingRequest тело POST /api/rating
type createRatingRequest struct {
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Stars     int32  `json:"stars"`
	Comment   string `json:"comment"`
}

// updateRatingRequest тело PUT /api/rating/{id}
type updateRatingRequest struct {
	UserID  string `json:"userId"`
	Stars   int32  `json:"stars"`
	Comment string `json:"comment"`
}

// ratingResponse представление оценки в ответе
type ratingResponse struct {
	ID           int64   `json:"id"`
	ProductID    string  `json:"productId"`
	UserID       string  `json:"userId"`
	UserName     string  `json:"userName"`
	Stars        int32   `json:"stars"`
	Comment      string  `json:"comment"`
	HelpfulCount int64   `json:"helpfulCount"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    *string `json:"updatedAt"`
}

// averageRatingResponse агрегат рейтинга товара
type averageRatingResponse struct {
	ProductID string          `json:"productId"`
	Average   float64         `json:"averageRating"`
	Total     int64           `json:"totalRatings"`
	Histogram map[int32]int64 `json:"histogram"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toRatingResponse(r repository.Rating) ratingResponse {
	resp := ratingResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		UserID:       r.UserID,
		UserName:     r.UserName,
		Stars:        r.Stars,
		Comment:      r.Comment,
		HelpfulCount: r.HelpfulCount,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.UpdatedAt != nil {
		updatedAt := r.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// CreateRating обрабатывает POST /api/rating
func (h *Handler) CreateRating(w http.ResponseWriter, r *http.Request) {
	var req createRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rating, err := h.svc.CreateRating(r.Context(), service.CreateRatingRequest{
		ProductID: req.ProductID,
		UserID:    req.UserID,
		UserName:  req.UserName,
		Stars:     req.Stars,
		Comment:   req.Comment,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "create rating failed")
		return
	}

	writeJSON(w, http.StatusCreated, toRatingResponse(rating))
}

// UpdateRating обрабатывает PUT /api/rating/{id}
func (h *Handler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rating, err := h.svc.UpdateRating(r.Context(), service.UpdateRatingRequest{
		RatingID: id,
		UserID:   req.UserID,
		Stars:    req.Stars,
		Comment:  req.Comment,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "update rating failed")
		return
	}

	writeJSON(w, http.StatusOK, toRatingResponse(rating))
}

// DeleteRating обрабатывает DELETE /api/rating/{id}?userId=...
func (h *Handler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	userID := r.URL.Query().Get("userId")

	if err := h.svc.DeleteRating(r.Context(), id, userID); err != nil {
		h.writeServiceError(w, r, err, "delete rating failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetRating обрабатывает GET /api/rating/{id}
func (h *Handler) GetRating(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rating, err := h.svc.GetRating(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "get rating failed")
		return
	}

	writeJSON(w, http.StatusOK, toRatingResponse(rating))
}

// GetProductRatings обрабатывает GET /api/rating/product/{productId}
func (h *Handler) GetProductRatings(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	ratings, err := h.svc.GetProductRatings(r.Context(), productID)
	if err != nil {
		h.writeServiceError(w, r, err, "get product ratings failed")
		return
	}

	writeJSON(w, http.StatusOK, toRatingResponses(ratings))
}

// GetAverageRating обрабатывает GET /api/rating/product/{productId}/average
func (h *Handler) GetAverageRating(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	agg, err := h.svc.GetAverageRating(r.Context(), productID)
	if err != nil {
		h.writeServiceError(w, r, err, "get average rating failed")
		return
	}

	writeJSON(w, http.StatusOK, averageRatingResponse{
		ProductID: agg.ProductID,
		Average:   agg.Average,
		Total:     agg.Total,
		Histogram: agg.Histogram,
	})
}

// GetUserRatings обрабатывает GET /api/rating/user/{userId}
func (h *Handler) GetUserRatings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	ratings, err := h.svc.GetUserRatings(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err, "get user ratings failed")
		return
	}

	writeJSON(w, http.StatusOK, toRatingResponses(ratings))
}

// MarkHelpful обрабатывает POST /api/rating/{id}/helpful
func (h *Handler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rating, err := h.svc.MarkHelpful(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "mark helpful failed")
		return
	}

	writeJSON(w, http.StatusOK, toRatingResponse(rating))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrInvalidStars),
		errors.Is(err, service.ErrInvalidProductID),
		errors.Is(err, service.ErrInvalidUserID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAlreadyRated):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrRatingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		observability.L(r.Context(), h.logger).Error(logMsg, zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toRatingResponses(ratings []repository.Rating) []ratingResponse {
	out := make([]ratingResponse, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, toRatingResponse(r))
	}
	return out
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rating id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
