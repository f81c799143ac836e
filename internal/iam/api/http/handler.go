package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/iam/service"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// headerSessionID имя заголовка с идентификатором сессии
const headerSessionID = "x-session-id"

// Handler HTTP-хендлеры сервиса аутентификации
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewHandler создаёт хендлер
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// credentialsRequest тело register/login
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerResponse ответ на регистрацию
type registerResponse struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

// loginResponse ответ на вход
type loginResponse struct {
	SessionID string `json:"sessionId"`
	ExpiresAt string `json:"expiresAt"`
}

// validateResponse ответ на проверку сессии
type validateResponse struct {
	UserID int64 `json:"userId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Register обрабатывает POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			observability.L(r.Context(), h.logger).Error("register failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{UserID: user.ID, Email: user.Email})
}

// Login обрабатывает POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		observability.L(r.Context(), h.logger).Error("login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	})
}

// Logout обрабатывает POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(headerSessionID)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "x-session-id header is required")
		return
	}

	if err := h.svc.Logout(r.Context(), sessionID); err != nil {
		observability.L(r.Context(), h.logger).Error("logout failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Validate обрабатывает GET /api/auth/validate
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(headerSessionID)

	userID, err := h.svc.Validate(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		observability.L(r.Context(), h.logger).Error("validate failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{UserID: userID})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
