package handlers

import (
	"log/slog"
	"net/http"

	"github.com/a1k2f3/sellercenter-buybot/internal/api/middleware"
	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	service "github.com/a1k2f3/sellercenter-buybot/internal/services"
	"github.com/a1k2f3/sellercenter-buybot/internal/utils"
	"github.com/a1k2f3/sellercenter-buybot/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type SessionHandler struct {
	sessionService service.SessionService
	validator      *validator.Validate
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, validator: validator.New()}
}

func (h *SessionHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.sessionService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if !result.Success {
			status := http.StatusUnauthorized
			if result.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			logger.Warn("Login rejected", slog.String("email", req.Email))
			response.WriteJson(w, status, result)
			return
		}

		logger.Info("Merchant logged in", slog.String("storeId", result.StoreID))
		response.WriteJson(w, http.StatusOK, result)
	}
}

func (h *SessionHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			response.Success(w, http.StatusOK, map[string]string{"message": "Logged out"})
			return
		}

		if err := h.sessionService.Logout(r.Context(), sess.ID); err != nil {
			logger.Error("Logout failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Merchant logged out", slog.String("storeId", sess.StoreID))
		response.Success(w, http.StatusOK, map[string]string{"message": "Logged out"})
	}
}
