package handlers

import (
	"log/slog"
	"net/http"

	"github.com/a1k2f3/sellercenter-buybot/internal/api/middleware"
	service "github.com/a1k2f3/sellercenter-buybot/internal/services"
	"github.com/a1k2f3/sellercenter-buybot/internal/utils/response"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := middleware.SessionFromContext(r.Context())

		summary, err := h.dashboardService.Summary(r.Context(), sess)
		if err != nil {
			logger.Error("Failed to build dashboard summary", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *DashboardHandler) Navigation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		response.Success(w, http.StatusOK, h.dashboardService.Navigation(sess))
	}
}

func (h *DashboardHandler) Settings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.dashboardService.Settings())
	}
}

func (h *DashboardHandler) Marketing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.dashboardService.Marketing())
	}
}

func (h *DashboardHandler) Customers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.dashboardService.Customers())
	}
}

func (h *DashboardHandler) Reports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.dashboardService.Reports())
	}
}
