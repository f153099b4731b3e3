package handlers

import (
	"log/slog"
	"net/http"

	"github.com/a1k2f3/sellercenter-buybot/internal/api/middleware"
	"github.com/a1k2f3/sellercenter-buybot/internal/errors"
	service "github.com/a1k2f3/sellercenter-buybot/internal/services"
	"github.com/a1k2f3/sellercenter-buybot/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := middleware.SessionFromContext(r.Context())

		orders, err := h.orderService.ListOrders(r.Context(), sess)
		if err != nil {
			logger.Error("Failed to fetch orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := middleware.SessionFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Invalid order id"))
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), sess, id)
		if err != nil {
			logger.Warn("Failed to fetch order", slog.String("orderId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}
