package handlers

import (
	"log/slog"
	"net/http"

	"github.com/a1k2f3/sellercenter-buybot/internal/api/middleware"
	"github.com/a1k2f3/sellercenter-buybot/internal/errors"
	service "github.com/a1k2f3/sellercenter-buybot/internal/services"
	"github.com/a1k2f3/sellercenter-buybot/internal/utils/response"
)

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := middleware.SessionFromContext(r.Context())

		rows, err := h.catalogService.ListProducts(r.Context(), sess)
		if err != nil {
			logger.Error("Failed to fetch products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, rows)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := middleware.SessionFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Invalid product id"))
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), sess, id)
		if err != nil {
			logger.Warn("Failed to fetch product", slog.String("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := middleware.SessionFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Invalid product id"))
			return
		}

		if err := h.catalogService.DeleteProduct(r.Context(), sess, id); err != nil {
			logger.Error("Failed to delete product", slog.String("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted", slog.String("productId", id))
		response.Success(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
	}
}

func (h *ProductHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := middleware.SessionFromContext(r.Context())

		categories, err := h.catalogService.Categories(r.Context(), sess)
		if err != nil {
			logger.Error("Failed to fetch categories", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

func (h *ProductHandler) ListTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := middleware.SessionFromContext(r.Context())

		tags, err := h.catalogService.Tags(r.Context(), sess)
		if err != nil {
			logger.Error("Failed to fetch tags", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, tags)
	}
}
