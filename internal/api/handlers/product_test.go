package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a1k2f3/sellercenter-buybot/internal/api/handlers"
	appErrors "github.com/a1k2f3/sellercenter-buybot/internal/errors"
	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/a1k2f3/sellercenter-buybot/internal/services/mocks"
	"github.com/a1k2f3/sellercenter-buybot/internal/testutils"
	"github.com/a1k2f3/sellercenter-buybot/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListProductsHandler(t *testing.T) {
	mockCatalogService := new(mocks.CatalogService)
	productHandler := handlers.NewProductHandler(mockCatalogService)
	sessionID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/products", nil, sessionID, nil)

		rows := []models.ProductRow{
			{ID: "prod1", Title: "Widget", StockState: models.StockStateOK},
		}
		mockCatalogService.On("ListProducts", mock.Anything, mock.Anything).Return(rows, nil).Once()

		// Act
		productHandler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		mockCatalogService.AssertExpectations(t)
	})

	t.Run("Expired Session Returns 401", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/products", nil, sessionID, nil)

		mockCatalogService.On("ListProducts", mock.Anything, mock.Anything).
			Return(nil, appErrors.SessionExpiredError("Session expired")).Once()

		// Act
		productHandler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeSessionExpired)
	})
}

func TestGetProductHandler(t *testing.T) {
	mockCatalogService := new(mocks.CatalogService)
	productHandler := handlers.NewProductHandler(mockCatalogService)
	sessionID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/products/prod1", nil, sessionID, map[string]string{"id": "prod1"})

		product := &models.Product{ID: "prod1", Name: "Widget"}
		mockCatalogService.On("GetProduct", mock.Anything, mock.Anything, "prod1").Return(product, nil).Once()

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Widget")
		mockCatalogService.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/products/missing", nil, sessionID, map[string]string{"id": "missing"})

		mockCatalogService.On("GetProduct", mock.Anything, mock.Anything, "missing").
			Return(nil, appErrors.NotFoundError("Product not found")).Once()

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteProductHandler(t *testing.T) {
	mockCatalogService := new(mocks.CatalogService)
	productHandler := handlers.NewProductHandler(mockCatalogService)
	sessionID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/products/prod1", nil, sessionID, map[string]string{"id": "prod1"})

		mockCatalogService.On("DeleteProduct", mock.Anything, mock.Anything, "prod1").Return(nil).Once()

		// Act
		productHandler.DeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Product deleted successfully")
		mockCatalogService.AssertExpectations(t)
	})

	t.Run("Forbidden For Another Store's Product", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/products/elsewhere", nil, sessionID, map[string]string{"id": "elsewhere"})

		mockCatalogService.On("DeleteProduct", mock.Anything, mock.Anything, "elsewhere").
			Return(appErrors.ForbiddenError("You don't have permission to perform this action.")).Once()

		// Act
		productHandler.DeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestOrderHandlers(t *testing.T) {
	mockOrderService := new(mocks.OrderService)
	orderHandler := handlers.NewOrderHandler(mockOrderService)
	sessionID := uuid.New()

	t.Run("List Orders", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders", nil, sessionID, nil)

		orders := []models.Order{{ID: "o1", Status: "pending", StoreTotal: 150}}
		mockOrderService.On("ListOrders", mock.Anything, mock.Anything).Return(orders, nil).Once()

		// Act
		orderHandler.ListOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockOrderService.AssertExpectations(t)
	})

	t.Run("Get Order Detail", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/o1", nil, sessionID, map[string]string{"id": "o1"})

		order := &models.OrderDetail{ID: "o1", Status: "pending"}
		mockOrderService.On("GetOrder", mock.Anything, mock.Anything, "o1").Return(order, nil).Once()

		// Act
		orderHandler.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockOrderService.AssertExpectations(t)
	})
}

func TestDashboardHandlers(t *testing.T) {
	mockDashboardService := new(mocks.DashboardService)
	dashboardHandler := handlers.NewDashboardHandler(mockDashboardService)
	sessionID := uuid.New()

	t.Run("Summary", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/dashboard/summary", nil, sessionID, nil)

		summary := &models.DashboardSummary{ProductCount: 3, OrderCount: 2, Revenue: 400}
		mockDashboardService.On("Summary", mock.Anything, mock.Anything).Return(summary, nil).Once()

		// Act
		dashboardHandler.Summary().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockDashboardService.AssertExpectations(t)
	})

	t.Run("Navigation Reflects The Session", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/navigation", nil, sessionID, nil)

		nav := &models.Navigation{StoreName: "Test Store", Menu: []models.MenuItem{{Href: "/dashboard", Label: "Dashboard"}}}
		mockDashboardService.On("Navigation", mock.Anything).Return(nav).Once()

		// Act
		dashboardHandler.Navigation().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Test Store")
		mockDashboardService.AssertExpectations(t)
	})

	t.Run("Customers Page", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/dashboard/customers", nil, sessionID, nil)

		page := &models.ContentPage{Title: "Customers", Sections: map[string]string{"directory": "Customer profiles are gathered from completed orders."}}
		mockDashboardService.On("Customers").Return(page).Once()

		// Act
		dashboardHandler.Customers().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Customers")
		mockDashboardService.AssertExpectations(t)
	})

	t.Run("Reports Page", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/dashboard/reports", nil, sessionID, nil)

		page := &models.ContentPage{Title: "Reports", Sections: map[string]string{"revenue": "Revenue over time is charted from store order totals."}}
		mockDashboardService.On("Reports").Return(page).Once()

		// Act
		dashboardHandler.Reports().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Reports")
		mockDashboardService.AssertExpectations(t)
	})
}
