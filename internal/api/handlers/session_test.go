package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a1k2f3/sellercenter-buybot/internal/api/handlers"
	appErrors "github.com/a1k2f3/sellercenter-buybot/internal/errors"
	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/a1k2f3/sellercenter-buybot/internal/services/mocks"
	"github.com/a1k2f3/sellercenter-buybot/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	mockSessionService := new(mocks.SessionService)
	sessionHandler := handlers.NewSessionHandler(mockSessionService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		reqBody := models.LoginRequest{Email: "store@example.com", Password: "password123"}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/session/login", bytes.NewReader(reqBodyBytes), nil)
		req.Header.Set("Content-Type", "application/json")

		mockSessionService.On("Login", mock.Anything, &reqBody).Return(&models.LoginResponse{
			Success:   true,
			Token:     "gateway-token",
			StoreID:   "store123",
			StoreName: "Test Store",
		}, nil).Once()

		// Act
		sessionHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "gateway-token", resp.Token)
		mockSessionService.AssertExpectations(t)
	})

	t.Run("Invalid Input - Bad JSON", func(t *testing.T) {
		// Arrange
		mockSessionService := new(mocks.SessionService)
		sessionHandler := handlers.NewSessionHandler(mockSessionService)
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/session/login", bytes.NewReader([]byte("{invalid")), nil)

		// Act
		sessionHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockSessionService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Input - Missing Email", func(t *testing.T) {
		// Arrange
		mockSessionService := new(mocks.SessionService)
		sessionHandler := handlers.NewSessionHandler(mockSessionService)
		reqBody := models.LoginRequest{Password: "password123"}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/session/login", bytes.NewReader(reqBodyBytes), nil)

		// Act
		sessionHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Email")
		mockSessionService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("Rejected Credentials Return 401 With Feedback", func(t *testing.T) {
		// Arrange
		reqBody := models.LoginRequest{Email: "store@example.com", Password: "wrongpass"}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/session/login", bytes.NewReader(reqBodyBytes), nil)

		mockSessionService.On("Login", mock.Anything, &reqBody).Return(&models.LoginResponse{
			Success:        false,
			Message:        "Invalid credentials",
			RemainingTries: 2,
		}, nil).Once()

		// Act
		sessionHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid credentials", resp.Message)
		assert.Equal(t, 2, resp.RemainingTries)
		mockSessionService.AssertExpectations(t)
	})

	t.Run("Rate Limited Login Returns 429 With Retry Delay", func(t *testing.T) {
		// Arrange
		reqBody := models.LoginRequest{Email: "store@example.com", Password: "password123"}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/session/login", bytes.NewReader(reqBodyBytes), nil)

		mockSessionService.On("Login", mock.Anything, &reqBody).Return(&models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: 300,
		}, nil).Once()

		// Act
		sessionHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, 300, resp.RetryAfter)
		mockSessionService.AssertExpectations(t)
	})

	t.Run("Backend Outage Returns 502", func(t *testing.T) {
		// Arrange
		reqBody := models.LoginRequest{Email: "store@example.com", Password: "password123"}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/session/login", bytes.NewReader(reqBodyBytes), nil)

		mockSessionService.On("Login", mock.Anything, &reqBody).
			Return(nil, appErrors.BackendUnavailableError("Store service is unreachable")).Once()

		// Act
		sessionHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeBackendDown)
		mockSessionService.AssertExpectations(t)
	})
}

func TestLogoutHandler(t *testing.T) {
	mockSessionService := new(mocks.SessionService)
	sessionHandler := handlers.NewSessionHandler(mockSessionService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		sessionID := uuid.New()
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/session/logout", nil, sessionID, nil)

		mockSessionService.On("Logout", mock.Anything, sessionID).Return(nil).Once()

		// Act
		sessionHandler.Logout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Logged out")
		mockSessionService.AssertExpectations(t)
	})

	t.Run("Failure - Store Error", func(t *testing.T) {
		// Arrange
		sessionID := uuid.New()
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/session/logout", nil, sessionID, nil)

		mockSessionService.On("Logout", mock.Anything, sessionID).
			Return(appErrors.InternalError("Failed to clear session")).Once()

		// Act
		sessionHandler.Logout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
