package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appErrors "github.com/a1k2f3/sellercenter-buybot/internal/errors"
	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	sessionMocks "github.com/a1k2f3/sellercenter-buybot/internal/session/mocks"
	service "github.com/a1k2f3/sellercenter-buybot/internal/services"
	"github.com/a1k2f3/sellercenter-buybot/pkg/storeapi"
	"github.com/a1k2f3/sellercenter-buybot/pkg/storeapi/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testJWTKey = []byte("test-signing-key")

func newSessionService(t *testing.T) (service.SessionService, *mocks.Client, *sessionMocks.Store, *sessionMocks.RateLimiter) {
	t.Helper()

	mockAPI := new(mocks.Client)
	mockStore := new(sessionMocks.Store)
	mockLimiter := new(sessionMocks.RateLimiter)
	sessionService := service.NewSessionService(mockAPI, mockStore, mockLimiter, testJWTKey, 24*time.Hour)

	return sessionService, mockAPI, mockStore, mockLimiter
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	req := &models.LoginRequest{Email: "store@example.com", Password: "password123"}

	t.Run("Success - Issues Gateway Token", func(t *testing.T) {
		// Arrange
		sessionService, mockAPI, mockStore, mockLimiter := newSessionService(t)

		mockLimiter.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(true, 4, 0, nil).Once()
		mockAPI.On("Login", mock.Anything, req.Email, req.Password).Return(&storeapi.LoginResult{
			Token: "backend-token",
			ID:    "store123",
			Name:  "Test Store",
			Email: req.Email,
		}, nil).Once()
		mockStore.On("Save", mock.Anything, mock.MatchedBy(func(sess *models.Session) bool {
			return sess.Token == "backend-token" && sess.StoreID == "store123" && sess.ID != uuid.Nil
		})).Return(nil).Once()

		// Act
		resp, err := sessionService.Login(ctx, req)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "store123", resp.StoreID)
		assert.Equal(t, "Test Store", resp.StoreName)
		assert.Positive(t, resp.ExpiresIn)

		// the issued token carries the session reference
		claims := &models.Claims{}
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (any, error) {
			return testJWTKey, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "store123", claims.StoreID)
		assert.NotEqual(t, uuid.Nil, claims.SessionID)

		mockAPI.AssertExpectations(t)
		mockStore.AssertExpectations(t)
		mockLimiter.AssertExpectations(t)
	})

	t.Run("Rate Limited - No Backend Call", func(t *testing.T) {
		// Arrange
		sessionService, mockAPI, _, mockLimiter := newSessionService(t)

		mockLimiter.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(false, 0, 300, nil).Once()

		// Act
		resp, err := sessionService.Login(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 300, resp.RetryAfter)
		assert.Contains(t, resp.Message, "Too many login attempts")
		mockAPI.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid Credentials - Failure Response, Not Error", func(t *testing.T) {
		// Arrange
		sessionService, mockAPI, mockStore, mockLimiter := newSessionService(t)

		mockLimiter.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(true, 2, 0, nil).Once()
		mockAPI.On("Login", mock.Anything, req.Email, req.Password).
			Return(nil, appErrors.BackendRejectedError("Invalid credentials", 401)).Once()

		// Act
		resp, err := sessionService.Login(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid credentials", resp.Message)
		assert.Equal(t, 2, resp.RemainingTries)
		mockStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Backend Outage - Error Propagates", func(t *testing.T) {
		// Arrange
		sessionService, mockAPI, _, mockLimiter := newSessionService(t)

		mockLimiter.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(true, 4, 0, nil).Once()
		mockAPI.On("Login", mock.Anything, req.Email, req.Password).
			Return(nil, appErrors.BackendUnavailableError("Store service is unreachable")).Once()

		// Act
		resp, err := sessionService.Login(ctx, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBackendDown, appErr.Code)
	})

	t.Run("Rate Limiter Failure - Internal Error", func(t *testing.T) {
		// Arrange
		sessionService, mockAPI, _, mockLimiter := newSessionService(t)

		mockLimiter.On("CheckLoginRateLimit", mock.Anything, req.Email).
			Return(false, 0, 0, errors.New("redis connection error")).Once()

		// Act
		resp, err := sessionService.Login(ctx, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)
		mockAPI.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Session Persistence Failure - Internal Error", func(t *testing.T) {
		// Arrange
		sessionService, mockAPI, mockStore, mockLimiter := newSessionService(t)

		mockLimiter.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(true, 4, 0, nil).Once()
		mockAPI.On("Login", mock.Anything, req.Email, req.Password).Return(&storeapi.LoginResult{
			Token: "backend-token",
			ID:    "store123",
		}, nil).Once()
		mockStore.On("Save", mock.Anything, mock.Anything).Return(errors.New("redis connection error")).Once()

		// Act
		resp, err := sessionService.Login(ctx, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInternal, appErr.Code)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		sessionService, _, mockStore, _ := newSessionService(t)

		mockStore.On("Delete", mock.Anything, sessionID).Return(nil).Once()

		// Act
		err := sessionService.Logout(ctx, sessionID)

		// Assert
		require.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("Failure - Store Error", func(t *testing.T) {
		// Arrange
		sessionService, _, mockStore, _ := newSessionService(t)

		mockStore.On("Delete", mock.Anything, sessionID).Return(errors.New("redis connection error")).Once()

		// Act
		err := sessionService.Logout(ctx, sessionID)

		// Assert
		require.Error(t, err)
	})
}
