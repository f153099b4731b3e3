package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/a1k2f3/sellercenter-buybot/internal/api/middleware"
	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	sessionMocks "github.com/a1k2f3/sellercenter-buybot/internal/session/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-secret-key-123456789012345")

func createTestToken(sessionID uuid.UUID, storeID string, duration time.Duration, key []byte, method jwt.SigningMethod) (string, error) {
	claims := &models.Claims{
		SessionID: sessionID,
		StoreID:   storeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(method, claims)

	return token.SignedString(key)
}

func TestAuthenticate(t *testing.T) {
	sessionID := uuid.New()
	storeID := "store123"

	storedSession := &models.Session{
		ID:         sessionID,
		Token:      "backend-token",
		StoreID:    storeID,
		StoreName:  "Test Store",
		StoreEmail: "store@example.com",
	}

	newNextHandler := func(t *testing.T, called *bool) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			*called = true

			sess := middleware.SessionFromContext(r.Context())
			require.NotNil(t, sess, "the session should be in context")
			assert.Equal(t, sessionID, sess.ID)
			assert.Equal(t, "backend-token", sess.Token)

			logger := middleware.LoggerFromContext(r.Context())
			require.NotNil(t, logger)

			w.WriteHeader(http.StatusOK)
		}
	}

	t.Run("Success - Valid Token And Live Session", func(t *testing.T) {
		// Arrange
		mockStore := new(sessionMocks.Store)
		authMiddleware := middleware.NewAuthMiddleware(testJwtKey, mockStore)

		token, err := createTestToken(sessionID, storeID, time.Hour, testJwtKey, jwt.SigningMethodHS256)
		require.NoError(t, err)

		mockStore.On("Get", mock.Anything, sessionID).Return(storedSession, nil).Once()

		called := false
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		// Act
		authMiddleware.Authenticate(newNextHandler(t, &called)).ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, called)
		mockStore.AssertExpectations(t)
	})

	t.Run("Missing Authorization Header", func(t *testing.T) {
		// Arrange
		mockStore := new(sessionMocks.Store)
		authMiddleware := middleware.NewAuthMiddleware(testJwtKey, mockStore)

		called := false
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)

		// Act
		authMiddleware.Authenticate(newNextHandler(t, &called)).ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, called)
		mockStore.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Malformed Authorization Header", func(t *testing.T) {
		// Arrange
		mockStore := new(sessionMocks.Store)
		authMiddleware := middleware.NewAuthMiddleware(testJwtKey, mockStore)

		called := false
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Token abc")

		// Act
		authMiddleware.Authenticate(newNextHandler(t, &called)).ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, called)
	})

	t.Run("Expired Token", func(t *testing.T) {
		// Arrange
		mockStore := new(sessionMocks.Store)
		authMiddleware := middleware.NewAuthMiddleware(testJwtKey, mockStore)

		token, err := createTestToken(sessionID, storeID, -time.Hour, testJwtKey, jwt.SigningMethodHS256)
		require.NoError(t, err)

		called := false
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		// Act
		authMiddleware.Authenticate(newNextHandler(t, &called)).ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, called)
		assert.Contains(t, rr.Body.String(), "SESSION_EXPIRED")
	})

	t.Run("Wrong Signing Key", func(t *testing.T) {
		// Arrange
		mockStore := new(sessionMocks.Store)
		authMiddleware := middleware.NewAuthMiddleware(testJwtKey, mockStore)

		token, err := createTestToken(sessionID, storeID, time.Hour, []byte("some-other-key-9876543210987654"), jwt.SigningMethodHS256)
		require.NoError(t, err)

		called := false
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		// Act
		authMiddleware.Authenticate(newNextHandler(t, &called)).ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, called)
	})

	t.Run("Session Missing From Store - Logged Out Elsewhere", func(t *testing.T) {
		// Arrange
		mockStore := new(sessionMocks.Store)
		authMiddleware := middleware.NewAuthMiddleware(testJwtKey, mockStore)

		token, err := createTestToken(sessionID, storeID, time.Hour, testJwtKey, jwt.SigningMethodHS256)
		require.NoError(t, err)

		mockStore.On("Get", mock.Anything, sessionID).Return(nil, nil).Once()

		called := false
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		// Act
		authMiddleware.Authenticate(newNextHandler(t, &called)).ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, called)
		assert.Contains(t, rr.Body.String(), "SESSION_EXPIRED")
		mockStore.AssertExpectations(t)
	})
}
