package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a1k2f3/sellercenter-buybot/internal/errors"
	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/a1k2f3/sellercenter-buybot/internal/session"
	"github.com/a1k2f3/sellercenter-buybot/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type sessionContextKey string

const SessionContextKey = sessionContextKey("session")

type AuthMiddleware struct {
	jwtKey []byte
	store  session.Store
}

func NewAuthMiddleware(jwtKey []byte, store session.Store) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey, store: store}
}

// Authenticate parses the gateway JWT and loads the referenced session from
// the store. A missing, expired or unknown session resolves to 401 with
// session-expired semantics so the client returns to login.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		// Token is of format : "Bearer <token>"
		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.SessionExpiredError("Please log in"))
			return
		}

		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		tokenString := tokenParts[1]

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))
				return nil, errors.BadRequestError("unexpected signing method")
			}

			return m.jwtKey, nil
		})

		if err != nil || !token.Valid {
			logger.Warn("JWT parsing failed", slog.Any("error", err))
			response.Error(w, errors.SessionExpiredError("Session expired. Please log in again."))
			return
		}

		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
			logger.Warn("Expired token", slog.String("sessionId", claims.SessionID.String()))
			response.Error(w, errors.SessionExpiredError("Session expired. Please log in again."))
			return
		}

		sess, err := m.store.Get(r.Context(), claims.SessionID)
		if err != nil {
			logger.Error("Failed to load session", slog.Any("error", err))
			response.Error(w, errors.InternalError("Failed to load session"))
			return
		}

		if sess == nil {
			logger.Warn("Session not found", slog.String("sessionId", claims.SessionID.String()))
			response.Error(w, errors.SessionExpiredError("Session expired. Please log in again."))
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, sess)

		requestScopedLogger := logger.With(slog.String("store_id", sess.StoreID))
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// SessionFromContext returns the authenticated session, nil when absent.
func SessionFromContext(ctx context.Context) *models.Session {
	if sess, ok := ctx.Value(SessionContextKey).(*models.Session); ok {
		return sess
	}

	return nil
}
