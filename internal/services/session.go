package service

import (
	"context"
	"time"

	"github.com/a1k2f3/sellercenter-buybot/internal/errors"
	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/a1k2f3/sellercenter-buybot/internal/session"
	"github.com/a1k2f3/sellercenter-buybot/pkg/storeapi"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type SessionService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

type sessionService struct {
	api     storeapi.Client
	store   session.Store
	limiter session.RateLimiter
	jwtKey  []byte
	ttl     time.Duration
}

func NewSessionService(api storeapi.Client, store session.Store, limiter session.RateLimiter, jwtKey []byte, ttl time.Duration) SessionService {
	return &sessionService{
		api:     api,
		store:   store,
		limiter: limiter,
		jwtKey:  jwtKey,
		ttl:     ttl,
	}
}

// Login proxies the credentials to the backend; the gateway never verifies
// passwords itself. On success the backend token and store identity are saved
// as one session and a gateway JWT referencing it is issued.
func (s *sessionService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	allowed, remaining, retryAfter, err := s.limiter.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, errors.InternalError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	result, err := s.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		// a backend rejection below 500 is a credential problem, not an outage
		if appErr, ok := errors.IsAppError(err); ok && appErr.StatusCode < 500 {
			message := appErr.Message
			if message == "" {
				message = "Invalid email or password"
			}

			return &models.LoginResponse{
				Success:        false,
				Message:        message,
				RemainingTries: remaining,
			}, nil
		}

		return nil, err
	}

	sess := &models.Session{
		ID:         uuid.New(),
		Token:      result.Token,
		StoreID:    result.ID,
		StoreName:  result.Name,
		StoreEmail: result.Email,
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, errors.InternalError("Failed to persist session").WithError(err)
	}

	claims := &models.Claims{
		SessionID: sess.ID,
		StoreID:   sess.StoreID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:    true,
		Token:      tokenString,
		ExpiresIn:  int(time.Until(claims.ExpiresAt.Time).Seconds()),
		StoreID:    sess.StoreID,
		StoreName:  sess.StoreName,
		StoreEmail: sess.StoreEmail,
	}, nil
}

// Logout clears the whole session at once.
func (s *sessionService) Logout(ctx context.Context, sessionID uuid.UUID) error {

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return errors.InternalError("Failed to clear session").WithError(err)
	}

	return nil
}
