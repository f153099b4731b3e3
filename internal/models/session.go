package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is the single injected session object. It replaces ad hoc reads of
// persisted client state: token, store id, store name and store email live
// together and are cleared together on logout.
type Session struct {
	ID         uuid.UUID `json:"id"`
	Token      string    `json:"-"`
	StoreID    string    `json:"store_id"`
	StoreName  string    `json:"store_name"`
	StoreEmail string    `json:"store_email"`
}

// for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// for login response
type LoginResponse struct {
	Success        bool   `json:"success"`
	Token          string `json:"token,omitempty"`
	ExpiresIn      int    `json:"expires_in,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
	Message        string `json:"message,omitempty"`
	StoreID        string `json:"store_id,omitempty"`
	StoreName      string `json:"store_name,omitempty"`
	StoreEmail     string `json:"store_email,omitempty"`
}

// JWT claims structure

type Claims struct {
	SessionID uuid.UUID `json:"session_id"`
	StoreID   string    `json:"store_id"`
	jwt.RegisteredClaims
}
