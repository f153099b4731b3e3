// Package mocks provides testify mocks for the session store and rate limiter.
package mocks

import (
	"context"

	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Store struct {
	mock.Mock
}

func (m *Store) Save(ctx context.Context, sess *models.Session) error {
	args := m.Called(ctx, sess)

	return args.Error(0)
}

func (m *Store) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *Store) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type RateLimiter struct {
	mock.Mock
}

func (m *RateLimiter) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
