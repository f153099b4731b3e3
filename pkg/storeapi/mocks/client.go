// Package mocks provides a testify mock for the backend client.
package mocks

import (
	"context"

	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/a1k2f3/sellercenter-buybot/pkg/storeapi"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (m *Client) Login(ctx context.Context, email, password string) (*storeapi.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*storeapi.LoginResult), args.Error(1)
}

func (m *Client) StoreProfile(ctx context.Context, token, storeID string) ([]models.Product, error) {
	args := m.Called(ctx, token, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *Client) GetProduct(ctx context.Context, token, productID string) (*models.Product, error) {
	args := m.Called(ctx, token, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *Client) CreateProduct(ctx context.Context, token string, payload *storeapi.ProductPayload) (*models.Product, error) {
	args := m.Called(ctx, token, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *Client) UpdateProduct(ctx context.Context, token, productID string, payload *storeapi.ProductPayload) (*models.Product, error) {
	args := m.Called(ctx, token, productID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	args := m.Called(ctx, token, productID)

	return args.Error(0)
}

func (m *Client) Categories(ctx context.Context, token string) ([]models.Category, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *Client) Tags(ctx context.Context, token string) ([]models.Tag, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *Client) StoreOrders(ctx context.Context, token, storeID string) ([]models.Order, error) {
	args := m.Called(ctx, token, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *Client) OrderDetail(ctx context.Context, token, orderID, storeID string) (*models.OrderDetail, error) {
	args := m.Called(ctx, token, orderID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OrderDetail), args.Error(1)
}
