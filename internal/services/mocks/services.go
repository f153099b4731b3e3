// Package mocks provides testify mocks for the gateway services.
package mocks

import (
	"context"

	"github.com/a1k2f3/sellercenter-buybot/internal/draft"
	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	service "github.com/a1k2f3/sellercenter-buybot/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type SessionService struct {
	mock.Mock
}

func (m *SessionService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *SessionService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)

	return args.Error(0)
}

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) ListProducts(ctx context.Context, sess *models.Session) ([]models.ProductRow, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.ProductRow), args.Error(1)
}

func (m *CatalogService) GetProduct(ctx context.Context, sess *models.Session, productID string) (*models.Product, error) {
	args := m.Called(ctx, sess, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *CatalogService) DeleteProduct(ctx context.Context, sess *models.Session, productID string) error {
	args := m.Called(ctx, sess, productID)

	return args.Error(0)
}

func (m *CatalogService) Categories(ctx context.Context, sess *models.Session) ([]models.Category, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *CatalogService) Tags(ctx context.Context, sess *models.Session) ([]models.Tag, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Tag), args.Error(1)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) ListOrders(ctx context.Context, sess *models.Session) ([]models.Order, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, sess *models.Session, orderID string) (*models.OrderDetail, error) {
	args := m.Called(ctx, sess, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OrderDetail), args.Error(1)
}

type DashboardService struct {
	mock.Mock
}

func (m *DashboardService) Summary(ctx context.Context, sess *models.Session) (*models.DashboardSummary, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.DashboardSummary), args.Error(1)
}

func (m *DashboardService) Navigation(sess *models.Session) *models.Navigation {
	args := m.Called(sess)

	return args.Get(0).(*models.Navigation)
}

func (m *DashboardService) Settings() *models.ContentPage {
	args := m.Called()

	return args.Get(0).(*models.ContentPage)
}

func (m *DashboardService) Marketing() *models.ContentPage {
	args := m.Called()

	return args.Get(0).(*models.ContentPage)
}

func (m *DashboardService) Customers() *models.ContentPage {
	args := m.Called()

	return args.Get(0).(*models.ContentPage)
}

func (m *DashboardService) Reports() *models.ContentPage {
	args := m.Called()

	return args.Get(0).(*models.ContentPage)
}

type DraftService struct {
	mock.Mock
}

func (m *DraftService) Open(ctx context.Context, sess *models.Session, productID string) (*service.DraftView, error) {
	args := m.Called(ctx, sess, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.DraftView), args.Error(1)
}

func (m *DraftService) Get(ctx context.Context, sess *models.Session, draftID uuid.UUID, withValidation bool) (*service.DraftView, error) {
	args := m.Called(ctx, sess, draftID, withValidation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.DraftView), args.Error(1)
}

func (m *DraftService) SetFields(ctx context.Context, sess *models.Session, draftID uuid.UUID, fields draft.Fields) (*service.DraftView, error) {
	args := m.Called(ctx, sess, draftID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.DraftView), args.Error(1)
}

func (m *DraftService) ToggleTag(ctx context.Context, sess *models.Session, draftID uuid.UUID, tagID string) (*service.DraftView, error) {
	args := m.Called(ctx, sess, draftID, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.DraftView), args.Error(1)
}

func (m *DraftService) ToggleSize(ctx context.Context, sess *models.Session, draftID uuid.UUID, size string) (*service.DraftView, error) {
	args := m.Called(ctx, sess, draftID, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.DraftView), args.Error(1)
}

func (m *DraftService) AppendSpecRow(ctx context.Context, sess *models.Session, draftID uuid.UUID) (*service.DraftView, error) {
	args := m.Called(ctx, sess, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.DraftView), args.Error(1)
}

func (m *DraftService) SetSpecRow(ctx context.Context, sess *models.Session, draftID uuid.UUID, index int, row draft.SpecRow) (*service.DraftView, error) {
	args := m.Called(ctx, sess, draftID, index, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.DraftView), args.Error(1)
}

func (m *DraftService) RemoveSpecRow(ctx context.Context, sess *models.Session, draftID uuid.UUID, index int) (*service.DraftView, error) {
	args := m.Called(ctx, sess, draftID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.DraftView), args.Error(1)
}

func (m *DraftService) Stage(ctx context.Context, sess *models.Session, draftID uuid.UUID, batch []draft.Incoming) (*service.DraftView, error) {
	args := m.Called(ctx, sess, draftID, batch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.DraftView), args.Error(1)
}

func (m *DraftService) MediaContent(ctx context.Context, sess *models.Session, draftID, mediaID uuid.UUID) (*draft.StagedFile, error) {
	args := m.Called(ctx, sess, draftID, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*draft.StagedFile), args.Error(1)
}

func (m *DraftService) Unstage(ctx context.Context, sess *models.Session, draftID, mediaID uuid.UUID) (*service.DraftView, error) {
	args := m.Called(ctx, sess, draftID, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.DraftView), args.Error(1)
}

func (m *DraftService) Submit(ctx context.Context, sess *models.Session, draftID uuid.UUID, onSave func(*models.Product)) (*service.SubmitResult, error) {
	args := m.Called(ctx, sess, draftID, onSave)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.SubmitResult), args.Error(1)
}

func (m *DraftService) Discard(ctx context.Context, sess *models.Session, draftID uuid.UUID) error {
	args := m.Called(ctx, sess, draftID)

	return args.Error(0)
}
