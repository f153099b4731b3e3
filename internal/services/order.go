package service

import (
	"context"

	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/a1k2f3/sellercenter-buybot/pkg/storeapi"
)

type OrderService interface {
	ListOrders(ctx context.Context, sess *models.Session) ([]models.Order, error)
	GetOrder(ctx context.Context, sess *models.Session, orderID string) (*models.OrderDetail, error)
}

type orderService struct {
	api storeapi.Client
}

func NewOrderService(api storeapi.Client) OrderService {
	return &orderService{api: api}
}

func (s *orderService) ListOrders(ctx context.Context, sess *models.Session) ([]models.Order, error) {
	return s.api.StoreOrders(ctx, sess.Token, sess.StoreID)
}

func (s *orderService) GetOrder(ctx context.Context, sess *models.Session, orderID string) (*models.OrderDetail, error) {
	return s.api.OrderDetail(ctx, sess.Token, orderID, sess.StoreID)
}
