package service

import (
	"context"

	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/a1k2f3/sellercenter-buybot/pkg/storeapi"
)

// below this the list view flags a product as running low
const lowStockThreshold = 50

type CatalogService interface {
	ListProducts(ctx context.Context, sess *models.Session) ([]models.ProductRow, error)
	GetProduct(ctx context.Context, sess *models.Session, productID string) (*models.Product, error)
	DeleteProduct(ctx context.Context, sess *models.Session, productID string) error
	Categories(ctx context.Context, sess *models.Session) ([]models.Category, error)
	Tags(ctx context.Context, sess *models.Session) ([]models.Tag, error)
}

type catalogService struct {
	api storeapi.Client
}

func NewCatalogService(api storeapi.Client) CatalogService {
	return &catalogService{api: api}
}

// ListProducts maps the store profile into list rows: first image as the
// thumbnail, discount-aware display price, stock state flag.
func (s *catalogService) ListProducts(ctx context.Context, sess *models.Session) ([]models.ProductRow, error) {

	products, err := s.api.StoreProfile(ctx, sess.Token, sess.StoreID)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ProductRow, 0, len(products))

	for _, p := range products {
		rows = append(rows, toRow(p))
	}

	return rows, nil
}

func toRow(p models.Product) models.ProductRow {

	row := models.ProductRow{
		ID:            p.ID,
		Title:         p.Name,
		SKU:           p.SKU,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		HasDiscount:   p.DiscountPrice > 0 && p.DiscountPrice < p.Price,
		Stock:         p.Stock,
		StockState:    stockState(p.Stock),
	}

	if len(p.Images) > 0 {
		row.ImageURL = p.Images[0].URL
	}

	return row
}

func stockState(stock int) string {
	switch {
	case stock == 0:
		return models.StockStateOut
	case stock < lowStockThreshold:
		return models.StockStateLow
	default:
		return models.StockStateOK
	}
}

func (s *catalogService) GetProduct(ctx context.Context, sess *models.Session, productID string) (*models.Product, error) {
	return s.api.GetProduct(ctx, sess.Token, productID)
}

func (s *catalogService) DeleteProduct(ctx context.Context, sess *models.Session, productID string) error {
	return s.api.DeleteProduct(ctx, sess.Token, productID)
}

func (s *catalogService) Categories(ctx context.Context, sess *models.Session) ([]models.Category, error) {
	return s.api.Categories(ctx, sess.Token)
}

func (s *catalogService) Tags(ctx context.Context, sess *models.Session) ([]models.Tag, error) {
	return s.api.Tags(ctx, sess.Token)
}
