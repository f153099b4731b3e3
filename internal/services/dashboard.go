package service

import (
	"context"
	"strings"

	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/a1k2f3/sellercenter-buybot/pkg/storeapi"
)

// The menu is unconditional: every signed-in merchant sees the same entries.
var menu = []models.MenuItem{
	{Href: "/dashboard", Label: "Dashboard", Icon: "home"},
	{Href: "/dashboard/products", Label: "Products", Icon: "package"},
	{Href: "/dashboard/orders", Label: "Orders", Icon: "shopping-cart"},
	{Href: "/dashboard/customers", Label: "Customers", Icon: "users"},
	{Href: "/dashboard/marketing", Label: "Marketing", Icon: "tag"},
	{Href: "/dashboard/reports", Label: "Reports", Icon: "bar-chart"},
	{Href: "/dashboard/settings", Label: "Settings", Icon: "settings"},
}

type DashboardService interface {
	Summary(ctx context.Context, sess *models.Session) (*models.DashboardSummary, error)
	Navigation(sess *models.Session) *models.Navigation
	Settings() *models.ContentPage
	Marketing() *models.ContentPage
	Customers() *models.ContentPage
	Reports() *models.ContentPage
}

type dashboardService struct {
	api storeapi.Client
}

func NewDashboardService(api storeapi.Client) DashboardService {
	return &dashboardService{api: api}
}

// Summary is a view over fetched collections; nothing is stored.
func (s *dashboardService) Summary(ctx context.Context, sess *models.Session) (*models.DashboardSummary, error) {

	products, err := s.api.StoreProfile(ctx, sess.Token, sess.StoreID)
	if err != nil {
		return nil, err
	}

	orders, err := s.api.StoreOrders(ctx, sess.Token, sess.StoreID)
	if err != nil {
		return nil, err
	}

	summary := &models.DashboardSummary{
		ProductCount: len(products),
		OrderCount:   len(orders),
	}

	for _, p := range products {
		switch {
		case p.Stock == 0:
			summary.OutOfStock++
		case p.Stock < lowStockThreshold:
			summary.LowStock++
		}
	}

	for _, o := range orders {
		summary.Revenue += o.StoreTotal

		if strings.EqualFold(o.Status, "pending") {
			summary.PendingOrders++
		}
	}

	return summary, nil
}

func (s *dashboardService) Navigation(sess *models.Session) *models.Navigation {
	return &models.Navigation{
		StoreName:  sess.StoreName,
		StoreEmail: sess.StoreEmail,
		Menu:       menu,
	}
}

func (s *dashboardService) Settings() *models.ContentPage {
	return &models.ContentPage{
		Title: "Settings",
		Sections: map[string]string{
			"profile":       "Store profile details are managed by the marketplace.",
			"notifications": "Order notifications are sent to the store email.",
		},
	}
}

func (s *dashboardService) Marketing() *models.ContentPage {
	return &models.ContentPage{
		Title: "Marketing",
		Sections: map[string]string{
			"campaigns": "No campaigns running.",
			"coupons":   "Coupon management is coming to the marketplace dashboard.",
		},
	}
}

func (s *dashboardService) Customers() *models.ContentPage {
	return &models.ContentPage{
		Title: "Customers",
		Sections: map[string]string{
			"directory": "Customer profiles are gathered from completed orders.",
			"insights":  "Repeat-purchase insights are coming to the marketplace dashboard.",
		},
	}
}

func (s *dashboardService) Reports() *models.ContentPage {
	return &models.ContentPage{
		Title: "Reports",
		Sections: map[string]string{
			"revenue": "Revenue over time is charted from store order totals.",
			"exports": "Report exports are coming to the marketplace dashboard.",
		},
	}
}
