package models

import "time"

// MediaRef is an already-uploaded asset as the backend reports it. Immutable
// once fetched; the editor only adds or removes new uploads.
type MediaRef struct {
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type ParentCategory struct {
	Name string `json:"name"`
}

type Category struct {
	ID             string          `json:"_id"`
	Name           string          `json:"name"`
	ParentCategory *ParentCategory `json:"parentCategory,omitempty"`
}

type Tag struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Product struct {
	ID             string            `json:"_id"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Price          float64           `json:"price"`
	DiscountPrice  float64           `json:"discountPrice,omitempty"`
	Stock          int               `json:"stock"`
	SKU            string            `json:"sku"`
	Category       *Category         `json:"category,omitempty"`
	Warranty       string            `json:"warranty,omitempty"`
	AgeGroup       *string           `json:"ageGroup,omitempty"`
	Tags           []Tag             `json:"tags,omitempty"`
	Sizes          []string          `json:"sizes,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Images         []MediaRef        `json:"images,omitempty"`
	Videos         []MediaRef        `json:"videos,omitempty"`
	Status         string            `json:"status,omitempty"`
	CreatedAt      time.Time         `json:"createdAt,omitempty"`
	UpdatedAt      time.Time         `json:"updatedAt,omitempty"`
}

// stock display states for the product list
const (
	StockStateOK  = "in_stock"
	StockStateLow = "low"
	StockStateOut = "out_of_stock"
)

// ProductRow is one row of the product list view: first image as thumbnail,
// discount-aware display price, stock state flag.
type ProductRow struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	SKU           string  `json:"sku,omitempty"`
	Price         float64 `json:"price"`
	DiscountPrice float64 `json:"discount_price,omitempty"`
	HasDiscount   bool    `json:"has_discount"`
	Stock         int     `json:"stock"`
	StockState    string  `json:"stock_state"`
	ImageURL      string  `json:"image_url,omitempty"`
}
