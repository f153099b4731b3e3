package models

// DashboardSummary is pure view math over fetched collections.
type DashboardSummary struct {
	ProductCount  int     `json:"product_count"`
	OrderCount    int     `json:"order_count"`
	PendingOrders int     `json:"pending_orders"`
	LowStock      int     `json:"low_stock"`
	OutOfStock    int     `json:"out_of_stock"`
	Revenue       float64 `json:"revenue"`
}

type MenuItem struct {
	Href  string `json:"href"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type Navigation struct {
	StoreName  string     `json:"store_name"`
	StoreEmail string     `json:"store_email"`
	Menu       []MenuItem `json:"menu"`
}

// ContentPage backs the static dashboard pages (settings, marketing,
// customers, reports).
type ContentPage struct {
	Title    string            `json:"title"`
	Sections map[string]string `json:"sections"`
}
