package models

import "time"

type OrderCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

type OrderItem struct {
	ID       string   `json:"_id"`
	Product  *Product `json:"product,omitempty"`
	Quantity int      `json:"quantity"`
	Size     string   `json:"size,omitempty"`
	Price    float64  `json:"price"`
	Total    float64  `json:"total"`
}

// Order is the list-view shape returned by the store-orders endpoint.
type Order struct {
	ID            string        `json:"_id"`
	Customer      OrderCustomer `json:"customer"`
	Items         []OrderItem   `json:"items"`
	StoreTotal    float64       `json:"storeTotal"`
	Status        string        `json:"status"`
	PaymentStatus string        `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type OrderDetail struct {
	ID                string          `json:"_id"`
	OrderID           string          `json:"orderId"`
	Customer          OrderCustomer   `json:"customer"`
	ShippingAddress   ShippingAddress `json:"shippingAddress"`
	Items             []OrderItem     `json:"items"`
	StoreTotal        float64         `json:"storeTotal"`
	OverallOrderTotal float64         `json:"overallOrderTotal"`
	Status            string          `json:"status"`
	PaymentMethod     string          `json:"paymentMethod"`
	PaymentStatus     string          `json:"paymentStatus"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
