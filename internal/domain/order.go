package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// Order is immutable after creation except for status transitions, which
// belong to an external payment/fulfillment collaborator. Checkout creates
// orders directly in PAID.
type Order struct {
	ID           string       `json:"id"`
	Status       OrderStatus  `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	PaidAt       *time.Time   `json:"paidAt,omitempty"`
	CompletedAt  *time.Time   `json:"completedAt,omitempty"`
	CancelReason string       `json:"cancelReason,omitempty"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
	Items        []OrderItem  `json:"items,omitempty"`
}

// OrderItem snapshots the price by id at order time, never the live product
// price.
type OrderItem struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	ProductID   string `json:"productId"`
	PriceID     string `json:"-"`
	PriceCents  int64  `json:"priceCents"`
	Quantity    int    `json:"quantity"`
	ProductName string `json:"productName"`
	ImageURL    string `json:"imageUrl,omitempty"`
}
