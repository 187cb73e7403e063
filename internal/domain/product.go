package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl"`
	PriceID     string    `json:"-"`
	PriceCents  int64     `json:"priceCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Price is an immutable amount row. Products point at their current price;
// order items keep pointing at the price that was current when the order
// was placed, so later catalog price changes never touch old orders.
type Price struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}
