package domain

import "time"

// Cart is the server-persisted shopping cart. Its id doubles as the value of
// the client-held cart cookie. A cart with zero items never persists: the
// repository deletes the row when its last line is removed.
type Cart struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Items     []CartItem `json:"items,omitempty"`
}

// CartItem is one (cart, product) line. At most one line per product per
// cart; quantity is always >= 1.
type CartItem struct {
	CartID      string    `json:"cartId"`
	ProductID   string    `json:"productId"`
	Quantity    int       `json:"quantity"`
	ProductName string    `json:"productName"`
	ImageURL    string    `json:"imageUrl"`
	PriceCents  int64     `json:"priceCents"`
	CreatedAt   time.Time `json:"createdAt"`
}
