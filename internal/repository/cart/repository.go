package cart

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// GetByID loads the cart aggregate with its lines joined to current
	// product and price data. Returns domain.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	// CreateWithItem inserts a new cart holding a single line. Returns
	// domain.ErrConflict when a cart with the same id already exists, which
	// happens when two first-time writers race on the same token.
	CreateWithItem(ctx context.Context, cartID, productID string, quantity int) error
	// AddItem increments the line quantity by the given amount, inserting
	// the line if absent. Returns domain.ErrNotFound when the cart row is
	// gone.
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	// SetItemQuantity sets the line quantity, inserting the line if absent.
	// Returns domain.ErrNotFound when the cart row is gone.
	SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error
	// RemoveItem deletes the line if present. When the removed line was the
	// cart's last one the cart row is deleted in the same transaction.
	RemoveItem(ctx context.Context, cartID, productID string) (removed, cartDeleted bool, err error)
}
