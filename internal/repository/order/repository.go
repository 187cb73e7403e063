package order

import (
	"context"
	"time"

	"storefront/internal/domain"
)

// CreateItem is one order line to persist, with the price snapshotted by id.
type CreateItem struct {
	ProductID string
	PriceID   string
	Quantity  int
}

type CreateInput struct {
	OrderID  string
	CartID   string
	Customer domain.CustomerInfo
	Items    []CreateItem
	PaidAt   time.Time
}

type Repository interface {
	// CreateFromCart persists the order, its items and customer info, and
	// deletes the source cart, all in one transaction. Returns
	// domain.ErrNotFound when the cart row is already gone, so the same
	// cart can never be checked out twice.
	CreateFromCart(ctx context.Context, in CreateInput) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}
