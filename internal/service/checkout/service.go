package checkout

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"

	"github.com/google/uuid"
)

type Service struct {
	carts    cartResolver
	products productRepo
	orders   orderRepo

	newID func() string
	now   func() time.Time
}

type cartResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Cart, error)
}

type productRepo interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type orderRepo interface {
	CreateFromCart(ctx context.Context, in orderrepo.CreateInput) error
}

func New(carts cartResolver, products productRepo, orders orderRepo) *Service {
	return &Service{
		carts:    carts,
		products: products,
		orders:   orders,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Finalize turns the token's cart into a PAID order and deletes the cart.
// An unresolvable token returns ("", nil): checkout against an empty cart is
// a no-op, not a fault. Payment confirmation happens upstream; this only
// records the already-paid order.
func (s *Service) Finalize(ctx context.Context, token string, info domain.CustomerInfo) (string, error) {
	if err := ValidateCustomerInfo(info); err != nil {
		return "", err
	}

	cart, err := s.carts.Resolve(ctx, token)
	if err != nil {
		return "", err
	}
	if cart == nil || len(cart.Items) == 0 {
		return "", nil
	}

	ids := make([]string, len(cart.Items))
	for i, item := range cart.Items {
		ids[i] = item.ProductID
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return "", err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Snapshot the price id active right now; no partial orders when a
	// cart line points at a product that left the catalog.
	items := make([]orderrepo.CreateItem, len(cart.Items))
	for i, line := range cart.Items {
		p, ok := byID[line.ProductID]
		if !ok {
			return "", domain.ErrProductNotFound
		}
		items[i] = orderrepo.CreateItem{
			ProductID: p.ID,
			PriceID:   p.PriceID,
			Quantity:  line.Quantity,
		}
	}

	orderID := s.newID()
	err = s.orders.CreateFromCart(ctx, orderrepo.CreateInput{
		OrderID:  orderID,
		CartID:   cart.ID,
		Customer: info,
		Items:    items,
		PaidAt:   s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The cart vanished between resolve and commit; a concurrent
			// checkout won. Same outcome as an empty cart.
			return "", nil
		}
		return "", err
	}

	return orderID, nil
}
