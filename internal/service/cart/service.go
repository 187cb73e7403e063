package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

// InvalidateFunc is a fire-and-forget signal invoked after every successful
// cart mutation so presentation layers can refresh cached views.
type InvalidateFunc func(ctx context.Context, cartID string)

type Service struct {
	repo       cartRepo
	products   productRepo
	invalidate InvalidateFunc

	// newID generates cart ids; overridable in tests.
	newID func() string
}

type cartRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	CreateWithItem(ctx context.Context, cartID, productID string, quantity int) error
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID string) (removed, cartDeleted bool, err error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, products productRepo, invalidate InvalidateFunc) *Service {
	return &Service{
		repo:       repo,
		products:   products,
		invalidate: invalidate,
		newID:      uuid.NewString,
	}
}

// Resolve maps a client-held token to its cart. An empty, malformed or stale
// token is the normal empty-cart state and yields (nil, nil), never an error.
func (s *Service) Resolve(ctx context.Context, token string) (*domain.Cart, error) {
	cartID := normalizeToken(token)
	if cartID == "" {
		return nil, nil
	}
	cart, err := s.repo.GetByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem increments the product's line by one, creating the cart first when
// the token resolves to nothing. The returned cart's id is the new token.
func (s *Service) AddItem(ctx context.Context, token, productID string) (*domain.Cart, error) {
	return s.upsert(ctx, token, productID, 1, s.repo.AddItem)
}

// SetQuantity sets the product's line to the given quantity. A quantity
// below one means removal.
func (s *Service) SetQuantity(ctx context.Context, token, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return s.RemoveItem(ctx, token, productID)
	}
	return s.upsert(ctx, token, productID, quantity, s.repo.SetItemQuantity)
}

// RemoveItem deletes the product's line. Removing the last line deletes the
// cart itself; the nil result tells the caller to clear the token.
func (s *Service) RemoveItem(ctx context.Context, token, productID string) (*domain.Cart, error) {
	cartID := normalizeToken(token)
	if cartID == "" {
		return nil, nil
	}

	removed, cartDeleted, err := s.repo.RemoveItem(ctx, cartID, productID)
	if err != nil {
		return nil, err
	}
	if cartDeleted {
		s.notify(ctx, cartID)
		return nil, nil
	}

	cart, err := s.repo.GetByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if removed {
		s.notify(ctx, cartID)
	}
	return cart, nil
}

// upsert implements the shared add/set flow: verify the product, try the
// line upsert against the token's cart, and fall back to creating the cart
// when none exists. Cart creation uses a conditional insert; losing that
// race means the winner's cart exists now, so the loser retries the upsert
// against it. A second miss degrades to the empty-cart result instead of
// failing.
func (s *Service) upsert(
	ctx context.Context,
	token, productID string,
	quantity int,
	apply func(ctx context.Context, cartID, productID string, quantity int) error,
) (*domain.Cart, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	cartID := normalizeToken(token)
	if cartID != "" {
		err := apply(ctx, cartID, productID, quantity)
		if err == nil {
			return s.fetchAndNotify(ctx, cartID)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		// Stale token: the cart row is gone. Recreate it under the same id
		// so concurrent writers sharing the token converge on one cart.
	} else {
		cartID = s.newID()
	}

	err := s.repo.CreateWithItem(ctx, cartID, productID, quantity)
	switch {
	case err == nil:
		return s.fetchAndNotify(ctx, cartID)
	case errors.Is(err, domain.ErrConflict):
		if err := apply(ctx, cartID, productID, quantity); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return s.fetchAndNotify(ctx, cartID)
	case errors.Is(err, domain.ErrNotFound):
		// Product deleted between the catalog check and the insert.
		return nil, domain.ErrProductNotFound
	default:
		return nil, err
	}
}

func (s *Service) fetchAndNotify(ctx context.Context, cartID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s.notify(ctx, cartID)
	return cart, nil
}

func (s *Service) notify(ctx context.Context, cartID string) {
	if s.invalidate != nil {
		s.invalidate(ctx, cartID)
	}
}

// normalizeToken rejects tokens that cannot be cart ids. Cart ids are
// uuids; anything else would not survive the trip into a uuid column.
func normalizeToken(token string) string {
	if token == "" {
		return ""
	}
	id, err := uuid.Parse(token)
	if err != nil {
		return ""
	}
	return id.String()
}
