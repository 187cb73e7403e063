package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

type stubResolver struct {
	cart  *domain.Cart
	err   error
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, _ string) (*domain.Cart, error) {
	s.calls++
	return s.cart, s.err
}

type stubProductRepo struct {
	products []domain.Product
	err      error
	lastIDs  []string
}

func (s *stubProductRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	s.lastIDs = ids
	return s.products, s.err
}

type stubOrderRepo struct {
	err   error
	calls int
	last  orderrepo.CreateInput
}

func (s *stubOrderRepo) CreateFromCart(_ context.Context, in orderrepo.CreateInput) error {
	s.calls++
	s.last = in
	return s.err
}

func validInfo() domain.CustomerInfo {
	return domain.CustomerInfo{
		Email:      "anna@example.com",
		FirstName:  "Anna",
		LastName:   "Svensson",
		Address:    "Storgatan 1",
		City:       "Stockholm",
		PostalCode: "114 55",
		Country:    "se",
	}
}

func newTestService(resolver *stubResolver, products *stubProductRepo, orders *stubOrderRepo) *Service {
	svc := New(resolver, products, orders)
	svc.newID = func() string { return "order-1" }
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestFinalizeValidationFailureShortCircuits(t *testing.T) {
	resolver := &stubResolver{}
	svc := newTestService(resolver, &stubProductRepo{}, &stubOrderRepo{})

	info := validInfo()
	info.Email = "not-an-email"
	_, err := svc.Finalize(context.Background(), "token", info)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["email"] != "Invalid email address" {
		t.Fatalf("unexpected field messages: %+v", verr.Fields)
	}
	if resolver.calls != 0 {
		t.Fatalf("validation failure must not touch the store")
	}
}

func TestFinalizeValidationMatrix(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.CustomerInfo)
		field  string
	}{
		{"empty email", func(i *domain.CustomerInfo) { i.Email = "" }, "email"},
		{"empty first name", func(i *domain.CustomerInfo) { i.FirstName = "" }, "firstName"},
		{"empty last name", func(i *domain.CustomerInfo) { i.LastName = "" }, "lastName"},
		{"empty address", func(i *domain.CustomerInfo) { i.Address = "" }, "address"},
		{"empty city", func(i *domain.CustomerInfo) { i.City = "" }, "city"},
		{"postal code without space", func(i *domain.CustomerInfo) { i.PostalCode = "11455" }, "postalCode"},
		{"postal code wrong shape", func(i *domain.CustomerInfo) { i.PostalCode = "11 455" }, "postalCode"},
		{"unsupported country", func(i *domain.CustomerInfo) { i.Country = "dk" }, "country"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(&stubResolver{}, &stubProductRepo{}, &stubOrderRepo{})
			info := validInfo()
			tc.mutate(&info)

			_, err := svc.Finalize(context.Background(), "token", info)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := verr.Fields[tc.field]; !ok {
				t.Fatalf("expected %s in field errors, got %+v", tc.field, verr.Fields)
			}
		})
	}
}

func TestFinalizeEmptyCartIsNoOp(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := newTestService(&stubResolver{}, &stubProductRepo{}, orders)

	orderID, err := svc.Finalize(context.Background(), "", validInfo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != "" {
		t.Fatalf("expected empty order id, got %q", orderID)
	}
	if orders.calls != 0 {
		t.Fatalf("no order must be created for an empty cart")
	}
}

func TestFinalizeSnapshotsCurrentPrices(t *testing.T) {
	resolver := &stubResolver{cart: &domain.Cart{
		ID: "cart-1",
		Items: []domain.CartItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	}}
	products := &stubProductRepo{products: []domain.Product{
		{ID: "p1", PriceID: "price-1", PriceCents: 1000},
		{ID: "p2", PriceID: "price-2", PriceCents: 500},
	}}
	orders := &stubOrderRepo{}
	svc := newTestService(resolver, products, orders)

	orderID, err := svc.Finalize(context.Background(), "token", validInfo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != "order-1" {
		t.Fatalf("unexpected order id: %q", orderID)
	}
	if orders.last.CartID != "cart-1" || orders.last.OrderID != "order-1" {
		t.Fatalf("unexpected create input: %+v", orders.last)
	}
	if len(orders.last.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(orders.last.Items))
	}
	if orders.last.Items[0].PriceID != "price-1" || orders.last.Items[0].Quantity != 2 {
		t.Fatalf("unexpected first item: %+v", orders.last.Items[0])
	}
	if orders.last.Items[1].PriceID != "price-2" || orders.last.Items[1].Quantity != 1 {
		t.Fatalf("unexpected second item: %+v", orders.last.Items[1])
	}
	if !orders.last.PaidAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected paidAt: %v", orders.last.PaidAt)
	}
}

func TestFinalizeAbortsWhenProductVanished(t *testing.T) {
	resolver := &stubResolver{cart: &domain.Cart{
		ID:    "cart-1",
		Items: []domain.CartItem{{ProductID: "p1", Quantity: 1}, {ProductID: "gone", Quantity: 1}},
	}}
	products := &stubProductRepo{products: []domain.Product{{ID: "p1", PriceID: "price-1"}}}
	orders := &stubOrderRepo{}
	svc := newTestService(resolver, products, orders)

	_, err := svc.Finalize(context.Background(), "token", validInfo())
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatalf("no partial order may be created")
	}
}

func TestFinalizeCartRacedAwayIsNoOp(t *testing.T) {
	resolver := &stubResolver{cart: &domain.Cart{
		ID:    "cart-1",
		Items: []domain.CartItem{{ProductID: "p1", Quantity: 1}},
	}}
	products := &stubProductRepo{products: []domain.Product{{ID: "p1", PriceID: "price-1"}}}
	orders := &stubOrderRepo{err: domain.ErrNotFound}
	svc := newTestService(resolver, products, orders)

	orderID, err := svc.Finalize(context.Background(), "token", validInfo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != "" {
		t.Fatalf("expected empty order id when cart raced away, got %q", orderID)
	}
}

func TestFinalizeStoreFailurePropagates(t *testing.T) {
	resolver := &stubResolver{cart: &domain.Cart{
		ID:    "cart-1",
		Items: []domain.CartItem{{ProductID: "p1", Quantity: 1}},
	}}
	products := &stubProductRepo{products: []domain.Product{{ID: "p1", PriceID: "price-1"}}}
	orders := &stubOrderRepo{err: errors.New("boom")}
	svc := newTestService(resolver, products, orders)

	_, err := svc.Finalize(context.Background(), "token", validInfo())
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected store error, got %v", err)
	}
}
