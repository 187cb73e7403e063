package cart

import (
	"testing"

	"storefront/internal/domain"
)

func TestToViewNilCart(t *testing.T) {
	view := ToView(nil)
	if view.ID != "" || view.TotalPrice != 0 || view.ItemCount != 0 {
		t.Fatalf("unexpected empty view: %+v", view)
	}
	if view.Items == nil || len(view.Items) != 0 {
		t.Fatalf("empty view must carry an empty, non-nil items slice")
	}
}

func TestToViewComputesTotals(t *testing.T) {
	cart := &domain.Cart{
		ID: "c1",
		Items: []domain.CartItem{
			{ProductID: "p1", ProductName: "Tee", PriceCents: 1000, Quantity: 2},
			{ProductID: "p2", ProductName: "Mug", PriceCents: 500, Quantity: 1},
		},
	}

	view := ToView(cart)
	if view.ID != "c1" {
		t.Fatalf("unexpected id: %s", view.ID)
	}
	if view.TotalPrice != 2500 {
		t.Fatalf("expected total 2500, got %d", view.TotalPrice)
	}
	if view.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", view.ItemCount)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(view.Items))
	}
	if view.Items[0].TotalCents != 2000 || view.Items[1].TotalCents != 500 {
		t.Fatalf("unexpected line totals: %+v", view.Items)
	}
}

func TestToViewIsPure(t *testing.T) {
	cart := &domain.Cart{
		ID:    "c1",
		Items: []domain.CartItem{{ProductID: "p1", PriceCents: 1000, Quantity: 2}},
	}
	first := ToView(cart)
	second := ToView(cart)
	if first.TotalPrice != second.TotalPrice || first.ItemCount != second.ItemCount {
		t.Fatalf("repeated conversion differed: %+v vs %+v", first, second)
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("input cart mutated: %+v", cart)
	}
}
