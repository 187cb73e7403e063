package cart

import "storefront/internal/domain"

// View is the display-ready cart shape: flattened unit prices plus computed
// totals in minor currency units.
type View struct {
	ID         string     `json:"id,omitempty"`
	Items      []ViewItem `json:"items"`
	TotalPrice int64      `json:"totalPrice"`
	ItemCount  int        `json:"itemCount"`
}

type ViewItem struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	ImageURL   string `json:"imageUrl"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
	TotalCents int64  `json:"totalCents"`
}

// ToView converts a persisted cart into its display shape. Pure; a nil cart
// yields the explicit empty-cart view.
func ToView(c *domain.Cart) View {
	view := View{Items: []ViewItem{}}
	if c == nil {
		return view
	}
	view.ID = c.ID
	for _, item := range c.Items {
		lineTotal := item.PriceCents * int64(item.Quantity)
		view.Items = append(view.Items, ViewItem{
			ProductID:  item.ProductID,
			Name:       item.ProductName,
			ImageURL:   item.ImageURL,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
			TotalCents: lineTotal,
		})
		view.TotalPrice += lineTotal
		view.ItemCount += item.Quantity
	}
	return view
}
