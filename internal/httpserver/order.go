package httpserver

import (
	"log"
	"net/http"
	"time"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type orderView struct {
	ID            string              `json:"id"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
	PaidAt        *time.Time          `json:"paidAt,omitempty"`
	CompletedAt   *time.Time          `json:"completedAt,omitempty"`
	CancelReason  string              `json:"cancelReason,omitempty"`
	CustomerInfo  domain.CustomerInfo `json:"customerInfo"`
	Items         []orderItemView     `json:"items"`
	SubtotalCents int64               `json:"subtotalCents"`
	ShippingCents int64               `json:"shippingCents"`
	TotalCents    int64               `json:"totalCents"`
}

type orderItemView struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
	TotalCents int64  `json:"totalCents"`
}

type orderSummaryView struct {
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	Email     string     `json:"email"`
}

// toOrderView flattens the order aggregate and applies the flat shipping
// fee. Item prices come from the snapshotted price rows, not the catalog.
func toOrderView(o domain.Order, shippingCents int64) orderView {
	view := orderView{
		ID:            o.ID,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		PaidAt:        o.PaidAt,
		CompletedAt:   o.CompletedAt,
		CancelReason:  o.CancelReason,
		CustomerInfo:  o.CustomerInfo,
		Items:         []orderItemView{},
		ShippingCents: shippingCents,
	}
	for _, item := range o.Items {
		lineTotal := item.PriceCents * int64(item.Quantity)
		view.Items = append(view.Items, orderItemView{
			ProductID:  item.ProductID,
			Name:       item.ProductName,
			ImageURL:   item.ImageURL,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
			TotalCents: lineTotal,
		})
		view.SubtotalCents += lineTotal
	}
	view.TotalCents = view.SubtotalCents + shippingCents
	return view
}

func getOrderHandler(logger *log.Logger, svc OrderService, shippingCents int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), c.Param("orderID"))
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, toOrderView(*order, shippingCents))
	}
}

func listOrdersHandler(logger *log.Logger, svc OrderService, shippingCents int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		summaries := make([]orderSummaryView, 0, len(orders))
		for _, o := range orders {
			summaries = append(summaries, orderSummaryView{
				ID:        o.ID,
				Status:    string(o.Status),
				CreatedAt: o.CreatedAt,
				PaidAt:    o.PaidAt,
				Email:     o.CustomerInfo.Email,
			})
		}
		c.JSON(http.StatusOK, gin.H{"orders": summaries})
	}
}
