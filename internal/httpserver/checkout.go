package httpserver

import (
	"log"
	"net/http"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func checkoutHandler(logger *log.Logger, svc CheckoutService, cookies cookieWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		orderID, err := svc.Finalize(c.Request.Context(), cartToken(c), domain.CustomerInfo{
			Email:      req.Email,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Address:    req.Address,
			City:       req.City,
			PostalCode: req.PostalCode,
			Country:    req.Country,
		})
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		if orderID == "" {
			// No cart resolved, or another checkout won the race.
			cookies.clear(c)
			c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
			return
		}

		cookies.clear(c)
		c.JSON(http.StatusCreated, gin.H{"orderId": orderID})
	}
}
