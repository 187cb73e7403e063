package httpserver

import (
	"log"
	"net/http"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type setCartItemRequest struct {
	// Pointer so a quantity of zero binds instead of failing required.
	Quantity *int `json:"quantity" binding:"required"`
}

func getCartHandler(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolver := resolverFrom(c)
		if resolver == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
			return
		}
		cart, err := resolver.resolve(c.Request.Context())
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, cartsvc.ToView(cart))
	}
}

func addCartItemHandler(logger *log.Logger, svc CartService, cookies cookieWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}

		cart, err := svc.AddItem(c.Request.Context(), cartToken(c), req.ProductID)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		respondCart(c, cart, cookies)
	}
}

func setCartItemHandler(logger *log.Logger, svc CartService, cookies cookieWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}

		cart, err := svc.SetQuantity(c.Request.Context(), cartToken(c), c.Param("productID"), *req.Quantity)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		respondCart(c, cart, cookies)
	}
}

func removeCartItemHandler(logger *log.Logger, svc CartService, cookies cookieWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.RemoveItem(c.Request.Context(), cartToken(c), c.Param("productID"))
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		respondCart(c, cart, cookies)
	}
}

// respondCart renders the mutated cart and keeps the cookie in sync with
// it: a surviving cart refreshes the token, a vanished cart clears it.
func respondCart(c *gin.Context, cart *domain.Cart, cookies cookieWriter) {
	if cart == nil {
		cookies.clear(c)
	} else {
		cookies.set(c, cart.ID)
	}
	c.JSON(http.StatusOK, cartsvc.ToView(cart))
}
