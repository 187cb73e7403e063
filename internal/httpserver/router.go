package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartService is the cart mutation engine surface the handlers consume.
type CartService interface {
	Resolve(ctx context.Context, token string) (*domain.Cart, error)
	AddItem(ctx context.Context, token, productID string) (*domain.Cart, error)
	RemoveItem(ctx context.Context, token, productID string) (*domain.Cart, error)
	SetQuantity(ctx context.Context, token, productID string, quantity int) (*domain.Cart, error)
}

type CheckoutService interface {
	Finalize(ctx context.Context, token string, info domain.CustomerInfo) (string, error)
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type OrderService interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

// Deps bundles the services the router needs.
type Deps struct {
	CartSvc     CartService
	CheckoutSvc CheckoutService
	ProductSvc  ProductService
	OrderSvc    OrderService
}

// buildRouter wires routes for the storefront API.
func buildRouter(cfg config.Config, logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	// The cart cookie travels cross-origin from the storefront frontend,
	// so credentials must be allowed.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	cookies := cookieWriter{
		maxAge: int(cfg.CartCookieMaxAge.Seconds()),
		secure: cfg.Production(),
	}

	router.GET("/products", listProductsHandler(logger, deps.ProductSvc))
	router.GET("/products/:productID", getProductHandler(logger, deps.ProductSvc))

	cartRoutes := router.Group("/cart", cartResolverMiddleware(deps.CartSvc))
	cartRoutes.GET("", getCartHandler(logger))
	cartRoutes.POST("/items", addCartItemHandler(logger, deps.CartSvc, cookies))
	cartRoutes.PUT("/items/:productID", setCartItemHandler(logger, deps.CartSvc, cookies))
	cartRoutes.DELETE("/items/:productID", removeCartItemHandler(logger, deps.CartSvc, cookies))

	router.POST("/checkout", checkoutHandler(logger, deps.CheckoutSvc, cookies))

	router.GET("/orders", listOrdersHandler(logger, deps.OrderSvc, cfg.ShippingFeeCents))
	router.GET("/orders/:orderID", getOrderHandler(logger, deps.OrderSvc, cfg.ShippingFeeCents))

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
