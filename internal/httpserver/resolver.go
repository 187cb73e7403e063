package httpserver

import (
	"context"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

const resolverCtxKey = "cartResolver"

// requestCartResolver memoizes cart resolution for one request, so every
// handler and view that needs the cart hits the store at most once.
type requestCartResolver struct {
	svc   CartService
	token string

	done bool
	cart *domain.Cart
	err  error
}

func (r *requestCartResolver) resolve(ctx context.Context) (*domain.Cart, error) {
	if !r.done {
		r.cart, r.err = r.svc.Resolve(ctx, r.token)
		r.done = true
	}
	return r.cart, r.err
}

// cartResolverMiddleware attaches a fresh request-scoped resolver carrying
// the request's cart token.
func cartResolverMiddleware(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(resolverCtxKey, &requestCartResolver{svc: svc, token: cartToken(c)})
		c.Next()
	}
}

func resolverFrom(c *gin.Context) *requestCartResolver {
	v, ok := c.Get(resolverCtxKey)
	if !ok {
		return nil
	}
	r, _ := v.(*requestCartResolver)
	return r
}
