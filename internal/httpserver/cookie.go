package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// cartCookieName holds the cart id on the client. Absence or staleness of
// the cookie is the normal empty-cart state.
const cartCookieName = "cart"

type cookieWriter struct {
	maxAge int
	secure bool
}

func cartToken(c *gin.Context) string {
	token, err := c.Cookie(cartCookieName)
	if err != nil {
		return ""
	}
	return token
}

// set issues (or refreshes) the cart cookie for the given cart id.
func (w cookieWriter) set(c *gin.Context, cartID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cartCookieName, cartID, w.maxAge, "/", "", w.secure, true)
}

// clear removes the cart cookie after the cart emptied or checked out.
func (w cookieWriter) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cartCookieName, "", -1, "/", "", w.secure, true)
}
