package httpserver

import (
	"errors"
	"log"
	"net/http"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps domain errors onto HTTP responses. Store-level
// failures stay opaque: the client only sees a generic operation-failed
// notice.
func respondServiceError(c *gin.Context, logger *log.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logger.Printf("http: %s %s error=%v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
