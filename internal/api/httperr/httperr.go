// Package httperr turns service errors into responses.
package httperr

import (
	"errors"
	"net/http"

	"music-catalog/internal/domain/catalog"
	"music-catalog/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

func Status(err error) int {
	switch catalog.KindOf(err) {
	case catalog.KindNotFound:
		return http.StatusNotFound
	case catalog.KindConflict:
		return http.StatusConflict
	case catalog.KindBadRequest, catalog.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err and aborts. Internal errors are logged and never echoed.
func Respond(c *gin.Context, log *logger.Logger, err error) {
	status := Status(err)
	kind := catalog.KindOf(err)

	switch kind {
	case catalog.KindValidation:
		var fields map[string]string
		var ce *catalog.Error
		if errors.As(err, &ce) {
			fields = ce.Fields
		}
		c.AbortWithStatusJSON(status, gin.H{"error": "Validation failed", "errores": fields})
	case catalog.KindInternal:
		log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.AbortWithStatusJSON(status, gin.H{"error": "Internal server error"})
	default:
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": kind.String()})
	}
}

// BadBody answers a request whose JSON could not be decoded.
func BadBody(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "detail": err.Error()})
}
