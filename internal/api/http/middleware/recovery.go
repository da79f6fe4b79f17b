package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/userhub-io/userhub-server/internal/logger"
)

// Recovery returns a middleware that recovers from handler panics,
// logging the panic value and answering with a 500.
func Recovery(logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("HTTP handler panic",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
