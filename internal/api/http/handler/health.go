package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health answers liveness probes. It bypasses authentication.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
