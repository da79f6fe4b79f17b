package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/userhub-io/userhub-server/internal/model"
)

// handleError maps service errors to HTTP responses. Validation
// failures are answered as unprocessable input; anything else is a
// service-side problem and stays opaque to the caller.
func handleError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
