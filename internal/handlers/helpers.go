package handlers

import (
	"github.com/gin-gonic/gin"

	"taxonomy-service/internal/models"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message, field string) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    code,
			Message: message,
			Field:   field,
		},
	})
}
