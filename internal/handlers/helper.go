package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rehber-app/anket-client/internal/models"
)

// ParseStringIDParam reads a path id. On failure it has already answered 400
// and returns the zero id.
func ParseStringIDParam(c *gin.Context, param string) models.ID {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return models.ID(idStr)
}
