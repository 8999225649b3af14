package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sisventas/separata-backend/internal/models"
	"github.com/sisventas/separata-backend/internal/services"
)

// actorFrom returns the acting identity set by the identity middleware
func actorFrom(c *gin.Context) models.Actor {
	return c.MustGet("actor").(models.Actor)
}

// respondServiceError maps service error kinds onto HTTP status codes.
// Validation and permission failures carry enough detail to identify the
// offending field or rule; everything else is a repository-side failure.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var permissionErr *services.PermissionError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"field":   validationErr.Field,
			"details": validationErr.Reason,
		})
	case errors.As(err, &permissionErr):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Permission denied",
			"details": permissionErr.Rule,
		})
	case errors.Is(err, services.ErrSeparataNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Separata not found"})
	case errors.Is(err, services.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errors.Is(err, services.ErrCatalogItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Catalog item not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Repository unavailable",
			"details": err.Error(),
		})
	}
}
