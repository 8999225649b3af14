package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sisventas/separata-backend/internal/services"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{
		catalogService: services.NewCatalogService(),
	}
}

// GetItemByCode godoc
// @Summary Look up a catalog item
// @Description Fetch the catalog snapshot (description, price, unit, stock) for a 6-digit item code
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "6-digit catalog code"
// @Success 200 {object} models.CatalogItem
// @Failure 404 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/catalog/{code} [get]
func (h *CatalogHandler) GetItemByCode(c *gin.Context) {
	item, err := h.catalogService.GetItemByCode(c.Param("code"))
	if err != nil {
		if err == services.ErrCatalogItemNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog item not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog lookup failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}
