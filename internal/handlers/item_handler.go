package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sisventas/separata-backend/internal/database/repository"
	"github.com/sisventas/separata-backend/internal/models"
	"github.com/sisventas/separata-backend/internal/services"
)

type ItemHandler struct {
	separataService *services.SeparataService
}

func NewItemHandler(db *gorm.DB, eventService services.EventPublisher) *ItemHandler {
	separataRepo := repository.NewSeparataRepository(db)
	itemRepo := repository.NewSeparataItemRepository(db)
	catalogService := services.NewCatalogService()

	separataService := services.NewSeparataService(separataRepo, itemRepo, catalogService, eventService)
	return &ItemHandler{
		separataService: separataService,
	}
}

// AddItem godoc
// @Summary Add an item to a separata
// @Description Add a priced item for the given date range; when no separata exists for the exact range yet, it is created in the same call
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AddItemRequest true "Item data with the owning date range"
// @Success 201 {object} models.SeparataItemResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/items [post]
func (h *ItemHandler) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	item, err := h.separataService.AddItem(actorFrom(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem godoc
// @Summary Update an item
// @Description Update an item's prices or notes; blocked for non-privileged users once the edit deadline has passed
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body models.UpdateItemRequest true "Fields to change"
// @Success 200 {object} models.SeparataItemResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	item, err := h.separataService.UpdateItem(actorFrom(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Delete an item
// @Description Delete an item; blocked for non-privileged users once the edit deadline has passed
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	if err := h.separataService.DeleteItem(actorFrom(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}
