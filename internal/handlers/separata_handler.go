package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sisventas/separata-backend/internal/database/repository"
	"github.com/sisventas/separata-backend/internal/models"
	"github.com/sisventas/separata-backend/internal/services"
)

type SeparataHandler struct {
	separataService *services.SeparataService
}

func NewSeparataHandler(db *gorm.DB, eventService services.EventPublisher) *SeparataHandler {
	separataRepo := repository.NewSeparataRepository(db)
	itemRepo := repository.NewSeparataItemRepository(db)
	catalogService := services.NewCatalogService()

	separataService := services.NewSeparataService(separataRepo, itemRepo, catalogService, eventService)
	return &SeparataHandler{
		separataService: separataService,
	}
}

// ListSeparatas godoc
// @Summary List separatas
// @Description List all separatas with their vigency classification
// @Tags separatas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.SeparataResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/separatas [get]
func (h *SeparataHandler) ListSeparatas(c *gin.Context) {
	separatas, err := h.separataService.ListSeparatas()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, separatas)
}

// FindOrCreate godoc
// @Summary Find the separata for an exact date range
// @Description Duplicate guard: returns the existing separata for the range, or 404 when drafting may begin (the separata is created on first item save)
// @Tags separatas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.FindOrCreateRequest true "Candidate date range"
// @Success 200 {object} models.SeparataResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/separatas/find-or-create [post]
func (h *SeparataHandler) FindOrCreate(c *gin.Context) {
	var req models.FindOrCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	separata, found, err := h.separataService.FindOrCreate(req.StartDate, req.EndDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "No separata for this date range", "exists": false})
		return
	}

	c.JSON(http.StatusOK, separata)
}

// GetSeparataByID godoc
// @Summary Get separata by ID
// @Description Get a separata with its items
// @Tags separatas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Separata ID"
// @Success 200 {object} models.SeparataResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/separatas/{id} [get]
func (h *SeparataHandler) GetSeparataByID(c *gin.Context) {
	separata, err := h.separataService.GetSeparata(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, separata)
}

// UpdateDeadline godoc
// @Summary Change the edit deadline
// @Description Change the edit deadline of a separata (privileged users only)
// @Tags separatas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Separata ID"
// @Param request body models.UpdateDeadlineRequest true "New edit deadline"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/separatas/{id}/deadline [put]
func (h *SeparataHandler) UpdateDeadline(c *gin.Context) {
	var req models.UpdateDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.separataService.UpdateDeadline(actorFrom(c), c.Param("id"), req.EditDeadline); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Edit deadline updated"})
}

// UpdateTitle godoc
// @Summary Change the separata title
// @Description Change the title of a separata (privileged users only)
// @Tags separatas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Separata ID"
// @Param request body models.UpdateTitleRequest true "New title"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/separatas/{id}/title [put]
func (h *SeparataHandler) UpdateTitle(c *gin.Context) {
	var req models.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.separataService.UpdateTitle(actorFrom(c), c.Param("id"), req.Title); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Title updated"})
}
