package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sisventas/separata-backend/internal/database/repository"
	"github.com/sisventas/separata-backend/internal/models"
	"github.com/sisventas/separata-backend/internal/services/excel"
	"github.com/sisventas/separata-backend/internal/services/export"
)

type ExportHandler struct {
	separataRepo   *repository.SeparataRepository
	itemRepo       *repository.SeparataItemRepository
	priceFileSvc   *export.Service
	spreadsheetSvc *excel.Service
}

func NewExportHandler(db *gorm.DB, priceFileSvc *export.Service, spreadsheetSvc *excel.Service) *ExportHandler {
	return &ExportHandler{
		separataRepo:   repository.NewSeparataRepository(db),
		itemRepo:       repository.NewSeparataItemRepository(db),
		priceFileSvc:   priceFileSvc,
		spreadsheetSvc: spreadsheetSvc,
	}
}

// PriceFileRequest selects the export mode and the price lists to emit
type PriceFileRequest struct {
	Mode       string   `json:"mode" binding:"required" example:"final"`
	PriceLists []string `json:"price_lists" binding:"required" example:"01,02"`
}

// ExportPriceFile godoc
// @Summary Export the fixed-width price file
// @Description Build the legacy fixed-width price file for a separata and return it. Mode "final" exports discounted prices effective from the start date; mode "regular" exports regular prices effective the day after the promotion ends.
// @Tags exports
// @Accept json
// @Produce application/octet-stream
// @Security BearerAuth
// @Param id path string true "Separata ID"
// @Param request body PriceFileRequest true "Export mode and price list codes"
// @Success 200 "Fixed-width price file"
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/separatas/{id}/export/pricefile [post]
func (h *ExportHandler) ExportPriceFile(c *gin.Context) {
	var req PriceFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	mode := export.PriceMode(req.Mode)
	if mode != export.ModeFinal && mode != export.ModeRegular {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "field": "mode", "details": "must be \"final\" or \"regular\""})
		return
	}
	if len(req.PriceLists) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "field": "price_lists", "details": "at least one price list code is required"})
		return
	}

	separata, items, err := h.loadSeparata(c)
	if err != nil {
		return
	}

	result, err := h.priceFileSvc.WritePriceFile(separata, items, req.PriceLists, mode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build price file", "details": err.Error()})
		return
	}

	// Serve the built content directly: the on-disk artifact is shared
	// between exports and may already belong to a later request.
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Data(http.StatusOK, "application/octet-stream", result.Content)
}

// ExportSpreadsheet godoc
// @Summary Export the review spreadsheet
// @Description Build the xlsx review sheet for a separata and return it
// @Tags exports
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "Separata ID"
// @Success 200 "Spreadsheet file"
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/separatas/{id}/export/spreadsheet [get]
func (h *ExportHandler) ExportSpreadsheet(c *gin.Context) {
	separata, items, err := h.loadSeparata(c)
	if err != nil {
		return
	}

	result, err := h.spreadsheetSvc.ExportSeparata(separata, items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build spreadsheet", "details": err.Error()})
		return
	}

	c.FileAttachment(result.Path, result.Filename)
}

// loadSeparata fetches the separata and its items, writing the error
// response itself so callers can just return on error.
func (h *ExportHandler) loadSeparata(c *gin.Context) (*models.Separata, []*models.SeparataItem, error) {
	s, err := h.separataRepo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Separata not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get separata", "details": err.Error()})
		}
		return nil, nil, err
	}

	list, err := h.itemRepo.GetBySeparata(s.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get items", "details": err.Error()})
		return nil, nil, err
	}
	return s, list, nil
}
