// Package excel builds the review spreadsheet for a separata.
package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/sisventas/separata-backend/internal/models"
	"github.com/sisventas/separata-backend/internal/pricing"
)

// netStockExcludedLocations are left out of the net stock sum. Legacy
// constant carried over from the source stock feed; the remainder is
// halved because the feed counts movements in both directions.
var netStockExcludedLocations = map[string]bool{
	"980": true,
	"998": true,
	"999": true,
}

var two = decimal.NewFromInt(2)

// NetStock sums per-location stock, skipping the excluded locations, and
// halves the result.
func NetStock(stock models.StockByLocation) decimal.Decimal {
	total := decimal.Zero
	for location, units := range stock {
		if netStockExcludedLocations[location] {
			continue
		}
		total = total.Add(units)
	}
	return total.Div(two)
}

// UnitPrice is the per-unit display price: final price over package size,
// two decimals. A non-positive measure yields zero instead of an error.
func UnitPrice(finalPrice int64, measure decimal.Decimal) decimal.Decimal {
	if measure.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.NewFromInt(finalPrice).Div(measure).Round(2)
}

// ExportResult contains the result of a spreadsheet export
type ExportResult struct {
	Success  bool
	Message  string
	Filename string
	Path     string
}

// Service handles spreadsheet exports of separatas
type Service struct {
	exportsDir string
}

// NewService creates a new spreadsheet export service
func NewService(exportsDir string) *Service {
	// Create exports directory if it doesn't exist
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		os.MkdirAll(exportsDir, 0755)
	}

	return &Service{exportsDir: exportsDir}
}

var sheetColumns = []string{
	"#", "Ingresado por", "Rubro", "Código", "Descripción", "Unidad",
	"Contenido", "Precio lista", "Precio separata", "Precio unitario",
	"Stock neto", "Descuento", "Observaciones", "Fecha de carga",
}

// ExportSeparata writes one sheet with a header row and one row per item.
// The filename embeds the separata's date range.
func (s *Service) ExportSeparata(separata *models.Separata, items []*models.SeparataItem) (*ExportResult, error) {
	filename := fmt.Sprintf("separata_%s_%s.xlsx",
		separata.StartDate.Format("20060102"), separata.EndDate.Format("20060102"))
	filePath := filepath.Join(s.exportsDir, filename)

	f := excelize.NewFile()

	sheetName := "Separata"
	defaultSheetName := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheetName, sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	f.SetActiveSheet(0)

	// Track content widths per column for auto-sizing
	widths := make([]int, len(sheetColumns))

	// Write headers
	for i, col := range sheetColumns {
		cell := fmt.Sprintf("%s1", columnToLetter(i+1))
		f.SetCellValue(sheetName, cell, col)
		widths[i] = len([]rune(col))
	}

	// Apply header styling
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFFF00"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", columnToLetter(len(sheetColumns))+"1", headerStyle)
	}

	for j, item := range items {
		rowNum := j + 2 // Start from row 2 (after headers)
		values := rowValues(j+1, item)

		for i, value := range values {
			cell := fmt.Sprintf("%s%d", columnToLetter(i+1), rowNum)
			f.SetCellValue(sheetName, cell, value)

			if l := len([]rune(fmt.Sprintf("%v", value))); l > widths[i] {
				widths[i] = l
			}
		}
	}

	// Auto-size columns to the widest content seen
	for i := range sheetColumns {
		colLetter := columnToLetter(i + 1)
		f.SetColWidth(sheetName, colLetter, colLetter, float64(widths[i])+2)
	}

	if err := f.SaveAs(filePath); err != nil {
		return nil, fmt.Errorf("failed to save Excel file: %w", err)
	}

	return &ExportResult{
		Success:  true,
		Message:  fmt.Sprintf("Successfully exported separata %s with %d items", separata.ID, len(items)),
		Filename: filename,
		Path:     filePath,
	}, nil
}

// rowValues builds one spreadsheet row in sheetColumns order
func rowValues(seq int, item *models.SeparataItem) []interface{} {
	discount := decimal.Zero
	if item.DiscountPercent != nil {
		discount = *item.DiscountPercent
	} else if item.RegularPrice > 0 {
		discount = pricing.DiscountFromPrice(item.RegularPrice, item.FinalPrice)
	}

	return []interface{}{
		seq,
		item.EnteredBy,
		item.SecondaryLine,
		item.Code,
		item.Description,
		item.UnitOfMeasure,
		item.Measure.String(),
		item.RegularPrice,
		item.FinalPrice,
		UnitPrice(item.FinalPrice, item.Measure).String(),
		NetStock(item.Stock).String(),
		fmt.Sprintf("%s%%", discount.Round(0).String()),
		item.Notes,
		item.CreatedAt.Format(time.DateOnly),
	}
}

// Helper function to convert column number to Excel column letter
func columnToLetter(col int) string {
	var result string
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
