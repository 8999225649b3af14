// Package export builds the legacy fixed-width price files consumed by
// the downstream price-list ingestion system.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sisventas/separata-backend/internal/models"
)

// PriceMode selects which price and effective date populate a record
type PriceMode string

const (
	// ModeFinal exports the discounted price, effective from the separata start
	ModeFinal PriceMode = "final"
	// ModeRegular exports the regular price, effective the day after the
	// promotion ends, when regular pricing resumes
	ModeRegular PriceMode = "regular"
)

const recordLength = 144

// EncodeRecord serializes one item/price-list/date combination into a
// 144-character legacy record, without the CRLF terminator.
//
// Layout: "I", 15 blank, 6-digit code (zero-padded), 3 blank, 13-digit
// price as round(price*10000) (zero-padded), 3-char unit, 40 blank, three
// all-zero filler fields of 18/18/16, 3-char price-list code, effective
// date as DDMMYYYY.
func EncodeRecord(code, unit string, price int64, priceList string, effectiveDate time.Time) string {
	var b strings.Builder
	b.Grow(recordLength)

	b.WriteString("I")
	b.WriteString(strings.Repeat(" ", 15))
	b.WriteString(padLeftZero(code, 6))
	b.WriteString(strings.Repeat(" ", 3))
	b.WriteString(fmt.Sprintf("%013d", price*10000))
	b.WriteString(padRight(unit, 3))
	b.WriteString(strings.Repeat(" ", 40))
	b.WriteString(strings.Repeat("0", 18))
	b.WriteString(strings.Repeat("0", 18))
	b.WriteString(strings.Repeat("0", 16))
	b.WriteString(padRight(priceList, 3))
	b.WriteString(effectiveDate.Format("02012006"))

	return b.String()
}

// BuildPriceFile emits one record per selected price-list code per item,
// in item entry order, preserving the order of the price-list codes.
// Records are CRLF-terminated; the file has no header or footer.
func BuildPriceFile(separata *models.Separata, items []*models.SeparataItem, priceLists []string, mode PriceMode) []byte {
	effectiveDate := separata.StartDate
	if mode == ModeRegular {
		effectiveDate = separata.EndDate.AddDate(0, 0, 1)
	}

	var b strings.Builder
	for _, item := range items {
		price := item.FinalPrice
		if mode == ModeRegular {
			price = item.RegularPrice
		}
		for _, priceList := range priceLists {
			b.WriteString(EncodeRecord(item.Code, item.UnitOfMeasure, price, priceList, effectiveDate))
			b.WriteString("\r\n")
		}
	}
	return []byte(b.String())
}

// ExportResult contains the result of a price file export. Content carries
// the built file so responses never read the shared path back: concurrent
// exports overwrite each other's artifact, not each other's download.
type ExportResult struct {
	Filename string
	Path     string
	Records  int
	Content  []byte
}

// Service writes price files into the exports directory
type Service struct {
	exportsDir string
	fileName   string
}

// NewService creates a price file export service. fileName follows the
// downstream naming convention, e.g. "UN00316B.TXT".
func NewService(exportsDir, fileName string) *Service {
	// Create exports directory if it doesn't exist
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		os.MkdirAll(exportsDir, 0755)
	}

	return &Service{
		exportsDir: exportsDir,
		fileName:   fileName,
	}
}

// WritePriceFile builds and writes the fixed-width file for a separata
func (s *Service) WritePriceFile(separata *models.Separata, items []*models.SeparataItem, priceLists []string, mode PriceMode) (*ExportResult, error) {
	if len(priceLists) == 0 {
		return nil, fmt.Errorf("no price list codes selected")
	}

	content := BuildPriceFile(separata, items, priceLists, mode)
	path := filepath.Join(s.exportsDir, s.fileName)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return nil, fmt.Errorf("failed to write price file: %w", err)
	}

	return &ExportResult{
		Filename: s.fileName,
		Path:     path,
		Records:  len(items) * len(priceLists),
		Content:  content,
	}, nil
}

func padLeftZero(value string, width int) string {
	if len(value) >= width {
		return value[:width]
	}
	return strings.Repeat("0", width-len(value)) + value
}

func padRight(value string, width int) string {
	if len(value) >= width {
		return value[:width]
	}
	return value + strings.Repeat(" ", width-len(value))
}
