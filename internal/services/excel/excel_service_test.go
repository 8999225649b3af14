package excel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sisventas/separata-backend/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNetStock(t *testing.T) {
	stock := models.StockByLocation{
		"001": dec("10"),
		"002": dec("6"),
		"980": dec("100"), // excluded
		"998": dec("40"),  // excluded
		"999": dec("7"),   // excluded
	}

	// (10 + 6) / 2
	assert.True(t, dec("8").Equal(NetStock(stock)))
}

func TestNetStock_Empty(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(NetStock(nil)))
	assert.True(t, decimal.Zero.Equal(NetStock(models.StockByLocation{"999": dec("50")})))
}

func TestUnitPrice(t *testing.T) {
	assert.Equal(t, "8000", UnitPrice(8000, dec("1")).String())
	assert.Equal(t, "1333.33", UnitPrice(8000, dec("6")).String())

	// Non-positive package size never divides; it yields zero
	assert.True(t, decimal.Zero.Equal(UnitPrice(8000, decimal.Zero)))
	assert.True(t, decimal.Zero.Equal(UnitPrice(8000, dec("-2"))))
}

func TestExportSeparata(t *testing.T) {
	discount := dec("20")
	separata := &models.Separata{
		ID:        "sep-1",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
	}
	items := []*models.SeparataItem{
		{
			Code:            "003162",
			Description:     "Yerba mate 1kg",
			SecondaryLine:   "Almacén",
			UnitOfMeasure:   "UN",
			Measure:         dec("1"),
			Stock:           models.StockByLocation{"001": dec("10"), "999": dec("4")},
			RegularPrice:    10000,
			DiscountPercent: &discount,
			FinalPrice:      8000,
			EnteredBy:       "mgarcia",
			Notes:           "Tapa",
			CreatedAt:       time.Date(2024, 5, 2, 14, 0, 0, 0, time.UTC),
		},
	}

	dir := t.TempDir()
	s := NewService(dir)

	result, err := s.ExportSeparata(separata, items)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "separata_20240601_20240607.xlsx", result.Filename)

	f, err := excelize.OpenFile(filepath.Join(dir, result.Filename))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Separata")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, sheetColumns, rows[0])

	row := rows[1]
	assert.Equal(t, "1", row[0])
	assert.Equal(t, "mgarcia", row[1])
	assert.Equal(t, "Almacén", row[2])
	assert.Equal(t, "003162", row[3])
	assert.Equal(t, "Yerba mate 1kg", row[4])
	assert.Equal(t, "UN", row[5])
	assert.Equal(t, "1", row[6])
	assert.Equal(t, "10000", row[7])
	assert.Equal(t, "8000", row[8])
	assert.Equal(t, "8000", row[9])
	assert.Equal(t, "5", row[10]) // 10 / 2, location 999 excluded
	assert.Equal(t, "20%", row[11])
	assert.Equal(t, "Tapa", row[12])
	assert.Equal(t, "2024-05-02", row[13])
}

func TestExportSeparata_DiscountDerivedWhenNotStored(t *testing.T) {
	separata := &models.Separata{
		ID:        "sep-1",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
	}
	items := []*models.SeparataItem{
		{
			Code:          "004201",
			UnitOfMeasure: "UN",
			Measure:       dec("1"),
			RegularPrice:  10000,
			FinalPrice:    7500,
			CreatedAt:     time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	s := NewService(t.TempDir())
	result, err := s.ExportSeparata(separata, items)
	require.NoError(t, err)

	f, err := excelize.OpenFile(result.Path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Separata")
	require.NoError(t, err)
	assert.Equal(t, "25%", rows[1][11])
}
