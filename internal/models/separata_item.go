package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StockByLocation is a snapshot of per-location stock, stored as JSONB.
// Keys are location codes, values the counted units at entry time.
type StockByLocation map[string]decimal.Decimal

// Value implements driver.Valuer for database writes
func (s StockByLocation) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database reads
func (s *StockByLocation) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported stock column type %T", value)
	}
	return json.Unmarshal(b, s)
}

// SeparataItem represents one priced catalog item inside a separata
type SeparataItem struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SeparataID string `json:"separata_id" gorm:"not null;index;type:uuid"`

	// Catalog snapshot at entry time (not live-linked)
	Code          string          `json:"code" gorm:"type:varchar(6);not null;index"`
	Description   string          `json:"description" gorm:"type:varchar(255)"`
	SecondaryLine string          `json:"secondary_line" gorm:"type:varchar(255)"`
	UnitOfMeasure string          `json:"unit_of_measure" gorm:"type:varchar(3)"`
	Measure       decimal.Decimal `json:"measure" gorm:"type:numeric(12,3)"`
	Stock         StockByLocation `json:"stock" gorm:"type:jsonb"`

	// Pricing. DiscountPercent is null when the operator stored only the
	// final price; when present, final price and discount are consistent
	// under the floor-to-50 rounding rule.
	RegularPrice    int64            `json:"regular_price" gorm:"not null"`
	DiscountPercent *decimal.Decimal `json:"discount_percent" gorm:"type:numeric(7,4)"`
	FinalPrice      int64            `json:"final_price" gorm:"not null"`

	Notes     string `json:"notes" gorm:"type:text"`
	EnteredBy string `json:"entered_by" gorm:"type:varchar(100)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the SeparataItem model
func (SeparataItem) TableName() string {
	return "separata_items"
}

// AddItemRequest represents the request to add an item to a separata.
// The date range identifies the separata; when no separata exists for the
// exact range yet, one is created as part of the same call.
type AddItemRequest struct {
	StartDate    string `json:"start_date" binding:"required" example:"2024-06-01"`
	EndDate      string `json:"end_date" binding:"required" example:"2024-06-07"`
	EditDeadline string `json:"edit_deadline" binding:"required" example:"2024-05-28"`

	Code            string           `json:"code" binding:"required" example:"003162"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty" example:"20"`
	FinalPrice      *int64           `json:"final_price,omitempty" example:"8000"`
	Notes           string           `json:"notes" example:"Tapa de catálogo"`
}

// UpdateItemRequest represents a partial item edit. LastEdited names the
// price field the operator touched last; the counterpart is rederived.
type UpdateItemRequest struct {
	RegularPrice    *int64           `json:"regular_price,omitempty" example:"10000"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty" example:"20"`
	FinalPrice      *int64           `json:"final_price,omitempty" example:"8000"`
	LastEdited      string           `json:"last_edited,omitempty" example:"discount_percent"`
	Notes           *string          `json:"notes,omitempty"`
}

// SeparataItemResponse represents the response for item operations
type SeparataItemResponse struct {
	ID              string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440001"`
	SeparataID      string          `json:"separata_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Code            string          `json:"code" example:"003162"`
	Description     string          `json:"description" example:"Yerba mate 1kg"`
	SecondaryLine   string          `json:"secondary_line" example:"Almacén"`
	UnitOfMeasure   string          `json:"unit_of_measure" example:"UN"`
	Measure         decimal.Decimal `json:"measure" example:"1"`
	Stock           StockByLocation `json:"stock,omitempty"`
	RegularPrice    int64           `json:"regular_price" example:"10000"`
	DiscountPercent *string         `json:"discount_percent" example:"20.00"`
	FinalPrice      int64           `json:"final_price" example:"8000"`
	Notes           string          `json:"notes"`
	EnteredBy       string          `json:"entered_by" example:"mgarcia"`
	CreatedAt       string          `json:"created_at" example:"2024-05-02T14:00:00Z"`
}

// Actor is the acting identity resolved by the identity provider
type Actor struct {
	Username   string
	Privileged bool
}

// CatalogItem is the catalog lookup result consumed at item entry time
type CatalogItem struct {
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	SecondaryLine string          `json:"secondary_line"`
	RegularPrice  int64           `json:"regular_price"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Measure       decimal.Decimal `json:"measure"`
	Stock         StockByLocation `json:"stock_by_location"`
}
