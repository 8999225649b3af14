package models

import "time"

// Revision is the single-row revision marker. Version is bumped inside the
// same transaction as every separata/item mutation, so a strictly greater
// value always means there is something new to fetch.
type Revision struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Version   int64     `json:"version" gorm:"not null;default:0"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Revision model
func (Revision) TableName() string {
	return "revisions"
}
