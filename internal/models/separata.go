package models

import (
	"time"
)

// Vigency classifies a separata relative to a reference date
type Vigency string

const (
	VigencyActive Vigency = "vigente"
	VigencyEnded  Vigency = "finalizada"
)

// Separata represents a promotional pricing campaign covering a date range
type Separata struct {
	ID    string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title string `json:"title" gorm:"type:varchar(255)"`

	// Inclusive promotional window. One separata per exact (start, end) pair.
	StartDate time.Time `json:"start_date" gorm:"type:date;not null;uniqueIndex:idx_separatas_date_range"`
	EndDate   time.Time `json:"end_date" gorm:"type:date;not null;uniqueIndex:idx_separatas_date_range"`

	// After this date only privileged users may mutate items.
	EditDeadline *time.Time `json:"edit_deadline" gorm:"type:date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Items []SeparataItem `json:"items,omitempty" gorm:"foreignKey:SeparataID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Separata model
func (Separata) TableName() string {
	return "separatas"
}

// Vigency classifies the separata against the given reference date.
// The end date is inclusive: a separata ending today is still active.
func (s *Separata) Vigency(today time.Time) Vigency {
	if truncateToDay(today).After(truncateToDay(s.EndDate)) {
		return VigencyEnded
	}
	return VigencyActive
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FindOrCreateRequest carries the candidate date range for the duplicate guard
type FindOrCreateRequest struct {
	StartDate string `json:"start_date" binding:"required" example:"2024-06-01"`
	EndDate   string `json:"end_date" binding:"required" example:"2024-06-07"`
}

// UpdateDeadlineRequest represents the request to change the edit deadline
type UpdateDeadlineRequest struct {
	EditDeadline string `json:"edit_deadline" binding:"required" example:"2024-05-28"`
}

// UpdateTitleRequest represents the request to change the separata title
type UpdateTitleRequest struct {
	Title string `json:"title" binding:"required" example:"Separata invierno"`
}

// SeparataResponse represents the response for separata operations
type SeparataResponse struct {
	ID           string                  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title        string                  `json:"title" example:"Separata invierno"`
	StartDate    string                  `json:"start_date" example:"2024-06-01"`
	EndDate      string                  `json:"end_date" example:"2024-06-07"`
	EditDeadline string                  `json:"edit_deadline,omitempty" example:"2024-05-28"`
	Vigency      Vigency                 `json:"vigency" example:"vigente"`
	CreatedAt    string                  `json:"created_at" example:"2024-05-01T10:30:00Z"`
	Items        []*SeparataItemResponse `json:"items,omitempty"`
}
