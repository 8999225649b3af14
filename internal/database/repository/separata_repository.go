package repository

import (
	"time"

	"github.com/sisventas/separata-backend/internal/models"

	"gorm.io/gorm"
)

type SeparataRepository struct {
	db *gorm.DB
}

func NewSeparataRepository(db *gorm.DB) *SeparataRepository {
	return &SeparataRepository{db: db}
}

// GetAll retrieves all separatas, newest window first
func (r *SeparataRepository) GetAll() ([]*models.Separata, error) {
	var separatas []*models.Separata
	err := r.db.Order("start_date DESC").Find(&separatas).Error
	return separatas, err
}

// GetByID retrieves a separata with its items
func (r *SeparataRepository) GetByID(id string) (*models.Separata, error) {
	var separata models.Separata
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("separata_items.created_at ASC")
	}).First(&separata, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &separata, nil
}

// FindByDateRange retrieves the separata matching the exact date range.
// Returns gorm.ErrRecordNotFound when no separata covers that window.
func (r *SeparataRepository) FindByDateRange(start, end time.Time) (*models.Separata, error) {
	var separata models.Separata
	err := r.db.Where("start_date = ? AND end_date = ?", start, end).First(&separata).Error
	if err != nil {
		return nil, err
	}
	return &separata, nil
}

// UpdateDeadline changes the edit deadline of a separata
func (r *SeparataRepository) UpdateDeadline(id string, deadline time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Separata{}).Where("id = ?", id).Update("edit_deadline", deadline)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return bumpRevision(tx)
	})
}

// UpdateTitle changes the title of a separata
func (r *SeparataRepository) UpdateTitle(id string, title string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Separata{}).Where("id = ?", id).Update("title", title)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return bumpRevision(tx)
	})
}

// GetRevisionMarker reads the current revision marker version
func (r *SeparataRepository) GetRevisionMarker() (int64, error) {
	var revision models.Revision
	if err := r.db.First(&revision, "id = 1").Error; err != nil {
		return 0, err
	}
	return revision.Version, nil
}
