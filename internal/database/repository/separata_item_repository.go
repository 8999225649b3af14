package repository

import (
	"github.com/sisventas/separata-backend/internal/models"

	"gorm.io/gorm"
)

type SeparataItemRepository struct {
	db *gorm.DB
}

func NewSeparataItemRepository(db *gorm.DB) *SeparataItemRepository {
	return &SeparataItemRepository{db: db}
}

// GetBySeparata retrieves all items of a separata in entry order
func (r *SeparataItemRepository) GetBySeparata(separataID string) ([]*models.SeparataItem, error) {
	var items []*models.SeparataItem
	err := r.db.Where("separata_id = ?", separataID).Order("created_at ASC").Find(&items).Error
	return items, err
}

// GetByID retrieves an item by ID
func (r *SeparataItemRepository) GetByID(id string) (*models.SeparataItem, error) {
	var item models.SeparataItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Save persists an item. When newSeparata is non-nil, no separata existed
// for the date range yet: the separata and the item are created in one
// transaction so the implicit create is atomic from the caller's side.
func (r *SeparataItemRepository) Save(item *models.SeparataItem, newSeparata *models.Separata) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if newSeparata != nil {
			if err := tx.Create(newSeparata).Error; err != nil {
				return err
			}
			item.SeparataID = newSeparata.ID
		}
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return bumpRevision(tx)
	})
}

// Update updates an item
func (r *SeparataItemRepository) Update(item *models.SeparataItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return bumpRevision(tx)
	})
}

// Delete deletes an item
func (r *SeparataItemRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.SeparataItem{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return bumpRevision(tx)
	})
}
