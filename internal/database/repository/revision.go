package repository

import (
	"gorm.io/gorm"
)

// bumpRevision advances the shared revision marker. Called inside the same
// transaction as every separata/item mutation so pollers can detect change
// with a single cheap read.
func bumpRevision(tx *gorm.DB) error {
	return tx.Exec("UPDATE revisions SET version = version + 1, updated_at = NOW() WHERE id = 1").Error
}
