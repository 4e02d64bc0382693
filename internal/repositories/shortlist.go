package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/resume-lens/internal/models"
)

type ShortlistRepository interface {
	Create(shortlist *models.Shortlist) error
}

type shortlistRepository struct {
	db *gorm.DB
}

func NewShortlistRepository(db *gorm.DB) ShortlistRepository {
	return &shortlistRepository{db: db}
}

// Create inserts the shortlist and its candidate rows in one transaction.
func (r *shortlistRepository) Create(shortlist *models.Shortlist) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(shortlist).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create shortlist: %w", err)
	}

	return nil
}
