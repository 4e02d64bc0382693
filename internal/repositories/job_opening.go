package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/resume-lens/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

type JobOpeningRepository interface {
	ListOpen() ([]models.JobOpening, error)
	FindOpenByTitle(title string) (*models.JobOpening, error)
}

type jobOpeningRepository struct {
	db *gorm.DB
}

func NewJobOpeningRepository(db *gorm.DB) JobOpeningRepository {
	return &jobOpeningRepository{db: db}
}

// ListOpen implements JobOpeningRepository.
func (r *jobOpeningRepository) ListOpen() ([]models.JobOpening, error) {
	var jobs []models.JobOpening
	if err := r.db.Where("status = ?", models.StatusOpen).Order("created_at ASC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list job openings: %w", err)
	}

	return jobs, nil
}

// FindOpenByTitle implements JobOpeningRepository.
func (r *jobOpeningRepository) FindOpenByTitle(title string) (*models.JobOpening, error) {
	var job models.JobOpening
	err := r.db.Where("job_title = ? AND status = ?", title, models.StatusOpen).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job opening %q: %w", title, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find job opening: %w", err)
	}

	return &job, nil
}
