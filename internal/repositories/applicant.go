package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-lens/internal/models"
)

type ApplicantRepository interface {
	ListOpen() ([]models.JobApplicant, error)
	FindIDByName(name string) (uuid.UUID, error)
}

type applicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

// ListOpen implements ApplicantRepository.
func (r *applicantRepository) ListOpen() ([]models.JobApplicant, error) {
	var applicants []models.JobApplicant
	err := r.db.
		Where("status = ?", models.StatusOpen).
		Order("created_at ASC").
		Find(&applicants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list job applicants: %w", err)
	}

	return applicants, nil
}

// FindIDByName implements ApplicantRepository. The first applicant carrying
// the exact name wins, whatever its status.
func (r *applicantRepository) FindIDByName(name string) (uuid.UUID, error) {
	var applicant models.JobApplicant
	err := r.db.Select("id").Where("applicant_name = ?", name).Order("created_at ASC").First(&applicant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fmt.Errorf("job applicant %q: %w", name, ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("failed to find job applicant: %w", err)
	}

	return applicant.ID, nil
}
