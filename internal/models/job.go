package models

import (
	"time"

	"github.com/google/uuid"
)

type RecordStatus string

const (
	StatusOpen   RecordStatus = "Open"
	StatusClosed RecordStatus = "Closed"
)

// JobOpening is a posted position. Description holds the HTML body as
// authored in the record store.
type JobOpening struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobTitle    string       `gorm:"type:text;index" json:"job_title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      RecordStatus `gorm:"type:text;not null;default:'Open'" json:"status"`
	CreatedAt   time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (JobOpening) TableName() string {
	return "job_openings"
}

type JobApplicant struct {
	ID               uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicantName    string       `gorm:"type:text;index" json:"applicant_name"`
	EmailID          string       `gorm:"type:text" json:"email_id"`
	ResumeAttachment string       `gorm:"type:text" json:"resume_attachment"`
	ResumeLink       string       `gorm:"type:text" json:"resume_link"`
	Status           RecordStatus `gorm:"type:text;not null;default:'Open'" json:"status"`
	CreatedAt        time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (JobApplicant) TableName() string {
	return "job_applicants"
}
