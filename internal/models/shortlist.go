package models

import (
	"time"

	"github.com/google/uuid"
)

type Shortlist struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobOpeningID     uuid.UUID `gorm:"type:uuid;not null;index" json:"job_opening_id"`
	JDRequiredSkills string    `gorm:"type:text" json:"jd_required_skills"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	JobOpening JobOpening             `gorm:"foreignKey:JobOpeningID" json:"-"`
	Candidates []ShortlistedCandidate `gorm:"foreignKey:ShortlistID" json:"candidate_score_list"`
}

func (Shortlist) TableName() string {
	return "shortlists"
}

type ShortlistedCandidate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ShortlistID    uuid.UUID `gorm:"type:uuid;not null;index" json:"shortlist_id"`
	JobApplicantID uuid.UUID `gorm:"type:uuid;not null" json:"job_applicant"`
	ResumeName     string    `gorm:"type:text" json:"resume_name"`
	ExperienceYear float64   `json:"experience_year"`
	SkillsCount    string    `gorm:"type:text" json:"skills_count"`
	MatchedSkills  string    `gorm:"type:text" json:"matched_skills"`
	Score          string    `gorm:"type:text" json:"score"`
}

func (ShortlistedCandidate) TableName() string {
	return "shortlisted_candidates"
}
