package services

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-lens/internal/models"
	"alfredoptarigan/resume-lens/internal/repositories"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type ShortlistService interface {
	// Persist stores the PerfectMatched, TopMatched and GoodMatched
	// candidates of report against the open job opening titled jobTitle.
	// The returned status is always set; the error wraps ErrPersistence.
	Persist(report *models.MatchReport, jobTitle string) (*models.ShortlistStatus, error)
}

type shortlistService struct {
	jobRepo       repositories.JobOpeningRepository
	applicantRepo repositories.ApplicantRepository
	shortlistRepo repositories.ShortlistRepository
	log           *zap.Logger
}

func NewShortlistService(
	jobRepo repositories.JobOpeningRepository,
	applicantRepo repositories.ApplicantRepository,
	shortlistRepo repositories.ShortlistRepository,
	log *zap.Logger,
) ShortlistService {
	return &shortlistService{
		jobRepo:       jobRepo,
		applicantRepo: applicantRepo,
		shortlistRepo: shortlistRepo,
		log:           log,
	}
}

// Persist implements ShortlistService.
func (s *shortlistService) Persist(report *models.MatchReport, jobTitle string) (*models.ShortlistStatus, error) {
	if jobTitle == "" || report == nil {
		return failed("Job Opening and Candidate Score List are required.")
	}

	job, err := s.jobRepo.FindOpenByTitle(jobTitle)
	if err != nil {
		status, perr := failed(fmt.Sprintf("Job Opening '%s' not found or not open.", jobTitle))
		if errors.Is(err, repositories.ErrNotFound) {
			return status, fmt.Errorf("%w: %w", perr, repositories.ErrNotFound)
		}
		s.log.Error("❌ job opening lookup failed", zap.String("job_title", jobTitle), zap.Error(err))
		return status, perr
	}

	shortlist := &models.Shortlist{
		JobOpeningID:     job.ID,
		JDRequiredSkills: strings.Join(report.RequiredSkills.Sorted(), ", "),
	}

	for _, tier := range models.Tiers {
		if !tier.Shortlisted() {
			continue
		}

		for _, c := range report.Buckets[tier] {
			applicantID, err := s.applicantRepo.FindIDByName(c.ApplicantName)
			if err != nil {
				s.log.Warn("⚠️  skipping unresolved candidate",
					zap.String("applicant", c.ApplicantName),
					zap.Error(err),
				)
				continue
			}

			shortlist.Candidates = append(shortlist.Candidates, models.ShortlistedCandidate{
				JobApplicantID: applicantID,
				ResumeName:     c.ResumeName,
				ExperienceYear: c.ExperienceYears,
				SkillsCount:    c.MatchedLabel(),
				MatchedSkills:  strings.Join(c.MatchedSkills.Sorted(), ", "),
				Score:          c.Score,
			})
		}
	}

	if len(shortlist.Candidates) == 0 {
		return failed("No valid candidates found for shortlisting.")
	}

	if err := s.shortlistRepo.Create(shortlist); err != nil {
		s.log.Error("❌ failed to save shortlist", zap.Error(err))
		return failed("Shortlisted candidates could not be saved.")
	}

	s.log.Info("✅ shortlist saved",
		zap.String("job_title", jobTitle),
		zap.Int("candidates", len(shortlist.Candidates)),
	)

	return &models.ShortlistStatus{
		Status:      StatusSuccess,
		Message:     "Shortlisted candidates saved successfully.",
		ShortlistID: shortlist.ID.String(),
		Saved:       len(shortlist.Candidates),
	}, nil
}

func failed(message string) (*models.ShortlistStatus, error) {
	return &models.ShortlistStatus{Status: StatusError, Message: message},
		fmt.Errorf("%w: %s", ErrPersistence, message)
}
