package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-lens/internal/models"
	"alfredoptarigan/resume-lens/internal/repositories"
)

const (
	defaultSimilarLimit = 10
	maxSimilarLimit     = 100
)

type MatchService interface {
	RunMatch(ctx context.Context, req models.MatchRequest) (*models.MatchReport, error)
	SimilarResumes(ctx context.Context, jdText string, limit int) ([]models.SimilarResume, error)
	ListOpenJobs() ([]models.JobDescriptionResponse, error)
	ListOpenApplicants() ([]models.ApplicantResponse, error)
}

type matchService struct {
	jobRepo       repositories.JobOpeningRepository
	applicantRepo repositories.ApplicantRepository
	pipeline      MatchPipeline
	shortlist     ShortlistService
	storage       StorageService
	tokens        TokenStore
	embedder      Embedder
	vectorStore   VectorStore
	baseURL       string
	log           *zap.Logger
}

// MatchServiceDeps groups the collaborators of the match service. VectorStore
// may be nil, in which case similar-resume search is unavailable.
type MatchServiceDeps struct {
	JobRepo       repositories.JobOpeningRepository
	ApplicantRepo repositories.ApplicantRepository
	Pipeline      MatchPipeline
	Shortlist     ShortlistService
	Storage       StorageService
	Tokens        TokenStore
	Embedder      Embedder
	VectorStore   VectorStore
	BaseURL       string
	Log           *zap.Logger
}

func NewMatchService(deps MatchServiceDeps) MatchService {
	return &matchService{
		jobRepo:       deps.JobRepo,
		applicantRepo: deps.ApplicantRepo,
		pipeline:      deps.Pipeline,
		shortlist:     deps.Shortlist,
		storage:       deps.Storage,
		tokens:        deps.Tokens,
		embedder:      deps.Embedder,
		vectorStore:   deps.VectorStore,
		baseURL:       strings.TrimRight(deps.BaseURL, "/"),
		log:           deps.Log,
	}
}

// RunMatch implements MatchService. It scores every open applicant's resume
// against the job description, attaches tokenized file links and, when a job
// title is given, saves the shortlist. A shortlist failure is reported in the
// result and never fails the run.
func (s *matchService) RunMatch(ctx context.Context, req models.MatchRequest) (*models.MatchReport, error) {
	jd, err := s.jobDescriptionInput(req)
	if err != nil {
		return nil, err
	}

	candidates, err := s.openCandidates(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Info("🔄 starting match run",
		zap.String("job_title", req.JobTitle),
		zap.Int("candidates", len(candidates)),
	)

	report, err := s.pipeline.Run(ctx, jd, candidates)
	if err != nil {
		return nil, err
	}
	report.JobTitle = req.JobTitle

	s.attachLinks(report)

	if req.JobTitle != "" {
		status, err := s.shortlist.Persist(report, req.JobTitle)
		if err != nil {
			s.log.Warn("⚠️  shortlist not saved", zap.Error(err))
		}
		report.Shortlist = status
	}

	return report, nil
}

func (s *matchService) jobDescriptionInput(req models.MatchRequest) (JDInput, error) {
	switch {
	case strings.TrimSpace(req.JDText) != "":
		return JDInput{Text: req.JDText}, nil
	case req.JDFilePath != "":
		return JDInput{FilePath: req.JDFilePath}, nil
	case req.JobTitle != "":
		job, err := s.jobRepo.FindOpenByTitle(req.JobTitle)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return JDInput{}, fmt.Errorf("%w: job opening '%s' not found or not open", ErrInput, req.JobTitle)
			}
			return JDInput{}, err
		}
		text := StripHTML(job.Description)
		if text == "" {
			return JDInput{}, fmt.Errorf("%w: job opening '%s' has no description", ErrInput, req.JobTitle)
		}
		return JDInput{Text: text}, nil
	default:
		return JDInput{}, fmt.Errorf("%w: job description text, file or job title is required", ErrInput)
	}
}

// openCandidates resolves the attachment of every open applicant. Applicants
// without an attachment are left out.
func (s *matchService) openCandidates(ctx context.Context) ([]ResumeCandidate, error) {
	applicants, err := s.applicantRepo.ListOpen()
	if err != nil {
		return nil, err
	}

	candidates := make([]ResumeCandidate, 0, len(applicants))
	for _, a := range applicants {
		if a.ResumeAttachment == "" {
			continue
		}

		file, err := s.storage.ResolveResume(a.ResumeAttachment)
		if err != nil {
			s.log.Warn("⚠️  skipping unusable resume reference", zap.String("applicant", a.ApplicantName), zap.Error(err))
			continue
		}
		if IsAllowedResume(file.Name) {
			if err := s.storage.EnsureLocal(ctx, file); err != nil {
				s.log.Warn("⚠️  resume mirror failed", zap.String("resume", file.Name), zap.Error(err))
			}
		}

		candidates = append(candidates, ResumeCandidate{
			ApplicantName: a.ApplicantName,
			ResumeName:    file.Name,
			Path:          file.Path,
			FileURL:       a.ResumeAttachment,
		})
	}

	return candidates, nil
}

// attachLinks issues one token per candidate and exposes it through the
// view and download endpoints. Paths themselves never leave the service.
func (s *matchService) attachLinks(report *models.MatchReport) {
	for tier, bucket := range report.Buckets {
		for i := range bucket {
			token, err := s.tokens.Issue(bucket[i].FilePath)
			if err != nil {
				s.log.Warn("⚠️  failed to issue file token", zap.Error(err))
				continue
			}
			q := url.QueryEscape(token)
			bucket[i].ViewURL = s.baseURL + "/api/v1/files/view?token=" + q
			bucket[i].DownloadURL = s.baseURL + "/api/v1/files/download?token=" + q
		}
		report.Buckets[tier] = bucket
	}
}

// SimilarResumes implements MatchService.
func (s *matchService) SimilarResumes(ctx context.Context, jdText string, limit int) ([]models.SimilarResume, error) {
	if s.vectorStore == nil {
		return nil, fmt.Errorf("%w: vector store is not configured", ErrUnavailable)
	}
	if strings.TrimSpace(jdText) == "" {
		return nil, fmt.Errorf("%w: jd_text is required", ErrInput)
	}

	if limit <= 0 {
		limit = defaultSimilarLimit
	}
	limit = min(limit, maxSimilarLimit)

	vec, err := s.embedder.Embed(ctx, jdText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	results, err := s.vectorStore.SearchSimilar(ctx, vec, KindResume, limit)
	if err != nil {
		return nil, err
	}

	out := make([]models.SimilarResume, 0, len(results))
	for _, r := range results {
		out = append(out, models.SimilarResume{Reference: r.Reference, Score: r.Score})
	}
	return out, nil
}

// ListOpenJobs implements MatchService.
func (s *matchService) ListOpenJobs() ([]models.JobDescriptionResponse, error) {
	jobs, err := s.jobRepo.ListOpen()
	if err != nil {
		return nil, err
	}

	out := make([]models.JobDescriptionResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, models.JobDescriptionResponse{
			JobTitle:    j.JobTitle,
			Description: StripHTML(j.Description),
		})
	}
	return out, nil
}

// ListOpenApplicants implements MatchService.
func (s *matchService) ListOpenApplicants() ([]models.ApplicantResponse, error) {
	applicants, err := s.applicantRepo.ListOpen()
	if err != nil {
		return nil, err
	}

	out := make([]models.ApplicantResponse, 0, len(applicants))
	for _, a := range applicants {
		out = append(out, models.ApplicantResponse{
			ApplicantName:    a.ApplicantName,
			EmailID:          a.EmailID,
			ResumeAttachment: a.ResumeAttachment,
		})
	}
	return out, nil
}
