package services

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"alfredoptarigan/resume-lens/internal/models"
)

// ResumeCandidate is one resume file to score, with the applicant it
// belongs to.
type ResumeCandidate struct {
	ApplicantName string
	ResumeName    string
	Path          string
	FileURL       string
}

type MatchPipeline interface {
	// Run parses the job description, scores every candidate against it and
	// classifies the ones inside the experience envelope. A candidate that
	// fails is recorded in the report and does not stop the run.
	Run(ctx context.Context, jd JDInput, candidates []ResumeCandidate) (*models.MatchReport, error)
}

type matchPipeline struct {
	jdParser     JobDescriptionParser
	resumeParser ResumeParser
	scorer       SimilarityScorer
	engine       MatchingEngine
	log          *zap.Logger
}

func NewMatchPipeline(
	jdParser JobDescriptionParser,
	resumeParser ResumeParser,
	scorer SimilarityScorer,
	engine MatchingEngine,
	log *zap.Logger,
) MatchPipeline {
	return &matchPipeline{
		jdParser:     jdParser,
		resumeParser: resumeParser,
		scorer:       scorer,
		engine:       engine,
		log:          log,
	}
}

// Run implements MatchPipeline.
func (p *matchPipeline) Run(ctx context.Context, jd JDInput, candidates []ResumeCandidate) (*models.MatchReport, error) {
	parsed, err := p.jdParser.Parse(jd)
	if err != nil {
		return nil, err
	}

	envelope, ok := Envelope(parsed.Experience)
	if !ok || envelope.IsZero() {
		return nil, fmt.Errorf("%w: experience range not found in job description", ErrInput)
	}

	p.log.Info("📄 job description parsed",
		zap.Int("required_skills", len(parsed.RequiredSkills)),
		zap.Float64("min_years", envelope.Min),
		zap.Float64("max_years", envelope.Max),
	)

	report := models.NewMatchReport()
	report.RequiredSkills = parsed.RequiredSkills
	report.ExperienceEnvelope = envelope

	var scores []models.CandidateScore
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("match run cancelled: %w", err)
		}

		name := c.ResumeName
		if name == "" {
			name = filepath.Base(c.Path)
		}
		if !IsAllowedResume(name) {
			p.log.Debug("skipping unsupported resume", zap.String("resume", name))
			continue
		}

		score, err := p.scoreResume(ctx, parsed.RawText, c)
		if err != nil {
			p.log.Warn("⚠️  resume failed",
				zap.String("applicant", c.ApplicantName),
				zap.String("resume", name),
				zap.Error(err),
			)
			report.Failures = append(report.Failures, models.ResumeFailure{
				ApplicantName: c.ApplicantName,
				ResumeName:    name,
				Error:         err.Error(),
			})
			continue
		}

		score.ResumeName = name
		scores = append(scores, *score)
	}

	report.Processed = len(scores)
	report.Buckets = p.engine.Classify(scores, envelope, parsed.RequiredSkills)

	p.log.Info("✅ match run finished",
		zap.Int("processed", report.Processed),
		zap.Int("failed", len(report.Failures)),
	)

	return report, nil
}

func (p *matchPipeline) scoreResume(ctx context.Context, jdText string, c ResumeCandidate) (*models.CandidateScore, error) {
	resume, err := p.resumeParser.Parse(c.Path)
	if err != nil {
		return nil, err
	}

	similarity, err := p.scorer.Score(ctx, jdText, resume.RawText)
	if err != nil {
		return nil, err
	}

	return &models.CandidateScore{
		ApplicantName:   c.ApplicantName,
		Percentage:      similarity * 100,
		ExperienceYears: resume.TotalExperience,
		Skills:          resume.Skills,
		FileURL:         c.FileURL,
		FilePath:        c.Path,
	}, nil
}
