package services

import (
	"fmt"

	"alfredoptarigan/resume-lens/internal/models"
)

type ResumeParser interface {
	Parse(filePath string) (*models.ParsedResume, error)
}

type resumeParser struct {
	extractor  TextExtractor
	experience ExperienceParser
	skills     SkillExtractor
}

func NewResumeParser(extractor TextExtractor, experience ExperienceParser, skills SkillExtractor) ResumeParser {
	return &resumeParser{
		extractor:  extractor,
		experience: experience,
		skills:     skills,
	}
}

// Parse runs experience and skill extraction over the whole resume.
func (p *resumeParser) Parse(filePath string) (*models.ParsedResume, error) {
	text, err := p.extractor.ExtractText(filePath)
	if err != nil {
		return nil, err
	}

	skills, err := p.skills.ExtractSkills(text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume skills: %w", err)
	}

	return &models.ParsedResume{
		RawText:         text,
		TotalExperience: p.experience.ParseResume(text),
		Skills:          skills,
	}, nil
}
