package services

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"alfredoptarigan/resume-lens/internal/models"
)

var (
	skillsHeadingPattern    = regexp.MustCompile(`(?i)(Skills :|Skills:|Requisite Skills:|Required Skills:|Must Have:)`)
	skillsTerminatorPattern = regexp.MustCompile(`(?i)Preferred Skills|Education|Soft Skills|Roles and Responsibilities`)
	blockTagPattern         = regexp.MustCompile(`(?i)<(p|br|div|li|h[1-6])\b`)
)

// JDInput carries either raw text or a file path. Text wins when both are set.
type JDInput struct {
	Text     string
	FilePath string
}

type JobDescriptionParser interface {
	Parse(input JDInput) (*models.ParsedJobDescription, error)
}

type jobDescriptionParser struct {
	extractor  TextExtractor
	experience ExperienceParser
	skills     SkillExtractor
}

func NewJobDescriptionParser(extractor TextExtractor, experience ExperienceParser, skills SkillExtractor) JobDescriptionParser {
	return &jobDescriptionParser{
		extractor:  extractor,
		experience: experience,
		skills:     skills,
	}
}

// Parse extracts required skills from the skills section only and experience
// ranges from the whole text. Without any experience pattern the result holds
// the single (0,0) sentinel range.
func (p *jobDescriptionParser) Parse(input JDInput) (*models.ParsedJobDescription, error) {
	var text string
	switch {
	case input.Text != "":
		text = input.Text
	case input.FilePath != "":
		extracted, err := p.readFile(input.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description: %w", err)
		}
		text = extracted
	default:
		return nil, fmt.Errorf("%w: no job description text or file provided", ErrInput)
	}

	experience := p.experience.ParseJobDescription(text)
	if len(experience) == 0 {
		experience = []models.ExperienceRange{{Min: 0, Max: 0}}
	}

	required, err := p.skills.ExtractSkills(RequiredSkillsSection(text))
	if err != nil {
		return nil, fmt.Errorf("failed to extract required skills: %w", err)
	}

	return &models.ParsedJobDescription{
		RawText:        text,
		Experience:     experience,
		RequiredSkills: required,
	}, nil
}

func (p *jobDescriptionParser) readFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".doc", ".docx":
		return p.extractor.ExtractText(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, filepath.Base(path))
		}
		return string(data), nil
	}
}

// RequiredSkillsSection returns the trimmed text following the first skills
// heading up to the next known heading, or "" when there is no heading.
func RequiredSkillsSection(text string) string {
	loc := skillsHeadingPattern.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	rest := text[loc[1]:]
	if end := skillsTerminatorPattern.FindStringIndex(rest); end != nil {
		rest = rest[:end[0]]
	}

	return strings.TrimSpace(rest)
}

var htmlPolicy = bluemonday.StrictPolicy()

// StripHTML flattens a rich-text job description into a single line of text.
func StripHTML(body string) string {
	body = blockTagPattern.ReplaceAllString(body, " <$1")
	text := html.UnescapeString(htmlPolicy.Sanitize(body))
	return strings.Join(strings.Fields(text), " ")
}
