package services

import (
	"regexp"
	"strconv"
	"strings"

	"alfredoptarigan/resume-lens/internal/models"
)

// SingleValueCeiling is the width given to a lone "<n> years" requirement in a
// job description: "3+ years" becomes (3, 8). Policy choice, not a fact about
// the posting.
const SingleValueCeiling = 5.0

var (
	jdExperiencePattern = regexp.MustCompile(
		`(?i)(?:Work Experience|Professional Experience|Experience|Experience range|Min Experience|Max Experience|Exp|Min Exp|Max Exp|Experience:|Experience :)\s*[:\-]?\s*(\d+(\.\d+)?)\s*(?:to|-|–)\s*(\d+(\.\d+)?)\s*(?:years|Years)` +
			`|\b(\d+(\.\d+)?)\+\s*(?:years|Years)` +
			`|\b(\d+(\.\d+)?)\s*(?:\+)?\s*(?:years|Years)` +
			`|\b(\d+(\.\d+)?)\s*-\s*(\d+(\.\d+)?)\s*(?:yrs|Years)`,
	)

	resumeExperiencePattern = regexp.MustCompile(
		`(?i)(\d+(?:\.\d+)?\+?)\s*(?:years?|yr|yrs|years of experience|years' experience)`,
	)
)

type ExperienceParser interface {
	// ParseJobDescription returns every range found, in text order. An empty
	// result means no pattern matched.
	ParseJobDescription(text string) []models.ExperienceRange
	// ParseResume returns the largest year count mentioned, or 0.
	ParseResume(text string) float64
}

type experienceParser struct{}

func NewExperienceParser() ExperienceParser {
	return &experienceParser{}
}

func (p *experienceParser) ParseJobDescription(text string) []models.ExperienceRange {
	var ranges []models.ExperienceRange

	for _, m := range jdExperiencePattern.FindAllStringSubmatch(text, -1) {
		switch {
		case m[1] != "" && m[3] != "":
			ranges = append(ranges, models.ExperienceRange{Min: parseYears(m[1]), Max: parseYears(m[3])})
		case m[5] != "":
			n := parseYears(m[5])
			ranges = append(ranges, models.ExperienceRange{Min: n, Max: n + SingleValueCeiling})
		case m[7] != "":
			n := parseYears(m[7])
			ranges = append(ranges, models.ExperienceRange{Min: n, Max: n + SingleValueCeiling})
		case m[9] != "" && m[11] != "":
			ranges = append(ranges, models.ExperienceRange{Min: parseYears(m[9]), Max: parseYears(m[11])})
		}
	}

	return ranges
}

func (p *experienceParser) ParseResume(text string) float64 {
	var best float64
	found := false

	for _, m := range resumeExperiencePattern.FindAllStringSubmatch(text, -1) {
		years, err := strconv.ParseFloat(strings.TrimRight(m[1], "+"), 64)
		if err != nil {
			continue
		}
		if !found || years > best {
			best = years
			found = true
		}
	}

	return best
}

// Envelope folds every range into the global (min of mins, max of maxes)
// window. ok is false for an empty input.
func Envelope(ranges []models.ExperienceRange) (env models.ExperienceRange, ok bool) {
	if len(ranges) == 0 {
		return models.ExperienceRange{}, false
	}

	env = ranges[0]
	for _, r := range ranges[1:] {
		env.Min = min(env.Min, r.Min)
		env.Max = max(env.Max, r.Max)
	}
	return env, true
}

func parseYears(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
