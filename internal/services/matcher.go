package services

import (
	"fmt"
	"math"

	"alfredoptarigan/resume-lens/internal/models"
)

// RoundPercentage rounds to two decimals, the precision scores are reported
// and classified at.
func RoundPercentage(p float64) float64 {
	return math.Round(p*100) / 100
}

// FormatPercentage renders a score as "87.25%".
func FormatPercentage(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// ClassifyTier maps a similarity percentage to its tier. Lower bounds are
// inclusive: 70 is TopMatched.
func ClassifyTier(percentage float64) models.Tier {
	s := RoundPercentage(percentage)
	switch {
	case s >= 80:
		return models.TierPerfectMatch
	case s >= 70:
		return models.TierTopMatch
	case s >= 60:
		return models.TierGoodMatch
	case s >= 50:
		return models.TierPoorMatch
	default:
		return models.TierNotGood
	}
}

type MatchingEngine interface {
	// Classify drops candidates outside the experience envelope, computes the
	// skill overlap of the rest and buckets them by tier in arrival order.
	Classify(scores []models.CandidateScore, envelope models.ExperienceRange, required models.SkillSet) map[models.Tier][]models.ClassifiedCandidate
}

type matchingEngine struct{}

func NewMatchingEngine() MatchingEngine {
	return &matchingEngine{}
}

func (m *matchingEngine) Classify(scores []models.CandidateScore, envelope models.ExperienceRange, required models.SkillSet) map[models.Tier][]models.ClassifiedCandidate {
	buckets := make(map[models.Tier][]models.ClassifiedCandidate, len(models.Tiers))
	for _, t := range models.Tiers {
		buckets[t] = []models.ClassifiedCandidate{}
	}

	for _, c := range scores {
		if !envelope.Contains(c.ExperienceYears) {
			continue
		}

		matched := required.Intersect(c.Skills)
		percentage := RoundPercentage(c.Percentage)
		tier := ClassifyTier(percentage)

		buckets[tier] = append(buckets[tier], models.ClassifiedCandidate{
			ApplicantName:   c.ApplicantName,
			ResumeName:      c.ResumeName,
			Percentage:      percentage,
			Score:           FormatPercentage(percentage),
			ExperienceYears: c.ExperienceYears,
			MatchedSkills:   matched,
			MatchedCount:    len(matched),
			TotalSkills:     len(required),
			Tier:            tier,
			FileURL:         c.FileURL,
			FilePath:        c.FilePath,
		})
	}

	return buckets
}
