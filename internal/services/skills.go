package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"alfredoptarigan/resume-lens/internal/models"
)

// excludedPOS drops tokens by grammatical role. Nouns and adjectives are in
// here, so what survives is mostly proper nouns, symbols and foreign words.
// Kept as-is pending product clarification.
var excludedPOS = map[string]bool{
	"NOUN":  true,
	"ADJ":   true,
	"PRON":  true,
	"CONJ":  true,
	"SCONJ": true,
	"ADP":   true,
	"AUX":   true,
	"VERB":  true,
	"DET":   true,
	"CCONJ": true,
}

var excludedTerms = map[string]bool{}

func init() {
	for _, term := range []string{
		"etc", "to", "(", ")", "-", "_", ".", "/", ",", "e.g.", "\n", ":", "’s",
		"hands", "indepth", "+", "complete", "master", "bachelor’s/", "bachelor",
		"engineering/", " ", "", "independently", "ip", "identity", "closely", "http",
		"framework", "one", "highly", "pipeline", "serverless", "strong", "compute", "code",
		"experience", "web", "storage", "also", "lambda", "access", "simple",
		"quickly", "especially", "certification", "elastic", "developer", "information",
		"infrastructure", "iam", "service", "effectively", "management", "dependency", "entity",
		"core", "parallel", "async", "basics", "security", "patterns", "json", "good",
		"!", "~", "`", "@", "$", "%", "^", "*",
	} {
		excludedTerms[term] = true
	}
}

var (
	bulletPattern     = regexp.MustCompile(`[•\-–]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

type SkillExtractor interface {
	ExtractSkills(text string) (models.SkillSet, error)
}

type skillExtractor struct {
	tagger *Lazy[Tagger]
}

func NewSkillExtractor(tagger *Lazy[Tagger]) SkillExtractor {
	return &skillExtractor{tagger: tagger}
}

// ExtractSkills strips bullets, collapses whitespace, tags the text and keeps
// the lower-cased tokens that pass both the POS and the stop-term filter.
func (s *skillExtractor) ExtractSkills(text string) (models.SkillSet, error) {
	if strings.TrimSpace(text) == "" {
		return models.SkillSet{}, nil
	}

	tagger, err := s.tagger.Get()
	if err != nil {
		return nil, fmt.Errorf("tagger unavailable: %w", err)
	}

	text = bulletPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")

	tokens, err := tagger.Tag(text)
	if err != nil {
		return nil, err
	}

	skills := models.SkillSet{}
	for _, tok := range tokens {
		term := strings.ToLower(tok.Text)
		if excludedPOS[tok.POS] || isExcludedTerm(term) {
			continue
		}
		skills.Add(term)
	}

	return skills, nil
}

func isExcludedTerm(term string) bool {
	return excludedTerms[term] || isSmallCount(term)
}

// isSmallCount reports whether term is the canonical spelling of an integer
// in 1..100000 ("7", "2024"; not "007" or "+3").
func isSmallCount(term string) bool {
	if term == "" || term[0] == '0' || len(term) > 6 {
		return false
	}
	for _, r := range term {
		if r < '0' || r > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(term)
	return err == nil && n >= 1 && n <= 100000
}
