package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ExperienceRange is a years-of-experience window, Min <= Max.
type ExperienceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IsZero reports whether r is the (0,0) sentinel used when a job
// description carries no recognizable experience pattern.
func (r ExperienceRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Contains is inclusive on both ends.
func (r ExperienceRange) Contains(years float64) bool {
	return r.Min <= years && years <= r.Max
}

// SkillSet is a de-duplicated set of lower-cased terms.
type SkillSet map[string]struct{}

func NewSkillSet(terms ...string) SkillSet {
	s := make(SkillSet, len(terms))
	for _, t := range terms {
		s.Add(t)
	}
	return s
}

func (s SkillSet) Add(term string) {
	s[term] = struct{}{}
}

func (s SkillSet) Has(term string) bool {
	_, ok := s[term]
	return ok
}

// Sorted returns the members in lexical order.
func (s SkillSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Intersect compares members case-insensitively against other and returns
// the shared terms as they appear in s.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	lowered := make(SkillSet, len(other))
	for term := range other {
		lowered.Add(strings.ToLower(term))
	}

	out := SkillSet{}
	for term := range s {
		if lowered.Has(strings.ToLower(term)) {
			out.Add(term)
		}
	}
	return out
}

func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var terms []string
	if err := json.Unmarshal(data, &terms); err != nil {
		return err
	}
	*s = NewSkillSet(terms...)
	return nil
}

type ParsedJobDescription struct {
	RawText        string            `json:"raw_text"`
	Experience     []ExperienceRange `json:"experience"`
	RequiredSkills SkillSet          `json:"jd_required_skills"`
}

type ParsedResume struct {
	RawText         string   `json:"raw_text"`
	TotalExperience float64  `json:"total_experience"`
	Skills          SkillSet `json:"resume_skills"`
}

// Tier is a match-quality bucket assigned from the similarity percentage.
type Tier string

const (
	TierPerfectMatch Tier = "PerfectMatched"
	TierTopMatch     Tier = "TopMatched"
	TierGoodMatch    Tier = "GoodMatched"
	TierPoorMatch    Tier = "PoorMatched"
	TierNotGood      Tier = "NotGood"
)

// Tiers lists every tier from best to worst.
var Tiers = []Tier{TierPerfectMatch, TierTopMatch, TierGoodMatch, TierPoorMatch, TierNotGood}

// Shortlisted reports whether candidates in t are persisted to a shortlist.
func (t Tier) Shortlisted() bool {
	return t == TierPerfectMatch || t == TierTopMatch || t == TierGoodMatch
}

// CandidateScore is one resume scored against the job description.
type CandidateScore struct {
	ApplicantName   string   `json:"applicant_name"`
	ResumeName      string   `json:"resume_name"`
	Percentage      float64  `json:"percentage"`
	ExperienceYears float64  `json:"experience_years"`
	Skills          SkillSet `json:"resume_skills"`
	FileURL         string   `json:"file_url"`
	FilePath        string   `json:"-"`
}

type ClassifiedCandidate struct {
	ApplicantName   string   `json:"applicant_name"`
	ResumeName      string   `json:"resume_name"`
	Percentage      float64  `json:"percentage"`
	Score           string   `json:"score"`
	ExperienceYears float64  `json:"experience_years"`
	MatchedSkills   SkillSet `json:"matched_skills"`
	MatchedCount    int      `json:"matched_count"`
	TotalSkills     int      `json:"total_skills"`
	Tier            Tier     `json:"tier"`
	ViewURL         string   `json:"view_url,omitempty"`
	DownloadURL     string   `json:"download_url,omitempty"`
	FileURL         string   `json:"-"`
	FilePath        string   `json:"-"`
}

// MatchedLabel renders the overlap as "N out of M".
func (c ClassifiedCandidate) MatchedLabel() string {
	return fmt.Sprintf("%d out of %d", c.MatchedCount, c.TotalSkills)
}

// ResumeFailure records a resume that could not be parsed or scored.
type ResumeFailure struct {
	ApplicantName string `json:"applicant_name"`
	ResumeName    string `json:"resume_name"`
	Error         string `json:"error"`
}

type ShortlistStatus struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	ShortlistID string `json:"shortlist_id,omitempty"`
	Saved       int    `json:"saved,omitempty"`
}

type MatchReport struct {
	JobTitle           string                         `json:"job_title,omitempty"`
	Buckets            map[Tier][]ClassifiedCandidate `json:"matched_resumes"`
	RequiredSkills     SkillSet                       `json:"jd_required_skills"`
	ExperienceEnvelope ExperienceRange                `json:"experience_envelope"`
	Processed          int                            `json:"processed"`
	Failures           []ResumeFailure                `json:"failures,omitempty"`
	Shortlist          *ShortlistStatus               `json:"shortlist,omitempty"`
}

// NewMatchReport returns a report with every tier bucket present.
func NewMatchReport() *MatchReport {
	buckets := make(map[Tier][]ClassifiedCandidate, len(Tiers))
	for _, t := range Tiers {
		buckets[t] = []ClassifiedCandidate{}
	}
	return &MatchReport{Buckets: buckets, RequiredSkills: SkillSet{}}
}

// Candidates flattens the buckets from best tier to worst.
func (r *MatchReport) Candidates() []ClassifiedCandidate {
	var out []ClassifiedCandidate
	for _, t := range Tiers {
		out = append(out, r.Buckets[t]...)
	}
	return out
}
