package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"alfredoptarigan/resume-lens/internal/models"
	"alfredoptarigan/resume-lens/internal/repositories"
)

// fakeTagger tags by lookup; unknown words default to NOUN so tests state
// every surviving term explicitly.
type fakeTagger struct {
	tags map[string]string
}

func (f *fakeTagger) Tag(text string) ([]Token, error) {
	var out []Token
	for _, field := range splitWords(text) {
		pos, ok := f.tags[field]
		if !ok {
			pos = "NOUN"
			if strings.IndexFunc(field, unicode.IsLetter) < 0 {
				pos = "PUNCT"
			}
		}
		out = append(out, Token{Text: field, POS: pos})
	}
	return out, nil
}

// splitWords separates trailing punctuation the way a tokenizer would.
func splitWords(text string) []string {
	var out []string
	for _, f := range strings.Fields(text) {
		trail := ""
		for len(f) > 1 && strings.ContainsAny(f[len(f)-1:], ".,:;") {
			trail = f[len(f)-1:] + trail
			f = f[:len(f)-1]
		}
		out = append(out, f)
		for _, r := range trail {
			out = append(out, string(r))
		}
	}
	return out
}

func lazyTagger(tags map[string]string) *Lazy[Tagger] {
	return NewLazy(func() (Tagger, error) { return &fakeTagger{tags: tags}, nil })
}

// fakeEmbedder returns canned vectors keyed by exact text.
type fakeEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	v, ok := f.vectors[text]
	if !ok {
		return nil, errors.New("no vector for text")
	}
	return v, nil
}

type fakeJobRepo struct {
	jobs []models.JobOpening
}

func (f *fakeJobRepo) ListOpen() ([]models.JobOpening, error) {
	var out []models.JobOpening
	for _, j := range f.jobs {
		if j.Status == models.StatusOpen {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) FindOpenByTitle(title string) (*models.JobOpening, error) {
	for _, j := range f.jobs {
		if j.JobTitle == title && j.Status == models.StatusOpen {
			return &j, nil
		}
	}
	return nil, fmt.Errorf("job opening %q: %w", title, repositories.ErrNotFound)
}

type fakeApplicantRepo struct {
	applicants []models.JobApplicant
}

func (f *fakeApplicantRepo) ListOpen() ([]models.JobApplicant, error) {
	var out []models.JobApplicant
	for _, a := range f.applicants {
		if a.Status == models.StatusOpen {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicantRepo) FindIDByName(name string) (uuid.UUID, error) {
	for _, a := range f.applicants {
		if a.ApplicantName == name {
			return a.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("job applicant %q: %w", name, repositories.ErrNotFound)
}

type fakeShortlistRepo struct {
	saved []*models.Shortlist
	err   error
}

func (f *fakeShortlistRepo) Create(shortlist *models.Shortlist) error {
	if f.err != nil {
		return f.err
	}
	shortlist.ID = uuid.New()
	f.saved = append(f.saved, shortlist)
	return nil
}
