package services

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
)

type cachedEmbedder struct {
	embedder Embedder
	store    VectorStore
	log      *zap.Logger
}

// NewCachedEmbedder serves embeddings from store when present and writes new
// ones back. Store failures degrade to calling embedder directly.
func NewCachedEmbedder(embedder Embedder, store VectorStore, log *zap.Logger) Embedder {
	return &cachedEmbedder{embedder: embedder, store: store, log: log}
}

// Embed implements Embedder.
func (c *cachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, ok, err := c.store.Lookup(ctx, text)
	if err != nil {
		c.log.Warn("embedding cache lookup failed", zap.Error(err))
	}
	if ok {
		return vec, nil
	}

	vec, err = c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.store.Upsert(ctx, KindCached, "", text, vec); err != nil {
		c.log.Warn("embedding cache write failed", zap.Error(err))
	}
	return vec, nil
}

type SimilarityScorer interface {
	// Score returns the cosine similarity of the two texts' embeddings.
	Score(ctx context.Context, jdText, resumeText string) (float64, error)
}

type similarityScorer struct {
	embedder Embedder
}

func NewSimilarityScorer(embedder Embedder) SimilarityScorer {
	return &similarityScorer{embedder: embedder}
}

// Score implements SimilarityScorer.
func (s *similarityScorer) Score(ctx context.Context, jdText, resumeText string) (float64, error) {
	jdVec, err := s.embedder.Embed(ctx, jdText)
	if err != nil {
		return 0, fmt.Errorf("failed to embed job description: %w", err)
	}

	resumeVec, err := s.embedder.Embed(ctx, resumeText)
	if err != nil {
		return 0, fmt.Errorf("failed to embed resume: %w", err)
	}

	if len(jdVec) != len(resumeVec) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(jdVec), len(resumeVec))
	}

	return CosineSimilarity(jdVec, resumeVec), nil
}

// CosineSimilarity is 0 when either vector has zero norm or the lengths differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
