package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-lens/internal/config"
	"alfredoptarigan/resume-lens/internal/services"
)

// buildPipeline assembles the store-free matching pipeline. Qdrant, when
// configured, only serves as an embedding cache here.
func buildPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (services.MatchPipeline, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	var embedder services.Embedder = services.NewGeminiEmbedder(cfg.Gemini.APIKey, cfg.Gemini.EmbedModel)
	if cfg.Qdrant.URL != "" {
		store, err := services.NewQdrantStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, cfg.Qdrant.VectorSize, logger)
		if err != nil {
			return nil, err
		}
		if err := store.InitCollection(ctx); err != nil {
			return nil, err
		}
		embedder = services.NewCachedEmbedder(embedder, store, logger)
	}

	tagger := services.NewLazy(func() (services.Tagger, error) {
		return services.NewProseTagger()
	})
	extractor := services.NewTextExtractor()
	experience := services.NewExperienceParser()
	skills := services.NewSkillExtractor(tagger)

	return services.NewMatchPipeline(
		services.NewJobDescriptionParser(extractor, experience, skills),
		services.NewResumeParser(extractor, experience, skills),
		services.NewSimilarityScorer(embedder),
		services.NewMatchingEngine(),
		logger,
	), nil
}
