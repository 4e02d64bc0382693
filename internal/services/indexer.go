package services

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// IndexSummary counts the outcome of an indexing pass.
type IndexSummary struct {
	Indexed int
	Skipped int
	Failed  int
}

// ResumeIndexer embeds resumes into the vector store so they can be found by
// similarity to a job description.
type ResumeIndexer interface {
	IndexAll(ctx context.Context, candidates []ResumeCandidate) IndexSummary
}

type resumeIndexer struct {
	extractor   TextExtractor
	embedder    Embedder
	store       VectorStore
	concurrency int
	log         *zap.Logger
}

func NewResumeIndexer(extractor TextExtractor, embedder Embedder, store VectorStore, concurrency int, log *zap.Logger) ResumeIndexer {
	return &resumeIndexer{
		extractor:   extractor,
		embedder:    embedder,
		store:       store,
		concurrency: max(concurrency, 1),
		log:         log,
	}
}

// IndexAll implements ResumeIndexer. Resumes are fanned out to a fixed pool
// of workers; one failure never stops the others.
func (r *resumeIndexer) IndexAll(ctx context.Context, candidates []ResumeCandidate) IndexSummary {
	r.log.Info("🚀 starting resume indexer", zap.Int("workers", r.concurrency), zap.Int("resumes", len(candidates)))

	var (
		indexed, skipped, failed atomic.Int64
		wg                       sync.WaitGroup
	)
	queue := make(chan ResumeCandidate)

	for i := 0; i < r.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for c := range queue {
				if !IsAllowedResume(c.ResumeName) {
					skipped.Add(1)
					continue
				}
				if err := r.indexOne(ctx, c); err != nil {
					r.log.Warn("❌ failed to index resume",
						zap.Int("worker", workerID),
						zap.String("resume", c.ResumeName),
						zap.Error(err),
					)
					failed.Add(1)
					continue
				}
				r.log.Debug("✅ resume indexed", zap.Int("worker", workerID), zap.String("resume", c.ResumeName))
				indexed.Add(1)
			}
		}(i + 1)
	}

feed:
	for _, c := range candidates {
		select {
		case queue <- c:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()

	return IndexSummary{
		Indexed: int(indexed.Load()),
		Skipped: int(skipped.Load()),
		Failed:  int(failed.Load()),
	}
}

func (r *resumeIndexer) indexOne(ctx context.Context, c ResumeCandidate) error {
	text, err := r.extractor.ExtractText(c.Path)
	if err != nil {
		return err
	}

	vec, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return err
	}

	reference := c.FileURL
	if reference == "" {
		reference = c.ResumeName
	}
	return r.store.Upsert(ctx, KindResume, reference, text, vec)
}
