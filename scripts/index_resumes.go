package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-lens/internal/config"
	"alfredoptarigan/resume-lens/internal/repositories"
	"alfredoptarigan/resume-lens/internal/services"
)

func main() {
	workers := flag.Int("workers", 4, "number of concurrent indexing workers")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("❌ Failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("🚀 Starting resume indexing...")

	if cfg.Qdrant.URL == "" {
		logger.Fatal("❌ QDRANT_URL is required for indexing")
	}

	ctx := context.Background()

	db, err := config.InitDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("❌ Failed to initialize database", zap.Error(err))
	}

	store, err := services.NewQdrantStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.Qdrant.VectorSize,
		logger,
	)
	if err != nil {
		logger.Fatal("❌ Failed to initialize Qdrant", zap.Error(err))
	}

	if err := store.InitCollection(ctx); err != nil {
		logger.Fatal("❌ Failed to initialize collection", zap.Error(err))
	}

	var fetcher services.ObjectFetcher
	if cfg.S3.Bucket != "" {
		fetcher, err = services.NewS3Fetcher(ctx, services.S3Options{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			logger.Fatal("❌ Failed to initialize object store", zap.Error(err))
		}
	}
	storage := services.NewStorageService(cfg.Storage.UploadPath, cfg.Files.PrivateDir, cfg.Files.PublicDir, fetcher, logger)

	applicants, err := repositories.NewApplicantRepository(db).ListOpen()
	if err != nil {
		logger.Fatal("❌ Failed to list applicants", zap.Error(err))
	}

	var candidates []services.ResumeCandidate
	for _, a := range applicants {
		if a.ResumeAttachment == "" {
			continue
		}
		file, err := storage.ResolveResume(a.ResumeAttachment)
		if err != nil {
			logger.Warn("⚠️  skipping unusable resume reference", zap.String("applicant", a.ApplicantName), zap.Error(err))
			continue
		}
		if err := storage.EnsureLocal(ctx, file); err != nil {
			logger.Warn("⚠️  resume not available locally", zap.String("resume", file.Name), zap.Error(err))
		}
		candidates = append(candidates, services.ResumeCandidate{
			ApplicantName: a.ApplicantName,
			ResumeName:    file.Name,
			Path:          file.Path,
			FileURL:       a.ResumeAttachment,
		})
	}

	indexer := services.NewResumeIndexer(
		services.NewTextExtractor(),
		services.NewGeminiEmbedder(cfg.Gemini.APIKey, cfg.Gemini.EmbedModel),
		store,
		*workers,
		logger,
	)
	summary := indexer.IndexAll(ctx, candidates)

	// Summary
	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Indexing Summary:")
	log.Printf("   ✅ Indexed: %d resumes", summary.Indexed)
	log.Printf("   ⏭️  Skipped: %d resumes", summary.Skipped)
	log.Printf("   ❌ Failed: %d resumes", summary.Failed)
	log.Println(strings.Repeat("=", 60))

	if summary.Failed > 0 {
		logger.Warn("⚠️  Some resumes failed to index. Please check the logs above.")
		os.Exit(1)
	}

	logger.Info("✅ All resumes indexed successfully!")
}
