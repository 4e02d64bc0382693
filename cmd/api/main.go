package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-lens/internal/config"
	"alfredoptarigan/resume-lens/internal/handlers"
	"alfredoptarigan/resume-lens/internal/repositories"
	"alfredoptarigan/resume-lens/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("❌ Failed to build logger: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize database
	db, err := config.InitDatabase(cfg, zlog)
	if err != nil {
		zlog.Fatal("❌ Failed to initialize database", zap.Error(err))
	}

	// Initializes repositories
	jobRepo := repositories.NewJobOpeningRepository(db)
	applicantRepo := repositories.NewApplicantRepository(db)
	shortlistRepo := repositories.NewShortlistRepository(db)
	zlog.Info("✅ Repositories initialized successfully")

	// Resume mirror
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
			zlog.Fatal("❌ Failed to initialize object store", zap.Error(err))
		}
		zlog.Info("✅ Object store mirror enabled", zap.String("bucket", cfg.S3.Bucket))
	}

	storageService := services.NewStorageService(
		cfg.Storage.UploadPath,
		cfg.Files.PrivateDir,
		cfg.Files.PublicDir,
		fetcher,
		zlog,
	)
	if err := storageService.EnsureDirs(); err != nil {
		zlog.Fatal("❌ Failed to create file directories", zap.Error(err))
	}

	// Embeddings, optionally cached in Qdrant
	if cfg.Gemini.APIKey == "" {
		zlog.Warn("⚠️  GEMINI_API_KEY is not set, scoring will fail")
	}
	var embedder services.Embedder = services.NewGeminiEmbedder(cfg.Gemini.APIKey, cfg.Gemini.EmbedModel)

	var vectorStore services.VectorStore
	if cfg.Qdrant.URL != "" {
		store, err := services.NewQdrantStore(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			cfg.Qdrant.VectorSize,
			zlog,
		)
		if err != nil {
			zlog.Fatal("❌ Failed to initialize Qdrant", zap.Error(err))
		}
		if err := store.InitCollection(ctx); err != nil {
			zlog.Fatal("❌ Failed to initialize Qdrant collection", zap.Error(err))
		}
		vectorStore = store
		embedder = services.NewCachedEmbedder(embedder, store, zlog)
		zlog.Info("✅ Qdrant initialized successfully")
	}

	// Text pipeline
	tagger := services.NewLazy(func() (services.Tagger, error) {
		return services.NewProseTagger()
	})
	extractor := services.NewTextExtractor()
	experience := services.NewExperienceParser()
	skills := services.NewSkillExtractor(tagger)

	pipeline := services.NewMatchPipeline(
		services.NewJobDescriptionParser(extractor, experience, skills),
		services.NewResumeParser(extractor, experience, skills),
		services.NewSimilarityScorer(embedder),
		services.NewMatchingEngine(),
		zlog,
	)

	tokens := services.NewTokenStore(cfg.Tokens.MaxEntries, cfg.Tokens.TTL)
	shortlistService := services.NewShortlistService(jobRepo, applicantRepo, shortlistRepo, zlog)
	matchService := services.NewMatchService(services.MatchServiceDeps{
		JobRepo:       jobRepo,
		ApplicantRepo: applicantRepo,
		Pipeline:      pipeline,
		Shortlist:     shortlistService,
		Storage:       storageService,
		Tokens:        tokens,
		Embedder:      embedder,
		VectorStore:   vectorStore,
		BaseURL:       cfg.Server.BaseURL,
		Log:           zlog,
	})
	zlog.Info("✅ Services initialized successfully")

	// Initialize Handlers
	matchHandler := handlers.NewMatchHandler(matchService)
	uploadHandler := handlers.NewUploadHandler(matchService, storageService, cfg.Storage.MaxFileSize, zlog)
	jobHandler := handlers.NewJobHandler(matchService)
	shortlistHandler := handlers.NewShortlistHandler(shortlistService)
	fileHandler := handlers.NewFileHandler(tokens, storageService)
	zlog.Info("✅ Handlers initialized")

	// Create Fiber app. Match runs are synchronous and embed every resume,
	// so the write timeout is generous.
	app := fiber.New(fiber.Config{
		AppName:      "Resume Lens API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Get("/applicants", jobHandler.HandleListApplicants)
	api.Post("/match", matchHandler.HandleMatch)
	api.Post("/match/upload", uploadHandler.HandleMatchUpload)
	api.Post("/match/export", matchHandler.HandleExport)
	api.Post("/match/similar", matchHandler.HandleSimilar)
	api.Post("/shortlist", shortlistHandler.HandleShortlist)
	api.Get("/files/view", fileHandler.HandleView)
	api.Get("/files/download", fileHandler.HandleDownload)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Lens API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/jobs",
				"GET /api/v1/applicants",
				"POST /api/v1/match",
				"POST /api/v1/match/upload",
				"POST /api/v1/match/export",
				"POST /api/v1/match/similar",
				"POST /api/v1/shortlist",
				"GET /api/v1/files/view?token=",
				"GET /api/v1/files/download?token=",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zlog.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("❌ Failed to start server", zap.Error(err))
	}
}
