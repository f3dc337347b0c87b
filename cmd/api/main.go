package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"doclab/internal/config"
	"doclab/internal/http"
	"doclab/internal/llm"
	"doclab/internal/ocr"
	"doclab/internal/pipeline"
	"doclab/internal/storage"
	"doclab/internal/vectorstore"
	"doclab/internal/worker"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	jobRepo := storage.NewJobRepo(db)
	documentRepo := storage.NewDocumentRepo(db)
	pageRepo := storage.NewPageRepo(db)
	blockRepo := storage.NewBlockRepo(db)
	ingester := storage.NewSQLIngester(db)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	// Create OCR acquisition components
	controller := ocr.NewController(cfg.DatalabUploadURL, cfg.DatalabAPIURL)
	poller := ocr.NewPoller()
	normalizer := ocr.NewNormalizer(cfg.OCRStorageDir)

	// Create the processing pipeline and its worker pool
	ocrPipeline := pipeline.New(
		controller,
		poller,
		normalizer,
		jobRepo,
		ingester,
		embedder,
		vectorStore,
		cfg.QdrantCollection,
		cfg.PermanentDir,
	)

	pool := worker.NewPool(ocrPipeline, logger, 100)
	pool.Start(ctx, cfg.OCRWorkers)
	defer pool.Stop()
	slog.Info("Worker pool started", "workers", cfg.OCRWorkers)

	// Create router with dependencies
	deps := &http.Deps{
		Jobs:          jobRepo,
		Documents:     documentRepo,
		Pages:         pageRepo,
		Blocks:        blockRepo,
		Embedder:      embedder,
		Index:         vectorStore,
		Checker:       vectorStore,
		Queue:         pool,
		Collection:    cfg.QdrantCollection,
		UploadDir:     cfg.UploadDir,
		MaxFileSizeMB: cfg.MaxFileSizeMB,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("Provider configuration", "upload_url", cfg.DatalabUploadURL, "api_url", cfg.DatalabAPIURL)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
