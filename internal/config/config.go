package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort string

	DBPath string

	// Provider endpoints driven through the automated browser session.
	DatalabUploadURL string
	DatalabAPIURL    string

	// Storage roots.
	UploadDir     string // temporary uploads awaiting processing
	PermanentDir  string // processed PDFs, named by content hash
	OCRStorageDir string // per-job OCR artifacts (extracted images)
	MaxFileSizeMB int
	OCRWorkers    int

	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingAPIKey    string

	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it is loaded
// automatically; environment variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a .env next to go.mod (project root), limited depth.
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:            getEnv("API_PORT", "9000"),
		DBPath:             getEnv("DB_PATH", "./data/doclab.db"),
		DatalabUploadURL:   getEnv("DATALAB_UPLOAD_URL", "https://www.datalab.to/playground/documents/new"),
		DatalabAPIURL:      getEnv("DATALAB_API_URL", "https://www.datalab.to/api/v1/playground/marker"),
		UploadDir:          getEnv("UPLOAD_DIR", "./storage/uploads"),
		PermanentDir:       getEnv("PERMANENT_STORAGE_DIR", "./storage/pdfs"),
		OCRStorageDir:      getEnv("OCR_STORAGE_DIR", "./storage/datalab"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "all-MiniLM-L6-v2"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", "dummy-key"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "datalab_chunks"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	maxSize, err := parseIntEnv("MAX_FILE_SIZE_MB", 50)
	if err != nil {
		return nil, err
	}
	cfg.MaxFileSizeMB = maxSize

	// One worker by default: each job owns a full browser session, and the
	// provider tolerates one interactive upload at a time.
	workers, err := parseIntEnv("OCR_WORKERS", 1)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, fmt.Errorf("OCR_WORKERS must be at least 1")
	}
	cfg.OCRWorkers = workers

	// Must match the output vector size of the embeddings model. If it
	// changes, the qdrant collection has to be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.UploadDir, cfg.PermanentDir, cfg.OCRStorageDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}
