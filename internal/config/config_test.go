package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := make(map[string]string)
	envVars := []string{
		"API_PORT", "DB_PATH", "DATALAB_UPLOAD_URL", "DATALAB_API_URL",
		"UPLOAD_DIR", "PERMANENT_STORAGE_DIR", "OCR_STORAGE_DIR",
		"MAX_FILE_SIZE_MB", "OCR_WORKERS",
		"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME", "EMBEDDING_API_KEY",
		"QDRANT_URL", "QDRANT_COLLECTION", "QDRANT_VECTOR_SIZE",
		"LOG_LEVEL", "LOG_FORMAT",
	}
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "valid config with required fields",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "768")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.QdrantVectorSize == 768
			},
		},
		{
			name:     "missing QDRANT_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {},
			wantErr:  true,
		},
		{
			name: "invalid QDRANT_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "invalid")
			},
			wantErr: true,
		},
		{
			name: "zero QDRANT_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "0")
			},
			wantErr: true,
		},
		{
			name: "negative QDRANT_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "-1")
			},
			wantErr: true,
		},
		{
			name: "default values for optional fields",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "768")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "9000" &&
					cfg.DBPath == "./data/doclab.db" &&
					cfg.DatalabUploadURL == "https://www.datalab.to/playground/documents/new" &&
					cfg.DatalabAPIURL == "https://www.datalab.to/api/v1/playground/marker" &&
					cfg.EmbeddingBaseURL == "http://localhost:8081" &&
					cfg.EmbeddingModelName == "all-MiniLM-L6-v2" &&
					cfg.QdrantURL == "http://localhost:6333" &&
					cfg.QdrantCollection == "datalab_chunks" &&
					cfg.MaxFileSizeMB == 50 &&
					cfg.OCRWorkers == 1 &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text"
			},
		},
		{
			name: "custom optional values",
			setupEnv: func(t *testing.T) {
				tmpDir := t.TempDir()
				setEnv("QDRANT_VECTOR_SIZE", "1024")
				setEnv("API_PORT", "8123")
				setEnv("MAX_FILE_SIZE_MB", "10")
				setEnv("OCR_WORKERS", "3")
				setEnv("LOG_LEVEL", "debug")
				customDBPath := filepath.Join(tmpDir, "custom", "db.db")
				setEnv("DB_PATH", customDBPath)
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.QdrantVectorSize == 1024 &&
					cfg.APIPort == "8123" &&
					cfg.MaxFileSizeMB == 10 &&
					cfg.OCRWorkers == 3 &&
					cfg.LogLevel == slog.LevelDebug &&
					filepath.Base(cfg.DBPath) == "db.db" // Just check filename, path will vary with temp dir
			},
		},
		{
			name: "invalid OCR_WORKERS",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("OCR_WORKERS", "0")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_LEVEL",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Change to a temp directory without .env file to avoid loading
			// it; relative storage dirs get created here too.
			tmpDir := t.TempDir()
			originalWd, _ := os.Getwd()
			_ = os.Chdir(tmpDir) // Ignore error - test will fail if this doesn't work
			defer func() {
				_ = os.Chdir(originalWd) // Ignore error in cleanup
			}()

			// Clean up env vars before each test
			for _, key := range envVars {
				unsetEnv(key)
			}

			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if cfg == nil {
				t.Fatal("Load() returned nil config")
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config check failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesStorageDirs(t *testing.T) {
	for _, key := range []string{"DB_PATH", "UPLOAD_DIR", "PERMANENT_STORAGE_DIR", "OCR_STORAGE_DIR", "QDRANT_VECTOR_SIZE"} {
		original := os.Getenv(key)
		defer func(k, v string) {
			if v != "" {
				setEnv(k, v)
			} else {
				unsetEnv(k)
			}
		}(key, original)
	}

	tmpDir := t.TempDir()
	setEnv("QDRANT_VECTOR_SIZE", "768")
	setEnv("DB_PATH", filepath.Join(tmpDir, "data", "doclab.db"))
	setEnv("UPLOAD_DIR", filepath.Join(tmpDir, "uploads"))
	setEnv("PERMANENT_STORAGE_DIR", filepath.Join(tmpDir, "pdfs"))
	setEnv("OCR_STORAGE_DIR", filepath.Join(tmpDir, "datalab"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.UploadDir, cfg.PermanentDir, cfg.OCRStorageDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("expected directory %s to exist: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", dir)
		}
	}
}
