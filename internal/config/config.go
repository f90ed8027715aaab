package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DatabasePath string

	// Corpus
	CatalogPath string // Path to the book catalog YAML (empty = embedded default)
	BooksDir    string // Directory for downloaded Gutenberg texts

	// Markov model
	MarkovModelPath string
	TrainWorkers    int // 0 = trainer picks per CPU

	// Gutenberg
	GutenbergMirror string // Empty = default mirror

	// Haiku cache
	CacheTTL      time.Duration
	MinCachedDocs int // Minimum cached haikus before sampling from cache

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:    getEnv("DATABASE_PATH", "data/gutenku.db"),
		CatalogPath:     getEnv("CATALOG_PATH", ""),
		BooksDir:        getEnv("BOOKS_DIR", "data/books"),
		MarkovModelPath: getEnv("MARKOV_MODEL_PATH", "data/markov_model.json"),
		GutenbergMirror: getEnv("GUTENBERG_MIRROR", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	var err error
	cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	cfg.MinCachedDocs, err = strconv.Atoi(getEnv("MIN_CACHED_DOCS", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_CACHED_DOCS: %w", err)
	}

	cfg.TrainWorkers, err = strconv.Atoi(getEnv("TRAIN_WORKERS", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRAIN_WORKERS: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForTraining checks configuration needed to train the Markov model.
func (c *Config) ValidateForTraining() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.MarkovModelPath == "" {
		return fmt.Errorf("MARKOV_MODEL_PATH is required for training")
	}
	if c.TrainWorkers < 0 {
		return fmt.Errorf("TRAIN_WORKERS must not be negative")
	}
	return nil
}

// ValidateForDownload checks configuration needed to download books.
func (c *Config) ValidateForDownload() error {
	if c.BooksDir == "" {
		return fmt.Errorf("BOOKS_DIR is required for download")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
