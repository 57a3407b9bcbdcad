// Package config loads scholarseek configuration from YAML with
// environment-variable overrides. Precedence: env > file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Search  SearchConfig  `yaml:"search"`
	Vector  VectorConfig  `yaml:"vector"`
	Memory  MemoryConfig  `yaml:"memory"`
	Logging LoggingConfig `yaml:"logging"`
}

// DatasetConfig locates the scholarship record file.
type DatasetConfig struct {
	// Path to the record dataset (YAML or JSON).
	Path string `yaml:"path"`
}

// SearchConfig tunes retrieval, fusion and caching.
type SearchConfig struct {
	// TopK is the default result count when a request leaves it unset.
	TopK int `yaml:"top_k"`
	// RetrievalLimit is how many candidates each retriever returns
	// before fusion.
	RetrievalLimit int `yaml:"retrieval_limit"`
	// FusionK is the RRF smoothing constant.
	FusionK int `yaml:"fusion_k"`
	// CacheTTLSeconds is how long a cached result stays fresh.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	// CacheMaxEntries bounds the result cache.
	CacheMaxEntries int `yaml:"cache_max_entries"`
	// ScoringWorkers sizes the per-candidate scoring pool.
	ScoringWorkers int `yaml:"scoring_workers"`
}

// VectorConfig controls the optional vector retriever.
type VectorConfig struct {
	// Enabled turns hybrid retrieval on. Off means lexical-only.
	Enabled bool `yaml:"enabled"`
	// Dimensions is the embedding width.
	Dimensions int `yaml:"dimensions"`
	// QueryCacheSize bounds the LRU of query embeddings.
	QueryCacheSize int `yaml:"query_cache_size"`
}

// MemoryConfig controls the interaction log used for personalization.
type MemoryConfig struct {
	// Enabled turns personalization boosts on.
	Enabled bool `yaml:"enabled"`
	// DBPath is the SQLite file holding interactions.
	DBPath string `yaml:"db_path"`
}

// LoggingConfig mirrors the logging package settings.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	FilePath  string `yaml:"file_path"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path: filepath.Join(dataDir(), "scholarships.yaml"),
		},
		Search: SearchConfig{
			TopK:            20,
			RetrievalLimit:  50,
			FusionK:         60,
			CacheTTLSeconds: 300,
			CacheMaxEntries: 100,
			ScoringWorkers:  8,
		},
		Vector: VectorConfig{
			Enabled:        true,
			Dimensions:     256,
			QueryCacheSize: 1000,
		},
		Memory: MemoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(dataDir(), "interactions.db"),
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".scholarseek")
	}
	return filepath.Join(home, ".scholarseek")
}

// Load reads configuration: defaults, then the YAML file at path (if
// non-empty it must exist), then SCHOLARSEEK_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from SCHOLARSEEK_* environment variables.
func (c *Config) applyEnv() {
	setString(&c.Dataset.Path, "SCHOLARSEEK_DATASET")
	setInt(&c.Search.TopK, "SCHOLARSEEK_TOP_K")
	setInt(&c.Search.CacheTTLSeconds, "SCHOLARSEEK_CACHE_TTL")
	setInt(&c.Search.ScoringWorkers, "SCHOLARSEEK_SCORING_WORKERS")
	setBool(&c.Vector.Enabled, "SCHOLARSEEK_VECTOR_ENABLED")
	setBool(&c.Memory.Enabled, "SCHOLARSEEK_MEMORY_ENABLED")
	setString(&c.Memory.DBPath, "SCHOLARSEEK_MEMORY_DB")
	setString(&c.Logging.Level, "SCHOLARSEEK_LOG_LEVEL")
}

// Validate checks ranges. Called after load; zero-value fields that the
// YAML file blanked out are errors, not silently re-defaulted.
func (c *Config) Validate() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path must be set")
	}
	if c.Search.TopK < 1 || c.Search.TopK > 50 {
		return fmt.Errorf("search.top_k must be in [1,50], got %d", c.Search.TopK)
	}
	if c.Search.RetrievalLimit < 1 {
		return fmt.Errorf("search.retrieval_limit must be positive, got %d", c.Search.RetrievalLimit)
	}
	if c.Search.FusionK < 1 {
		return fmt.Errorf("search.fusion_k must be positive, got %d", c.Search.FusionK)
	}
	if c.Search.CacheTTLSeconds < 0 {
		return fmt.Errorf("search.cache_ttl_seconds must not be negative, got %d", c.Search.CacheTTLSeconds)
	}
	if c.Search.CacheMaxEntries < 1 {
		return fmt.Errorf("search.cache_max_entries must be positive, got %d", c.Search.CacheMaxEntries)
	}
	if c.Search.ScoringWorkers < 1 {
		return fmt.Errorf("search.scoring_workers must be positive, got %d", c.Search.ScoringWorkers)
	}
	if c.Vector.Enabled && c.Vector.Dimensions < 1 {
		return fmt.Errorf("vector.dimensions must be positive, got %d", c.Vector.Dimensions)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			*dst = true
		case "0", "false", "no", "off":
			*dst = false
		}
	}
}
