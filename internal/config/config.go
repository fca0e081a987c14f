package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Persistence
	DBPath string

	// Auth
	APIKey string

	// Section tree extraction
	MaxHeadingLevel  int
	RequireNumbered  bool
	ExcludedSections []string
	CoalesceLimit    int
	KeepPreamble     bool

	// Chunking
	ChunkMode    string
	MaxChunkSize int
	OverlapRatio float64
	MinChunk     int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DBPath: envOr("SPECSECT_DB", "specsect.db"),

		APIKey: os.Getenv("SPECSECT_API_KEY"),

		MaxHeadingLevel:  envInt("MAX_HEADING_LEVEL", 4),
		RequireNumbered:  envBool("REQUIRE_NUMBERED_HEADINGS", true),
		ExcludedSections: envList("EXCLUDED_SECTIONS", nil),
		CoalesceLimit:    envInt("COALESCE_LIMIT", 3000),
		KeepPreamble:     envBool("KEEP_PREAMBLE", false),

		ChunkMode:    envOr("CHUNK_MODE", "fixed"),
		MaxChunkSize: envInt("MAX_CHUNK_SIZE", 2000),
		OverlapRatio: envFloat("OVERLAP_RATIO", 0.1),
		MinChunk:     envInt("MIN_CHUNK", 100),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 104857600), // 100MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.MaxHeadingLevel <= 0 {
		cfg.MaxHeadingLevel = 4
	}
	if cfg.MaxChunkSize <= 0 {
		cfg.MaxChunkSize = 2000
	}
	if cfg.MinChunk <= 0 {
		cfg.MinChunk = 100
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 104857600
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("SPECSECT_API_KEY is required")
	}
	if c.ChunkMode != "fixed" && c.ChunkMode != "paragraph" {
		return fmt.Errorf("CHUNK_MODE must be \"fixed\" or \"paragraph\", got %q", c.ChunkMode)
	}
	if c.OverlapRatio < 0 || c.OverlapRatio >= 1 {
		return fmt.Errorf("OVERLAP_RATIO must be in [0, 1), got %g", c.OverlapRatio)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
