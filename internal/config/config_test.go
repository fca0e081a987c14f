package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8090" {
		t.Errorf("expected default port 8090, got %q", cfg.Port)
	}
	if cfg.DBPath != "specsect.db" {
		t.Errorf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.MaxHeadingLevel != 4 {
		t.Errorf("expected max heading level 4, got %d", cfg.MaxHeadingLevel)
	}
	if !cfg.RequireNumbered {
		t.Error("expected numbered headings required by default")
	}
	if cfg.CoalesceLimit != 3000 {
		t.Errorf("expected coalesce limit 3000, got %d", cfg.CoalesceLimit)
	}
	if cfg.ChunkMode != "fixed" {
		t.Errorf("expected fixed chunk mode, got %q", cfg.ChunkMode)
	}
	if cfg.MaxChunkSize != 2000 {
		t.Errorf("expected chunk size 2000, got %d", cfg.MaxChunkSize)
	}
	if cfg.OverlapRatio != 0.1 {
		t.Errorf("expected overlap 0.1, got %g", cfg.OverlapRatio)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h job TTL, got %v", cfg.JobTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("MAX_CHUNK_SIZE", "500")
	t.Setenv("OVERLAP_RATIO", "0.25")
	t.Setenv("REQUIRE_NUMBERED_HEADINGS", "false")
	t.Setenv("EXCLUDED_SECTIONS", "scope, references ,abbreviations")
	t.Setenv("JOB_TTL", "30m")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %q", cfg.Port)
	}
	if cfg.MaxChunkSize != 500 {
		t.Errorf("expected chunk size 500, got %d", cfg.MaxChunkSize)
	}
	if cfg.OverlapRatio != 0.25 {
		t.Errorf("expected overlap 0.25, got %g", cfg.OverlapRatio)
	}
	if cfg.RequireNumbered {
		t.Error("expected numbered headings disabled")
	}
	if len(cfg.ExcludedSections) != 3 || cfg.ExcludedSections[1] != "references" {
		t.Errorf("expected trimmed excluded sections, got %v", cfg.ExcludedSections)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected 30m job TTL, got %v", cfg.JobTTL)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_CHUNK_SIZE", "not-a-number")
	t.Setenv("WORKER_COUNT", "-3")

	cfg := Load()
	if cfg.MaxChunkSize != 2000 {
		t.Errorf("expected fallback chunk size, got %d", cfg.MaxChunkSize)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected negative worker count clamped to default, got %d", cfg.WorkerCount)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg := Load()
		cfg.APIKey = "secret"
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg := base()
	cfg.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing API key to fail validation")
	}

	cfg = base()
	cfg.ChunkMode = "token"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown chunk mode to fail validation")
	}

	cfg = base()
	cfg.OverlapRatio = 1.0
	if err := cfg.Validate(); err == nil {
		t.Error("expected overlap ratio 1.0 to fail validation")
	}
}
