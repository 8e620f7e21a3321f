package config

import (
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the built-in defaults are valid
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected valid defaults, got %v", err)
	}
	if cfg.Processing.Workers < 1 {
		t.Errorf("Expected at least one worker, got %d", cfg.Processing.Workers)
	}
	if cfg.Processing.Morphology != MorphErode {
		t.Errorf("Expected default morphology %q, got %q", MorphErode, cfg.Processing.Morphology)
	}
	if cfg.Histogram.Bins != 16 {
		t.Errorf("Expected 16 histogram bins, got %d", cfg.Histogram.Bins)
	}
}

// TestValidateRejectsBadValues checks each validation rule
func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Processing.Workers = 0 }},
		{"negative median radius", func(c *Config) { c.Processing.MedianRadius = -1 }},
		{"threshold above one", func(c *Config) { c.Processing.Threshold = 1.5 }},
		{"unknown morphology", func(c *Config) { c.Processing.Morphology = "open" }},
		{"negative morphology radius", func(c *Config) { c.Processing.MorphologyRadius = -2 }},
		{"zero bins", func(c *Config) { c.Histogram.Bins = 0 }},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("Expected validation error for %s, got nil", tc.name)
		}
	}
}

// TestLoadConfigMissingFile verifies defaults are returned when the file
// does not exist
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected no error for a missing file, got %v", err)
	}
	if cfg.Processing.MedianRadius != 1 {
		t.Errorf("Expected default median radius 1, got %d", cfg.Processing.MedianRadius)
	}
}

// TestSaveLoadRoundtrip verifies YAML persistence
func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "ndfilter.yaml")

	cfg := DefaultConfig()
	cfg.Processing.Workers = 3
	cfg.Processing.MedianRadius = 2
	cfg.Processing.Morphology = MorphDilate
	cfg.Histogram.Bins = 32

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}

	if loaded.Processing.Workers != 3 {
		t.Errorf("Expected 3 workers, got %d", loaded.Processing.Workers)
	}
	if loaded.Processing.MedianRadius != 2 {
		t.Errorf("Expected median radius 2, got %d", loaded.Processing.MedianRadius)
	}
	if loaded.Processing.Morphology != MorphDilate {
		t.Errorf("Expected morphology %q, got %q", MorphDilate, loaded.Processing.Morphology)
	}
	if loaded.Histogram.Bins != 32 {
		t.Errorf("Expected 32 bins, got %d", loaded.Histogram.Bins)
	}
}
