// Package config provides configuration loading and management for ndfilter.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Morphology operations accepted by the pipeline configuration.
const (
	MorphNone   = "none"
	MorphErode  = "erode"
	MorphDilate = "dilate"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// Workers specifies how many goroutines to use for parallel processing
		Workers int `yaml:"workers"`

		// MedianRadius is the radius of the median denoising filter;
		// 0 disables denoising
		MedianRadius int `yaml:"medianRadius"`

		// Threshold is the binarization level in [0, 1] applied after denoising
		Threshold float64 `yaml:"threshold"`

		// Morphology selects the binary operation applied after thresholding:
		// "none", "erode" or "dilate"
		Morphology string `yaml:"morphology"`

		// MorphologyRadius is the radius of the morphological structuring element
		MorphologyRadius int `yaml:"morphologyRadius"`
	} `yaml:"processing"`

	// Histogram parameters
	Histogram struct {
		// Bins is the number of uniform bins in the reported intensity histogram
		Bins int `yaml:"bins"`
	} `yaml:"histogram"`

	// Output parameters
	Output struct {
		// SaveIntermediary determines whether to save intermediary processing results
		SaveIntermediary bool `yaml:"saveIntermediary"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default processing parameters
	cfg.Processing.Workers = runtime.NumCPU() // Use all available cores by default
	cfg.Processing.MedianRadius = 1
	cfg.Processing.Threshold = 0.5
	cfg.Processing.Morphology = MorphErode
	cfg.Processing.MorphologyRadius = 1

	// Set default histogram parameters
	cfg.Histogram.Bins = 16

	// Set default output parameters
	cfg.Output.SaveIntermediary = false
	cfg.Output.Verbose = true

	return cfg
}

// Validate checks the configuration for values the pipeline cannot run with
func (cfg *Config) Validate() error {
	if cfg.Processing.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", cfg.Processing.Workers)
	}
	if cfg.Processing.MedianRadius < 0 {
		return fmt.Errorf("median radius must be non-negative, got %d", cfg.Processing.MedianRadius)
	}
	if cfg.Processing.Threshold < 0 || cfg.Processing.Threshold > 1 {
		return fmt.Errorf("threshold must be in [0, 1], got %f", cfg.Processing.Threshold)
	}
	switch cfg.Processing.Morphology {
	case MorphNone, MorphErode, MorphDilate:
	default:
		return fmt.Errorf("unknown morphology operation %q", cfg.Processing.Morphology)
	}
	if cfg.Processing.MorphologyRadius < 0 {
		return fmt.Errorf("morphology radius must be non-negative, got %d", cfg.Processing.MorphologyRadius)
	}
	if cfg.Histogram.Bins < 1 {
		return fmt.Errorf("histogram bins must be positive, got %d", cfg.Histogram.Bins)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
