package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"ndfilter/pkg/config"
	"ndfilter/pkg/pipeline"
	"ndfilter/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputDir := flag.String("input", "", "Directory containing 2D frames in JPEG format")
	configPath := flag.String("config", "ndfilter.yaml", "Path to the YAML configuration file")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to the config path and exit")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: from config)")
	medianRadius := flag.Int("median-radius", -1, "Median filter radius, 0 disables denoising (default: from config)")
	threshold := flag.Float64("threshold", -1, "Binarization threshold in [0, 1] (default: from config)")
	morphology := flag.String("morphology", "", "Morphology applied to the mask: none, erode or dilate (default: from config)")
	morphologyRadius := flag.Int("morphology-radius", -1, "Morphology structuring element radius (default: from config)")
	extractSlices := flag.Bool("extract-slices", false, "Extract and save denoised volume slices along all axes")
	slicesDir := flag.String("slices-dir", "volume_slices", "Directory to save extracted slices")
	intermediaryDir := flag.String("intermediary-dir", "intermediary_results", "Directory to save intermediary results")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to write default config")
		}
		log.Info().Str("path", *configPath).Msg("wrote default config")
		return
	}

	// Validate inputs
	if *inputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Flags override the configuration when set
	if *workers > 0 {
		cfg.Processing.Workers = *workers
	}
	if *medianRadius >= 0 {
		cfg.Processing.MedianRadius = *medianRadius
	}
	if *threshold >= 0 {
		cfg.Processing.Threshold = *threshold
	}
	if *morphology != "" {
		cfg.Processing.Morphology = *morphology
	}
	if *morphologyRadius >= 0 {
		cfg.Processing.MorphologyRadius = *morphologyRadius
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if !cfg.Output.Verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	params := &pipeline.Params{
		InputDir:         *inputDir,
		Workers:          cfg.Processing.Workers,
		MedianRadius:     cfg.Processing.MedianRadius,
		Threshold:        cfg.Processing.Threshold,
		Morphology:       cfg.Processing.Morphology,
		MorphologyRadius: cfg.Processing.MorphologyRadius,
		HistogramBins:    cfg.Histogram.Bins,
		SaveIntermediary: cfg.Output.SaveIntermediary,
		IntermediaryDir:  *intermediaryDir,
		Logger:           log,
	}

	p := pipeline.New(params)

	startTime := time.Now()
	if err := p.Run(); err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}
	processingTime := time.Since(startTime)

	metrics := p.Metrics()
	fmt.Printf("\nPipeline completed in %.2f seconds\n\n", processingTime.Seconds())

	fmt.Printf("Fidelity metrics (input vs denoised):\n")
	fmt.Printf("=====================================\n")
	fmt.Printf("Root Mean Square Error (RMSE): %.6f\n", metrics.RMSE)
	fmt.Printf("Correlation: %.4f\n", metrics.Correlation)
	fmt.Printf("Mask coverage: %.2f%%\n\n", metrics.MaskFraction*100)

	fmt.Printf("Intensity summaries:\n")
	fmt.Printf("  input:    mean=%.4f stddev=%.4f min=%.4f max=%.4f median=%.4f\n",
		metrics.Input.Mean, metrics.Input.StdDev, metrics.Input.Min, metrics.Input.Max, metrics.Input.Median)
	fmt.Printf("  denoised: mean=%.4f stddev=%.4f min=%.4f max=%.4f median=%.4f\n\n",
		metrics.Output.Mean, metrics.Output.StdDev, metrics.Output.Min, metrics.Output.Max, metrics.Output.Median)

	fmt.Printf("Denoised intensity histogram:\n")
	for i, count := range metrics.Histogram {
		fmt.Printf("  [%.3f, %.3f): %d\n", metrics.HistogramBins[i], metrics.HistogramBins[i+1], count)
	}

	// Extract and save slices of the denoised volume if requested
	if *extractSlices {
		log.Info().Str("dir", *slicesDir).Msg("extracting volume slices")

		viewer := visualization.NewViewer(p.Volume())
		for _, axis := range []string{"x", "y", "z"} {
			axisDir := filepath.Join(*slicesDir, axis)
			if err := viewer.SaveSliceSequence(axis, axisDir); err != nil {
				log.Warn().Err(err).Str("axis", axis).Msg("failed to save slices")
			}
		}
	}
}
