package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/dedupnorris/pkg/config"
	"github.com/sdejongh/dedupnorris/pkg/models"
)

// validateRoots checks both directory roots before any scanning starts.
// Failures here are fatal; everything later is per-file.
func validateRoots(sourcePath, destPath string) error {
	for _, check := range []struct {
		label string
		path  string
	}{
		{"source", sourcePath},
		{"destination", destPath},
	} {
		info, err := os.Stat(check.path)
		if os.IsNotExist(err) {
			return fmt.Errorf("%s path does not exist: %s", check.label, check.path)
		}
		if err != nil {
			return fmt.Errorf("failed to access %s path: %w", check.label, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s path is not a directory: %s", check.label, check.path)
		}
	}

	sourceAbs, err := filepath.Abs(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to resolve source path: %w", err)
	}
	destAbs, err := filepath.Abs(destPath)
	if err != nil {
		return fmt.Errorf("failed to resolve destination path: %w", err)
	}
	if sourceAbs == destAbs {
		return fmt.Errorf("source and destination cannot be the same: %s", sourceAbs)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if runFlags.ByName {
		cfg.Dedup.Mode = models.LookupByName
	}
	if runFlags.NoFilter {
		cfg.Dedup.FilterSource = false
	}
	if runFlags.Comparator != "" {
		cfg.Dedup.Comparator = models.ComparatorKind(runFlags.Comparator)
	}
	if runFlags.CompareTool != "" {
		cfg.Dedup.CompareTool = runFlags.CompareTool
	}
	if len(runFlags.Exclude) > 0 {
		cfg.Exclude = runFlags.Exclude
	}
	if runFlags.Output != "" {
		cfg.Output.Format = runFlags.Output
	}
	if runFlags.Progress {
		cfg.Output.Progress = true
	}
	if runFlags.LogFile != "" {
		cfg.Logging.File = runFlags.LogFile
	}
	if runFlags.LogFormat != "" {
		cfg.Logging.Format = runFlags.LogFormat
	}
	if runFlags.LogLevel != "" {
		cfg.Logging.Level = runFlags.LogLevel
	}

	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
	if globalFlags.Verbose {
		cfg.Logging.Level = "debug"
	}
}

// createOperation creates a deduplication operation from configuration
func createOperation(cfg *config.Config, sourcePath, destPath string) (*models.Operation, error) {
	bandwidth := cfg.Performance.BandwidthLimit
	if runFlags.Bandwidth != "" {
		parsed, err := parseBandwidth(runFlags.Bandwidth)
		if err != nil {
			return nil, err
		}
		bandwidth = parsed
	}

	operation := &models.Operation{
		ID:              uuid.New().String(),
		SourcePath:      sourcePath,
		DestPath:        destPath,
		Mode:            cfg.Dedup.Mode,
		Comparator:      cfg.Dedup.Comparator,
		CompareTool:     cfg.Dedup.CompareTool,
		Delete:          runFlags.Delete,
		FilterSource:    cfg.Dedup.FilterSource,
		ExcludePatterns: cfg.Exclude,
		BufferSize:      cfg.Performance.BufferSize,
		BandwidthLimit:  bandwidth,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}

// parseBandwidth parses a human bandwidth spec like "512K", "10M", "1G"
// into bytes per second
func parseBandwidth(spec string) (int64, error) {
	spec = strings.TrimSpace(strings.ToUpper(spec))
	if spec == "" {
		return 0, nil
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(spec, "K"):
		multiplier = 1024
		spec = strings.TrimSuffix(spec, "K")
	case strings.HasSuffix(spec, "M"):
		multiplier = 1024 * 1024
		spec = strings.TrimSuffix(spec, "M")
	case strings.HasSuffix(spec, "G"):
		multiplier = 1024 * 1024 * 1024
		spec = strings.TrimSuffix(spec, "G")
	}

	value, err := strconv.ParseInt(spec, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bandwidth limit: %q", spec)
	}
	if value < 0 {
		return 0, fmt.Errorf("bandwidth limit cannot be negative: %d", value)
	}

	return value * multiplier, nil
}
