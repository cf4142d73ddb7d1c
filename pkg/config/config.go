package config

import (
	"github.com/sdejongh/dedupnorris/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Dedup       DedupConfig       `yaml:"dedup"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Exclude     []string          `yaml:"exclude"`
}

// DedupConfig holds matching-related settings
type DedupConfig struct {
	Mode         models.LookupMode     `yaml:"mode"`          // "size" or "name"
	Comparator   models.ComparatorKind `yaml:"comparator"`    // "binary" or "exec"
	CompareTool  string                `yaml:"compare_tool"`  // external diff tool for the exec comparator
	FilterSource bool                  `yaml:"filter_source"` // exclude the source subtree from the index
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	BufferSize     int   `yaml:"buffer_size"`
	BandwidthLimit int64 `yaml:"bandwidth_limit"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show a progress bar instead of per-file lines
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = stderr)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Dedup: DedupConfig{
			Mode:         models.LookupBySize,
			Comparator:   models.ComparatorBinary,
			FilterSource: true,
		},
		Performance: PerformanceConfig{
			BufferSize:     65536,
			BandwidthLimit: 0,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: false,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Format:  "text",
			Level:   "info",
			File:    "",
		},
		Exclude: []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Dedup.Mode != models.LookupBySize && c.Dedup.Mode != models.LookupByName {
		return &models.ValidationError{
			Field:   "dedup.mode",
			Message: "must be 'size' or 'name'",
		}
	}

	if c.Dedup.Comparator != models.ComparatorBinary && c.Dedup.Comparator != models.ComparatorExec {
		return &models.ValidationError{
			Field:   "dedup.comparator",
			Message: "must be 'binary' or 'exec'",
		}
	}

	if c.Performance.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
