package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/dedupnorris/pkg/compare"
	"github.com/sdejongh/dedupnorris/pkg/config"
	"github.com/sdejongh/dedupnorris/pkg/dedup"
	"github.com/sdejongh/dedupnorris/pkg/logging"
	"github.com/sdejongh/dedupnorris/pkg/models"
	"github.com/sdejongh/dedupnorris/pkg/output"
	"github.com/sdejongh/dedupnorris/pkg/ratelimit"
	"github.com/sdejongh/dedupnorris/pkg/storage"
)

// RunFlags holds run command flags
type RunFlags struct {
	Delete       bool
	ByName       bool
	NoFilter     bool
	Comparator   string
	CompareTool  string
	Bandwidth    string
	Exclude      []string
	Output       string
	Progress     bool
	Report       string
	ReportFormat string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var runFlags RunFlags

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run SOURCE DEST",
		Short: "Find and remove source files duplicated in the destination tree",
		Long: `Scan DEST once into an in-memory index, then walk SOURCE and report
every file whose exact content already exists somewhere under DEST.
Without --delete, a dry run only reports what would be removed.
With --delete, matched source files are removed and directories they
empty out are pruned. DEST is never modified.`,
		Args: cobra.ExactArgs(2),
		RunE: runDedup,
	}

	cmd.Flags().BoolVar(&runFlags.Delete, "delete", false, "delete matched source files (default is dry-run)")
	cmd.Flags().BoolVar(&runFlags.ByName, "by-name", false, "match candidates by file name instead of size")
	cmd.Flags().BoolVar(&runFlags.NoFilter, "no-filter", false, "do not exclude the source subtree from the destination index")
	cmd.Flags().StringVar(&runFlags.Comparator, "comparator", "", "content comparator: binary, exec")
	cmd.Flags().StringVar(&runFlags.CompareTool, "compare-tool", "", "external diff tool for the exec comparator (default: cmp)")
	cmd.Flags().StringVarP(&runFlags.Bandwidth, "bandwidth", "b", "", "read bandwidth limit (e.g., \"10M\", \"1G\")")
	cmd.Flags().StringSliceVar(&runFlags.Exclude, "exclude", []string{}, "glob patterns for source files to skip")
	cmd.Flags().StringVarP(&runFlags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().BoolVar(&runFlags.Progress, "progress", false, "show a progress bar instead of per-file lines")
	cmd.Flags().StringVar(&runFlags.Report, "report", "", "write the final report to a file")
	cmd.Flags().StringVar(&runFlags.ReportFormat, "report-format", "human", "report file format: human, json")

	cmd.Flags().StringVar(&runFlags.LogFile, "log-file", "", "write logs to file instead of stderr")
	cmd.Flags().StringVar(&runFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&runFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runDedup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sourcePath, destPath := args[0], args[1]

	// Fatal pre-scan checks: both roots must exist and be directories
	if err := validateRoots(sourcePath, destPath); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cfg)

	operation, err := createOperation(cfg, sourcePath, destPath)
	if err != nil {
		return fmt.Errorf("failed to create operation: %w", err)
	}

	source, err := storage.NewLocal(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source tree: %w", err)
	}
	defer source.Close()

	dest, err := storage.NewLocal(destPath)
	if err != nil {
		return fmt.Errorf("failed to open destination tree: %w", err)
	}
	defer dest.Close()

	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	comparator, err := createComparator(operation)
	if err != nil {
		return err
	}

	formatter, err := createFormatter(ctx, cfg, source)
	if err != nil {
		return err
	}

	var writer io.Writer = os.Stdout
	if cfg.Output.Quiet {
		writer = io.Discard
	}
	if err := formatter.Start(writer, operation); err != nil {
		return fmt.Errorf("failed to start output: %w", err)
	}

	engine := dedup.NewEngine(source, dest, comparator, formatter, logger, operation)

	report, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("deduplication failed: %w", err)
	}

	if runFlags.Report != "" {
		if err := output.WriteReport(report, runFlags.Report, runFlags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	os.Exit(report.Status.ExitCode())
	return nil
}

// createComparator builds the content comparator the operation asks for
func createComparator(op *models.Operation) (compare.Comparator, error) {
	switch op.Comparator {
	case models.ComparatorExec:
		return compare.NewExecComparator(op.CompareTool), nil

	case models.ComparatorBinary:
		c := compare.NewBinaryComparator(op.BufferSize)
		if limiter := ratelimit.NewLimiter(op.BandwidthLimit); limiter != nil {
			c.SetReaderWrapper(func(r io.Reader) io.Reader {
				return ratelimit.NewReader(r, limiter)
			})
		}
		return c, nil

	default:
		return nil, fmt.Errorf("unsupported comparator: %s (use: binary, exec)", op.Comparator)
	}
}

// createFormatter builds the output formatter from configuration
func createFormatter(ctx context.Context, cfg *config.Config, source storage.Backend) (output.Formatter, error) {
	switch {
	case cfg.Output.Format == "json":
		return output.NewJSONFormatter(), nil
	case cfg.Output.Progress:
		total, err := countSourceFiles(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("failed to count source files: %w", err)
		}
		return output.NewProgressFormatter(total), nil
	default:
		return output.NewHumanFormatter(), nil
	}
}

// countSourceFiles pre-counts the source tree for progress display only
func countSourceFiles(ctx context.Context, source storage.Backend) (int, error) {
	count := 0
	err := source.Walk(ctx, func(info storage.FileInfo) error {
		count++
		return nil
	}, nil)
	return count, err
}

// createLogger builds the run logger from configuration
func createLogger(cfg *config.Config) (logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NewNullLogger(), nil
	}

	format := logging.FormatText
	if cfg.Logging.Format == "json" {
		format = logging.FormatJSON
	}
	level := logging.ParseLevel(cfg.Logging.Level)

	if cfg.Logging.File != "" {
		return logging.NewFileLogger(logging.FileLoggerConfig{
			Path:   cfg.Logging.File,
			Format: format,
			Level:  level,
		})
	}

	return logging.NewConsoleLogger(os.Stderr, format, level), nil
}
