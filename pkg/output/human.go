package output

import (
	"fmt"
	"io"
	"time"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// HumanFormatter writes one disposition line per source file and a
// summary block at the end of the run
type HumanFormatter struct {
	writer io.Writer
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, op *models.Operation) error {
	f.writer = writer
	if writer == nil {
		f.writer = io.Discard
		return nil
	}

	mode := "dry-run"
	if op.Delete {
		mode = "delete"
	}
	fmt.Fprintf(f.writer, "Deduplicating %s against %s (%s mode, %s lookup)\n",
		op.SourcePath, op.DestPath, mode, op.Mode)
	return nil
}

// IndexBuilt reports the finished destination index
func (f *HumanFormatter) IndexBuilt(indexed, excluded int) error {
	fmt.Fprintf(f.writer, "Indexed %d destination files", indexed)
	if excluded > 0 {
		fmt.Fprintf(f.writer, " (%d excluded under source root)", excluded)
	}
	fmt.Fprintf(f.writer, "\n\n")
	return nil
}

// Result reports the disposition of one source file
func (f *HumanFormatter) Result(result *models.FileResult) error {
	switch result.Action {
	case models.ActionDeleted:
		fmt.Fprintf(f.writer, "deleted      %s (%s, matches %s)\n",
			result.SourcePath, FormatBytes(result.Size), result.MatchPath)
	case models.ActionWouldDelete:
		fmt.Fprintf(f.writer, "would delete %s (%s, matches %s)\n",
			result.SourcePath, FormatBytes(result.Size), result.MatchPath)
	case models.ActionNoMatch:
		fmt.Fprintf(f.writer, "no match     %s\n", result.SourcePath)
	case models.ActionError:
		fmt.Fprintf(f.writer, "error        %s: %v\n", result.SourcePath, result.Err)
	}
	return nil
}

// DirRemoved reports a pruned empty directory
func (f *HumanFormatter) DirRemoved(path string) error {
	fmt.Fprintf(f.writer, "removed dir  %s\n", path)
	return nil
}

// Error reports a run-level error
func (f *HumanFormatter) Error(err error) error {
	if f.writer == nil {
		return nil
	}
	fmt.Fprintf(f.writer, "Error: %v\n", err)
	return nil
}

// Complete finalizes output and displays the summary
func (f *HumanFormatter) Complete(report *models.Report) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	verb := "would be freed"
	if report.Delete {
		verb = "freed"
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "  Files scanned:  %d\n", report.Stats.FilesScanned)
	fmt.Fprintf(f.writer, "  Duplicates:     %d\n", report.Stats.FilesMatched)
	if report.Delete {
		fmt.Fprintf(f.writer, "  Files deleted:  %d\n", report.Stats.FilesDeleted)
		fmt.Fprintf(f.writer, "  Dirs removed:   %d\n", report.Stats.DirsDeleted)
	}
	if report.Stats.FilesErrored > 0 {
		fmt.Fprintf(f.writer, "  Files errored:  %d\n", report.Stats.FilesErrored)
	}
	fmt.Fprintf(f.writer, "  Space %s: %s\n", verb, FormatBytes(report.Stats.BytesMatched))
	fmt.Fprintf(f.writer, "Status: %s\n", report.Status)

	if len(report.Errors) > 0 {
		fmt.Fprintf(f.writer, "\nErrors:\n")
		for _, e := range report.Errors {
			fmt.Fprintf(f.writer, "  [%s] %s: %s\n", e.Stage, e.Path, e.Error)
		}
	}

	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
