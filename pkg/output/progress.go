package output

import (
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// ProgressFormatter shows a progress bar over the source walk and
// defers all per-file detail to the final summary. The total is
// supplied by the caller from a cheap pre-count of the source tree.
type ProgressFormatter struct {
	totalFiles int
	writer     io.Writer
	bar        *pb.ProgressBar
	summary    *HumanFormatter
}

// NewProgressFormatter creates a progress bar formatter for a source
// tree of totalFiles files
func NewProgressFormatter(totalFiles int) *ProgressFormatter {
	if totalFiles < 0 {
		totalFiles = 0
	}
	return &ProgressFormatter{
		totalFiles: totalFiles,
		summary:    NewHumanFormatter(),
	}
}

// Start initializes the formatter and starts the bar
func (f *ProgressFormatter) Start(writer io.Writer, op *models.Operation) error {
	f.writer = writer
	if writer == nil {
		f.writer = io.Discard
	}

	f.bar = pb.New(f.totalFiles)
	f.bar.SetWriter(f.writer)
	f.bar.Set(pb.Bytes, false)
	f.bar.Start()
	return nil
}

// IndexBuilt is not shown while the bar is active
func (f *ProgressFormatter) IndexBuilt(indexed, excluded int) error {
	return nil
}

// Result advances the bar by one file
func (f *ProgressFormatter) Result(result *models.FileResult) error {
	f.bar.Increment()
	return nil
}

// DirRemoved is not shown while the bar is active
func (f *ProgressFormatter) DirRemoved(path string) error {
	return nil
}

// Error reports a run-level error
func (f *ProgressFormatter) Error(err error) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	f.summary.writer = f.writer
	return f.summary.Error(err)
}

// Complete stops the bar and prints the human summary
func (f *ProgressFormatter) Complete(report *models.Report) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	f.summary.writer = f.writer
	return f.summary.Complete(report)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
