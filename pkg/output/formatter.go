package output

import (
	"io"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// Formatter defines the interface for run output.
// The engine emits one Result per source file, DirRemoved notices for
// pruned directories, and a single Complete with the final report.
type Formatter interface {
	// Start initializes the formatter for a new run
	Start(writer io.Writer, op *models.Operation) error

	// IndexBuilt reports the finished destination index
	IndexBuilt(indexed, excluded int) error

	// Result reports the disposition of one source file
	Result(result *models.FileResult) error

	// DirRemoved reports an emptied source directory that was pruned
	DirRemoved(path string) error

	// Error reports a run-level error
	Error(err error) error

	// Complete finalizes output and displays the summary
	Complete(report *models.Report) error

	// Name returns the formatter name
	Name() string
}
