package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// JSONFormatter streams one JSON object per event, suitable for piping
// into other tooling
type JSONFormatter struct {
	encoder *json.Encoder
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonEvent struct {
	Event     string `json:"event"`
	Source    string `json:"source,omitempty"`
	Match     string `json:"match,omitempty"`
	Path      string `json:"path,omitempty"`
	Size      int64  `json:"size,omitempty"`
	Action    string `json:"action,omitempty"`
	Error     string `json:"error,omitempty"`
	Indexed   int    `json:"indexed,omitempty"`
	Excluded  int    `json:"excluded,omitempty"`
	Timestamp string `json:"timestamp"`
}

type jsonSummary struct {
	Event        string `json:"event"`
	OperationID  string `json:"operation_id"`
	SourcePath   string `json:"source_path"`
	DestPath     string `json:"dest_path"`
	Mode         string `json:"mode"`
	Delete       bool   `json:"delete"`
	DurationMS   int64  `json:"duration_ms"`
	FilesScanned int    `json:"files_scanned"`
	FilesMatched int    `json:"files_matched"`
	FilesDeleted int    `json:"files_deleted"`
	FilesErrored int    `json:"files_errored"`
	DirsDeleted  int    `json:"dirs_deleted"`
	BytesMatched int64  `json:"bytes_matched"`
	Status       string `json:"status"`
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, op *models.Operation) error {
	if writer == nil {
		writer = io.Discard
	}
	f.encoder = json.NewEncoder(writer)
	return f.encoder.Encode(jsonEvent{
		Event:     "start",
		Source:    op.SourcePath,
		Match:     op.DestPath,
		Action:    string(op.Mode),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// IndexBuilt reports the finished destination index
func (f *JSONFormatter) IndexBuilt(indexed, excluded int) error {
	return f.encoder.Encode(jsonEvent{
		Event:     "index",
		Indexed:   indexed,
		Excluded:  excluded,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Result reports the disposition of one source file
func (f *JSONFormatter) Result(result *models.FileResult) error {
	event := jsonEvent{
		Event:     "file",
		Source:    result.SourcePath,
		Match:     result.MatchPath,
		Size:      result.Size,
		Action:    string(result.Action),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if result.Err != nil {
		event.Error = result.Err.Error()
	}
	return f.encoder.Encode(event)
}

// DirRemoved reports a pruned empty directory
func (f *JSONFormatter) DirRemoved(path string) error {
	return f.encoder.Encode(jsonEvent{
		Event:     "dir_removed",
		Path:      path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Error reports a run-level error
func (f *JSONFormatter) Error(err error) error {
	return f.encoder.Encode(jsonEvent{
		Event:     "error",
		Error:     err.Error(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Complete emits the final summary object
func (f *JSONFormatter) Complete(report *models.Report) error {
	return f.encoder.Encode(jsonSummary{
		Event:        "summary",
		OperationID:  report.OperationID,
		SourcePath:   report.SourcePath,
		DestPath:     report.DestPath,
		Mode:         string(report.Mode),
		Delete:       report.Delete,
		DurationMS:   report.Duration.Milliseconds(),
		FilesScanned: report.Stats.FilesScanned,
		FilesMatched: report.Stats.FilesMatched,
		FilesDeleted: report.Stats.FilesDeleted,
		FilesErrored: report.Stats.FilesErrored,
		DirsDeleted:  report.Stats.DirsDeleted,
		BytesMatched: report.Stats.BytesMatched,
		Status:       string(report.Status),
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
