package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// WriteReport writes the final run report to a file.
// Format can be "human" or "json".
func WriteReport(report *models.Report, path string, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		return writeReportJSON(report, file)
	default: // "human"
		return writeReportHuman(report, file)
	}
}

// writeReportHuman writes the report in human-readable format
func writeReportHuman(report *models.Report, w io.Writer) error {
	fmt.Fprintf(w, "Deduplication Report\n")
	fmt.Fprintf(w, "====================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Operation: %s\n", report.OperationID)
	fmt.Fprintf(w, "Source: %s\n", report.SourcePath)
	fmt.Fprintf(w, "Destination: %s\n", report.DestPath)
	fmt.Fprintf(w, "Lookup mode: %s\n", report.Mode)
	fmt.Fprintf(w, "Delete: %v\n", report.Delete)
	fmt.Fprintf(w, "Duration: %s\n\n", report.Duration.Round(time.Millisecond))

	fmt.Fprintf(w, "Files scanned: %d\n", report.Stats.FilesScanned)
	fmt.Fprintf(w, "Duplicates:    %d (%s)\n", report.Stats.FilesMatched, FormatBytes(report.Stats.BytesMatched))
	fmt.Fprintf(w, "Deleted:       %d files, %d dirs\n", report.Stats.FilesDeleted, report.Stats.DirsDeleted)
	fmt.Fprintf(w, "Errored:       %d\n\n", report.Stats.FilesErrored)

	if len(report.Duplicates) > 0 {
		fmt.Fprintf(w, "Duplicates:\n")
		for _, dup := range report.Duplicates {
			fmt.Fprintf(w, "  %s -> %s (%s, %s)\n",
				dup.SourcePath, dup.MatchPath, FormatBytes(dup.Size), dup.Action)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "Errors:\n")
		for _, e := range report.Errors {
			fmt.Fprintf(w, "  [%s] %s: %s\n", e.Stage, e.Path, e.Error)
		}
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "Status: %s\n", report.Status)
	return nil
}

type reportJSON struct {
	Generated    string            `json:"generated"`
	OperationID  string            `json:"operation_id"`
	SourcePath   string            `json:"source_path"`
	DestPath     string            `json:"dest_path"`
	Mode         string            `json:"mode"`
	Delete       bool              `json:"delete"`
	DurationMS   int64             `json:"duration_ms"`
	FilesScanned int               `json:"files_scanned"`
	FilesMatched int               `json:"files_matched"`
	FilesDeleted int               `json:"files_deleted"`
	FilesErrored int               `json:"files_errored"`
	DirsDeleted  int               `json:"dirs_deleted"`
	BytesMatched int64             `json:"bytes_matched"`
	Duplicates   []reportDuplicate `json:"duplicates,omitempty"`
	Errors       []reportError     `json:"errors,omitempty"`
	Status       string            `json:"status"`
}

type reportDuplicate struct {
	Source string `json:"source"`
	Match  string `json:"match"`
	Size   int64  `json:"size"`
	Action string `json:"action"`
}

type reportError struct {
	Stage string `json:"stage"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

// writeReportJSON writes the report as a single JSON document
func writeReportJSON(report *models.Report, w io.Writer) error {
	out := reportJSON{
		Generated:    time.Now().Format(time.RFC3339),
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
	}

	for _, dup := range report.Duplicates {
		out.Duplicates = append(out.Duplicates, reportDuplicate{
			Source: dup.SourcePath,
			Match:  dup.MatchPath,
			Size:   dup.Size,
			Action: string(dup.Action),
		})
	}
	for _, e := range report.Errors {
		out.Errors = append(out.Errors, reportError{Stage: e.Stage, Path: e.Path, Error: e.Error})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
