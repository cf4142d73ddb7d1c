package models

import (
	"time"
)

// Report represents the results of a deduplication run
type Report struct {
	// Operation details
	OperationID string
	SourcePath  string
	DestPath    string
	Mode        LookupMode
	Delete      bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Duplicates lists the matched source files
	Duplicates []FileResult

	// Errors encountered during the run
	Errors []RunError

	// Overall status
	Status Status
}

// Statistics holds deduplication run metrics
type Statistics struct {
	// IndexedFiles is the number of destination files in the index
	IndexedFiles int
	// IndexExcluded is the number of destination files skipped by the
	// source-subtree exclusion filter
	IndexExcluded int

	// FilesScanned is the number of source files processed
	FilesScanned int
	// FilesMatched is the number of source files with a byte-identical
	// destination file (deleted or would-be-deleted)
	FilesMatched int
	// FilesDeleted is the number of source files actually removed
	FilesDeleted int
	// FilesErrored is the number of source files that could not be processed
	FilesErrored int
	// DirsDeleted is the number of emptied source directories removed
	DirsDeleted int

	// BytesMatched is the total size of matched source files
	BytesMatched int64
}

// Status represents the overall result of a run
type Status string

const (
	// StatusSuccess indicates the run completed without errors
	StatusSuccess Status = "success"
	// StatusPartial indicates the run completed but some files errored
	StatusPartial Status = "partial"
	// StatusFailed indicates the run could not start
	StatusFailed Status = "failed"
	// StatusCancelled indicates the run was cancelled
	StatusCancelled Status = "cancelled"
)

// ExitCode returns the process exit code for the run status
func (s Status) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusFailed:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}

// RunError represents a non-fatal error captured during a run
type RunError struct {
	Path      string
	Stage     string // "index", "stat", "compare", "delete"
	Error     string
	Timestamp time.Time
}
