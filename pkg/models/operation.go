package models

import (
	"time"
)

// LookupMode defines how destination candidates are selected
type LookupMode string

const (
	// LookupBySize selects candidates sharing the source file's size.
	// This is the default mode: identical files commonly end up with
	// different names after the two trees are reorganized independently.
	LookupBySize LookupMode = "size"
	// LookupByName selects candidates sharing the source file's base name
	LookupByName LookupMode = "name"
)

// ComparatorKind defines which exact-content comparator implementation is used
type ComparatorKind string

const (
	// ComparatorBinary compares byte-by-byte in-process
	ComparatorBinary ComparatorKind = "binary"
	// ComparatorExec shells out to an external exact-diff tool
	ComparatorExec ComparatorKind = "exec"
)

// Operation represents a deduplication run configuration
type Operation struct {
	ID              string
	SourcePath      string
	DestPath        string
	Mode            LookupMode
	Comparator      ComparatorKind
	CompareTool     string // external diff tool, exec comparator only
	Delete          bool   // remove matched source files (default is dry-run)
	FilterSource    bool   // exclude the source subtree from the destination index
	ExcludePatterns []string
	BufferSize      int
	BandwidthLimit  int64 // bytes per second, 0 = unlimited
	CreatedAt       time.Time
}

// Validate checks if the operation configuration is valid
func (op *Operation) Validate() error {
	if op.SourcePath == "" {
		return &ValidationError{Field: "SourcePath", Message: "source path is required"}
	}
	if op.DestPath == "" {
		return &ValidationError{Field: "DestPath", Message: "destination path is required"}
	}
	if op.Mode != LookupBySize && op.Mode != LookupByName {
		return &ValidationError{Field: "Mode", Message: "lookup mode must be 'size' or 'name'"}
	}
	if op.Comparator != ComparatorBinary && op.Comparator != ComparatorExec {
		return &ValidationError{Field: "Comparator", Message: "comparator must be 'binary' or 'exec'"}
	}
	if op.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
