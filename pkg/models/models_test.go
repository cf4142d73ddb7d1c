package models

import (
	"testing"
	"time"
)

func validOperation() *Operation {
	return &Operation{
		ID:           "test-op",
		SourcePath:   "/data/src",
		DestPath:     "/data/dest",
		Mode:         LookupBySize,
		Comparator:   ComparatorBinary,
		FilterSource: true,
		BufferSize:   65536,
		CreatedAt:    time.Now(),
	}
}

func TestOperationValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(op *Operation)
		wantErr bool
	}{
		{"valid", func(op *Operation) {}, false},
		{"missing source", func(op *Operation) { op.SourcePath = "" }, true},
		{"missing dest", func(op *Operation) { op.DestPath = "" }, true},
		{"bad lookup mode", func(op *Operation) { op.Mode = "hash" }, true},
		{"bad comparator", func(op *Operation) { op.Comparator = "md5" }, true},
		{"buffer too small", func(op *Operation) { op.BufferSize = 512 }, true},
		{"name mode", func(op *Operation) { op.Mode = LookupByName }, false},
		{"exec comparator", func(op *Operation) { op.Comparator = ComparatorExec }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := validOperation()
			tt.modify(op)
			err := op.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatusExitCode(t *testing.T) {
	tests := []struct {
		status   Status
		expected int
	}{
		{StatusSuccess, 0},
		{StatusPartial, 1},
		{StatusFailed, 2},
		{StatusCancelled, 3},
		{Status("unknown"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFileResultMatched(t *testing.T) {
	tests := []struct {
		action   Action
		expected bool
	}{
		{ActionDeleted, true},
		{ActionWouldDelete, true},
		{ActionNoMatch, false},
		{ActionError, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			r := &FileResult{Action: tt.action}
			if got := r.Matched(); got != tt.expected {
				t.Errorf("Matched() = %v, want %v", got, tt.expected)
			}
		})
	}
}
