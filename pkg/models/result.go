package models

// Action represents the disposition of a single source file
type Action string

const (
	// ActionDeleted indicates the file matched and was removed
	ActionDeleted Action = "deleted"
	// ActionWouldDelete indicates the file matched during a dry run
	ActionWouldDelete Action = "would_delete"
	// ActionNoMatch indicates no destination file had identical content
	ActionNoMatch Action = "no_match"
	// ActionError indicates the file could not be processed
	ActionError Action = "error"
)

// FileResult holds the outcome of processing one source file
type FileResult struct {
	// SourcePath is the file that was checked against the index
	SourcePath string
	// MatchPath is the destination file with identical content, empty when none
	MatchPath string
	// Size in bytes
	Size int64
	// Action taken for the file
	Action Action
	// Err is set when Action is ActionError, or when a matched file
	// could not be deleted
	Err error
}

// Matched reports whether the file found a byte-identical destination file
func (r *FileResult) Matched() bool {
	return r.Action == ActionDeleted || r.Action == ActionWouldDelete
}
