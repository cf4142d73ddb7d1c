package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a filesystem entry
type FileInfo struct {
	Path         string
	Size         int64
	ModTime      time.Time
	IsDir        bool
	RelativePath string
}

// WalkFunc is invoked for every regular file found during a walk.
// Directories and special files are not reported.
type WalkFunc func(info FileInfo) error

// Backend defines the filesystem operations a deduplication run needs.
// The mutation surface is deliberately narrow: delete one file, delete
// one directory only when empty. Nothing is ever written.
type Backend interface {
	// Walk visits every regular file under the backend root. Entries that
	// cannot be read are reported through onError and skipped; the walk
	// itself continues.
	Walk(ctx context.Context, fn WalkFunc, onError func(path string, err error)) error

	// Read opens a file for reading
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Stat returns file metadata for an absolute path
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Exists checks if a path exists
	Exists(ctx context.Context, path string) (bool, error)

	// RemoveFile deletes a single regular file
	RemoveFile(ctx context.Context, path string) error

	// RemoveDirIfEmpty deletes a directory only if it contains no entries.
	// Returns true when the directory was removed.
	RemoveDirIfEmpty(ctx context.Context, path string) (bool, error)

	// Root returns the absolute root path of the backend
	Root() string

	// Close releases any resources held by the backend
	Close() error
}
