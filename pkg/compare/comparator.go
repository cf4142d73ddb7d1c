package compare

import (
	"context"
	"io"
)

// ReaderWrapper wraps a reader, e.g. for rate limiting
type ReaderWrapper func(r io.Reader) io.Reader

// Comparator defines the interface for exact content comparison.
// Implementations must be swappable so tests can substitute an
// in-memory fake for the filesystem-backed ones.
type Comparator interface {
	// FilesEqual reports whether the two files have byte-identical
	// content. A non-nil error means the comparison could not be
	// performed, not that the files differ.
	FilesEqual(ctx context.Context, pathA, pathB string) (bool, error)

	// Name returns the name of the comparison method
	Name() string
}
