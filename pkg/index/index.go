// Package index builds an in-memory view of the destination tree used
// for duplicate candidate selection. The index is built in a single
// pass and never mutated afterwards, so lookups during the source walk
// need no locking.
package index

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/sdejongh/dedupnorris/internal/platform"
	"github.com/sdejongh/dedupnorris/pkg/compare"
	"github.com/sdejongh/dedupnorris/pkg/logging"
	"github.com/sdejongh/dedupnorris/pkg/storage"
)

// Index maps file sizes and base names to the destination paths sharing
// them. Paths are stored in normalized forward-slash form and every
// bucket is sorted lexicographically, so candidate scan order is
// deterministic across runs and platforms.
type Index struct {
	root         string
	filterPrefix string

	bySize map[int64][]string
	byName map[string][]string

	comparator compare.Comparator
	logger     logging.Logger

	files    int
	excluded int
}

// Options configures an index build
type Options struct {
	// FilterPrefix excludes any destination file whose normalized path
	// lies under this prefix. In the default run mode this is the source
	// root: when the source tree sits inside the destination tree, a
	// source file must never match itself or a sibling that deletion has
	// already consumed.
	FilterPrefix string

	// Comparator performs the exact content comparison for SameFile
	Comparator compare.Comparator

	// Logger receives non-fatal scan errors; nil disables logging
	Logger logging.Logger
}

// Build scans the destination backend once and returns the finished,
// immutable index. An unusable root is a fatal, pre-scan error (it is
// caught when the backend is constructed); stat failures on individual
// entries are logged and the entry skipped.
func Build(ctx context.Context, backend storage.Backend, opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	comparator := opts.Comparator
	if comparator == nil {
		comparator = compare.NewBinaryComparator(0)
	}

	ix := &Index{
		root:         platform.NormalizePath(backend.Root()),
		filterPrefix: opts.FilterPrefix,
		bySize:       make(map[int64][]string),
		byName:       make(map[string][]string),
		comparator:   comparator,
		logger:       logger,
	}

	err := backend.Walk(ctx, func(info storage.FileInfo) error {
		path := platform.NormalizePath(info.Path)

		if platform.HasPathPrefix(path, ix.filterPrefix) {
			ix.excluded++
			return nil
		}

		ix.bySize[info.Size] = append(ix.bySize[info.Size], path)
		ix.byName[platform.Base(path)] = append(ix.byName[platform.Base(path)], path)
		ix.files++
		return nil
	}, func(path string, err error) {
		logger.Warn(ctx, "skipping unreadable destination entry", logging.Fields{
			"path":  path,
			"error": err.Error(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan destination tree: %w", err)
	}

	for _, bucket := range ix.bySize {
		sort.Strings(bucket)
	}
	for _, bucket := range ix.byName {
		sort.Strings(bucket)
	}

	return ix, nil
}

// Len returns the number of indexed files
func (ix *Index) Len() int {
	return ix.files
}

// Excluded returns the number of files skipped by the exclusion filter
func (ix *Index) Excluded() int {
	return ix.excluded
}

// Root returns the normalized destination root the index was built over
func (ix *Index) Root() string {
	return ix.root
}

// LookupBySize returns all indexed paths whose recorded size equals the
// size of the given file, in lexicographic order. This is the primary
// matching mode.
func (ix *Index) LookupBySize(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return copyBucket(ix.bySize[info.Size()]), nil
}

// LookupByName returns all indexed paths sharing the file's base name,
// in lexicographic order. Alternate matching mode; not used by the
// default flow.
func (ix *Index) LookupByName(path string) []string {
	return copyBucket(ix.byName[platform.Base(platform.NormalizePath(path))])
}

// SameFile reports whether two paths hold byte-identical content at
// distinct filesystem locations. Any I/O trouble along the way is
// logged and answered with false: one bad file must never abort a run.
func (ix *Index) SameFile(ctx context.Context, pathA, pathB string) bool {
	normA := platform.NormalizePath(pathA)
	normB := platform.NormalizePath(pathB)

	// A file is never a match for itself
	if platform.SameLocation(normA, normB) {
		return false
	}

	infoA, err := os.Stat(pathA)
	if err != nil {
		ix.logger.Error(ctx, "failed to stat file during comparison", err, logging.Fields{"path": pathA})
		return false
	}
	infoB, err := os.Stat(pathB)
	if err != nil {
		ix.logger.Error(ctx, "failed to stat file during comparison", err, logging.Fields{"path": pathB})
		return false
	}

	// Cheap short-circuit before any content read
	if infoA.Size() != infoB.Size() {
		return false
	}

	equal, err := ix.comparator.FilesEqual(ctx, pathA, pathB)
	if err != nil {
		ix.logger.Error(ctx, "content comparison failed", err, logging.Fields{
			"pathA": pathA,
			"pathB": pathB,
		})
		return false
	}
	return equal
}

func copyBucket(bucket []string) []string {
	if len(bucket) == 0 {
		return nil
	}
	out := make([]string, len(bucket))
	copy(out, bucket)
	return out
}
