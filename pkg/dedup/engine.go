// Package dedup walks a source tree and removes (or reports) every
// file whose exact content already exists somewhere in a destination
// tree. The destination is never mutated.
package dedup

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/sdejongh/dedupnorris/internal/platform"
	"github.com/sdejongh/dedupnorris/pkg/compare"
	"github.com/sdejongh/dedupnorris/pkg/index"
	"github.com/sdejongh/dedupnorris/pkg/logging"
	"github.com/sdejongh/dedupnorris/pkg/models"
	"github.com/sdejongh/dedupnorris/pkg/output"
	"github.com/sdejongh/dedupnorris/pkg/storage"
)

// Engine orchestrates one deduplication run: a single index build over
// the destination followed by a single sequential pass over the source.
type Engine struct {
	source     storage.Backend
	dest       storage.Backend
	comparator compare.Comparator
	formatter  output.Formatter
	logger     logging.Logger
	operation  *models.Operation
}

// NewEngine creates a new deduplication engine
func NewEngine(
	source, dest storage.Backend,
	comparator compare.Comparator,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.Operation,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		source:     source,
		dest:       dest,
		comparator: comparator,
		formatter:  formatter,
		logger:     logger,
		operation:  operation,
	}
}

// Run executes the deduplication pass and returns the final report.
// Per-file trouble is logged and recorded in the report; only an
// unusable setup or cancellation aborts the run.
func (e *Engine) Run(ctx context.Context) (*models.Report, error) {
	sourceRoot := platform.NormalizePath(e.source.Root())
	destRoot := platform.NormalizePath(e.dest.Root())

	report := &models.Report{
		OperationID: e.operation.ID,
		SourcePath:  sourceRoot,
		DestPath:    destRoot,
		Mode:        e.operation.Mode,
		Delete:      e.operation.Delete,
		StartTime:   time.Now(),
	}

	filterPrefix := ""
	if e.operation.FilterSource {
		filterPrefix = sourceRoot
	}

	e.logger.Info(ctx, "building destination index", logging.Fields{
		"dest":   destRoot,
		"filter": filterPrefix,
	})

	ix, err := index.Build(ctx, e.dest, index.Options{
		FilterPrefix: filterPrefix,
		Comparator:   e.comparator,
		Logger:       e.logger,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			report.Status = models.StatusCancelled
		} else {
			report.Status = models.StatusFailed
		}
		e.finish(report)
		return report, err
	}

	report.Stats.IndexedFiles = ix.Len()
	report.Stats.IndexExcluded = ix.Excluded()
	e.formatter.IndexBuilt(ix.Len(), ix.Excluded())

	walkErr := e.source.Walk(ctx, func(info storage.FileInfo) error {
		e.processFile(ctx, ix, info, report)
		return nil
	}, func(path string, err error) {
		e.logger.Warn(ctx, "skipping unreadable source entry", logging.Fields{
			"path":  path,
			"error": err.Error(),
		})
		e.recordError(report, "stat", path, err)
	})

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			report.Status = models.StatusCancelled
		} else {
			report.Status = models.StatusFailed
		}
		e.finish(report)
		return report, walkErr
	}

	if report.Stats.FilesErrored > 0 || len(report.Errors) > 0 {
		report.Status = models.StatusPartial
	} else {
		report.Status = models.StatusSuccess
	}

	e.finish(report)
	return report, nil
}

// processFile decides the disposition of a single source file. Every
// error below this point is converted into a logged, non-aborting
// outcome so the run always reaches its summary.
func (e *Engine) processFile(ctx context.Context, ix *index.Index, info storage.FileInfo, report *models.Report) {
	if shouldExclude(info.RelativePath, e.operation.ExcludePatterns) {
		return
	}

	report.Stats.FilesScanned++
	path := platform.NormalizePath(info.Path)

	var candidates []string
	if e.operation.Mode == models.LookupByName {
		candidates = ix.LookupByName(path)
	} else {
		var err error
		candidates, err = ix.LookupBySize(info.Path)
		if err != nil {
			e.logger.Error(ctx, "failed to stat source file", err, logging.Fields{"path": path})
			e.recordError(report, "stat", path, err)
			report.Stats.FilesErrored++
			e.formatter.Result(&models.FileResult{
				SourcePath: path,
				Size:       info.Size,
				Action:     models.ActionError,
				Err:        err,
			})
			return
		}
	}

	// First candidate with identical content wins; the index returns
	// candidates in lexicographic order so this is reproducible.
	match := ""
	for _, candidate := range candidates {
		if ix.SameFile(ctx, info.Path, candidate) {
			match = candidate
			break
		}
	}

	if match == "" {
		e.formatter.Result(&models.FileResult{
			SourcePath: path,
			Size:       info.Size,
			Action:     models.ActionNoMatch,
		})
		return
	}

	if !e.operation.Delete {
		result := models.FileResult{
			SourcePath: path,
			MatchPath:  match,
			Size:       info.Size,
			Action:     models.ActionWouldDelete,
		}
		report.Stats.FilesMatched++
		report.Stats.BytesMatched += info.Size
		report.Duplicates = append(report.Duplicates, result)
		e.formatter.Result(&result)
		return
	}

	if err := e.source.RemoveFile(ctx, info.Path); err != nil {
		// File stays on disk, so it is not counted as matched either
		e.logger.Error(ctx, "failed to delete duplicate", err, logging.Fields{"path": path})
		e.recordError(report, "delete", path, err)
		report.Stats.FilesErrored++
		e.formatter.Result(&models.FileResult{
			SourcePath: path,
			MatchPath:  match,
			Size:       info.Size,
			Action:     models.ActionError,
			Err:        err,
		})
		return
	}

	result := models.FileResult{
		SourcePath: path,
		MatchPath:  match,
		Size:       info.Size,
		Action:     models.ActionDeleted,
	}
	report.Stats.FilesMatched++
	report.Stats.FilesDeleted++
	report.Stats.BytesMatched += info.Size
	report.Duplicates = append(report.Duplicates, result)
	e.formatter.Result(&result)

	e.pruneParent(ctx, info.Path, report)
}

// pruneParent removes the deleted file's parent directory when the
// deletion emptied it. The source root itself is never removed.
func (e *Engine) pruneParent(ctx context.Context, path string, report *models.Report) {
	parent := filepath.Dir(path)
	if platform.SameLocation(platform.NormalizePath(parent), platform.NormalizePath(e.source.Root())) {
		return
	}

	removed, err := e.source.RemoveDirIfEmpty(ctx, parent)
	if err != nil {
		e.logger.Error(ctx, "failed to remove emptied directory", err, logging.Fields{"path": parent})
		e.recordError(report, "delete", parent, err)
		return
	}
	if removed {
		report.Stats.DirsDeleted++
		e.formatter.DirRemoved(platform.NormalizePath(parent))
	}
}

func (e *Engine) recordError(report *models.Report, stage, path string, err error) {
	report.Errors = append(report.Errors, models.RunError{
		Path:      path,
		Stage:     stage,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
}

func (e *Engine) finish(report *models.Report) {
	if report.EndTime.IsZero() {
		report.EndTime = time.Now()
		report.Duration = report.EndTime.Sub(report.StartTime)
	}
	e.formatter.Complete(report)
}
