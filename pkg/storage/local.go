package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local is a filesystem-based storage backend rooted at a directory
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend. The root must exist
// and be a directory; anything else is a fatal setup error.
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{rootPath: absPath}, nil
}

// Root returns the absolute root path of the backend
func (l *Local) Root() string {
	return l.rootPath
}

// Walk visits every regular file under the root. Unreadable entries are
// reported through onError and skipped without aborting the walk.
func (l *Local) Walk(ctx context.Context, fn WalkFunc, onError func(path string, err error)) error {
	return filepath.WalkDir(l.rootPath, func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if onError != nil {
				onError(p, err)
			}
			// An unreadable directory poisons its whole subtree, which
			// WalkDir already skips for us once we swallow the error.
			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if onError != nil {
				onError(p, err)
			}
			return nil
		}

		relPath, err := filepath.Rel(l.rootPath, p)
		if err != nil {
			relPath = p
		}

		return fn(FileInfo{
			Path:         p,
			Size:         info.Size(),
			ModTime:      info.ModTime(),
			IsDir:        false,
			RelativePath: relPath,
		})
	})
}

// Read opens a file for reading
func (l *Local) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.FromSlash(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Stat returns file metadata for an absolute path
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	native := filepath.FromSlash(path)
	info, err := os.Stat(native)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	relPath, err := filepath.Rel(l.rootPath, native)
	if err != nil {
		relPath = native
	}

	return &FileInfo{
		Path:         native,
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		IsDir:        info.IsDir(),
		RelativePath: relPath,
	}, nil
}

// Exists checks if a path exists
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(filepath.FromSlash(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// RemoveFile deletes a single regular file
func (l *Local) RemoveFile(ctx context.Context, path string) error {
	native := filepath.FromSlash(path)

	info, err := os.Stat(native)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to remove directory as file: %s", native)
	}

	if err := os.Remove(native); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// RemoveDirIfEmpty deletes a directory only if it contains no entries
func (l *Local) RemoveDirIfEmpty(ctx context.Context, path string) (bool, error) {
	native := filepath.FromSlash(path)

	entries, err := os.ReadDir(native)
	if err != nil {
		return false, fmt.Errorf("failed to read directory: %w", err)
	}
	if len(entries) > 0 {
		return false, nil
	}

	if err := os.Remove(native); err != nil {
		return false, fmt.Errorf("failed to delete directory: %w", err)
	}
	return true, nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
