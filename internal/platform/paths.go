package platform

import (
	"path/filepath"
	"strings"
)

// NormalizePath returns the cleaned, forward-slash form of a path.
// Index keys and exclusion-filter comparisons all operate on this form
// so behaviour is identical across platforms.
func NormalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// NormalizeAbs resolves a path to its absolute, forward-slash form.
func NormalizeAbs(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(abs), nil
}

// HasPathPrefix reports whether path lies under prefix. Both arguments
// must already be normalized. The comparison is case-sensitive and
// component-aware: "/a/bc" is not under "/a/b".
func HasPathPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// SameLocation reports whether two normalized paths refer to the same
// filesystem location. Case-insensitive so that a file is never matched
// against itself on case-preserving filesystems.
func SameLocation(pathA, pathB string) bool {
	return strings.EqualFold(pathA, pathB)
}

// Base returns the last element of a normalized path.
func Base(path string) string {
	return filepath.Base(path)
}
