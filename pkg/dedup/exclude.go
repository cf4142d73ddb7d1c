package dedup

import (
	"path/filepath"
	"strings"
)

// shouldExclude checks if a source file should be skipped based on the
// configured patterns. Supported forms:
//   - basename globs: *.tmp, Thumbs.db
//   - directory patterns: .git/, node_modules/
//   - path globs (contain a separator): build/*, cache/*.dat
func shouldExclude(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	normalizedPath := filepath.ToSlash(relativePath)
	baseName := filepath.Base(relativePath)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		normalizedPattern := filepath.ToSlash(pattern)

		if strings.HasSuffix(normalizedPattern, "/") {
			dirPattern := strings.TrimSuffix(normalizedPattern, "/")
			if strings.HasPrefix(normalizedPath, dirPattern+"/") ||
				strings.Contains(normalizedPath, "/"+dirPattern+"/") {
				return true
			}
			continue
		}

		if strings.Contains(normalizedPattern, "/") {
			if matched, _ := filepath.Match(normalizedPattern, normalizedPath); matched {
				return true
			}
			continue
		}

		if matched, _ := filepath.Match(normalizedPattern, baseName); matched {
			return true
		}
	}

	return false
}
