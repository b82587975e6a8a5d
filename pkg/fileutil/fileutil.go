// Package fileutil provides helpers for resolving and checking corpus paths.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hacheck/hacheck/pkg/logger"
)

var log = logger.New("fileutil:fileutil")

// ValidateAbsolutePath cleans path and requires it to be absolute.
func ValidateAbsolutePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path cannot be empty")
	}

	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		return "", fmt.Errorf("path must be absolute, got: %s", path)
	}
	return cleanPath, nil
}

// ResolveUnder joins rel onto root unless rel is already absolute.
func ResolveUnder(root, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(root, rel)
}

// RelativeSlash returns path relative to root with forward slashes. When path
// lies outside root it is returned cleaned and slash-converted unchanged.
func RelativeSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(filepath.Clean(path))
	}
	return filepath.ToSlash(rel)
}

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// GlobFiles expands each pattern under root and returns the regular files
// matched, deduplicated and sorted. Patterns follow filepath.Match; "**" does
// not cross directories and is rejected.
func GlobFiles(root string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		if strings.Contains(pattern, "**") {
			return nil, fmt.Errorf("invalid glob %q: recursive ** is not supported, list each directory level instead", pattern)
		}
		matches, err := filepath.Glob(ResolveUnder(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || !FileExists(m) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	slices.Sort(files)
	log.Printf("Globbed %d files for %d patterns under %s", len(files), len(patterns), root)
	return files, nil
}
