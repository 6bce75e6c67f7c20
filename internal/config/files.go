package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResolveInputs expands the input patterns into an ordered file list.
// Command line args take precedence over Input.Files and are resolved
// against the working directory. Entries of Input.Files and Input.Exclude,
// plain or glob, are resolved against rootPath, the directory of the
// config file. Plain paths are kept even when they do not exist so the
// caller reports the I/O error; glob patterns contribute their sorted
// matches.
func (c *Config) ResolveInputs(rootPath string, args []string) ([]string, error) {
	patterns := args
	base := ""
	if len(patterns) == 0 {
		patterns = c.Input.Files
		base = rootPath
	}
	if len(patterns) == 0 {
		patterns = []string{DefaultInput}
	}

	excluded := make(map[string]bool)
	for _, pattern := range c.Input.Exclude {
		pattern = joinRoot(rootPath, pattern)
		if !isGlob(pattern) {
			excluded[pathKey(pattern)] = true
			continue
		}
		matches, err := expandGlob(pattern)
		if err != nil {
			continue
		}
		for _, match := range matches {
			excluded[pathKey(match)] = true
		}
	}

	var result []string
	seen := make(map[string]bool)
	add := func(path string) {
		key := pathKey(path)
		if seen[key] || excluded[key] {
			return
		}
		seen[key] = true
		result = append(result, path)
	}

	for _, pattern := range patterns {
		pattern = joinRoot(base, pattern)
		if !isGlob(pattern) {
			add(pattern)
			continue
		}
		matches, err := expandGlob(pattern)
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		for _, match := range matches {
			add(match)
		}
	}

	return result, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

func joinRoot(rootPath, pattern string) string {
	if rootPath == "" || filepath.IsAbs(pattern) {
		return pattern
	}
	return filepath.Join(rootPath, pattern)
}

// pathKey identifies a file independent of how its path was spelled.
func pathKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// expandGlob expands a glob pattern, handling ** for recursive matching
func expandGlob(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return expandDoubleStarGlob(pattern)
	}
	return filepath.Glob(pattern)
}

// expandDoubleStarGlob handles ** patterns by walking the directory tree
func expandDoubleStarGlob(pattern string) ([]string, error) {
	var results []string

	parts := strings.SplitN(pattern, "**", 2)
	baseDir := filepath.Clean(parts[0])
	if baseDir == "" {
		baseDir = "."
	}
	suffix := strings.TrimPrefix(parts[1], string(filepath.Separator))

	err := filepath.Walk(baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if info.IsDir() {
			return nil
		}

		if suffix == "" {
			results = append(results, path)
			return nil
		}

		relPath, err := filepath.Rel(baseDir, path)
		if err != nil {
			return nil
		}
		if matchSuffix(relPath, suffix) {
			results = append(results, path)
		}
		return nil
	})

	return results, err
}

// matchSuffix checks if a path matches a suffix pattern (after **)
func matchSuffix(path, pattern string) bool {
	// If pattern has no directory component, match against filename
	if !strings.Contains(pattern, string(filepath.Separator)) {
		matched, _ := filepath.Match(pattern, filepath.Base(path))
		return matched
	}

	matched, _ := filepath.Match(pattern, path)
	if matched {
		return true
	}

	// Also try matching the trailing components
	segments := strings.Count(pattern, string(filepath.Separator)) + 1
	parts := strings.Split(path, string(filepath.Separator))
	if len(parts) > segments {
		tail := filepath.Join(parts[len(parts)-segments:]...)
		matched, _ = filepath.Match(pattern, tail)
		return matched
	}

	return false
}
