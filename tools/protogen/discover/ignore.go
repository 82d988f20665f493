package discover

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// loadGitignorePatterns loads patterns from a .gitignore file.
func loadGitignorePatterns(gitignorePath string) ([]string, error) {
	file, err := os.Open(gitignorePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var patterns []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// shouldIgnore checks if a path matches any gitignore pattern.
func shouldIgnore(path string, rootDir string, patterns []string) bool {
	relPath, err := filepath.Rel(rootDir, path)
	if err != nil {
		return false
	}

	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(pattern, "/")

		// Directory patterns (ending with / or /*) match the whole subtree.
		if strings.HasSuffix(pattern, "/") || strings.HasSuffix(pattern, "/*") {
			pattern = strings.TrimSuffix(pattern, "/*")
			pattern = strings.TrimSuffix(pattern, "/")
			if relPath == pattern || strings.HasPrefix(relPath, pattern+string(filepath.Separator)) {
				return true
			}
			continue
		}

		if matched, err := filepath.Match(pattern, filepath.Base(relPath)); err == nil && matched {
			return true
		}
		// A pattern matching any path element ignores the whole subtree.
		for _, part := range strings.Split(relPath, string(filepath.Separator)) {
			if matched, err := filepath.Match(pattern, part); err == nil && matched {
				return true
			}
		}
		if matched, err := filepath.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}
