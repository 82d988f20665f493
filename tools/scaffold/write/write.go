package write

import (
	"fmt"
	"os"
	"path/filepath"
)

// File is one generated file, with its path relative to the target
// directory.
type File struct {
	Output  string
	Content []byte
}

// Files writes all generated files under dir, creating parent directories as
// needed.
func Files(dir string, files []*File) error {
	for _, file := range files {
		if err := writeFile(dir, file); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Output, err)
		}
	}
	return nil
}

func writeFile(dir string, file *File) error {
	outputPath := filepath.Join(dir, file.Output)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(outputPath, file.Content, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
