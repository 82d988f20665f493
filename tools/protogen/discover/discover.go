// Package discover enumerates the proto source files of a repository.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type Opts struct {
	Ignore []string `long:"ignore" description:"Ignore files using .gitignore style patterns"`
}

// Protos returns the proto files under root whose base name matches glob,
// as slash-separated paths relative to root, sorted. Discovery honors the
// proto root's .gitignore and always skips .git. A missing root or an empty
// tree yields an empty set.
func Protos(opts *Opts, root, glob string) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	patterns, err := loadGitignorePatterns(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil, fmt.Errorf("loading .gitignore: %w", err)
	}
	patterns = append(patterns, ".git")
	patterns = append(patterns, opts.Ignore...)

	var protos []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if shouldIgnore(path, root, patterns) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		matched, err := filepath.Match(glob, d.Name())
		if err != nil {
			return fmt.Errorf("matching glob %q: %w", glob, err)
		}
		if !matched {
			return nil
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		protos = append(protos, filepath.ToSlash(relPath))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The compiler invocation must be deterministic for a given tree.
	sort.Strings(protos)
	return protos, nil
}
