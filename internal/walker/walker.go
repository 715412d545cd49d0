// Package walker enumerates the repo's files, honoring packcheck.yml's
// include/exclude globs. Grounded on the teacher's engine.go walkRepo/
// isIgnored pair: a filepath.WalkDir pass skipping directories a pattern
// matches outright, then filtering files through Config.IncludesFile.
package walker

import (
	"io/fs"
	"path/filepath"

	"github.com/nwaobi/packcheck/internal/config"
)

// Walk returns every file under cfg.RepoRoot that cfg.IncludesFile accepts,
// as paths relative to the repo root.
func Walk(cfg *config.Config) ([]string, error) {
	var files []string
	err := filepath.WalkDir(cfg.RepoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == cfg.RepoRoot {
			return nil
		}
		rel, relErr := filepath.Rel(cfg.RepoRoot, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if isIgnoredDir(cfg, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if cfg.IncludesFile(rel) {
			files = append(files, rel)
		}
		return nil
	})
	return files, err
}

// isIgnoredDir reports whether every file under dir would be excluded, so
// the walk can skip it entirely instead of visiting each file individually.
func isIgnoredDir(cfg *config.Config, dir string) bool {
	for _, pattern := range cfg.Exclude {
		if matchesDirPrefix(pattern, dir) {
			return true
		}
	}
	return false
}

func matchesDirPrefix(pattern, dir string) bool {
	prefix := pattern
	for _, suffix := range []string{"/**"} {
		if len(prefix) > len(suffix) && prefix[len(prefix)-len(suffix):] == suffix {
			prefix = prefix[:len(prefix)-len(suffix)]
			break
		}
	}
	prefix = trimTrailingSlash(prefix)
	return prefix != "" && dir == prefix
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
