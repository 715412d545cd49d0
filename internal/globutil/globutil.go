// Package globutil matches paths against `**`-aware glob patterns, the form
// used throughout packcheck's project and pack manifests (include/exclude,
// package_paths, enforcement_globs_ignore).
package globutil

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchAny reports whether relPath matches any of the given patterns. relPath
// is normalized to forward slashes before matching, since manifests are
// authored with "/"-separated globs regardless of host OS.
func MatchAny(patterns []string, relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		if Match(pattern, relPath) {
			return true
		}
	}
	return false
}

// Match reports whether relPath matches pattern, treating a bare directory
// prefix like "vendor/**" the same as doublestar already would, but also
// tolerating the plain directory form "vendor" some manifests use.
func Match(pattern, relPath string) bool {
	pattern = filepath.ToSlash(pattern)
	ok, err := doublestar.Match(pattern, relPath)
	if err == nil && ok {
		return true
	}
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		if relPath == prefix || strings.HasPrefix(relPath, prefix+"/") {
			return true
		}
	}
	if !strings.ContainsAny(pattern, "*?[{") {
		dir := strings.TrimSuffix(pattern, "/")
		if dir != "" && strings.HasPrefix(relPath, dir+"/") {
			return true
		}
	}
	return false
}

// Glob expands pattern relative to root, returning paths relative to root.
func Glob(root, pattern string) ([]string, error) {
	full := filepath.Join(root, filepath.FromSlash(pattern))
	matches, err := doublestar.FilepathGlob(filepath.ToSlash(full))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		rel, err := filepath.Rel(root, m)
		if err != nil {
			continue
		}
		out = append(out, rel)
	}
	return out, nil
}
