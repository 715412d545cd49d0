// Package config loads packcheck.yml, the project-wide configuration that
// sits above individual packs' package.yml manifests: which files get
// parsed, where pack manifests live, cache behavior, autoload roots for
// constant resolution, and the architecture layer order. Modeled on the
// teacher's internal/config/config.go (same Default/Load/yaml.v3 shape),
// generalized from a single-purpose tool config to the richer set of knobs
// spec.md's checkers and resolvers need.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nwaobi/packcheck/internal/globutil"
)

// CacheStrategy selects how ProcessedFile results are cached between runs.
type CacheStrategy string

const (
	CacheNone    CacheStrategy = "none"
	CachePerFile CacheStrategy = "per_file"
	CacheBulk    CacheStrategy = "bulk"
)

// Config is the parsed form of packcheck.yml.
type Config struct {
	RepoRoot string `yaml:"-"` // absolute path, set by Load, not serialized

	Include      []string `yaml:"include"`
	Exclude      []string `yaml:"exclude"`
	PackagePaths []string `yaml:"package_paths"`

	CacheEnabled   bool          `yaml:"cache_enabled"`
	CacheDirectory string        `yaml:"cache_directory"`
	CacheStrategy  CacheStrategy `yaml:"cache_strategy"`

	AutoloadRoots      map[string]string `yaml:"autoload_roots"` // path -> namespace prefix, "" for root
	CustomAssociations []string          `yaml:"custom_associations"`
	IgnoredDefinitions []string          `yaml:"ignored_definitions"`

	Layers []string `yaml:"architecture_layers"`

	// DisableEnforceDependencies and its siblings are process-wide kill
	// switches for a checker, independent of any pack's own enforce_*
	// setting — the "process-wide disable flag" common-gating clause.
	DisableEnforceDependencies  bool `yaml:"disable_enforce_dependencies"`
	DisableEnforcePrivacy       bool `yaml:"disable_enforce_privacy"`
	DisableEnforceVisibility    bool `yaml:"disable_enforce_visibility"`
	DisableEnforceFolderPrivacy bool `yaml:"disable_enforce_folder_privacy"`
	DisableEnforceLayers        bool `yaml:"disable_enforce_layers"`

	Parallelism int `yaml:"parallelism"`
}

// Default returns the configuration packcheck uses when no packcheck.yml is
// present in the repo root.
func Default() *Config {
	return &Config{
		Include:        []string{"**/*.rb", "**/*.rake", "**/*.erb"},
		Exclude:        []string{"vendor/**", "node_modules/**", "tmp/**", "bin/**"},
		PackagePaths:   []string{"**/"},
		CacheEnabled:   true,
		CacheDirectory: "tmp/cache/packcheck",
		CacheStrategy:  CachePerFile,
		AutoloadRoots:  map[string]string{"app": "", "lib": ""},
		Parallelism:    0, // 0 means "use GOMAXPROCS"
	}
}

// Load reads packcheck.yml from repoRoot, falling back to Default() if the
// file doesn't exist. A present-but-invalid file is an error.
func Load(repoRoot string) (*Config, error) {
	path := filepath.Join(repoRoot, "packcheck.yml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		cfg.RepoRoot = repoRoot
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.RepoRoot = repoRoot
	return cfg, nil
}

// IncludesFile reports whether relPath should be processed, honoring both
// Include and Exclude globs (Exclude wins on overlap).
func (c *Config) IncludesFile(relPath string) bool {
	if globutil.MatchAny(c.Exclude, relPath) {
		return false
	}
	return globutil.MatchAny(c.Include, relPath)
}

// IsDefinitionIgnored reports whether fullyQualifiedName is listed under
// ignored_definitions. No resolver or checker in this module calls it, so
// listed constants are still resolved, reported as ambiguous, and checked.
func (c *Config) IsDefinitionIgnored(fullyQualifiedName string) bool {
	for _, ignored := range c.IgnoredDefinitions {
		if ignored == fullyQualifiedName {
			return true
		}
	}
	return false
}
