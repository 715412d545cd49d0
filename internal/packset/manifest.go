package packset

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nwaobi/packcheck/internal/packmodel"
)

// manifest mirrors package.yml's on-disk shape, matching the teacher's
// packwerkPackage struct in rubyextractor/packwerk.go but widened to every
// key spec.md's Pack type needs.
type manifest struct {
	Enforcement       any      `yaml:"enforce_dependencies"`
	EnforcePrivacy    any      `yaml:"enforce_privacy"`
	EnforceVisibility any      `yaml:"enforce_visibility"`
	EnforceFolder     any      `yaml:"enforce_folder_privacy"`
	EnforceLayers     any      `yaml:"enforce_layers"`
	Legacy            bool     `yaml:"use_legacy_architecture"`
	Dependencies      []string `yaml:"dependencies"`
	IgnoredDeps       []string `yaml:"ignored_dependencies"`
	VisibleTo         []string `yaml:"visible_to"`
	PrivateConstants  []string `yaml:"private_constants"`
	IgnoredPrivate    []string `yaml:"ignored_private_constants"`
	PublicFolder      string   `yaml:"public_path"`
	Layer             string   `yaml:"layer"`
	Owner             string   `yaml:"owner"`

	EnforcementGlobsIgnore []manifestGlobsIgnore `yaml:"enforcement_globs_ignore"`

	Metadata map[string]any `yaml:"metadata"`
}

type manifestGlobsIgnore struct {
	Enforcements []string `yaml:"enforcements"`
	Ignores      []string `yaml:"ignores"`
	Reason       string   `yaml:"reason"`
}

func toSet(ss []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		set[s] = struct{}{}
	}
	return set
}

// loadManifest reads and parses one package.yml, returning a packmodel.Pack
// whose RelPath is dir (relative to the repo root) and whose Name is
// derived from dir ("." for the root pack).
func loadManifest(repoRoot, dir string) (*packmodel.Pack, error) {
	manifestPath := filepath.Join(repoRoot, dir, "package.yml")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, err
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	pack := &packmodel.Pack{
		Name:                     dir,
		ManifestPath:             manifestPath,
		RelPath:                  dir,
		EnforceDependencies:      packmodel.ParseEnforcement(m.Enforcement),
		EnforcePrivacy:           packmodel.ParseEnforcement(m.EnforcePrivacy),
		EnforceVisibility:        packmodel.ParseEnforcement(m.EnforceVisibility),
		EnforceFolderPrivacy:     packmodel.ParseEnforcement(m.EnforceFolder),
		EnforceLayers:            packmodel.ParseEnforcement(m.EnforceLayers),
		UsesLegacyArchitecture:   m.Legacy,
		Dependencies:             toSet(m.Dependencies),
		IgnoredDependencies:      toSet(m.IgnoredDeps),
		VisibleTo:                toSet(m.VisibleTo),
		HasVisibleTo:             len(m.VisibleTo) > 0,
		PrivateConstants:         toSet(m.PrivateConstants),
		IgnoredPrivateConstants:  toSet(m.IgnoredPrivate),
		PublicFolder:             m.PublicFolder,
		Layer:                    m.Layer,
		Owner:                    m.Owner,
		Unknown:                  m.Metadata,
	}

	for _, g := range m.EnforcementGlobsIgnore {
		pack.EnforcementGlobsIgnore = append(pack.EnforcementGlobsIgnore, packmodel.EnforcementGlobsIgnore{
			Enforcements: g.Enforcements,
			Ignores:      g.Ignores,
			Reason:       g.Reason,
		})
	}

	return pack, nil
}
