// Package manifestfmt normalizes package.yml into a canonical on-disk form:
// stable key order (struct field order, the way gopkg.in/yaml.v3 already
// marshals structs, same convention the teacher's config.go relies on),
// sorted string lists, and omission of default values. `packcheck lint`
// uses it to detect manifests that would change under normalization.
package manifestfmt

import (
	"bytes"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/nwaobi/packcheck/internal/packmodel"
)

type canonicalGlobsIgnore struct {
	Enforcements []string `yaml:"enforcements"`
	Ignores      []string `yaml:"ignores"`
	Reason       string   `yaml:"reason,omitempty"`
}

type canonical struct {
	EnforceDependencies    any                     `yaml:"enforce_dependencies"`
	EnforcePrivacy         any                     `yaml:"enforce_privacy,omitempty"`
	EnforceVisibility      any                     `yaml:"enforce_visibility,omitempty"`
	EnforceFolderPrivacy   any                     `yaml:"enforce_folder_privacy,omitempty"`
	EnforceLayers          any                     `yaml:"enforce_layers,omitempty"`
	UseLegacyArchitecture  bool                    `yaml:"use_legacy_architecture,omitempty"`
	Dependencies           []string                `yaml:"dependencies,omitempty"`
	IgnoredDependencies    []string                `yaml:"ignored_dependencies,omitempty"`
	VisibleTo              []string                `yaml:"visible_to,omitempty"`
	PrivateConstants       []string                `yaml:"private_constants,omitempty"`
	IgnoredPrivateConstants []string               `yaml:"ignored_private_constants,omitempty"`
	PublicFolder           string                  `yaml:"public_path,omitempty"`
	Layer                  string                  `yaml:"layer,omitempty"`
	Owner                  string                  `yaml:"owner,omitempty"`
	EnforcementGlobsIgnore []canonicalGlobsIgnore  `yaml:"enforcement_globs_ignore,omitempty"`
	Metadata               map[string]any          `yaml:"metadata,omitempty"`
}

func sortedSlice(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func toCanonical(pack *packmodel.Pack) *canonical {
	c := &canonical{
		EnforceDependencies:     pack.EnforceDependencies.MarshalValue(),
		UseLegacyArchitecture:   pack.UsesLegacyArchitecture,
		Dependencies:            sortedSlice(pack.Dependencies),
		IgnoredDependencies:     sortedSlice(pack.IgnoredDependencies),
		VisibleTo:               sortedSlice(pack.VisibleTo),
		PrivateConstants:        sortedSlice(pack.PrivateConstants),
		IgnoredPrivateConstants: sortedSlice(pack.IgnoredPrivateConstants),
		PublicFolder:            pack.PublicFolder,
		Layer:                   pack.Layer,
		Owner:                   pack.Owner,
		Metadata:                pack.Unknown,
	}
	if pack.EnforcePrivacy != packmodel.EnforcementOff {
		c.EnforcePrivacy = pack.EnforcePrivacy.MarshalValue()
	}
	if pack.EnforceVisibility != packmodel.EnforcementOff {
		c.EnforceVisibility = pack.EnforceVisibility.MarshalValue()
	}
	if pack.EnforceFolderPrivacy != packmodel.EnforcementOff {
		c.EnforceFolderPrivacy = pack.EnforceFolderPrivacy.MarshalValue()
	}
	if pack.EnforceLayers != packmodel.EnforcementOff {
		c.EnforceLayers = pack.EnforceLayers.MarshalValue()
	}
	for _, g := range pack.EnforcementGlobsIgnore {
		c.EnforcementGlobsIgnore = append(c.EnforcementGlobsIgnore, canonicalGlobsIgnore{
			Enforcements: g.Enforcements,
			Ignores:      g.Ignores,
			Reason:       g.Reason,
		})
	}
	return c
}

// Format renders pack's package.yml in canonical form, indenting nested
// lists and mappings by two spaces.
func Format(pack *packmodel.Pack) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toCanonical(pack)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NeedsReformat reports whether pack's on-disk manifest differs from its
// canonical form, along with the canonical bytes it would be rewritten to.
func NeedsReformat(pack *packmodel.Pack) (bool, []byte, error) {
	canonicalBytes, err := Format(pack)
	if err != nil {
		return false, nil, err
	}
	existing, err := os.ReadFile(pack.ManifestPath)
	if err != nil {
		return true, canonicalBytes, nil
	}
	return !bytes.Equal(bytes.TrimSpace(existing), bytes.TrimSpace(canonicalBytes)), canonicalBytes, nil
}

// Write rewrites pack's manifest file to its canonical form.
func Write(pack *packmodel.Pack) error {
	data, err := Format(pack)
	if err != nil {
		return err
	}
	return os.WriteFile(pack.ManifestPath, data, 0o644)
}
