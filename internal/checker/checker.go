// Package checker implements the five packwerk-style checks spec.md
// describes: dependency, privacy, visibility, folder-privacy, and layer.
// Each Checker inspects one resolved Reference against the PackSet and
// returns a Violation (or nil) — the same small, composable-unit shape the
// teacher's extractor/explainer/renderer registries use for their pluggable
// components, generalized here to a five-entry registry keyed by checker
// name instead of by file language.
package checker

import (
	"fmt"

	"github.com/nwaobi/packcheck/internal/config"
	"github.com/nwaobi/packcheck/internal/globutil"
	"github.com/nwaobi/packcheck/internal/packmodel"
	"github.com/nwaobi/packcheck/internal/packset"
)

// Checker evaluates one resolved reference and reports a violation, if any.
type Checker interface {
	Name() string
	Check(ref packmodel.Reference, ps *packset.PackSet) (*packmodel.Violation, error)
}

// All returns the five checkers, in the stable order results should be
// reported in. cfg supplies the configured architecture_layers order (passed
// through to LayerChecker) and the process-wide disable_enforce_* flags.
func All(cfg *config.Config) []Checker {
	return []Checker{
		DependencyChecker{Disabled: cfg.DisableEnforceDependencies},
		PrivacyChecker{Disabled: cfg.DisableEnforcePrivacy},
		VisibilityChecker{Disabled: cfg.DisableEnforceVisibility},
		FolderPrivacyChecker{Disabled: cfg.DisableEnforceFolderPrivacy},
		LayerChecker{Order: cfg.Layers, Disabled: cfg.DisableEnforceLayers},
	}
}

// Registry mirrors the teacher's Register/Get/All pattern: checkers can be
// looked up by name with Get, and the pipeline runs every one of them via
// All. No CLI command selects a subset of checkers.
type Registry struct {
	byName map[string]Checker
	all    []Checker
}

// NewRegistry builds a Registry over All(cfg).
func NewRegistry(cfg *config.Config) *Registry {
	all := All(cfg)
	byName := make(map[string]Checker, len(all))
	for _, c := range all {
		byName[c.Name()] = c
	}
	return &Registry{byName: byName, all: all}
}

// Get returns the named checker, if registered.
func (r *Registry) Get(name string) (Checker, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// All returns every registered checker, in stable order.
func (r *Registry) All() []Checker { return r.all }

// violation builds a standard Violation for a reference, tagged with
// violationType and whether the gating enforcement was strict.
func violation(ref packmodel.Reference, violationType string, strict bool, message string) *packmodel.Violation {
	return &packmodel.Violation{
		Message: message,
		Identifier: packmodel.ViolationIdentifier{
			ViolationType:       violationType,
			Strict:              strict,
			File:                ref.RelativeReferencingFile,
			ConstantName:        ref.ConstantName,
			ReferencingPackName: ref.ReferencingPackName,
			DefiningPackName:    ref.DefiningPackName,
		},
	}
}

func crossPack(ref packmodel.Reference) bool {
	return ref.Resolved() && ref.DefiningPackName != ref.ReferencingPackName
}

// message formats a checker's finding in the exact two-line shape spec.md
// requires: the file:line:col location, then "<Kind> violation: <body>".
func message(ref packmodel.Reference, kind, body string) string {
	return fmt.Sprintf("%s:%s\n%s violation: %s", ref.RelativeReferencingFile, ref.SourceLocation.String(), kind, body)
}

// globsIgnored reports whether relPath matches one of rulesPack's
// enforcement_globs_ignore entries naming checkerName — the common-gating
// "matches enforcement_globs_ignore" clause spec.md §4.8 describes.
func globsIgnored(rulesPack *packmodel.Pack, checkerName, relPath string) bool {
	for _, entry := range rulesPack.EnforcementGlobsIgnore {
		named := false
		for _, e := range entry.Enforcements {
			if e == checkerName {
				named = true
				break
			}
		}
		if !named {
			continue
		}
		if globutil.MatchAny(entry.Ignores, relPath) {
			return true
		}
	}
	return false
}
