package packmodel

// EnforcementGlobsIgnore is a single entry of a pack's
// `enforcement_globs_ignore` list: for files matching any of Ignores, skip
// the checkers named in Enforcements.
type EnforcementGlobsIgnore struct {
	Enforcements []string
	Ignores      []string
	Reason       string
}

// Pack is a directory-scoped package: identity, dependency declarations,
// visibility rules, and its recorded violation baseline.
type Pack struct {
	// Name is derived from the manifest's directory relative to the project
	// root; the root pack's name is ".".
	Name string
	// ManifestPath is the absolute path to package.yml.
	ManifestPath string
	// RelPath is ManifestPath's directory, relative to the project root
	// ("." for the root pack).
	RelPath string

	EnforceDependencies   Enforcement
	EnforcePrivacy        Enforcement
	EnforceVisibility     Enforcement
	EnforceFolderPrivacy  Enforcement
	EnforceLayers         Enforcement
	UsesLegacyArchitecture bool // true if package.yml sets use_legacy_architecture: true; an enforce_architecture key is not read

	Dependencies            map[string]struct{}
	IgnoredDependencies      map[string]struct{}
	VisibleTo                map[string]struct{} // consulted only when HasVisibleTo is true
	HasVisibleTo             bool                // false means "visible to everyone"
	PrivateConstants         map[string]struct{}
	IgnoredPrivateConstants  map[string]struct{}

	// PublicFolder defaults to "<pack>/app/public" when empty.
	PublicFolder string
	// Layer is empty when the pack does not declare one.
	Layer string

	EnforcementGlobsIgnore []EnforcementGlobsIgnore

	Owner string

	// PackageTodo is the pack's recorded violation baseline, keyed by the
	// defining pack's name.
	PackageTodo PackageTodo

	// Unknown holds the contents of the manifest's `metadata` key, so
	// round-tripping (lint) keeps them. Other top-level keys this model
	// doesn't understand are not kept and are dropped when the manifest is
	// rewritten.
	Unknown map[string]any
}

// DefaultPublicFolder returns the pack's public folder, applying the
// "<pack>/app/public" default when none is declared.
func (p *Pack) DefaultPublicFolder() string {
	if p.PublicFolder != "" {
		return p.PublicFolder
	}
	if p.Name == "." {
		return "app/public"
	}
	return p.Name + "/app/public"
}

// IsRoot reports whether this is the project's root pack.
func (p *Pack) IsRoot() bool {
	return p.Name == "."
}

// DependsOn reports whether the pack has declared (or ignored) a dependency
// on the named pack.
func (p *Pack) DependsOn(name string) bool {
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.IgnoredDependencies[name]
	return ok
}

// VisibleToPack reports whether the named pack is allowed to reference this
// pack's constants under the visibility checker. An unset visible_to
// means everyone is allowed.
func (p *Pack) VisibleToPack(name string) bool {
	if !p.HasVisibleTo {
		return true
	}
	_, ok := p.VisibleTo[name]
	return ok
}

// PackageTodo is the per-pack violation baseline: defining pack name ->
// constant name -> recorded violation group.
type PackageTodo map[string]map[string]ViolationGroup

// ViolationGroup is the set of violation types and referencing files
// recorded for one (defining pack, constant) pair.
type ViolationGroup struct {
	ViolationTypes map[string]struct{}
	Files          map[string]struct{}
}

// NewViolationGroup builds an empty group.
func NewViolationGroup() ViolationGroup {
	return ViolationGroup{
		ViolationTypes: make(map[string]struct{}),
		Files:          make(map[string]struct{}),
	}
}

// Contains reports whether the todo baseline recorded a violation with this
// exact identifier.
func (t PackageTodo) Contains(definingPack, constantName, violationType, file string) bool {
	byConst, ok := t[definingPack]
	if !ok {
		return false
	}
	group, ok := byConst[constantName]
	if !ok {
		return false
	}
	if _, ok := group.ViolationTypes[violationType]; !ok {
		return false
	}
	_, ok = group.Files[file]
	return ok
}
