package packset

import (
	"fmt"
	"sort"

	"github.com/nwaobi/packcheck/internal/manifestfmt"
	"github.com/nwaobi/packcheck/internal/packmodel"
)

// AddDependency records a dependency on the `to` pack in `from`'s manifest
// and rewrites package.yml in canonical form. Grounded on
// original_source's `add_dependency`/`update_dependencies_for_constant`
// commands (src/packs/constant_dependencies.rs), which both funnel through
// the same "add this pack to that pack's dependencies and write it back"
// operation.
func AddDependency(ps *PackSet, from, to string) error {
	fromPack, ok := ps.Get(from)
	if !ok {
		return fmt.Errorf("no such pack: %s", from)
	}
	if _, ok := ps.Get(to); !ok {
		return fmt.Errorf("no such pack: %s", to)
	}
	if fromPack.DependsOn(to) {
		return nil
	}
	if fromPack.Dependencies == nil {
		fromPack.Dependencies = make(map[string]struct{})
	}
	fromPack.Dependencies[to] = struct{}{}
	return manifestfmt.Write(fromPack)
}

// UpdateDependenciesForConstant finds every resolved reference to
// constantName and, for each referencing pack that doesn't already declare
// (or ignore) a dependency on the defining pack, adds one. Returns the
// "from -> to" pairs it updated, sorted for stable output. Grounded on
// original_source's constant_dependencies.rs: "given a constant name, add
// its defining pack as a dependency everywhere it's referenced without a
// declared dependency."
func UpdateDependenciesForConstant(ps *PackSet, refs []packmodel.Reference, constantName string) ([]string, error) {
	seen := make(map[string]bool)
	var updated []string
	for _, ref := range refs {
		if ref.ConstantName != constantName || !ref.Resolved() {
			continue
		}
		if ref.DefiningPackName == ref.ReferencingPackName {
			continue
		}
		if seen[ref.ReferencingPackName] {
			continue
		}
		referencer, ok := ps.Get(ref.ReferencingPackName)
		if !ok || referencer.DependsOn(ref.DefiningPackName) {
			continue
		}
		if err := AddDependency(ps, ref.ReferencingPackName, ref.DefiningPackName); err != nil {
			return nil, err
		}
		seen[ref.ReferencingPackName] = true
		updated = append(updated, fmt.Sprintf("%s -> %s", ref.ReferencingPackName, ref.DefiningPackName))
	}
	sort.Strings(updated)
	return updated, nil
}
