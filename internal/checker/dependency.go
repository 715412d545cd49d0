package checker

import (
	"fmt"

	"github.com/nwaobi/packcheck/internal/packmodel"
	"github.com/nwaobi/packcheck/internal/packset"
)

// DependencyChecker gates on the referencing pack's enforce_dependencies
// setting: a cross-pack reference is a violation unless the referencing
// pack has declared (or ignored) a dependency on the defining pack.
type DependencyChecker struct {
	Disabled bool
}

func (DependencyChecker) Name() string { return "dependency" }

func (c DependencyChecker) Check(ref packmodel.Reference, ps *packset.PackSet) (*packmodel.Violation, error) {
	if c.Disabled || !crossPack(ref) {
		return nil, nil
	}

	referencer, ok := ps.Get(ref.ReferencingPackName)
	if !ok || !referencer.EnforceDependencies.Enabled() {
		return nil, nil
	}
	if globsIgnored(referencer, "dependency", ref.RelativeReferencingFile) {
		return nil, nil
	}
	if referencer.DependsOn(ref.DefiningPackName) {
		return nil, nil
	}

	body := fmt.Sprintf(
		"%s references %s from %s, but %s does not declare a dependency on %s",
		ref.ConstantName, ref.DefiningPackName, ref.ReferencingPackName,
		ref.ReferencingPackName, ref.DefiningPackName)
	return violation(ref, "dependency", referencer.EnforceDependencies.Strict(), message(ref, "Dependency", body)), nil
}
