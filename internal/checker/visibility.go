package checker

import (
	"fmt"

	"github.com/nwaobi/packcheck/internal/packmodel"
	"github.com/nwaobi/packcheck/internal/packset"
)

// VisibilityChecker gates on the defining pack's enforce_visibility setting:
// when a pack declares visible_to, only the listed packs may reference it,
// regardless of the privacy checker's public/private split.
type VisibilityChecker struct {
	Disabled bool
}

func (VisibilityChecker) Name() string { return "visibility" }

func (c VisibilityChecker) Check(ref packmodel.Reference, ps *packset.PackSet) (*packmodel.Violation, error) {
	if c.Disabled || !crossPack(ref) {
		return nil, nil
	}

	definer, ok := ps.Get(ref.DefiningPackName)
	if !ok || !definer.EnforceVisibility.Enabled() {
		return nil, nil
	}
	if globsIgnored(definer, "visibility", ref.RelativeReferencingFile) {
		return nil, nil
	}
	if definer.VisibleToPack(ref.ReferencingPackName) {
		return nil, nil
	}

	body := fmt.Sprintf(
		"%s is not visible to %s (referenced via %s)",
		ref.DefiningPackName, ref.ReferencingPackName, ref.ConstantName)
	return violation(ref, "visibility", definer.EnforceVisibility.Strict(), message(ref, "Visibility", body)), nil
}
