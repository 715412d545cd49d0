package checker

import (
	"fmt"

	"github.com/nwaobi/packcheck/internal/packmodel"
	"github.com/nwaobi/packcheck/internal/packset"
)

// LayerChecker gates on the referencing pack's enforce_layers setting and
// enforces a one-directional dependency rule over the project's configured
// architecture_layers order (topmost first): a pack may depend on packs in
// the same or a lower layer, never a higher one.
type LayerChecker struct {
	// Order lists layer names from topmost (index 0) to bottommost. A pack
	// with no Layer, or a Layer not present in Order, is never checked.
	Order    []string
	Disabled bool
}

func (LayerChecker) Name() string { return "layer" }

func (c LayerChecker) Check(ref packmodel.Reference, ps *packset.PackSet) (*packmodel.Violation, error) {
	if c.Disabled || !crossPack(ref) {
		return nil, nil
	}

	referencer, ok := ps.Get(ref.ReferencingPackName)
	if !ok || !referencer.EnforceLayers.Enabled() {
		return nil, nil
	}
	if globsIgnored(referencer, "layer", ref.RelativeReferencingFile) {
		return nil, nil
	}
	definer, ok := ps.Get(ref.DefiningPackName)
	if !ok {
		return nil, nil
	}

	referencerIdx := c.indexOf(referencer.Layer)
	definerIdx := c.indexOf(definer.Layer)
	if referencerIdx < 0 || definerIdx < 0 {
		return nil, nil
	}
	if referencerIdx <= definerIdx {
		return nil, nil
	}

	body := fmt.Sprintf(
		"%s (layer %q) may not depend on %s (layer %q) via %s",
		ref.ReferencingPackName, referencer.Layer, ref.DefiningPackName, definer.Layer, ref.ConstantName)
	return violation(ref, "layer", referencer.EnforceLayers.Strict(), message(ref, "Layer", body)), nil
}

func (c LayerChecker) indexOf(layer string) int {
	if layer == "" {
		return -1
	}
	for i, l := range c.Order {
		if l == layer {
			return i
		}
	}
	return -1
}
