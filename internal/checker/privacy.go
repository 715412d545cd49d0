package checker

import (
	"fmt"
	"strings"

	"github.com/nwaobi/packcheck/internal/packmodel"
	"github.com/nwaobi/packcheck/internal/packset"
)

// PrivacyChecker gates on the defining pack's enforce_privacy setting. When
// the defining pack lists private_constants, only references to constants
// in or nested under those are checked; otherwise any constant not defined
// under the pack's public folder is private by default.
type PrivacyChecker struct {
	Disabled bool
}

func (PrivacyChecker) Name() string { return "privacy" }

func (c PrivacyChecker) Check(ref packmodel.Reference, ps *packset.PackSet) (*packmodel.Violation, error) {
	if c.Disabled || !crossPack(ref) {
		return nil, nil
	}

	definer, ok := ps.Get(ref.DefiningPackName)
	if !ok || !definer.EnforcePrivacy.Enabled() {
		return nil, nil
	}
	if globsIgnored(definer, "privacy", ref.RelativeReferencingFile) {
		return nil, nil
	}

	trimmed := strings.TrimPrefix(ref.ConstantName, "::")
	if _, ignored := definer.IgnoredPrivateConstants[trimmed]; ignored {
		return nil, nil
	}
	if !isPrivate(definer, trimmed, ref.RelativeDefiningFile) {
		return nil, nil
	}

	body := fmt.Sprintf(
		"%s is private to %s, but referenced from %s",
		ref.ConstantName, ref.DefiningPackName, ref.ReferencingPackName)
	return violation(ref, "privacy", definer.EnforcePrivacy.Strict(), message(ref, "Privacy", body)), nil
}

// isPrivate reports whether constantName counts as private to pack. When
// pack.PrivateConstants is non-empty, only a constant that is exactly one of
// those, or nested under one of them, is private — any other constant is
// not private, and the public folder is not consulted. When PrivateConstants is
// empty, every constant not defined under the pack's public folder is
// private.
func isPrivate(pack *packmodel.Pack, constantName, definingFile string) bool {
	if len(pack.PrivateConstants) > 0 {
		for name := range pack.PrivateConstants {
			if constantName == name || strings.HasPrefix(constantName, name+"::") {
				return true
			}
		}
		return false
	}
	public := pack.DefaultPublicFolder() + "/"
	return !strings.HasPrefix(definingFile, public)
}
