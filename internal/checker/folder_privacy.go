package checker

import (
	"fmt"
	"path"
	"strings"

	"github.com/nwaobi/packcheck/internal/packmodel"
	"github.com/nwaobi/packcheck/internal/packset"
)

// FolderPrivacyChecker gates on the defining pack's enforce_folder_privacy
// setting: a pack may only be reached by code that lives in the same
// directory neighborhood, regardless of any per-constant privacy or
// visibility settings. A reference is allowed iff the referencing pack is
// the project root, the two packs are siblings (share a parent directory),
// or the defining pack is nested under the referencing pack's directory.
type FolderPrivacyChecker struct {
	Disabled bool
}

func (FolderPrivacyChecker) Name() string { return "folder_privacy" }

func (c FolderPrivacyChecker) Check(ref packmodel.Reference, ps *packset.PackSet) (*packmodel.Violation, error) {
	if c.Disabled || !crossPack(ref) {
		return nil, nil
	}

	definer, ok := ps.Get(ref.DefiningPackName)
	if !ok || !definer.EnforceFolderPrivacy.Enabled() {
		return nil, nil
	}
	if globsIgnored(definer, "folder_privacy", ref.RelativeReferencingFile) {
		return nil, nil
	}
	referencer, ok := ps.Get(ref.ReferencingPackName)
	if !ok || folderPrivacyAllowed(referencer, definer) {
		return nil, nil
	}

	body := fmt.Sprintf(
		"%s is defined in %s, which is outside the directory neighborhood of %s",
		ref.ConstantName, ref.DefiningPackName, ref.ReferencingPackName)
	return violation(ref, "folder_privacy", definer.EnforceFolderPrivacy.Strict(), message(ref, "Folder Privacy", body)), nil
}

// folderPrivacyAllowed implements spec.md's folder-privacy allow rule over
// the two packs' directories (RelPath), not the constant's own file path:
// the root pack may reach anywhere; siblings (same parent directory) may
// reach each other; and a pack may always reach its own descendants.
func folderPrivacyAllowed(referencer, definer *packmodel.Pack) bool {
	if referencer.IsRoot() {
		return true
	}
	if path.Dir(referencer.RelPath) == path.Dir(definer.RelPath) {
		return true
	}
	return strings.HasPrefix(definer.RelPath, referencer.RelPath+"/")
}
