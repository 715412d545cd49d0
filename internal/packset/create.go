package packset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nwaobi/packcheck/internal/config"
	"github.com/nwaobi/packcheck/internal/manifestfmt"
	"github.com/nwaobi/packcheck/internal/packmodel"
)

// Create scaffolds a new pack: a package.yml with enforce_dependencies
// turned on (the only setting a fresh pack needs) and a starter README.md.
// Reports alreadyExists instead of erroring when the pack's package.yml is
// already present — grounded on original_source's create command
// (tests/create_test.rs), which treats re-creating an existing pack as a
// no-op, not a failure.
func Create(cfg *config.Config, name string) (alreadyExists bool, err error) {
	dir := filepath.Join(cfg.RepoRoot, filepath.FromSlash(name))
	manifestPath := filepath.Join(dir, "package.yml")
	if _, statErr := os.Stat(manifestPath); statErr == nil {
		return true, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	pack := &packmodel.Pack{
		Name:                name,
		RelPath:             name,
		ManifestPath:        manifestPath,
		EnforceDependencies: packmodel.EnforcementOn,
	}
	if err := manifestfmt.Write(pack); err != nil {
		return false, err
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte(readmeTemplate(name)), 0o644); err != nil {
		return false, err
	}
	return false, nil
}

func readmeTemplate(name string) string {
	return fmt.Sprintf(`Welcome to `+"`%s`"+`!

If you're the author, please consider replacing this file with a README.md, which may contain:
- What your pack is and does
- How you expect people to use your pack
- Example usage of your pack's public API and where to find it
- Limitations, risks, and important considerations of usage
- How to get in touch with eng and other stakeholders for questions or issues pertaining to this pack
- What SLAs/SLOs (service level agreements/objectives), if any, your package provides
- When in doubt, keep it simple
- Anything else you may want to include!

README.md should change as your public API changes.
`, name)
}
