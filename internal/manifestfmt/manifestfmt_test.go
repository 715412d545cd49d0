package manifestfmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nwaobi/packcheck/internal/packmodel"
)

func TestFormatSortsAndOmitsDefaults(t *testing.T) {
	pack := &packmodel.Pack{
		EnforceDependencies: packmodel.EnforcementOn,
		Dependencies:        map[string]struct{}{"packs/b": {}, "packs/a": {}},
	}
	data, err := Format(pack)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !contains(got, "enforce_dependencies: true") {
		t.Errorf("missing enforce_dependencies: true in:\n%s", got)
	}
	if contains(got, "enforce_privacy") {
		t.Errorf("default enforce_privacy should be omitted:\n%s", got)
	}
	aIdx := index(got, "packs/a")
	bIdx := index(got, "packs/b")
	if aIdx < 0 || bIdx < 0 || aIdx > bIdx {
		t.Errorf("expected sorted dependency list, got:\n%s", got)
	}
}

func TestNeedsReformat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.yml")
	os.WriteFile(path, []byte("enforce_dependencies: true\ndependencies:\n  - packs/a\n  - packs/b\n"), 0o644)

	pack := &packmodel.Pack{
		ManifestPath:        path,
		EnforceDependencies: packmodel.EnforcementOn,
		Dependencies:        map[string]struct{}{"packs/b": {}, "packs/a": {}},
	}
	changed, canonicalBytes, err := NeedsReformat(pack)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Errorf("expected already-sorted manifest to need no reformat, canonical:\n%s", canonicalBytes)
	}
}

func TestWriteThenNeedsReformatFalse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.yml")
	pack := &packmodel.Pack{
		ManifestPath:        path,
		EnforceDependencies: packmodel.EnforcementOn,
		Dependencies:        map[string]struct{}{"packs/z": {}, "packs/a": {}},
	}
	if err := Write(pack); err != nil {
		t.Fatal(err)
	}
	changed, _, err := NeedsReformat(pack)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("expected no reformat needed immediately after Write")
	}
}

func contains(s, substr string) bool { return index(s, substr) >= 0 }

func index(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
