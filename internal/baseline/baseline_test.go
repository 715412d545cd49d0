package baseline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nwaobi/packcheck/internal/config"
	"github.com/nwaobi/packcheck/internal/packmodel"
	"github.com/nwaobi/packcheck/internal/packset"
)

func buildPackSet(t *testing.T, manifests map[string]string) (*packset.PackSet, string) {
	t.Helper()
	root := t.TempDir()
	for relDir, contents := range manifests {
		path := filepath.Join(root, relDir, "package.yml")
		os.MkdirAll(filepath.Dir(path), 0o755)
		os.WriteFile(path, []byte(contents), 0o644)
	}
	cfg := config.Default()
	cfg.RepoRoot = root
	ps, err := packset.Load(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return ps, root
}

func sampleViolation(strict bool) packmodel.Violation {
	return packmodel.Violation{
		Message: "violation",
		Identifier: packmodel.ViolationIdentifier{
			ViolationType:       "dependency",
			Strict:              strict,
			File:                "packs/orders/app/models/order.rb",
			ConstantName:        "::Billing::Invoice",
			ReferencingPackName: "packs/orders",
			DefiningPackName:    "packs/billing",
		},
	}
}

func TestDiffUnrecordedByDefault(t *testing.T) {
	ps, _ := buildPackSet(t, map[string]string{".": "", "packs/orders": "", "packs/billing": ""})
	unrecorded, recorded := Diff([]packmodel.Violation{sampleViolation(false)}, ps)
	if len(unrecorded) != 1 || len(recorded) != 0 {
		t.Errorf("unrecorded=%d recorded=%d, want 1/0", len(unrecorded), len(recorded))
	}
}

func TestDiffStrictNeverRecorded(t *testing.T) {
	ps, root := buildPackSet(t, map[string]string{".": "", "packs/orders": "", "packs/billing": ""})
	v := sampleViolation(true)
	if err := Write(root, ps, []packmodel.Violation{v}); err != nil {
		t.Fatal(err)
	}
	// Reload to pick up any (incorrectly) written todo file.
	cfg := config.Default()
	cfg.RepoRoot = root
	ps, err := packset.Load(cfg)
	if err != nil {
		t.Fatal(err)
	}
	unrecorded, recorded := Diff([]packmodel.Violation{v}, ps)
	if len(unrecorded) != 1 || len(recorded) != 0 {
		t.Errorf("strict violation was recorded: unrecorded=%d recorded=%d", len(unrecorded), len(recorded))
	}
}

func TestWriteThenDiffRecorded(t *testing.T) {
	ps, root := buildPackSet(t, map[string]string{".": "", "packs/orders": "", "packs/billing": ""})
	v := sampleViolation(false)
	if err := Write(root, ps, []packmodel.Violation{v}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.RepoRoot = root
	ps, err := packset.Load(cfg)
	if err != nil {
		t.Fatal(err)
	}

	unrecorded, recorded := Diff([]packmodel.Violation{v}, ps)
	if len(unrecorded) != 0 || len(recorded) != 1 {
		t.Errorf("unrecorded=%d recorded=%d, want 0/1", len(unrecorded), len(recorded))
	}
}

func TestWriteIsIdempotent(t *testing.T) {
	ps, root := buildPackSet(t, map[string]string{".": "", "packs/orders": "", "packs/billing": ""})
	v := sampleViolation(false)
	if err := Write(root, ps, []packmodel.Violation{v}); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(filepath.Join(root, "packs/orders/package_todo.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := Write(root, ps, []packmodel.Violation{v}); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(filepath.Join(root, "packs/orders/package_todo.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Errorf("Write is not idempotent:\n%s\n---\n%s", first, second)
	}
}

func TestWriteRemovesStaleTodoFile(t *testing.T) {
	ps, root := buildPackSet(t, map[string]string{".": "", "packs/orders": "", "packs/billing": ""})
	v := sampleViolation(false)
	if err := Write(root, ps, []packmodel.Violation{v}); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, "packs/orders/package_todo.yml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected todo file to exist: %v", err)
	}

	if err := Write(root, ps, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected stale todo file to be removed, stat err = %v", err)
	}
}
