package packset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nwaobi/packcheck/internal/config"
	"github.com/nwaobi/packcheck/internal/packmodel"
)

func TestAddDependencyWritesManifest(t *testing.T) {
	ps := loadTestSet(t)
	if err := AddDependency(ps, "packs/billing", "packs/orders"); err != nil {
		t.Fatal(err)
	}

	billing, _ := ps.Get("packs/billing")
	if !billing.DependsOn("packs/orders") {
		t.Fatal("expected packs/billing to depend on packs/orders in memory")
	}

	reloaded, err := loadManifest(filepath.Dir(billing.ManifestPath), ".")
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.DependsOn("packs/orders") {
		t.Fatal("expected the rewritten package.yml to persist the new dependency")
	}
}

func TestAddDependencyUnknownPack(t *testing.T) {
	ps := loadTestSet(t)
	if err := AddDependency(ps, "packs/nonexistent", "packs/orders"); err == nil {
		t.Fatal("expected an error for an unknown from-pack")
	}
	if err := AddDependency(ps, "packs/billing", "packs/nonexistent"); err == nil {
		t.Fatal("expected an error for an unknown to-pack")
	}
}

func TestUpdateDependenciesForConstant(t *testing.T) {
	ps := loadTestSet(t)
	refs := []packmodel.Reference{
		{
			ConstantName:        "::Billing::Invoice",
			DefiningPackName:    "packs/billing",
			ReferencingPackName: "packs/orders",
		},
		{
			// Already declared via setupRepo's packs/orders -> packs/billing
			// dependency; should not appear twice or error.
			ConstantName:        "::Billing::Invoice",
			DefiningPackName:    "packs/billing",
			ReferencingPackName: "packs/orders",
		},
	}
	updated, err := UpdateDependenciesForConstant(ps, refs, "::Billing::Invoice")
	if err != nil {
		t.Fatal(err)
	}
	if len(updated) != 0 {
		t.Errorf("expected no updates since packs/orders already depends on packs/billing, got %v", updated)
	}
}

func TestCreateScaffoldsPack(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.RepoRoot = root

	alreadyExists, err := Create(cfg, "packs/foobar")
	if err != nil {
		t.Fatal(err)
	}
	if alreadyExists {
		t.Fatal("expected a fresh pack to not already exist")
	}

	data, err := os.ReadFile(filepath.Join(root, "packs/foobar/package.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "enforce_dependencies: true\n" {
		t.Errorf("package.yml = %q", data)
	}
	if _, err := os.Stat(filepath.Join(root, "packs/foobar/README.md")); err != nil {
		t.Errorf("expected a README.md to be written: %v", err)
	}

	alreadyExists, err = Create(cfg, "packs/foobar")
	if err != nil {
		t.Fatal(err)
	}
	if !alreadyExists {
		t.Error("expected Create to report the pack already exists on a second call")
	}
}
