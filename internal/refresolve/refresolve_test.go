package refresolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nwaobi/packcheck/internal/config"
	"github.com/nwaobi/packcheck/internal/packmodel"
	"github.com/nwaobi/packcheck/internal/packset"
	"github.com/nwaobi/packcheck/internal/resolver"
)

func setup(t *testing.T) (*packset.PackSet, *resolver.ASTResolver) {
	t.Helper()
	root := t.TempDir()
	write := func(rel, contents string) {
		full := filepath.Join(root, rel)
		os.MkdirAll(filepath.Dir(full), 0o755)
		os.WriteFile(full, []byte(contents), 0o644)
	}
	write("package.yml", "enforce_dependencies: true\n")
	write("packs/orders/package.yml", "enforce_dependencies: true\n")
	write("packs/billing/package.yml", "enforce_dependencies: true\n")

	cfg := config.Default()
	cfg.RepoRoot = root
	ps, err := packset.Load(cfg)
	if err != nil {
		t.Fatal(err)
	}

	r := resolver.NewASTResolver()
	r.Add("packs/billing/app/models/invoice.rb", &packmodel.ProcessedFile{
		Definitions: []packmodel.ParsedDefinition{{FullyQualifiedName: "::Invoice"}},
	})
	return ps, r
}

func TestResolveCrossPackReference(t *testing.T) {
	ps, r := setup(t)
	pf := &packmodel.ProcessedFile{
		UnresolvedReferences: []packmodel.UnresolvedReference{
			{Name: "Invoice", NamespacePath: []string{"Orders"}, Location: packmodel.Range{StartRow: 3}},
		},
	}

	refs, ambiguous := Resolve(ps, r, "packs/orders/app/models/order.rb", pf)
	if len(ambiguous) != 0 {
		t.Fatalf("unexpected ambiguous: %v", ambiguous)
	}
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d", len(refs))
	}
	ref := refs[0]
	if ref.DefiningPackName != "packs/billing" || ref.ReferencingPackName != "packs/orders" {
		t.Errorf("ref = %+v", ref)
	}
	if !ref.Resolved() {
		t.Error("expected Resolved() true")
	}
}

func TestResolveUnknownConstantIsSkipped(t *testing.T) {
	ps, r := setup(t)
	pf := &packmodel.ProcessedFile{
		UnresolvedReferences: []packmodel.UnresolvedReference{
			{Name: "SomeGemClass"},
		},
	}
	refs, ambiguous := Resolve(ps, r, "packs/orders/app/models/order.rb", pf)
	if len(refs) != 0 || len(ambiguous) != 0 {
		t.Errorf("expected no references or ambiguities, got refs=%v ambiguous=%v", refs, ambiguous)
	}
}

func TestResolveAmbiguousReference(t *testing.T) {
	ps, r := setup(t)
	r.Add("packs/orders/app/models/invoice.rb", &packmodel.ProcessedFile{
		Definitions: []packmodel.ParsedDefinition{{FullyQualifiedName: "::Invoice"}},
	})

	pf := &packmodel.ProcessedFile{
		UnresolvedReferences: []packmodel.UnresolvedReference{{Name: "Invoice"}},
	}
	refs, ambiguous := Resolve(ps, r, "packs/orders/app/models/order.rb", pf)
	if len(refs) != 0 {
		t.Errorf("expected no clean resolution, got %v", refs)
	}
	if len(ambiguous) != 1 {
		t.Fatalf("expected 1 ambiguous reference, got %d", len(ambiguous))
	}
}
