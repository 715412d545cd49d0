package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nwaobi/packcheck/internal/packmodel"
)

func TestFilesystemResolverFindsDefinition(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "packs/orders/app/models/orders"), 0o755)
	path := filepath.Join(root, "packs/orders/app/models/orders/order_item.rb")
	os.WriteFile(path, []byte("class OrderItem\nend\n"), 0o644)

	r := NewFilesystemResolver(root, map[string]string{"packs/orders/app/models": ""}, nil)
	def, err := r.ResolveConstant("::Orders::OrderItem")
	if err != nil {
		t.Fatal(err)
	}
	if def == nil {
		t.Fatal("expected a resolved definition")
	}
	if def.AbsolutePath != "packs/orders/app/models/orders/order_item.rb" {
		t.Errorf("AbsolutePath = %q", def.AbsolutePath)
	}
}

func TestFilesystemResolverMissReturnsNil(t *testing.T) {
	root := t.TempDir()
	r := NewFilesystemResolver(root, map[string]string{"app/models": ""}, nil)
	def, err := r.ResolveConstant("::Nonexistent::Thing")
	if err != nil {
		t.Fatal(err)
	}
	if def != nil {
		t.Errorf("expected nil, got %+v", def)
	}
}

func TestFilesystemResolverAmbiguous(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "a"), 0o755)
	os.MkdirAll(filepath.Join(root, "b"), 0o755)
	os.WriteFile(filepath.Join(root, "a/foo.rb"), []byte(""), 0o644)
	os.WriteFile(filepath.Join(root, "b/foo.rb"), []byte(""), 0o644)

	r := NewFilesystemResolver(root, map[string]string{"a": "", "b": ""}, nil)
	_, err := r.ResolveConstant("::Foo")
	if err == nil {
		t.Fatal("expected ambiguity error")
	}
	if _, ok := err.(*AmbiguousError); !ok {
		t.Errorf("err = %T, want *AmbiguousError", err)
	}
}

func TestASTResolver(t *testing.T) {
	r := NewASTResolver()
	r.Add("app/models/order.rb", &packmodel.ProcessedFile{
		Definitions: []packmodel.ParsedDefinition{{FullyQualifiedName: "::Order"}},
	})

	def, err := r.ResolveConstant("::Order")
	if err != nil {
		t.Fatal(err)
	}
	if def == nil || def.AbsolutePath != "app/models/order.rb" {
		t.Errorf("def = %+v", def)
	}

	if _, err := r.ResolveConstant("::Nope"); err != nil {
		t.Fatal(err)
	}
}

func TestASTResolverDefinitions(t *testing.T) {
	r := NewASTResolver()
	r.Add("a.rb", &packmodel.ProcessedFile{Definitions: []packmodel.ParsedDefinition{{FullyQualifiedName: "::Dup"}}})
	r.Add("b.rb", &packmodel.ProcessedFile{Definitions: []packmodel.ParsedDefinition{{FullyQualifiedName: "::Dup"}}})
	r.Add("c.rb", &packmodel.ProcessedFile{Definitions: []packmodel.ParsedDefinition{{FullyQualifiedName: "::Solo"}}})

	defs := r.Definitions()
	if got := defs["::Dup"]; len(got) != 2 || got[0] != "a.rb" || got[1] != "b.rb" {
		t.Errorf("Definitions()[::Dup] = %v, want [a.rb b.rb]", got)
	}
	if got := defs["::Solo"]; len(got) != 1 || got[0] != "c.rb" {
		t.Errorf("Definitions()[::Solo] = %v, want [c.rb]", got)
	}
}

func TestASTResolverAmbiguous(t *testing.T) {
	r := NewASTResolver()
	r.Add("a.rb", &packmodel.ProcessedFile{Definitions: []packmodel.ParsedDefinition{{FullyQualifiedName: "::Dup"}}})
	r.Add("b.rb", &packmodel.ProcessedFile{Definitions: []packmodel.ParsedDefinition{{FullyQualifiedName: "::Dup"}}})

	_, err := r.ResolveConstant("::Dup")
	if _, ok := err.(*AmbiguousError); !ok {
		t.Fatalf("err = %v, want *AmbiguousError", err)
	}
}
