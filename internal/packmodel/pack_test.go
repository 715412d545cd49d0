package packmodel

import "testing"

func TestDefaultPublicFolder(t *testing.T) {
	root := &Pack{Name: "."}
	if got := root.DefaultPublicFolder(); got != "app/public" {
		t.Errorf("root DefaultPublicFolder() = %q", got)
	}

	orders := &Pack{Name: "packs/orders"}
	if got := orders.DefaultPublicFolder(); got != "packs/orders/app/public" {
		t.Errorf("DefaultPublicFolder() = %q", got)
	}

	explicit := &Pack{Name: "packs/orders", PublicFolder: "packs/orders/lib/public"}
	if got := explicit.DefaultPublicFolder(); got != "packs/orders/lib/public" {
		t.Errorf("DefaultPublicFolder() = %q, want explicit override", got)
	}
}

func TestIsRoot(t *testing.T) {
	if !(&Pack{Name: "."}).IsRoot() {
		t.Error("expected root pack to report IsRoot() true")
	}
	if (&Pack{Name: "packs/orders"}).IsRoot() {
		t.Error("expected non-root pack to report IsRoot() false")
	}
}

func TestDependsOn(t *testing.T) {
	p := &Pack{
		Dependencies:        map[string]struct{}{"packs/billing": {}},
		IgnoredDependencies: map[string]struct{}{"packs/legacy": {}},
	}
	if !p.DependsOn("packs/billing") {
		t.Error("expected declared dependency to count")
	}
	if !p.DependsOn("packs/legacy") {
		t.Error("expected ignored dependency to still count as DependsOn")
	}
	if p.DependsOn("packs/unrelated") {
		t.Error("expected undeclared pack to not count")
	}
}

func TestVisibleToPack(t *testing.T) {
	open := &Pack{}
	if !open.VisibleToPack("anyone") {
		t.Error("pack without visible_to should be visible to everyone")
	}

	restricted := &Pack{HasVisibleTo: true, VisibleTo: map[string]struct{}{"packs/orders": {}}}
	if !restricted.VisibleToPack("packs/orders") {
		t.Error("expected allow-listed pack to be visible")
	}
	if restricted.VisibleToPack("packs/other") {
		t.Error("expected non-allow-listed pack to not be visible")
	}
}

func TestPackageTodoContains(t *testing.T) {
	group := NewViolationGroup()
	group.ViolationTypes["dependency"] = struct{}{}
	group.Files["packs/orders/app/models/order.rb"] = struct{}{}

	todo := PackageTodo{
		"packs/billing": {"::Billing::Invoice": group},
	}

	if !todo.Contains("packs/billing", "::Billing::Invoice", "dependency", "packs/orders/app/models/order.rb") {
		t.Error("expected exact match to be found")
	}
	if todo.Contains("packs/billing", "::Billing::Invoice", "privacy", "packs/orders/app/models/order.rb") {
		t.Error("expected different violation type to not match")
	}
	if todo.Contains("packs/other", "::Billing::Invoice", "dependency", "packs/orders/app/models/order.rb") {
		t.Error("expected different defining pack to not match")
	}
}
