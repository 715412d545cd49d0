package packmodel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCombine(t *testing.T) {
	cases := []struct {
		ns   []string
		name string
		want string
	}{
		{nil, "Foo", "::Foo"},
		{[]string{"Orders"}, "Item", "::Orders::Item"},
		{[]string{"Orders", "Billing"}, "Invoice", "::Orders::Billing::Invoice"},
	}
	for _, c := range cases {
		if got := Combine(c.ns, c.name); got != c.want {
			t.Errorf("Combine(%v, %q) = %q, want %q", c.ns, c.name, got, c.want)
		}
	}
}

func TestPossibleFullyQualifiedConstantsAbsolute(t *testing.T) {
	got := PossibleFullyQualifiedConstants([]string{"Orders"}, "::Billing::Invoice")
	want := []string{"::Billing::Invoice"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PossibleFullyQualifiedConstants() mismatch (-want +got):\n%s", diff)
	}
}

func TestPossibleFullyQualifiedConstantsInnermostFirst(t *testing.T) {
	got := PossibleFullyQualifiedConstants([]string{"Orders", "Billing"}, "Invoice")
	want := []string{
		"::Orders::Billing::Invoice",
		"::Orders::Invoice",
		"::Invoice",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PossibleFullyQualifiedConstants() mismatch (-want +got):\n%s", diff)
	}
}

func TestPossibleFullyQualifiedConstantsEmptyNamespace(t *testing.T) {
	got := PossibleFullyQualifiedConstants(nil, "Invoice")
	want := []string{"::Invoice"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PossibleFullyQualifiedConstants() mismatch (-want +got):\n%s", diff)
	}
}
