package packmodel

import "testing"

func TestParseEnforcement(t *testing.T) {
	cases := []struct {
		in   any
		want Enforcement
	}{
		{true, EnforcementOn},
		{false, EnforcementOff},
		{"strict", EnforcementStrict},
		{nil, EnforcementOff},
	}
	for _, c := range cases {
		if got := ParseEnforcement(c.in); got != c.want {
			t.Errorf("ParseEnforcement(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEnforcementEnabledAndStrict(t *testing.T) {
	if EnforcementOff.Enabled() {
		t.Error("off should not be enabled")
	}
	if !EnforcementOn.Enabled() || EnforcementOn.Strict() {
		t.Error("on should be enabled but not strict")
	}
	if !EnforcementStrict.Enabled() || !EnforcementStrict.Strict() {
		t.Error("strict should be enabled and strict")
	}
}

func TestEnforcementMarshalValue(t *testing.T) {
	if v := EnforcementOff.MarshalValue(); v != false {
		t.Errorf("off marshals to %v, want false", v)
	}
	if v := EnforcementOn.MarshalValue(); v != true {
		t.Errorf("on marshals to %v, want true", v)
	}
	if v := EnforcementStrict.MarshalValue(); v != "strict" {
		t.Errorf("strict marshals to %v, want \"strict\"", v)
	}
}
