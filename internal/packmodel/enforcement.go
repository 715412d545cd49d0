package packmodel

// Enforcement is a checker's three-valued setting for a pack: off, on, or
// strict. Strict is stricter than on only for baseline-diff purposes —
// strict violations can never be added to a pack's todo file.
type Enforcement string

const (
	EnforcementOff    Enforcement = "off"
	EnforcementOn     Enforcement = "on"
	EnforcementStrict Enforcement = "strict"
)

// Enabled reports whether the checker should run at all (on or strict).
func (e Enforcement) Enabled() bool {
	return e == EnforcementOn || e == EnforcementStrict
}

// Strict reports whether violations under this setting may never be recorded
// in a todo baseline.
func (e Enforcement) Strict() bool {
	return e == EnforcementStrict
}

// ParseEnforcement interprets the three shapes a package.yml enforcement key
// can take: the YAML booleans false/true, or the literal string "strict".
func ParseEnforcement(v any) Enforcement {
	switch t := v.(type) {
	case bool:
		if t {
			return EnforcementOn
		}
		return EnforcementOff
	case string:
		if t == "strict" {
			return EnforcementStrict
		}
		if t == "true" {
			return EnforcementOn
		}
		return EnforcementOff
	default:
		return EnforcementOff
	}
}

// MarshalValue returns the value that should be serialized back to YAML:
// false, true, or the string "strict".
func (e Enforcement) MarshalValue() any {
	switch e {
	case EnforcementStrict:
		return "strict"
	case EnforcementOn:
		return true
	default:
		return false
	}
}
