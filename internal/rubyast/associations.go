package rubyast

import (
	"regexp"
	"strings"

	"github.com/nwaobi/packcheck/internal/inflector"
	"github.com/nwaobi/packcheck/internal/packmodel"
)

// associationRe matches has_many/has_one/belongs_to/has_and_belongs_to_many
// calls, capturing the association kind, the symbol name, and an optional
// explicit class_name: override — adapted from the teacher's
// rubyextractor/storage.go, which used the same shape to infer the
// implicit constant an association points at.
var associationRe = regexp.MustCompile(
	`\b(has_many|has_one|belongs_to|has_and_belongs_to_many)\s+:([a-z_][a-zA-Z0-9_]*)` +
		`(?:.*?class_name:\s*['"]([A-Za-z0-9_:]+)['"])?`)

// AssociationTargets scans Ruby source line by line for AR association
// declarations (strings and comments are not masked, so a declaration inside
// either is matched too) and returns one synthetic UnresolvedReference per
// association, pointing at its (possibly inferred) target constant. These
// are reported alongside the regular constant-token references because an
// association is, semantically, a reference to the target class even though
// the source text never spells the constant out.
func AssociationTargets(relPath string, src []byte, acronyms inflector.Acronyms) []packmodel.UnresolvedReference {
	lines := strings.Split(string(src), "\n")
	var refs []packmodel.UnresolvedReference

	for i, rawLine := range lines {
		row := i + 1
		m := associationRe.FindStringSubmatch(rawLine)
		if m == nil {
			continue
		}
		kind, name, explicit := m[1], m[2], m[3]

		var target string
		switch {
		case explicit != "":
			target = explicit
		case kind == "has_many" || kind == "has_and_belongs_to_many":
			target = inflector.Camelize(inflector.Singularize(name), acronyms)
		default:
			target = inflector.Camelize(name, acronyms)
		}

		idx := strings.Index(rawLine, m[0])
		if idx < 0 {
			idx = 0
		}
		refs = append(refs, packmodel.UnresolvedReference{
			Name:     target,
			Location: packmodel.Range{StartRow: row, StartCol: idx, EndRow: row, EndCol: idx + len(m[0])},
		})
	}
	return refs
}
