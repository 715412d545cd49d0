package packmodel

import "strings"

// Combine builds the fully-qualified form of name as declared inside
// namespacePath: "::" + namespacePath.joined("::") + "::" + name, collapsing
// the empty-namespace case to "::" + name.
func Combine(namespacePath []string, name string) string {
	if len(namespacePath) == 0 {
		return "::" + name
	}
	return "::" + strings.Join(namespacePath, "::") + "::" + name
}

// PossibleFullyQualifiedConstants enumerates every fully-qualified form a
// bare reference to name could resolve to from inside namespacePath,
// innermost lexical scope first, ending with the top-level "::"+name —
// the same order Ruby's own constant lookup walks enclosing scopes before
// falling back to the global namespace.
//
// A name already rooted with "::" has exactly one possible form: itself.
func PossibleFullyQualifiedConstants(namespacePath []string, name string) []string {
	if strings.HasPrefix(name, "::") {
		return []string{name}
	}

	candidates := make([]string, 0, len(namespacePath)+1)
	for i := len(namespacePath); i > 0; i-- {
		prefix := namespacePath[:i]
		candidates = append(candidates, "::"+strings.Join(prefix, "::")+"::"+name)
	}
	candidates = append(candidates, "::"+name)
	return candidates
}
