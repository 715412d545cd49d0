package resolver

import (
	"sort"

	"github.com/nwaobi/packcheck/internal/packmodel"
)

// ASTResolver maps fully-qualified constant names to the file that actually
// defines them, built from every file's rubyast.Parse output rather than
// inferred from path conventions. It is the "ground truth" strategy spec.md
// calls for when filesystem inference alone can't be trusted (ambiguous
// autoload roots, reopened classes, metaprogrammed constants spec.md still
// wants reported as defined where `class Foo` literally appears).
type ASTResolver struct {
	definitions map[string][]string // FQN -> defining files (deduped, in the order Add saw them)
}

// NewASTResolver returns an empty ASTResolver; each processed file's
// definitions are recorded with Add, keyed by relative path.
func NewASTResolver() *ASTResolver {
	return &ASTResolver{definitions: make(map[string][]string)}
}

// Add records every definition found in one file.
func (r *ASTResolver) Add(relPath string, pf *packmodel.ProcessedFile) {
	for _, def := range pf.Definitions {
		files := r.definitions[def.FullyQualifiedName]
		if !contains(files, relPath) {
			r.definitions[def.FullyQualifiedName] = append(files, relPath)
		}
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// Definitions returns every constant name this resolver has seen, mapped to
// every file (sorted) that defines it — more than one file means the
// constant is ambiguous. Used by `packcheck list-definitions`.
func (r *ASTResolver) Definitions() map[string][]string {
	out := make(map[string][]string, len(r.definitions))
	for fqn, files := range r.definitions {
		sorted := append([]string(nil), files...)
		sort.Strings(sorted)
		out[fqn] = sorted
	}
	return out
}

func (r *ASTResolver) ResolveConstant(fullyQualifiedName string) (*packmodel.ConstantDefinition, error) {
	files := r.definitions[fullyQualifiedName]
	switch len(files) {
	case 0:
		return nil, nil
	case 1:
		return &packmodel.ConstantDefinition{FullyQualifiedName: fullyQualifiedName, AbsolutePath: files[0]}, nil
	default:
		sorted := append([]string(nil), files...)
		sort.Strings(sorted)
		return nil, &AmbiguousError{Name: fullyQualifiedName, Files: sorted}
	}
}
