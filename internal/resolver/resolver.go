// Package resolver implements the two interchangeable constant-resolution
// strategies spec.md describes: filesystem-inferred (infer the defining
// file from Zeitwerk autoload conventions, without reading any file
// contents) and AST-inferred (use the constant definitions rubyast actually
// extracted). Both satisfy the same Resolver interface by design — a
// checker or the reference resolver never needs to know which strategy
// backs it, the same "duck-typed" substitutability the teacher's
// extractor/explainer/renderer registries rely on for their pluggable
// components.
package resolver

import (
	"fmt"

	"github.com/nwaobi/packcheck/internal/packmodel"
)

// Resolver maps a fully-qualified constant name to the single file that
// defines it. Implementations return an error when more than one candidate
// file claims the same name — an ambiguity the caller (refresolve) records
// as an AmbiguousReference rather than silently picking one.
type Resolver interface {
	ResolveConstant(fullyQualifiedName string) (*packmodel.ConstantDefinition, error)
}

// AmbiguousError lists every file that defines the same fully-qualified
// constant name.
type AmbiguousError struct {
	Name  string
	Files []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous constant %s: defined in %v", e.Name, e.Files)
}
