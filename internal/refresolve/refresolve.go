// Package refresolve turns an UnresolvedReference plus a ProcessedFile into
// a fully resolved packmodel.Reference: which pack defines the constant,
// which pack is doing the referencing, and where. It combines PackSet.ForFile
// (pack ownership) with a resolver.Resolver (constant-name-to-file), trying
// each candidate from packmodel.PossibleFullyQualifiedConstants innermost
// scope first, matching the order Ruby's own constant lookup walks.
package refresolve

import (
	"github.com/nwaobi/packcheck/internal/packmodel"
	"github.com/nwaobi/packcheck/internal/packset"
	"github.com/nwaobi/packcheck/internal/resolver"
)

// Resolve resolves every unresolved reference in pf (a file at relPath) into
// zero or more packmodel.Reference values. A reference to a constant that
// resolves to no file (external gem, stdlib, dynamically defined) produces
// no Reference and no error — packcheck can only check what it can see.
// A reference none of whose candidates resolves cleanly, but at least one
// of whose candidates is ambiguous, is reported via ambiguous (carrying the
// last ambiguous candidate), one entry per ambiguous reference, and excluded
// from the returned references.
func Resolve(ps *packset.PackSet, r resolver.Resolver, relPath string, pf *packmodel.ProcessedFile) (refs []packmodel.Reference, ambiguous []AmbiguousReference) {
	referencingPack := ps.ForFile(relPath)
	referencingPackName := ""
	if referencingPack != nil {
		referencingPackName = referencingPack.Name
	}

	for _, ref := range pf.UnresolvedReferences {
		candidates := packmodel.PossibleFullyQualifiedConstants(ref.NamespacePath, ref.Name)

		var resolved *packmodel.ConstantDefinition
		var lastAmbiguous *resolver.AmbiguousError
		for _, candidate := range candidates {
			def, err := r.ResolveConstant(candidate)
			if err != nil {
				if ambErr, ok := err.(*resolver.AmbiguousError); ok {
					lastAmbiguous = ambErr
					continue
				}
				continue
			}
			if def != nil {
				resolved = def
				break
			}
		}

		switch {
		case resolved != nil:
			definingPack := ps.ForFile(resolved.AbsolutePath)
			definingPackName := ""
			if definingPack != nil {
				definingPackName = definingPack.Name
			}
			refs = append(refs, packmodel.Reference{
				ConstantName:            resolved.FullyQualifiedName,
				DefiningPackName:        definingPackName,
				RelativeDefiningFile:    resolved.AbsolutePath,
				ReferencingPackName:     referencingPackName,
				RelativeReferencingFile: relPath,
				SourceLocation:          ref.Location,
			})
		case lastAmbiguous != nil:
			ambiguous = append(ambiguous, AmbiguousReference{
				Reference: ref,
				File:      relPath,
				Candidate: *lastAmbiguous,
			})
		}
	}

	return refs, ambiguous
}

// AmbiguousReference records a reference whose constant name resolved to
// more than one candidate defining file.
type AmbiguousReference struct {
	Reference packmodel.UnresolvedReference
	File      string
	Candidate resolver.AmbiguousError
}
