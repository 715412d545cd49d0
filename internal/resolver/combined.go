package resolver

import "github.com/nwaobi/packcheck/internal/packmodel"

// Combined tries Primary first and only consults Fallback on a clean miss
// (nil, nil) — an ambiguity from Primary is reported immediately rather than
// being papered over by a Fallback guess. This is how packcheck runs
// filesystem-inferred and AST-inferred resolution together: trust the cheap
// path-convention answer, but confirm or recover via the AST's ground truth
// where the filesystem strategy can't find anything.
type Combined struct {
	Primary  Resolver
	Fallback Resolver
}

func (c Combined) ResolveConstant(fullyQualifiedName string) (*packmodel.ConstantDefinition, error) {
	def, err := c.Primary.ResolveConstant(fullyQualifiedName)
	if err != nil || def != nil {
		return def, err
	}
	return c.Fallback.ResolveConstant(fullyQualifiedName)
}
