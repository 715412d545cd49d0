package packmodel

// UnresolvedReference is a constant read emitted by an AST extractor before
// resolution: a name, the enclosing namespace path at the point of use, and
// its source location.
type UnresolvedReference struct {
	Name          string
	NamespacePath []string
	Location      Range
}

// ParsedDefinition is a constant definition emitted by an AST extractor:
// class/module declarations and constant assignments.
type ParsedDefinition struct {
	// FullyQualifiedName carries a leading "::".
	FullyQualifiedName string
	Location           Range
}

// ConstantDefinition pairs a fully-qualified constant name with the absolute
// path of the file that defines it, as produced by a constant resolver.
type ConstantDefinition struct {
	FullyQualifiedName string
	AbsolutePath       string
}

// Sigil is a magic comment of the form "# packcheck: name=true|false",
// recorded from any line of a file. A "pack_public: true" comment is not
// recognized, and no checker reads Sigils.
type Sigil struct {
	Name  string
	Value bool
}

// ProcessedFile is the cached output of running an extractor over one file.
type ProcessedFile struct {
	AbsolutePath        string
	UnresolvedReferences []UnresolvedReference
	Definitions          []ParsedDefinition
	Sigils               []Sigil
}

// Reference is a resolved UnresolvedReference: it carries the owning packs on
// both sides, or a nil defining pack when resolution failed.
type Reference struct {
	ConstantName          string
	DefiningPackName       string // empty if unresolved
	RelativeDefiningFile   string // empty if unresolved
	ReferencingPackName    string
	RelativeReferencingFile string
	SourceLocation         Range
}

// Resolved reports whether the reference resolved to a known defining pack.
func (r Reference) Resolved() bool {
	return r.DefiningPackName != ""
}

// ViolationIdentifier is the baseline-diff key: two violations are the same
// entry in a todo file iff every field here is equal.
type ViolationIdentifier struct {
	ViolationType       string
	Strict              bool
	File                string
	ConstantName        string
	ReferencingPackName string
	DefiningPackName    string
}

// Violation is a checker finding: a human-readable message plus its identity
// for baseline purposes.
type Violation struct {
	Message    string
	Identifier ViolationIdentifier
}
