// Package rubyast extracts packmodel.ProcessedFile data (unresolved constant
// references, constant definitions, and file-level sigils) from Ruby source.
//
// There is no tree-sitter-ruby grammar available anywhere in the reference
// corpus this was learned from, and the Ruby extractor it's grounded on
// (rubyextractor/ruby.go) is itself a regex/line scanner rather than a real
// parser. So this package follows the same approach deliberately: a
// line-oriented scanner that tracks a namespace stack (module/class nesting)
// and a generic block-depth counter (def/do/if/case/.../end), strips string
// and comment content before it looks for bare constant tokens, and treats a
// class's superclass reference as resolved in the *enclosing* scope — which
// is exactly how Ruby itself resolves it.
package rubyast

import (
	"regexp"
	"strings"

	"github.com/nwaobi/packcheck/internal/packmodel"
)

var (
	classOneLineRe = regexp.MustCompile(`^\s*class\s+((?:::)?[A-Z][A-Za-z0-9_]*(?:::[A-Z][A-Za-z0-9_]*)*)\s*(?:<\s*((?:::)?[A-Z][A-Za-z0-9_]*(?:::[A-Z][A-Za-z0-9_]*)*))?`)
	moduleRe       = regexp.MustCompile(`^\s*module\s+((?:::)?[A-Z][A-Za-z0-9_]*(?:::[A-Z][A-Za-z0-9_]*)*)`)
	defRe          = regexp.MustCompile(`^\s*def\s+`)
	endRe          = regexp.MustCompile(`^\s*end\b`)
	blockOpenerRe  = regexp.MustCompile(`^\s*(if|unless|case|while|until|begin|do)\b`)
	inlineDoRe     = regexp.MustCompile(`\bdo(\s*\|[^|]*\|)?\s*$`)
	constAssignRe  = regexp.MustCompile(`^\s*((?:::)?[A-Z][A-Za-z0-9_]*(?:::[A-Z][A-Za-z0-9_]*)*)\s*=[^=~]`)
	constTokenRe   = regexp.MustCompile(`(::)?\b[A-Z][A-Za-z0-9_]*(?:::[A-Z][A-Za-z0-9_]*)*\b`)
	sigilRe        = regexp.MustCompile(`^\s*#\s*packcheck:\s*([a-zA-Z_]+)\s*=\s*(true|false)\s*$`)
)

// scopeEntry tracks one open module/class/block on the namespace stack.
type scopeEntry struct {
	name      string // empty for non-namespacing blocks (def/if/do/...)
	namespace bool
}

// Parse extracts a ProcessedFile from Ruby source. relPath is stored as the
// result's AbsolutePath and is not otherwise interpreted. The returned error
// is always nil.
func Parse(relPath string, src []byte) (*packmodel.ProcessedFile, error) {
	lines := strings.Split(string(src), "\n")

	pf := &packmodel.ProcessedFile{AbsolutePath: relPath}
	var stack []scopeEntry

	namespacePath := func() []string {
		path := make([]string, 0, len(stack))
		for _, e := range stack {
			if e.namespace {
				path = append(path, splitConst(e.name)...)
			}
		}
		return path
	}

	for i, rawLine := range lines {
		row := i + 1
		line := maskStringsAndComments(rawLine)

		if sig := sigilRe.FindStringSubmatch(rawLine); sig != nil {
			pf.Sigils = append(pf.Sigils, packmodel.Sigil{Name: sig[1], Value: sig[2] == "true"})
			continue
		}

		if m := classOneLineRe.FindStringSubmatch(line); m != nil {
			name := m[1]
			enclosing := namespacePath()
			if super := m[2]; super != "" {
				recordReference(pf, super, enclosing, row, rawLine)
			}
			loc := packmodel.Range{StartRow: row, StartCol: 0, EndRow: row, EndCol: len(rawLine)}
			fq := packmodel.Combine(enclosing, trimLeadingColons(name))
			pf.Definitions = append(pf.Definitions, packmodel.ParsedDefinition{
				FullyQualifiedName: fq,
				Location:           loc,
			})
			recordSelfReference(pf, trimLeadingColons(name), enclosing, loc)
			stack = append(stack, scopeEntry{name: trimLeadingColons(name), namespace: true})
			continue
		}
		if m := moduleRe.FindStringSubmatch(line); m != nil {
			name := m[1]
			enclosing := namespacePath()
			loc := packmodel.Range{StartRow: row, StartCol: 0, EndRow: row, EndCol: len(rawLine)}
			fq := packmodel.Combine(enclosing, trimLeadingColons(name))
			pf.Definitions = append(pf.Definitions, packmodel.ParsedDefinition{
				FullyQualifiedName: fq,
				Location:           loc,
			})
			recordSelfReference(pf, trimLeadingColons(name), enclosing, loc)
			stack = append(stack, scopeEntry{name: trimLeadingColons(name), namespace: true})
			continue
		}

		if defRe.MatchString(line) {
			stack = append(stack, scopeEntry{})
			scanConstantTokens(pf, line, rawLine, namespacePath(), row)
			continue
		}
		if blockOpenerRe.MatchString(line) {
			stack = append(stack, scopeEntry{})
			scanConstantTokens(pf, line, rawLine, namespacePath(), row)
			continue
		}
		if inlineDoRe.MatchString(strings.TrimRight(line, " \t")) {
			stack = append(stack, scopeEntry{})
			scanConstantTokens(pf, line, rawLine, namespacePath(), row)
			continue
		}
		if endRe.MatchString(line) {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if loc := constAssignRe.FindStringSubmatchIndex(line); loc != nil {
			nameStart, nameEnd := loc[2], loc[3]
			fq := packmodel.Combine(namespacePath(), trimLeadingColons(line[nameStart:nameEnd]))
			pf.Definitions = append(pf.Definitions, packmodel.ParsedDefinition{
				FullyQualifiedName: fq,
				Location:           packmodel.Range{StartRow: row, StartCol: nameStart, EndRow: row, EndCol: nameEnd},
			})
			// The LHS name isn't a read, only the RHS (and everything else on
			// the line) is scanned for references.
			masked := []byte(line)
			for i := nameStart; i < nameEnd; i++ {
				masked[i] = ' '
			}
			scanConstantTokens(pf, string(masked), rawLine, namespacePath(), row)
			continue
		}

		scanConstantTokens(pf, line, rawLine, namespacePath(), row)
	}

	suppressLocalReferences(pf)

	return pf, nil
}

// suppressLocalReferences drops every reference whose possible fully
// qualified forms include a constant defined elsewhere in the same file,
// except the reference that is itself the defining token (the self-reference
// recorded alongside each class/module Definition).
func suppressLocalReferences(pf *packmodel.ProcessedFile) {
	locs := definitionLocations(pf.Definitions)

	kept := pf.UnresolvedReferences[:0]
	for _, ref := range pf.UnresolvedReferences {
		suppressed := false
		for _, candidate := range packmodel.PossibleFullyQualifiedConstants(ref.NamespacePath, ref.Name) {
			loc, ok := locs[candidate]
			if !ok {
				continue
			}
			suppressed = ref.Location != loc
			break
		}
		if !suppressed {
			kept = append(kept, ref)
		}
	}
	pf.UnresolvedReferences = kept
}

// definitionLocations maps every defined constant's fully qualified name,
// and each of its namespace prefixes, to the location of the first-seen
// (earliest in the file) definition that produced it. Prefixes let a
// reference to "Foo" inside "class Foo::Bar" be suppressed by the definition
// of "Foo::Bar" itself, not just an exact-FQN match.
func definitionLocations(defs []packmodel.ParsedDefinition) map[string]packmodel.Range {
	locs := make(map[string]packmodel.Range, len(defs))
	for _, d := range defs {
		parts := splitConst(d.FullyQualifiedName)
		for i := 1; i <= len(parts); i++ {
			key := "::" + strings.Join(parts[:i], "::")
			if _, exists := locs[key]; !exists {
				locs[key] = d.Location
			}
		}
	}
	return locs
}

// scanConstantTokens finds bare constant-reference tokens in a masked line
// and records one UnresolvedReference per token, skipping the token that was
// already consumed as a class/module definition header on this same line.
func scanConstantTokens(pf *packmodel.ProcessedFile, maskedLine, rawLine string, ns []string, row int) {
	if classOneLineRe.MatchString(maskedLine) || moduleRe.MatchString(maskedLine) {
		return
	}
	for _, loc := range constTokenRe.FindAllStringIndex(maskedLine, -1) {
		name := maskedLine[loc[0]:loc[1]]
		recordReferenceAt(pf, name, ns, row, loc[0], loc[1], rawLine)
	}
}

func recordReference(pf *packmodel.ProcessedFile, name string, ns []string, row int, rawLine string) {
	idx := strings.Index(rawLine, name)
	if idx < 0 {
		idx = 0
	}
	recordReferenceAt(pf, name, ns, row, idx, idx+len(name), rawLine)
}

func recordReferenceAt(pf *packmodel.ProcessedFile, name string, ns []string, row, startCol, endCol int, rawLine string) {
	pf.UnresolvedReferences = append(pf.UnresolvedReferences, packmodel.UnresolvedReference{
		Name:          name,
		NamespacePath: append([]string(nil), ns...),
		Location:      packmodel.Range{StartRow: row, StartCol: startCol, EndRow: row, EndCol: endCol},
	})
}

// recordSelfReference records the reference a class/module definition makes
// to its own name, at the exact same location as the Definition — so that
// definitionLocations/suppressLocalReferences keeps it (its location matches
// the definition's) while a later unrelated read of the same name does not.
func recordSelfReference(pf *packmodel.ProcessedFile, name string, enclosing []string, loc packmodel.Range) {
	pf.UnresolvedReferences = append(pf.UnresolvedReferences, packmodel.UnresolvedReference{
		Name:          name,
		NamespacePath: append([]string(nil), enclosing...),
		Location:      loc,
	})
}

func trimLeadingColons(s string) string {
	return strings.TrimPrefix(s, "::")
}

func splitConst(s string) []string {
	s = trimLeadingColons(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "::")
}

// maskStringsAndComments blanks out quoted-string and comment content with
// spaces (preserving byte offsets) so the constant-token scanner never fires
// inside a string literal or trailing comment. It does not handle symbols,
// heredocs or %-literals; those are rare enough in practice that the teacher's own
// extractor skips them too.
func maskStringsAndComments(line string) string {
	out := []byte(line)
	inSingle, inDouble := false, false
	for i := 0; i < len(out); i++ {
		c := out[i]
		switch {
		case inSingle:
			if c == '\'' && (i == 0 || out[i-1] != '\\') {
				inSingle = false
			} else {
				out[i] = ' '
			}
		case inDouble:
			if c == '"' && (i == 0 || out[i-1] != '\\') {
				inDouble = false
			} else {
				out[i] = ' '
			}
		case c == '#':
			for j := i; j < len(out); j++ {
				out[j] = ' '
			}
			i = len(out)
		case c == '\'':
			inSingle = true
		case c == '"':
			inDouble = true
		}
	}
	return string(out)
}
