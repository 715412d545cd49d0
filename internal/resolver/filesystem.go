package resolver

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nwaobi/packcheck/internal/inflector"
	"github.com/nwaobi/packcheck/internal/packmodel"
)

// FilesystemResolver infers a constant's defining file from Zeitwerk's
// naming convention — ::Orders::OrderItem under autoload root "app" lives at
// app/orders/order_item.rb — without ever reading the file's contents. This
// is the cheap, default strategy; it only gets the wrong answer when a file
// defines a constant under a different name than its path implies.
type FilesystemResolver struct {
	repoRoot string
	// roots maps an autoload root's filesystem path (e.g. "app/models") to
	// the namespace prefix constants under it are implicitly nested in
	// ("" for models mounted at the top level).
	roots    map[string]string
	acronyms inflector.Acronyms
}

// NewFilesystemResolver builds a resolver from repoRoot and the
// path->namespace-prefix autoload root map from packcheck.yml.
func NewFilesystemResolver(repoRoot string, roots map[string]string, acronyms inflector.Acronyms) *FilesystemResolver {
	return &FilesystemResolver{repoRoot: repoRoot, roots: roots, acronyms: acronyms}
}

func (r *FilesystemResolver) ResolveConstant(fullyQualifiedName string) (*packmodel.ConstantDefinition, error) {
	trimmed := strings.TrimPrefix(fullyQualifiedName, "::")
	if trimmed == "" {
		return nil, nil
	}

	var matches []string
	for root, prefix := range r.roots {
		relPath := constantToPath(trimmed, prefix, r.acronyms)
		if relPath == "" {
			continue
		}
		full := filepath.Join(r.repoRoot, root, relPath)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			rel, err := filepath.Rel(r.repoRoot, full)
			if err == nil {
				matches = append(matches, filepath.ToSlash(rel))
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &packmodel.ConstantDefinition{FullyQualifiedName: fullyQualifiedName, AbsolutePath: matches[0]}, nil
	default:
		sort.Strings(matches)
		return nil, &AmbiguousError{Name: fullyQualifiedName, Files: matches}
	}
}

// constantToPath converts "Orders::OrderItem" under namespace prefix
// "Orders" into "order_item.rb", or under prefix "" into
// "orders/order_item.rb". It returns "" if the constant doesn't fall under
// prefix at all.
func constantToPath(fullyQualified, prefix string, acronyms inflector.Acronyms) string {
	segments := strings.Split(fullyQualified, "::")

	if prefix != "" {
		prefixSegments := strings.Split(prefix, "::")
		if len(segments) < len(prefixSegments) {
			return ""
		}
		for i, p := range prefixSegments {
			if segments[i] != p {
				return ""
			}
		}
		segments = segments[len(prefixSegments):]
	}
	if len(segments) == 0 {
		return ""
	}

	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = inflector.Underscore(seg)
	}
	return strings.Join(parts, "/") + ".rb"
}
