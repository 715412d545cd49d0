// Package packset loads every package.yml into a PackSet and answers the
// two questions the rest of packcheck needs about it: "which pack owns this
// file" (longest relative-path prefix wins, same rule as the teacher's
// packwerkInfo.ownerPackage) and "does the pack dependency graph have a
// cycle" (Tarjan's SCC algorithm, adapted from the teacher's
// explainers/cycles.go but run over packs instead of files).
package packset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nwaobi/packcheck/internal/config"
	"github.com/nwaobi/packcheck/internal/globutil"
	"github.com/nwaobi/packcheck/internal/packmodel"
)

// PackSet is every pack discovered in a project, indexed for fast ownership
// and name lookups.
type PackSet struct {
	byName map[string]*packmodel.Pack
	// byDepthDesc is every pack sorted by RelPath length, longest first, so
	// ForFile's linear scan finds the most specific (deepest) owner.
	byDepthDesc []*packmodel.Pack
}

// Load discovers package.yml manifests under every cfg.PackagePaths glob,
// parses them, and loads each pack's package_todo.yml baseline.
func Load(cfg *config.Config) (*PackSet, error) {
	seen := make(map[string]struct{})
	var dirs []string

	for _, pattern := range cfg.PackagePaths {
		joined := strings.TrimSuffix(pattern, "/") + "/package.yml"
		matches, err := globutil.Glob(cfg.RepoRoot, joined)
		if err != nil {
			return nil, fmt.Errorf("globbing package_paths %q: %w", pattern, err)
		}
		for _, m := range matches {
			dir := filepath.ToSlash(filepath.Dir(m))
			if _, ok := seen[dir]; ok {
				continue
			}
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	if _, ok := seen["."]; !ok {
		if _, err := os.Stat(filepath.Join(cfg.RepoRoot, "package.yml")); err == nil {
			dirs = append(dirs, ".")
		}
	}

	ps := &PackSet{byName: make(map[string]*packmodel.Pack, len(dirs))}
	for _, dir := range dirs {
		pack, err := loadManifest(cfg.RepoRoot, dir)
		if err != nil {
			return nil, fmt.Errorf("loading package.yml for pack %q: %w", dir, err)
		}
		pack.PackageTodo = loadPackageTodo(cfg.RepoRoot, dir)
		ps.byName[pack.Name] = pack
		ps.byDepthDesc = append(ps.byDepthDesc, pack)
	}

	sort.Slice(ps.byDepthDesc, func(i, j int) bool {
		return len(ps.byDepthDesc[i].RelPath) > len(ps.byDepthDesc[j].RelPath)
	})

	return ps, nil
}

// All returns every pack in the set, in no particular order.
func (ps *PackSet) All() []*packmodel.Pack {
	out := make([]*packmodel.Pack, 0, len(ps.byName))
	for _, p := range ps.byName {
		out = append(out, p)
	}
	return out
}

// Get returns the pack named name, if any.
func (ps *PackSet) Get(name string) (*packmodel.Pack, bool) {
	p, ok := ps.byName[name]
	return p, ok
}

// ForFile returns the pack that owns relPath: the pack whose RelPath is the
// longest prefix of relPath's directory components. The root pack (RelPath
// ".") owns anything no other pack claims; it exists only when the project
// root has a package.yml, and without one ForFile returns nil for such files.
func (ps *PackSet) ForFile(relPath string) *packmodel.Pack {
	relPath = filepath.ToSlash(relPath)
	for _, pack := range ps.byDepthDesc {
		if pack.RelPath == "." {
			continue
		}
		prefix := pack.RelPath + "/"
		if strings.HasPrefix(relPath, prefix) {
			return pack
		}
	}
	if root, ok := ps.byName["."]; ok {
		return root
	}
	return nil
}

func loadPackageTodo(repoRoot, dir string) packmodel.PackageTodo {
	path := filepath.Join(repoRoot, dir, "package_todo.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	// package_todo.yml: defining_pack -> constant_name -> {violations: [...], files: [...]}
	var raw map[string]map[string]struct {
		Violations []string `yaml:"violations"`
		Files      []string `yaml:"files"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil
	}

	todo := make(packmodel.PackageTodo, len(raw))
	for definingPack, byConst := range raw {
		todo[definingPack] = make(map[string]packmodel.ViolationGroup, len(byConst))
		for constant, group := range byConst {
			vg := packmodel.NewViolationGroup()
			for _, v := range group.Violations {
				vg.ViolationTypes[v] = struct{}{}
			}
			for _, f := range group.Files {
				vg.Files[f] = struct{}{}
			}
			todo[definingPack][constant] = vg
		}
	}
	return todo
}
