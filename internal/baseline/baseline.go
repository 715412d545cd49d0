// Package baseline implements the package_todo.yml "strangler fig" workflow:
// existing violations can be recorded once so `check` only fails on new
// ones, but a strict violation can never be recorded — it must be fixed
// immediately. Modeled on the teacher's JSONL read/write helpers in
// facts/store.go, adapted to YAML and to the pack-scoped todo format
// spec.md describes.
package baseline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/nwaobi/packcheck/internal/packmodel"
	"github.com/nwaobi/packcheck/internal/packset"
)

// Diff separates violations into those not yet recorded in any pack's
// package_todo.yml baseline (which should fail `check`) and those already
// recorded there (which should pass silently). A strict violation is never
// considered recorded, regardless of what any todo file says.
func Diff(violations []packmodel.Violation, ps *packset.PackSet) (unrecorded, recorded []packmodel.Violation) {
	for _, v := range violations {
		id := v.Identifier
		if id.Strict {
			unrecorded = append(unrecorded, v)
			continue
		}
		referencer, ok := ps.Get(id.ReferencingPackName)
		if !ok || !referencer.PackageTodo.Contains(id.DefiningPackName, id.ConstantName, id.ViolationType, id.File) {
			unrecorded = append(unrecorded, v)
			continue
		}
		recorded = append(recorded, v)
	}
	return unrecorded, recorded
}

// todoEntry is package_todo.yml's per-constant on-disk shape.
type todoEntry struct {
	Violations []string `yaml:"violations"`
	Files      []string `yaml:"files"`
}

// Write regenerates every referencing pack's package_todo.yml from
// violations, grouping by (defining pack, constant), and deletes the todo
// file for any pack that ends up with nothing to record. Strict violations
// are never written, per Diff's contract.
func Write(repoRoot string, ps *packset.PackSet, violations []packmodel.Violation) error {
	byReferencer := make(map[string]packmodel.PackageTodo)
	for _, v := range violations {
		id := v.Identifier
		if id.Strict {
			continue
		}
		todo, ok := byReferencer[id.ReferencingPackName]
		if !ok {
			todo = make(packmodel.PackageTodo)
			byReferencer[id.ReferencingPackName] = todo
		}
		byConst, ok := todo[id.DefiningPackName]
		if !ok {
			byConst = make(map[string]packmodel.ViolationGroup)
			todo[id.DefiningPackName] = byConst
		}
		group, ok := byConst[id.ConstantName]
		if !ok {
			group = packmodel.NewViolationGroup()
			byConst[id.ConstantName] = group
		}
		group.ViolationTypes[id.ViolationType] = struct{}{}
		group.Files[id.File] = struct{}{}
	}

	for _, pack := range ps.All() {
		path := filepath.Join(repoRoot, pack.RelPath, "package_todo.yml")
		todo, hasViolations := byReferencer[pack.Name]
		if !hasViolations || len(todo) == 0 {
			if _, err := os.Stat(path); err == nil {
				if err := os.Remove(path); err != nil {
					return fmt.Errorf("removing stale %s: %w", path, err)
				}
			}
			continue
		}
		if err := writeTodoFile(path, todo); err != nil {
			return err
		}
	}
	return nil
}

func writeTodoFile(path string, todo packmodel.PackageTodo) error {
	out := make(map[string]map[string]todoEntry, len(todo))
	for definingPack, byConst := range todo {
		entries := make(map[string]todoEntry, len(byConst))
		for constant, group := range byConst {
			entries[constant] = todoEntry{
				Violations: sortedKeys(group.ViolationTypes),
				Files:      sortedKeys(group.Files),
			}
		}
		out[definingPack] = entries
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	header := []byte("# This file contains a list of dependencies that are not part of the ignore list\n" +
		"# yet. It is auto-generated by `packcheck update` and should not be edited by hand.\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
