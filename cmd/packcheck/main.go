// Command packcheck checks Ruby/Rails codebases for modularity violations
// across declared "packs" (directory-scoped modules with a package.yml
// manifest): undeclared dependencies, privacy and visibility leaks, folder
// privacy breaches, and architecture layering violations.
//
// Dispatch is a manual os.Args scan, the same shape as the teacher's
// cmd/archmcp/main.go — this tool's command surface is small and flat
// enough that a flag-parsing library would be the kind of premature
// abstraction the teacher itself avoids.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nwaobi/packcheck/internal/baseline"
	"github.com/nwaobi/packcheck/internal/checker"
	"github.com/nwaobi/packcheck/internal/config"
	"github.com/nwaobi/packcheck/internal/manifestfmt"
	"github.com/nwaobi/packcheck/internal/packset"
	"github.com/nwaobi/packcheck/internal/pipeline"
	"github.com/nwaobi/packcheck/internal/procache"
	"github.com/nwaobi/packcheck/internal/resolver"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	repoRoot, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "packcheck: %v\n", err)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	cfg, err := config.Load(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "packcheck: %v\n", err)
		os.Exit(1)
	}

	var runErr error
	switch cmd {
	case "check":
		runErr = runCheck(cfg)
	case "update":
		runErr = runUpdate(cfg)
	case "validate":
		runErr = runValidate(cfg)
	case "list-packs":
		runErr = runListPacks(cfg)
	case "list-pack-dependencies":
		runErr = runListPackDependencies(cfg, args)
	case "list-pack-dependents":
		runErr = runListPackDependents(cfg, args)
	case "for-file":
		runErr = runForFile(cfg, args)
	case "delete-cache":
		runErr = runDeleteCache(cfg)
	case "generate-cache":
		runErr = runGenerateCache(cfg)
	case "lint":
		runErr = runLint(cfg)
	case "init":
		runErr = runInit(cfg)
	case "list-references":
		runErr = runListReferences(cfg, args)
	case "list-definitions":
		runErr = runListDefinitions(cfg, args)
	case "add-dependency":
		runErr = runAddDependency(cfg, args)
	case "update-dependencies-for-constant":
		runErr = runUpdateDependenciesForConstant(cfg, args)
	case "create":
		runErr = runCreate(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "packcheck: unknown command %q\n", cmd)
		usage()
		os.Exit(1)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "packcheck: %v\n", runErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: packcheck <command> [args]

commands:
  check                           run all checkers, fail on unrecorded violations
  update                          regenerate package_todo.yml baselines
  validate                        validate pack manifests (cycles, unknown layers)
  list-packs                      list every discovered pack
  list-pack-dependencies <pack>   list a pack's declared dependencies
  list-pack-dependents <pack>     list packs that depend on <pack>
  for-file <path>                 show which pack owns a file
  delete-cache                    remove the processed-file cache
  generate-cache                  warm the processed-file cache
  lint                            report package.yml files needing normalization
  init                            scaffold packcheck.yml
  list-references [--out path]    list every resolved reference
  list-definitions [--ambiguous]  list every constant definition (or only ambiguous ones)
  add-dependency <from> <to>      declare <from>'s dependency on <to>
  update-dependencies-for-constant <const>
                                  add the defining pack as a dependency everywhere <const> is referenced without one
  create <pack>                  scaffold a new pack`)
}

func loadPackSet(cfg *config.Config) (*packset.PackSet, error) {
	return packset.Load(cfg)
}

func runCheck(cfg *config.Config) error {
	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}
	result, err := pipeline.Run(cfg, ps)
	if err != nil {
		return err
	}

	for _, v := range result.UnrecordedViolations {
		fmt.Println(v.Message)
	}
	for _, a := range result.Ambiguous {
		fmt.Printf("ambiguous reference to %s in %s\n", a.Reference.Name, a.File)
	}

	if len(result.UnrecordedViolations) > 0 {
		fmt.Printf("\n%d violation(s) found (%d already recorded in package_todo.yml)\n",
			len(result.UnrecordedViolations), len(result.RecordedViolations))
		os.Exit(1)
	}
	fmt.Printf("No violations found in %d files.\n", result.Files)
	return nil
}

func runUpdate(cfg *config.Config) error {
	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}
	result, err := pipeline.Run(cfg, ps)
	if err != nil {
		return err
	}
	if err := baseline.Write(cfg.RepoRoot, ps, result.Violations); err != nil {
		return err
	}
	fmt.Printf("Updated package_todo.yml baselines for %d violation(s).\n", len(result.Violations))
	return nil
}

func runValidate(cfg *config.Config) error {
	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}

	var problems []string

	for _, cycle := range ps.FindDependencyCycles() {
		problems = append(problems, fmt.Sprintf("dependency cycle: %s", strings.Join(cycle.Packs, " -> ")))
	}

	for _, pack := range ps.All() {
		if pack.Layer == "" {
			continue
		}
		if !layerKnown(cfg.Layers, pack.Layer) {
			problems = append(problems, fmt.Sprintf("%s declares unknown layer %q", pack.Name, pack.Layer))
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Println(p)
		}
		os.Exit(1)
	}
	fmt.Println("All pack manifests are valid.")
	return nil
}

func layerKnown(layers []string, layer string) bool {
	for _, l := range layers {
		if l == layer {
			return true
		}
	}
	return false
}

func runListPacks(cfg *config.Config) error {
	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}
	names := packNames(ps)
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func packNames(ps *packset.PackSet) []string {
	all := ps.All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}

func runListPackDependencies(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: packcheck list-pack-dependencies <pack>")
	}
	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}
	pack, ok := ps.Get(args[0])
	if !ok {
		return fmt.Errorf("no such pack: %s", args[0])
	}
	deps := make([]string, 0, len(pack.Dependencies))
	for d := range pack.Dependencies {
		deps = append(deps, d)
	}
	sort.Strings(deps)
	for _, d := range deps {
		fmt.Println(d)
	}
	return nil
}

func runListPackDependents(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: packcheck list-pack-dependents <pack>")
	}
	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}
	var dependents []string
	for _, p := range ps.All() {
		if p.DependsOn(args[0]) {
			dependents = append(dependents, p.Name)
		}
	}
	sort.Strings(dependents)
	for _, d := range dependents {
		fmt.Println(d)
	}
	return nil
}

func runForFile(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: packcheck for-file <path>")
	}
	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}
	pack := ps.ForFile(args[0])
	if pack == nil {
		return fmt.Errorf("no pack owns %s", args[0])
	}
	fmt.Println(pack.Name)
	return nil
}

func runDeleteCache(cfg *config.Config) error {
	dir := cfg.CacheDirectory
	if dir == "" {
		return nil
	}
	return os.RemoveAll(dir)
}

func runGenerateCache(cfg *config.Config) error {
	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}
	if _, err := pipeline.Run(cfg, ps); err != nil {
		return err
	}
	fmt.Println("Cache warmed.")
	return nil
}

func runLint(cfg *config.Config) error {
	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}
	var needsFormatting []string
	for _, pack := range ps.All() {
		changed, _, err := manifestfmt.NeedsReformat(pack)
		if err != nil {
			return err
		}
		if changed {
			needsFormatting = append(needsFormatting, pack.Name)
		}
	}
	if len(needsFormatting) == 0 {
		fmt.Println("All manifests are already normalized.")
		return nil
	}
	sort.Strings(needsFormatting)
	for _, name := range needsFormatting {
		fmt.Printf("%s: package.yml needs normalization\n", name)
	}
	os.Exit(1)
	return nil
}

func runInit(cfg *config.Config) error {
	path := cfg.RepoRoot + "/packcheck.yml"
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	contents := `include:
  - "**/*.rb"
  - "**/*.rake"
  - "**/*.erb"
exclude:
  - "vendor/**"
  - "node_modules/**"
  - "tmp/**"
package_paths:
  - "**/"
cache_enabled: true
cache_directory: "tmp/cache/packcheck"
autoload_roots:
  app: ""
  lib: ""
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runListReferences(cfg *config.Config, args []string) error {
	outPath := ""
	for i := 0; i < len(args); i++ {
		if args[i] == "--out" && i+1 < len(args) {
			outPath = args[i+1]
			i++
		}
	}

	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}
	result, err := pipeline.Run(cfg, ps)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, ref := range result.References {
		fmt.Fprintf(&b, "%s:%s %s (%s -> %s)\n",
			ref.RelativeReferencingFile, ref.SourceLocation.String(),
			ref.ConstantName, ref.ReferencingPackName, ref.DefiningPackName)
	}

	if outPath == "" {
		fmt.Print(b.String())
		return nil
	}
	return os.WriteFile(outPath, []byte(b.String()), 0o644)
}

func runListDefinitions(cfg *config.Config, args []string) error {
	ambiguousOnly := false
	for _, a := range args {
		if a == "--ambiguous" {
			ambiguousOnly = true
		}
	}

	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}
	result, err := pipeline.Run(cfg, ps)
	if err != nil {
		return err
	}

	astResolver := resolver.NewASTResolver()
	for relPath, pf := range result.Processed {
		astResolver.Add(relPath, pf)
	}

	defs := astResolver.Definitions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		files := defs[name]
		if ambiguousOnly && len(files) < 2 {
			continue
		}
		fmt.Printf("%s: %s\n", name, strings.Join(files, ", "))
	}
	return nil
}

func runAddDependency(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: packcheck add-dependency <from> <to>")
	}
	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}
	if err := packset.AddDependency(ps, args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("%s now depends on %s.\n", args[0], args[1])
	return nil
}

func runUpdateDependenciesForConstant(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: packcheck update-dependencies-for-constant <const>")
	}
	ps, err := loadPackSet(cfg)
	if err != nil {
		return err
	}
	result, err := pipeline.Run(cfg, ps)
	if err != nil {
		return err
	}
	updated, err := packset.UpdateDependenciesForConstant(ps, result.References, args[0])
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		fmt.Printf("No missing dependencies found for %s.\n", args[0])
		return nil
	}
	for _, u := range updated {
		fmt.Println(u)
	}
	return nil
}

func runCreate(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: packcheck create <pack>")
	}
	alreadyExists, err := packset.Create(cfg, args[0])
	if err != nil {
		return err
	}
	if alreadyExists {
		fmt.Printf("`%s` already exists!\n", args[0])
		return nil
	}
	fmt.Printf("Successfully created `%s`!\n", args[0])
	return nil
}

// ensure these packages are kept linked even when a given build doesn't
// reach every command path during static analysis.
var _ = checker.NewRegistry
var _ = procache.New
