// Package pipeline orchestrates a full packcheck run: walk the repo, parse
// every file (in parallel, through the ProcessedFile cache), resolve every
// reference, run the five checkers, and diff against the recorded
// baseline. Grounded on the teacher's engine.go GenerateSnapshot, which
// runs the same walk -> extract -> build-graph -> explain -> render
// pipeline; parallel file parsing is adapted from the same shape using
// golang.org/x/sync/errgroup instead of the teacher's ad hoc goroutines,
// the way standardbeagle-lci's multi-language pipeline fans out file
// processing.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nwaobi/packcheck/internal/baseline"
	"github.com/nwaobi/packcheck/internal/checker"
	"github.com/nwaobi/packcheck/internal/config"
	"github.com/nwaobi/packcheck/internal/errs"
	"github.com/nwaobi/packcheck/internal/fileclass"
	"github.com/nwaobi/packcheck/internal/inflector"
	"github.com/nwaobi/packcheck/internal/packmodel"
	"github.com/nwaobi/packcheck/internal/packset"
	"github.com/nwaobi/packcheck/internal/procache"
	"github.com/nwaobi/packcheck/internal/refresolve"
	"github.com/nwaobi/packcheck/internal/resolver"
	"github.com/nwaobi/packcheck/internal/rlog"
	"github.com/nwaobi/packcheck/internal/rubyast"
	"github.com/nwaobi/packcheck/internal/walker"
)

var log = rlog.New("pipeline")

// Result is everything one packcheck run produced.
type Result struct {
	Files             int
	Violations        []packmodel.Violation
	UnrecordedViolations []packmodel.Violation
	RecordedViolations   []packmodel.Violation
	Ambiguous         []refresolve.AmbiguousReference

	// References holds every resolved reference found this run, not just
	// the ones that turned into violations — list-references and
	// update-dependencies-for-constant both need the full set.
	References []packmodel.Reference
	// Processed is every parsed file's extractor output, keyed by relative
	// path, kept around so callers (list-definitions --ambiguous) can build
	// their own resolver view without re-walking and re-parsing the repo.
	Processed map[string]*packmodel.ProcessedFile
}

// Run executes the full pipeline for the project at cfg.RepoRoot against
// the packs in ps.
func Run(cfg *config.Config, ps *packset.PackSet) (*Result, error) {
	files, err := walker.Walk(cfg)
	if err != nil {
		return nil, errs.IO(cfg.RepoRoot, err)
	}
	log.Printf("walked %d files", len(files))

	processed, err := parseAll(cfg, files)
	if err != nil {
		return nil, err
	}

	fsResolver := resolver.NewFilesystemResolver(cfg.RepoRoot, cfg.AutoloadRoots, nil)
	astResolver := resolver.NewASTResolver()
	for relPath, pf := range processed {
		astResolver.Add(relPath, pf)
	}
	combined := resolver.Combined{Primary: fsResolver, Fallback: astResolver}

	var allRefs []packmodel.Reference
	var allAmbiguous []refresolve.AmbiguousReference
	for relPath, pf := range processed {
		refs, ambiguous := refresolve.Resolve(ps, combined, relPath, pf)
		allRefs = append(allRefs, refs...)
		allAmbiguous = append(allAmbiguous, ambiguous...)
	}
	log.Printf("resolved %d references (%d ambiguous)", len(allRefs), len(allAmbiguous))

	registry := checker.NewRegistry(cfg)
	var violations []packmodel.Violation
	for _, ref := range allRefs {
		for _, c := range registry.All() {
			v, err := c.Check(ref, ps)
			if err != nil {
				return nil, fmt.Errorf("running checker %s: %w", c.Name(), err)
			}
			if v != nil {
				violations = append(violations, *v)
			}
		}
	}
	log.Printf("found %d violations", len(violations))

	unrecorded, recorded := baseline.Diff(violations, ps)

	return &Result{
		Files:                len(files),
		Violations:           violations,
		UnrecordedViolations: unrecorded,
		RecordedViolations:   recorded,
		Ambiguous:            allAmbiguous,
		References:           allRefs,
		Processed:            processed,
	}, nil
}

// parseAll parses every file concurrently (bounded by GOMAXPROCS unless
// cfg.Parallelism overrides it), consulting the ProcessedFile cache first.
func parseAll(cfg *config.Config, files []string) (map[string]*packmodel.ProcessedFile, error) {
	cache := procache.New(cfg, cfg.CacheStrategy)
	if !cfg.CacheEnabled {
		cache = procache.New(cfg, config.CacheNone)
	}

	var mu sync.Mutex
	results := make(map[string]*packmodel.ProcessedFile, len(files))

	g := new(errgroup.Group)
	if cfg.Parallelism > 0 {
		g.SetLimit(cfg.Parallelism)
	} else {
		g.SetLimit(runtime.GOMAXPROCS(0))
	}

	acronyms := loadAcronyms(cfg.RepoRoot)

	for _, relPath := range files {
		relPath := relPath
		g.Go(func() error {
			kind := fileclass.Classify(relPath)
			if kind == fileclass.KindOther {
				return nil
			}

			contents, err := os.ReadFile(relPathToAbs(cfg.RepoRoot, relPath))
			if err != nil {
				return errs.IO(relPath, err)
			}

			if cached, ok := cache.Get(relPath, contents); ok {
				mu.Lock()
				results[relPath] = cached
				mu.Unlock()
				return nil
			}

			var pf *packmodel.ProcessedFile
			switch kind {
			case fileclass.KindRuby:
				pf, err = rubyast.Parse(relPath, contents)
				if err == nil {
					pf.UnresolvedReferences = append(pf.UnresolvedReferences,
						rubyast.AssociationTargets(relPath, contents, acronyms)...)
				}
			case fileclass.KindERB:
				pf, err = rubyast.ParseERB(relPath, contents)
			}
			if err != nil {
				return errs.Parse(relPath, err)
			}

			cache.Put(relPath, contents, pf)
			mu.Lock()
			results[relPath] = pf
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := cache.Flush(); err != nil {
		return nil, fmt.Errorf("flushing cache: %w", err)
	}
	return results, nil
}

func relPathToAbs(root, relPath string) string {
	if root == "" {
		return relPath
	}
	return filepath.Join(root, relPath)
}

// loadAcronyms reads config/initializers/inflections.rb, if present, for
// acronym-aware association target camelization.
func loadAcronyms(repoRoot string) inflector.Acronyms {
	data, err := os.ReadFile(relPathToAbs(repoRoot, "config/initializers/inflections.rb"))
	if err != nil {
		return nil
	}
	return inflector.ParseAcronyms(string(data))
}
