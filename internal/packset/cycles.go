package packset

import "sort"

// Cycle is one strongly connected component of size > 1 in the pack
// dependency graph: a set of packs whose declared `dependencies` entries
// form a loop.
type Cycle struct {
	Packs []string
}

// FindDependencyCycles runs Tarjan's strongly-connected-components
// algorithm over the declared (non-ignored) pack dependency graph, adapted
// from the teacher's explainers/cycles.go tarjanSCC — there it walked file
// import edges to explain call-graph cycles; here the nodes are packs and
// the edges are package.yml `dependencies` entries.
func (ps *PackSet) FindDependencyCycles() []Cycle {
	t := &tarjan{
		index:   make(map[string]int),
		lowlink: make(map[string]int),
		onStack: make(map[string]bool),
	}

	names := make([]string, 0, len(ps.byName))
	for name := range ps.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, visited := t.index[name]; !visited {
			t.strongconnect(ps, name)
		}
	}

	var cycles []Cycle
	for _, scc := range t.sccs {
		if len(scc) > 1 {
			sort.Strings(scc)
			cycles = append(cycles, Cycle{Packs: scc})
		}
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].Packs[0] < cycles[j].Packs[0]
	})
	return cycles
}

type tarjan struct {
	counter int
	index   map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	sccs    [][]string
}

func (t *tarjan) strongconnect(ps *PackSet, name string) {
	t.index[name] = t.counter
	t.lowlink[name] = t.counter
	t.counter++
	t.stack = append(t.stack, name)
	t.onStack[name] = true

	pack, ok := ps.byName[name]
	if ok {
		deps := make([]string, 0, len(pack.Dependencies))
		for dep := range pack.Dependencies {
			deps = append(deps, dep)
		}
		sort.Strings(deps)

		for _, dep := range deps {
			if _, ok := ps.byName[dep]; !ok {
				continue // dependency on a pack that doesn't exist is a different checker's problem
			}
			if _, visited := t.index[dep]; !visited {
				t.strongconnect(ps, dep)
				if t.lowlink[dep] < t.lowlink[name] {
					t.lowlink[name] = t.lowlink[dep]
				}
			} else if t.onStack[dep] {
				if t.index[dep] < t.lowlink[name] {
					t.lowlink[name] = t.index[dep]
				}
			}
		}
	}

	if t.lowlink[name] == t.index[name] {
		var scc []string
		for {
			n := len(t.stack) - 1
			top := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[top] = false
			scc = append(scc, top)
			if top == name {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}
