package grammar

import (
	"fmt"

	verr "github.com/gramgen/gramgen/error"
)

// checkCycles enforces the termination invariant: the reference graph must
// not contain a cycle composed entirely of direct class-to-class edges, and
// every cycle passing through an interface must leave that interface at
// least one implementor outside the cycle as a base case.
func (b *GrammarBuilder) checkCycles(classes []*RuleClass, ifaces []*Interface) {
	classNum := map[*RuleClass]int{}
	for i, c := range classes {
		classNum[c] = i
	}
	ifaceNum := map[*Interface]int{}
	for i, f := range ifaces {
		ifaceNum[f] = len(classes) + i
	}

	direct := make([][]int, len(classes))
	full := make([][]int, len(classes)+len(ifaces))
	addEdge := func(g [][]int, from, to int) [][]int {
		for _, t := range g[from] {
			if t == to {
				return g
			}
		}
		g[from] = append(g[from], to)
		return g
	}

	for i, c := range classes {
		refClass := func(target *RuleClass) {
			direct = addEdge(direct, i, classNum[target])
			full = addEdge(full, i, classNum[target])
		}
		refIface := func(target *Interface) {
			full = addEdge(full, i, ifaceNum[target])
		}

		for _, n := range c.Needs {
			switch n.target {
			case needClass:
				refClass(n.Class)
			case needInterface:
				refIface(n.Iface)
			}
		}
		// Pattern elements can reference entities the needs never name;
		// they recurse at parse time all the same.
		for _, p := range c.Patterns {
			for _, e := range p.Elements {
				switch e.Kind {
				case elemClass:
					refClass(e.Class)
				case elemInterface:
					refIface(e.Iface)
				}
			}
		}
	}
	for _, f := range ifaces {
		for _, impl := range f.Implementors {
			full = addEdge(full, ifaceNum[f], classNum[impl])
		}
	}

	for _, scc := range stronglyConnectedComponents(direct) {
		if !isCyclic(scc, direct) {
			continue
		}
		for _, v := range scc {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrUnresolvableCycle,
				Detail: fmt.Sprintf("rule class %v depends on itself without an interface on the cycle", classes[v].Name),
			})
		}
	}

	for _, scc := range stronglyConnectedComponents(full) {
		if !isCyclic(scc, full) {
			continue
		}
		inSCC := map[int]bool{}
		for _, v := range scc {
			inSCC[v] = true
		}
		for _, v := range scc {
			if v < len(classes) {
				continue
			}
			f := ifaces[v-len(classes)]
			base := false
			for _, impl := range f.Implementors {
				if !inSCC[classNum[impl]] {
					base = true
					break
				}
			}
			if !base {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrUnresolvableCycle,
					Detail: fmt.Sprintf("interface %v has no terminating implementor outside its dependency cycle", f.Name),
				})
			}
		}
	}
}

func isCyclic(scc []int, g [][]int) bool {
	if len(scc) > 1 {
		return true
	}
	v := scc[0]
	for _, t := range g[v] {
		if t == v {
			return true
		}
	}
	return false
}

// stronglyConnectedComponents runs Tarjan's algorithm over an adjacency
// list. Component order and member order are deterministic.
func stronglyConnectedComponents(g [][]int) [][]int {
	n := len(g)
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var stack []int
	var sccs [][]int
	next := 0

	var strongconnect func(v int)
	strongconnect = func(v int) {
		index[v] = next
		lowlink[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g[v] {
			if index[w] < 0 {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] && index[w] < lowlink[v] {
				lowlink[v] = index[w]
			}
		}

		if lowlink[v] == index[v] {
			var scc []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for v := 0; v < n; v++ {
		if index[v] < 0 {
			strongconnect(v)
		}
	}

	return sccs
}
