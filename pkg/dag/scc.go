package dag

import (
	"cmp"
	"slices"
)

// StronglyConnected returns the strongly connected components of the graph
// given by nodes and succ, using Tarjan's algorithm in O(V+E).
//
// Each component is sorted, and components are ordered by their smallest
// member. Successors that are not in nodes are still visited, so callers
// may pass a partial node list as roots.
func StronglyConnected[T cmp.Ordered](nodes []T, succ func(T) []T) [][]T {
	t := tarjan[T]{
		succ:  succ,
		index: make(map[T]int),
		low:   make(map[T]int),
		on:    make(map[T]bool),
	}
	for _, n := range nodes {
		if _, seen := t.index[n]; !seen {
			t.visit(n)
		}
	}
	for _, c := range t.components {
		slices.Sort(c)
	}
	slices.SortFunc(t.components, func(a, b []T) int { return cmp.Compare(a[0], b[0]) })
	return t.components
}

type tarjan[T cmp.Ordered] struct {
	succ       func(T) []T
	next       int
	index, low map[T]int
	on         map[T]bool
	stack      []T
	components [][]T
}

func (t *tarjan[T]) visit(v T) {
	t.index[v] = t.next
	t.low[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.on[v] = true

	for _, w := range t.succ(v) {
		if _, seen := t.index[w]; !seen {
			t.visit(w)
			t.low[v] = min(t.low[v], t.low[w])
		} else if t.on[w] {
			t.low[v] = min(t.low[v], t.index[w])
		}
	}

	if t.low[v] != t.index[v] {
		return
	}
	var comp []T
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.on[w] = false
		comp = append(comp, w)
		if w == v {
			break
		}
	}
	t.components = append(t.components, comp)
}

// Cycles returns the strongly connected components of d with more than one
// node, which is every set of nodes lying on a common cycle.
func (d *DAG) Cycles() [][]string {
	ids := NodeIDs(d.Nodes())
	var out [][]string
	for _, c := range StronglyConnected(ids, d.Children) {
		if len(c) > 1 {
			out = append(out, c)
		}
	}
	return out
}

// NodeIDs extracts the ID from each node in a slice.
// Returns a new slice containing the IDs in the same order as the input.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
