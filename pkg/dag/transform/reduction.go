package transform

import "github.com/matzehuels/ontograph/pkg/dag"

// TransitiveReduction removes edges implied by longer paths carrying the
// same label. An edge u→w labeled L is dropped when w is reachable from u
// through at least two edges, all labeled L. Edges are only compared with
// edges of the same label, so "part_of" paths never hide an "is_a" edge.
//
// The graph must be acyclic; run [BreakCycles] first. Returns the number of
// edges removed.
func TransitiveReduction(g *dag.DAG) int {
	byLabel := make(map[string]map[string][]string)
	for _, e := range g.Edges() {
		adj := byLabel[e.Label]
		if adj == nil {
			adj = make(map[string][]string)
			byLabel[e.Label] = adj
		}
		adj[e.From] = append(adj[e.From], e.To)
	}

	var redundant []dag.Edge
	for _, e := range g.Edges() {
		adj := byLabel[e.Label]
		if reachableAvoiding(adj, e.From, e.To) {
			redundant = append(redundant, e)
		}
	}
	for _, e := range redundant {
		g.RemoveEdge(e.From, e.To, e.Label)
	}
	return len(redundant)
}

// reachableAvoiding reports whether to is reachable from from without using
// the direct edge from→to.
func reachableAvoiding(adj map[string][]string, from, to string) bool {
	seen := map[string]bool{from: true}
	var stack []string
	for _, c := range adj[from] {
		if c != to && !seen[c] {
			seen[c] = true
			stack = append(stack, c)
		}
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range adj[n] {
			if c == to {
				return true
			}
			if !seen[c] {
				seen[c] = true
				stack = append(stack, c)
			}
		}
	}
	return false
}

// Prepare readies a closure diagram for layered drawing: it breaks cycles,
// removes transitively implied edges and assigns rows.
func Prepare(g *dag.DAG) *dag.DAG {
	BreakCycles(g)
	TransitiveReduction(g)
	AssignLayers(g)
	return g
}
