package transform

import "github.com/matzehuels/ontograph/pkg/dag"

// BreakCycles makes g acyclic and returns the number of node pairs it
// disconnected. Every labeled edge between a disconnected pair is dropped.
//
// Closures over cyclic ontologies contain whole strongly connected
// components (an is_a cycle yields edges both ways, plus self-loops). Within
// each component only edges running from a smaller to a larger node ID are
// kept, which orders the component as a chain. Self-loops are always
// dropped. Edges between components are never touched.
func BreakCycles(g *dag.DAG) int {
	component := make(map[string]int)
	for i, c := range g.Cycles() {
		for _, id := range c {
			component[id] = i
		}
	}

	var back [][2]string
	for _, n := range g.Nodes() {
		ci, cyclic := component[n.ID]
		for _, child := range g.Children(n.ID) {
			if child == n.ID {
				back = append(back, [2]string{n.ID, child})
				continue
			}
			if cj, ok := component[child]; cyclic && ok && ci == cj && child < n.ID {
				back = append(back, [2]string{n.ID, child})
			}
		}
	}

	for _, e := range back {
		for _, labeled := range g.EdgesBetween(e[0], e[1]) {
			g.RemoveEdge(labeled.From, labeled.To, labeled.Label)
		}
	}
	return len(back)
}
