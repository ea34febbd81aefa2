package transform

import "github.com/matzehuels/ontograph/pkg/dag"

// AssignLayers places every node one row below the deepest node pointing at
// it, so sources sit on row 0. Existing rows are overwritten.
//
// Nodes on a common cycle share a row: rows are computed on the graph of
// strongly connected components, which is always acyclic. Run
// [BreakCycles] first if arrows must also point strictly downwards.
func AssignLayers(g *dag.DAG) {
	comps := dag.StronglyConnected(dag.NodeIDs(g.Nodes()), g.Children)
	component := make(map[string]int, g.NodeCount())
	for i, c := range comps {
		for _, id := range c {
			component[id] = i
		}
	}

	// component DAG
	succ := make([]map[int]bool, len(comps))
	inDegree := make([]int, len(comps))
	for i, c := range comps {
		succ[i] = make(map[int]bool)
		for _, id := range c {
			for _, child := range g.Children(id) {
				j := component[child]
				if j != i && !succ[i][j] {
					succ[i][j] = true
					inDegree[j]++
				}
			}
		}
	}

	depth := make([]int, len(comps))
	var queue []int
	for i := range comps {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for j := range succ[i] {
			depth[j] = max(depth[j], depth[i]+1)
			if inDegree[j]--; inDegree[j] == 0 {
				queue = append(queue, j)
			}
		}
	}

	rows := make(map[string]int, len(component))
	for id, i := range component {
		rows[id] = depth[i]
	}
	g.SetRows(rows)
}
