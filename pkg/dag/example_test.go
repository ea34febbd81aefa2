package dag_test

import (
	"fmt"

	"github.com/matzehuels/ontograph/pkg/dag"
)

func ExampleDAG_basic() {
	// A closure diagram: finger → hand → limb
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "finger", Row: 0, Kind: dag.NodeKindFocus})
	_ = g.AddNode(dag.Node{ID: "hand", Row: 1})
	_ = g.AddNode(dag.Node{ID: "limb", Row: 2})
	_ = g.AddEdge(dag.Edge{From: "finger", To: "hand", Label: "part_of"})
	_ = g.AddEdge(dag.Edge{From: "hand", To: "limb", Label: "part_of"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Rows:", g.RowCount())
	// Output:
	// Nodes: 3
	// Edges: 2
	// Rows: 3
}

func ExampleDAG_traversal() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "finger"})
	_ = g.AddNode(dag.Node{ID: "hand"})
	_ = g.AddNode(dag.Node{ID: "digit"})
	_ = g.AddEdge(dag.Edge{From: "finger", To: "hand", Label: "part_of"})
	_ = g.AddEdge(dag.Edge{From: "finger", To: "digit"})

	// Query relationships
	fmt.Println("Children of finger:", g.Children("finger"))
	fmt.Println("Parents of hand:", g.Parents("hand"))
	fmt.Println("Out-degree of finger:", g.OutDegree("finger"))
	// Output:
	// Children of finger: [hand digit]
	// Parents of hand: [finger]
	// Out-degree of finger: 2
}

func ExampleStronglyConnected() {
	succ := map[int][]int{1: {2}, 2: {3}, 3: {1}, 4: {1}}
	comps := dag.StronglyConnected([]int{1, 2, 3, 4}, func(n int) []int { return succ[n] })
	fmt.Println(comps)
	// Output:
	// [[1 2 3] [4]]
}
