// Package dag provides a small row-organised directed graph used to draw
// closure diagrams, and a generic strongly-connected-components routine.
//
// # Overview
//
// A closure computed by the graph engine is a star: every edge starts at the
// focus node. To draw it readably, the star is turned into a [DAG] whose
// nodes are the focus and everything it reaches, with edges between reached
// nodes where the ontology relates them directly. Rows (layers) place each
// node below the nodes it is related to.
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "finger", Kind: dag.NodeKindFocus})
//	g.AddNode(dag.Node{ID: "hand", Row: 1})
//	g.AddEdge(dag.Edge{From: "finger", To: "hand", Label: "part_of"})
//
// Query the structure with [DAG.Children], [DAG.Parents], [DAG.NodesInRow]
// and related methods.
//
// # Strongly Connected Components
//
// [StronglyConnected] runs Tarjan's algorithm over any ordered node type and
// successor function. The graph engine's cycle detector uses it directly on
// entity IDs; [DAG.Cycles] applies it to a diagram.
//
// # Metadata
//
// Both nodes and the graph itself support arbitrary metadata via [Metadata]
// maps. Metadata maps are never nil after creation.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
//
// # Related Packages
//
// The [transform] subpackage breaks cycles, removes transitively implied
// edges and assigns rows.
//
// [transform]: github.com/matzehuels/ontograph/pkg/dag/transform
package dag
