// Package graph derives a labeled relation graph from an ontology and
// computes its transitive closures.
//
// # Edges
//
// Nothing in the ontology stores edges. [Extract] reads the axioms about a
// node and turns each supported shape into an [Edge] whose [Label] is a
// sequence of [QuantifiedRelation] steps:
//
//	finger SubClassOf part_of some hand   →  finger --SOME part_of--> hand
//	finger SubClassOf digit               →  finger --SUBCLASS_OF--> digit
//	finger Type anatomical_entity         →  finger --INSTANCE_OF--> ...
//
// Unions are never decomposed. Shapes with no edge semantics are skipped and
// reported as [MalformedAxiom] diagnostics; extraction itself never fails.
//
// # Combination
//
// Two adjacent edges A→B and B→C combine into A→C when the last step of the
// first and the first step of the second compose under [CombineQuantifiers].
// Existential steps over different relations compose through
// [CombineRelations], which consults the relation [Hierarchy]: transitivity,
// property chains and common transitive super-relations.
//
// # Closures
//
// [Graph.Ancestors] and [Graph.Descendants] run a breadth-first worklist from
// a node, combining at every hop. The result is a [Closure]: every edge
// starts (or ends) at the start node, and hops that did not combine are kept
// on [Closure.Boundary]. Traversal is bounded by [Config.MaxLabelLength] and
// [Config.MaxEdges] and terminates on cyclic ontologies.
//
//	g, err := graph.New(onto, graph.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	for _, e := range g.Ancestors(finger, false).Edges {
//	    fmt.Println(g.Name(e.Target), e.Label.Format(g.Name))
//	}
//
// # Caching
//
// Primitive edges, the relation hierarchy and closures are memoized per
// ontology generation in [cache] stores. Mutating the ontology invalidates
// them implicitly. [Graph.SetConfig] does not; call [Graph.ClearCache] when
// the new config should apply to nodes already queried.
//
// # Cycles
//
// [Graph.FindCycles] reports the strongly connected components of the
// ancestor relation. Closures for all nodes are computed in parallel.
//
// [cache]: github.com/matzehuels/ontograph/pkg/cache
package graph
