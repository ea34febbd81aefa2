package graph_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

func ExampleGraph_Ancestors() {
	o := ontology.New("anatomy")
	partOf := o.Relation("part_of")
	o.SetTransitive(partOf, true)
	finger, hand, limb := o.Class("finger"), o.Class("hand"), o.Class("limb")
	o.SubClassOf(finger, ontology.Some(partOf, ontology.Named(hand)))
	o.SubClassOf(hand, ontology.Some(partOf, ontology.Named(limb)))

	g, err := graph.New(o, graph.DefaultConfig(), log.New(io.Discard))
	if err != nil {
		panic(err)
	}
	for _, e := range g.Ancestors(finger, false).Edges {
		fmt.Println(g.Name(e.Target), e.Label.Format(g.Name), e.Distance)
	}
	// Output:
	// hand SOME part_of 1
	// limb SOME part_of 2
}

func ExampleGraph_FindCycles() {
	o := ontology.New("t")
	a, b := o.Class("A"), o.Class("B")
	o.SubClassOf(a, ontology.Named(b))
	o.SubClassOf(b, ontology.Named(a))

	g, _ := graph.New(o, graph.DefaultConfig(), log.New(io.Discard))
	cycles, _ := g.FindCycles(context.Background(), []graph.QuantifiedRelation{graph.IsA})
	for _, c := range cycles {
		fmt.Println(g.Name(c[0]), g.Name(c[1]))
	}
	// Output:
	// A B
}
