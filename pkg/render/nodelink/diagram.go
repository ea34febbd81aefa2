package nodelink

import (
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/ontograph/pkg/dag"
	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Metadata keys set on diagram nodes and edges.
const (
	MetaIRI      = "iri"
	MetaKind     = "kind"
	MetaBoundary = "boundary"

	// MetaTitle is the diagram-level caption, e.g. "Ancestors of finger".
	MetaTitle = "title"
)

// FromClosure builds a diagram of a closure. The nodes are the closure's
// start (marked as focus) and every node it reaches. Edges are the direct
// ontology edges among those nodes, so a chain finger → hand → limb is drawn
// as two arrows rather than a star.
//
// With opts.Boundary set, the hops where combination stopped are added as
// dashed edges to nodes outside the closure.
//
// The returned diagram has no rows yet; [Render] lays it out and draws it.
func FromClosure(g *graph.Graph, c *graph.Closure, opts Options) *dag.DAG {
	f := g.Facade()
	title := "Ancestors of "
	if c.Direction == graph.Incoming {
		title = "Descendants of "
	}
	d := dag.New(dag.Metadata{MetaTitle: title + g.Name(c.Start)})

	members := map[ontology.ID]bool{c.Start: true}
	addNode(d, f, g, c.Start, dag.NodeKindFocus)
	for _, n := range c.Nodes() {
		if !members[n] {
			members[n] = true
			addNode(d, f, g, n, dag.NodeKindRegular)
		}
	}

	seen := make(map[[3]string]bool)
	add := func(e graph.Edge, boundary bool) {
		from, to := iriOf(f, e.Source), iriOf(f, e.Target)
		label := LabelText(e.Label, g.Name)
		key := [3]string{from, to, label}
		if from == to || seen[key] {
			return
		}
		seen[key] = true
		_ = d.AddEdge(dag.Edge{From: from, To: to, Label: label, Meta: dag.Metadata{MetaBoundary: boundary}})
	}

	for _, n := range slices.Sorted(maps.Keys(members)) {
		for _, e := range g.OutgoingEdges(n) {
			if members[e.Target] {
				add(e, false)
			}
		}
	}

	if opts.Boundary {
		for _, e := range c.Boundary {
			for _, n := range []ontology.ID{e.Source, e.Target} {
				if !members[n] {
					members[n] = true
					addNode(d, f, g, n, dag.NodeKindRegular)
				}
			}
			add(e, true)
		}
	}
	return d
}

func addNode(d *dag.DAG, f ontology.Facade, g *graph.Graph, n ontology.ID, kind dag.NodeKind) {
	meta := dag.Metadata{MetaIRI: iriOf(f, n)}
	if e, ok := f.Entity(n); ok {
		meta[MetaKind] = e.Kind.String()
	}
	_ = d.AddNode(dag.Node{ID: iriOf(f, n), Label: g.Name(n), Kind: kind, Meta: meta})
}

func iriOf(f ontology.Facade, n ontology.ID) string {
	if e, ok := f.Entity(n); ok {
		return e.IRI
	}
	return ""
}

// LabelText renders a label for an arrow. A lone subclass step is drawn
// unlabeled; existential steps show only the relation name.
func LabelText(l graph.Label, name func(ontology.ID) string) string {
	if q, ok := l.Single(); ok && q.Quantifier == graph.SubClassOf {
		return ""
	}
	parts := make([]string, len(l))
	for i, q := range l {
		switch q.Quantifier {
		case graph.Some, graph.PropertyAssertion:
			parts[i] = name(q.Relation)
		case graph.All:
			parts[i] = "only " + name(q.Relation)
		case graph.SubClassOf:
			parts[i] = "is_a"
		case graph.InstanceOf:
			parts[i] = "type"
		case graph.SubPropertyOf:
			parts[i] = "sub_property_of"
		default:
			parts[i] = strings.ToLower(q.Quantifier.String())
		}
	}
	return strings.Join(parts, " / ")
}
