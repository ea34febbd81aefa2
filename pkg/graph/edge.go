package graph

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Edge is a derived, labeled connection between two nodes.
//
// Edges are values recomputed from axioms on demand; they are never stored
// back into an ontology. Two notions of equality apply: [Edge.Equal]
// compares structure only, [Edge.StrictEqual] also compares the defining
// context.
type Edge struct {
	Source ontology.ID
	Target ontology.ID
	Label  Label

	// Ontology names the axiom set the edge was derived from; empty for the
	// main ontology.
	Ontology string
	// Axioms lists the defining axioms, sorted and de-duplicated.
	Axioms []ontology.AxiomID

	// GCIRelation and GCIFiller carry the context of a class-restricted
	// axiom: the edge only holds for instances of "GCIRelation some GCIFiller".
	GCIRelation ontology.ID
	GCIFiller   ontology.ID

	// Distance counts the primitive hops the edge was composed from.
	Distance int

	// via is the chain-defined step a decomposed edge was expanded from. It
	// is not part of the edge's identity but filters it with that step.
	via QuantifiedRelation
}

// Equal reports structural equality: same endpoints and same label.
func (e Edge) Equal(o Edge) bool {
	return e.Source == o.Source && e.Target == o.Target && slices.Equal(e.Label, o.Label)
}

// StrictEqual reports structural equality plus equal ontology context,
// defining axioms and GCI fields.
func (e Edge) StrictEqual(o Edge) bool {
	return e.Equal(o) &&
		e.Ontology == o.Ontology &&
		e.GCIRelation == o.GCIRelation &&
		e.GCIFiller == o.GCIFiller &&
		slices.Equal(e.Axioms, o.Axioms)
}

// IsReflexive reports whether e is the identity self-edge.
func (e Edge) IsReflexive() bool {
	return e.Source == e.Target && e.Label.IsIdentity()
}

// HasGCI reports whether the edge is class-restricted.
func (e Edge) HasGCI() bool { return e.GCIFiller != ontology.None }

// First returns the first step of the label.
func (e Edge) First() QuantifiedRelation { return e.Label[0] }

// Last returns the last step of the label.
func (e Edge) Last() QuantifiedRelation { return e.Label[len(e.Label)-1] }

// key identifies the edge under structural equality.
func (e Edge) key() string {
	b := make([]byte, 0, 32)
	b = strconv.AppendUint(b, uint64(e.Source), 36)
	b = append(b, '>')
	b = strconv.AppendUint(b, uint64(e.Target), 36)
	b = append(b, '|')
	return string(e.Label.appendKey(b))
}

func compareEdges(a, b Edge) int {
	if c := cmp.Compare(a.Source, b.Source); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Target, b.Target); c != 0 {
		return c
	}
	return compareLabels(a.Label, b.Label)
}

// SortEdges orders edges by source, target, then label.
func SortEdges(edges []Edge) {
	slices.SortFunc(edges, compareEdges)
}

func mergeAxioms(a, b []ontology.AxiomID) []ontology.AxiomID {
	if len(b) == 0 {
		return a
	}
	out := make([]ontology.AxiomID, 0, len(a)+len(b))
	out = append(append(out, a...), b...)
	slices.Sort(out)
	return slices.Compact(out)
}

// EdgeSet collects edges under structural equality. Adding an edge that is
// already present merges it into the existing one: defining axioms are
// unioned, the shorter distance is kept, and an unrestricted edge replaces
// the GCI context of a restricted one.
//
// The zero value is an empty set ready to use.
type EdgeSet struct {
	index map[string]int
	edges []Edge
}

// Add inserts or merges e. It reports whether e was new.
func (s *EdgeSet) Add(e Edge) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	k := e.key()
	if i, ok := s.index[k]; ok {
		cur := &s.edges[i]
		cur.Axioms = mergeAxioms(cur.Axioms, e.Axioms)
		if e.Distance < cur.Distance {
			cur.Distance = e.Distance
		}
		if cur.HasGCI() && !e.HasGCI() {
			cur.GCIRelation, cur.GCIFiller = ontology.None, ontology.None
		}
		if cur.Ontology != "" && e.Ontology == "" {
			cur.Ontology = ""
		}
		if cur.via.HasRelation() && !e.via.HasRelation() {
			cur.via = QuantifiedRelation{}
		}
		return false
	}
	e.Axioms = mergeAxioms(nil, e.Axioms)
	s.index[k] = len(s.edges)
	s.edges = append(s.edges, e)
	return true
}

// Contains reports whether a structurally equal edge is present.
func (s *EdgeSet) Contains(e Edge) bool {
	_, ok := s.index[e.key()]
	return ok
}

// Len returns the number of distinct edges.
func (s *EdgeSet) Len() int { return len(s.edges) }

// Edges returns the edges sorted by [SortEdges] order.
func (s *EdgeSet) Edges() []Edge {
	out := slices.Clone(s.edges)
	SortEdges(out)
	return out
}
