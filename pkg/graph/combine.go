package graph

import (
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// CombineQuantifiers composes step a (first hop) with step b (second hop).
// The boolean is false when the pair does not compose; that is a control
// signal for the traversal, not an error.
//
// Rules, with IDENTITY neutral on both sides:
//
//	SUBCLASS_OF ⊕ SUBCLASS_OF       = SUBCLASS_OF
//	INSTANCE_OF ⊕ SUBCLASS_OF       = INSTANCE_OF
//	SUBPROPERTY_OF ⊕ SUBPROPERTY_OF = SUBPROPERTY_OF
//	SUBCLASS_OF|INSTANCE_OF ⊕ SOME(R) = SOME(R), likewise ALL(R)
//	SOME(R) ⊕ SUBCLASS_OF           = SOME(R), likewise ALL(R)
//	PROPERTY_ASSERTION(R) ⊕ INSTANCE_OF = SOME(R)
//	SOME(R1) ⊕ SOME(R2)             = SOME(S), S from [CombineRelations]
//	PA(R1) ⊕ PA(R2)                 = PA(S), S from [CombineRelations]
//	PA(R1) ⊕ SOME(R2)               = SOME(S), S from [CombineRelations]
func CombineQuantifiers(h *Hierarchy, a, b QuantifiedRelation) (QuantifiedRelation, bool) {
	switch {
	case a.IsIdentity():
		return b, true
	case b.IsIdentity():
		return a, true
	}

	switch a.Quantifier {
	case SubClassOf, InstanceOf:
		switch b.Quantifier {
		case SubClassOf:
			return a, true
		case Some, All:
			return b, true
		}

	case SubPropertyOf:
		if b.Quantifier == SubPropertyOf {
			return a, true
		}

	case Some:
		switch b.Quantifier {
		case SubClassOf:
			return a, true
		case Some:
			if s, ok := CombineRelations(h, a.Relation, b.Relation); ok {
				return SomeOf(s), true
			}
		}

	case All:
		if b.Quantifier == SubClassOf {
			return a, true
		}

	case PropertyAssertion:
		switch b.Quantifier {
		case InstanceOf:
			return SomeOf(a.Relation), true
		case PropertyAssertion:
			if s, ok := CombineRelations(h, a.Relation, b.Relation); ok {
				return QuantifiedRelation{Relation: s, Quantifier: PropertyAssertion}, true
			}
		case Some:
			if s, ok := CombineRelations(h, a.Relation, b.Relation); ok {
				return SomeOf(s), true
			}
		}
	}
	return QuantifiedRelation{}, false
}

// CombineRelations finds the single relation that a hop over r1 followed by
// a hop over r2 implies. It tries, in order:
//
//  1. r1 == r2 and transitive
//  2. a relation defined as exactly r1∘r2
//  3. the most specific transitive common super-relation
//  4. a relation defined as S1∘S2 over super-relations of r1 and r2
func CombineRelations(h *Hierarchy, r1, r2 ontology.ID) (ontology.ID, bool) {
	if r1 == r2 && h.IsTransitive(r1) {
		return r1, true
	}
	if rs := h.Chains(r1, r2); len(rs) > 0 {
		return rs[0], true
	}
	if s, ok := h.CommonTransitiveAncestor(r1, r2); ok {
		return s, true
	}
	return h.ChainOverSupers(r1, r2)
}

// CombineEdges chains a (A→B) with b (B→C) into A→C.
//
// Only the junction steps are composed: the last step of a with the first
// step of b. Remaining steps are concatenated around the result, and an
// identity step produced inside a longer label is dropped. Combination fails
// when the endpoints do not meet, when the junction does not compose, when
// excluded rejects the composed step, or when both edges carry different
// GCI contexts.
func CombineEdges(h *Hierarchy, a, b Edge, excluded func(QuantifiedRelation) bool) (Edge, bool) {
	if a.Target != b.Source || len(a.Label) == 0 || len(b.Label) == 0 {
		return Edge{}, false
	}

	gciRel, gciFiller := a.GCIRelation, a.GCIFiller
	if b.HasGCI() {
		if a.HasGCI() && (a.GCIRelation != b.GCIRelation || a.GCIFiller != b.GCIFiller) {
			return Edge{}, false
		}
		gciRel, gciFiller = b.GCIRelation, b.GCIFiller
	}

	junction, ok := CombineQuantifiers(h, a.Last(), b.First())
	if !ok {
		return Edge{}, false
	}
	if excluded != nil && excluded(junction) {
		return Edge{}, false
	}

	label := make(Label, 0, len(a.Label)+len(b.Label)-1)
	label = append(label, a.Label[:len(a.Label)-1]...)
	label = append(label, junction)
	label = append(label, b.Label[1:]...)
	if len(label) > 1 {
		filtered := label[:0]
		for _, q := range label {
			if !q.IsIdentity() {
				filtered = append(filtered, q)
			}
		}
		if len(filtered) == 0 {
			filtered = append(filtered, IdentityStep)
		}
		label = filtered
	}

	ont := a.Ontology
	if ont == "" {
		ont = b.Ontology
	}
	return Edge{
		Source:      a.Source,
		Target:      b.Target,
		Label:       label,
		Ontology:    ont,
		Axioms:      mergeAxioms(a.Axioms, b.Axioms),
		GCIRelation: gciRel,
		GCIFiller:   gciFiller,
		Distance:    a.Distance + b.Distance,
	}, true
}
