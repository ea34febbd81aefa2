package graph

import (
	"fmt"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Extract derives the primitive outgoing edges of n from the axioms about n.
//
// Axioms from imported sets are only considered when includeImports is set.
// Shapes with no edge semantics are skipped and reported as
// [MalformedAxiom] values; they never stop extraction. Union expressions are
// skipped silently: they are deliberately not decomposed.
//
// When an extracted step's relation is defined by a property chain, a second
// edge with the decomposed multi-step label is emitted next to it.
func Extract(f ontology.Facade, h *Hierarchy, n ontology.ID, includeImports bool) ([]Edge, []*MalformedAxiom) {
	x := extraction{hier: h, node: n}
	for _, a := range f.AxiomsAbout(n) {
		if a.Source != "" && !includeImports {
			continue
		}
		x.axiom(a)
	}
	return x.edges.Edges(), x.errs
}

type extraction struct {
	hier  *Hierarchy
	node  ontology.ID
	edges EdgeSet
	errs  []*MalformedAxiom
}

// MalformedAxiom describes an axiom shape that extraction skipped.
type MalformedAxiom struct {
	Node   ontology.ID
	Axiom  ontology.AxiomID
	Kind   ontology.AxiomKind
	Reason string
}

func (m *MalformedAxiom) Error() string {
	return fmt.Sprintf("%s: %s axiom %d on node %d: %s", m.Code(), m.Kind, m.Axiom, m.Node, m.Reason)
}

// Code returns the MALFORMED_AXIOM error code.
func (m *MalformedAxiom) Code() errors.Code { return errors.ErrCodeMalformedAxiom }

func (x *extraction) malformed(a ontology.Axiom, format string, args ...any) {
	x.errs = append(x.errs, &MalformedAxiom{
		Node:   x.node,
		Axiom:  a.ID,
		Kind:   a.Kind,
		Reason: fmt.Sprintf(format, args...),
	})
}

func (x *extraction) axiom(a ontology.Axiom) {
	switch a.Kind {
	case ontology.AxiomSubClassOf, ontology.AxiomEquivalentClasses:
		x.expr(a, a.Super, SubClassOf)
	case ontology.AxiomClassAssertion:
		x.expr(a, a.Super, InstanceOf)
	case ontology.AxiomPropertyAssertion:
		if a.Relation == ontology.None || a.Object == ontology.None {
			x.malformed(a, "property assertion without relation or object")
			return
		}
		x.emit(a, a.Object, Label{{Relation: a.Relation, Quantifier: PropertyAssertion}})
	case ontology.AxiomSubPropertyOf:
		if a.Object == ontology.None {
			x.malformed(a, "sub-property axiom without super-relation")
			return
		}
		x.emit(a, a.Object, Label{SubProperty})
	default:
		x.malformed(a, "unsupported axiom kind")
	}
}

// expr classifies one right-hand expression. Intersection operands are
// classified the same way as a top-level expression.
func (x *extraction) expr(a ontology.Axiom, e ontology.Expr, isa Quantifier) {
	switch e.Kind {
	case ontology.ExprNamed:
		if e.Named == ontology.None {
			x.malformed(a, "named expression without entity")
			return
		}
		if e.Named == x.node {
			return
		}
		x.emit(a, e.Named, Label{{Quantifier: isa}})

	case ontology.ExprRestriction:
		for _, t := range x.restriction(a, e, 0) {
			x.emit(a, t.target, t.label)
		}

	case ontology.ExprIntersection:
		if len(e.Operands) == 0 {
			x.malformed(a, "empty intersection")
			return
		}
		for _, op := range e.Operands {
			x.expr(a, op, isa)
		}

	case ontology.ExprUnion:
		// Unions are not decomposed into edges.

	default:
		x.malformed(a, "unsupported expression shape %q", e.Note)
	}
}

// restricted is one (label, target) pair produced from a restriction.
type restricted struct {
	label  Label
	target ontology.ID
}

// restriction turns "R q F" into labels and targets. An anonymous filler is
// flattened one level: a restriction filler becomes a two-step label, and an
// intersection filler yields one pair per named or restriction operand.
// Anything deeper is dropped.
func (x *extraction) restriction(a ontology.Axiom, e ontology.Expr, depth int) []restricted {
	if e.Relation == ontology.None || e.Filler == nil {
		x.malformed(a, "restriction without relation or filler")
		return nil
	}

	var q Quantifier
	switch e.Restriction {
	case ontology.RestrictSome:
		q = Some
	case ontology.RestrictAll:
		q = All
	case ontology.RestrictMin:
		if e.N <= 0 {
			x.malformed(a, "cardinality restriction with n=%d implies no edge", e.N)
			return nil
		}
		q = Some
	default:
		x.malformed(a, "unknown restriction kind %d", e.Restriction)
		return nil
	}
	step := QuantifiedRelation{Relation: e.Relation, Quantifier: q}

	filler := *e.Filler
	switch {
	case filler.IsNamed():
		return []restricted{{Label{step}, filler.Named}}
	case filler.Kind == ontology.ExprUnion:
		return nil
	case filler.Kind == ontology.ExprRestriction && depth == 0:
		return prefix(step, x.restriction(a, filler, depth+1))
	case filler.Kind == ontology.ExprIntersection && depth == 0:
		if len(filler.Operands) == 0 {
			x.malformed(a, "empty intersection filler")
			return nil
		}
		var out []restricted
		for _, op := range filler.Operands {
			switch {
			case op.IsNamed():
				out = append(out, restricted{Label{step}, op.Named})
			case op.Kind == ontology.ExprRestriction:
				out = append(out, prefix(step, x.restriction(a, op, depth+1))...)
			case op.Kind == ontology.ExprUnion:
				// Unions are not decomposed into edges.
			default:
				x.malformed(a, "unsupported intersection operand %q", op.Note)
			}
		}
		return out
	}
	x.malformed(a, "anonymous filler too deep to flatten")
	return nil
}

func prefix(step QuantifiedRelation, inner []restricted) []restricted {
	for i := range inner {
		inner[i].label = append(Label{step}, inner[i].label...)
	}
	return inner
}

func (x *extraction) emit(a ontology.Axiom, target ontology.ID, label Label) {
	e := Edge{
		Source:      x.node,
		Target:      target,
		Label:       label,
		Ontology:    a.Source,
		Axioms:      []ontology.AxiomID{a.ID},
		GCIRelation: a.GCIRelation,
		GCIFiller:   a.GCIFiller,
		Distance:    1,
	}
	x.edges.Add(e)

	step, ok := label.Single()
	if !ok || (step.Quantifier != Some && step.Quantifier != PropertyAssertion) {
		return
	}
	chain := x.hier.Decomposition(step.Relation)
	if len(chain) == 0 {
		return
	}
	decomposed := make(Label, len(chain))
	for i, p := range chain {
		decomposed[i] = QuantifiedRelation{Relation: p, Quantifier: step.Quantifier}
	}
	e.Label = decomposed
	e.via = step
	x.edges.Add(e)
}
