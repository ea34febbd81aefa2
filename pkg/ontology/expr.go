package ontology

import (
	"fmt"
	"strings"
)

// ExprKind tags the shape of an [Expr].
type ExprKind uint8

const (
	ExprOther ExprKind = iota
	ExprNamed
	ExprRestriction
	ExprIntersection
	ExprUnion
)

// RestrictionKind distinguishes existential, universal and cardinality
// restrictions.
type RestrictionKind uint8

const (
	RestrictSome RestrictionKind = iota
	RestrictAll
	RestrictMin
)

// Expr is a class expression. Only the fields relevant to Kind are set:
//
//   - ExprNamed: Named
//   - ExprRestriction: Relation, Restriction, N (RestrictMin only), Filler
//   - ExprIntersection, ExprUnion: Operands
//   - ExprOther: Note, a free-form description of the unsupported shape
type Expr struct {
	Kind        ExprKind
	Named       ID
	Relation    ID
	Restriction RestrictionKind
	N           int
	Filler      *Expr
	Operands    []Expr
	Note        string
}

// Named returns the expression for a named entity.
func Named(id ID) Expr {
	return Expr{Kind: ExprNamed, Named: id}
}

// Some returns the existential restriction "r some filler".
func Some(r ID, filler Expr) Expr {
	return Expr{Kind: ExprRestriction, Relation: r, Restriction: RestrictSome, Filler: &filler}
}

// All returns the universal restriction "r only filler".
func All(r ID, filler Expr) Expr {
	return Expr{Kind: ExprRestriction, Relation: r, Restriction: RestrictAll, Filler: &filler}
}

// Min returns the cardinality restriction "r min n filler".
func Min(n int, r ID, filler Expr) Expr {
	return Expr{Kind: ExprRestriction, Relation: r, Restriction: RestrictMin, N: n, Filler: &filler}
}

// And returns the intersection of the operands.
func And(operands ...Expr) Expr {
	return Expr{Kind: ExprIntersection, Operands: operands}
}

// Or returns the union of the operands.
func Or(operands ...Expr) Expr {
	return Expr{Kind: ExprUnion, Operands: operands}
}

// Other returns an opaque expression the engine has no edge semantics for,
// such as a complement or a one-of enumeration.
func Other(note string) Expr {
	return Expr{Kind: ExprOther, Note: note}
}

// IsNamed reports whether e is a named entity reference.
func (e Expr) IsNamed() bool { return e.Kind == ExprNamed && e.Named != None }

// Format renders e in a Manchester-like syntax, resolving IDs through name.
func Format(e Expr, name func(ID) string) string {
	var b strings.Builder
	format(&b, e, name, false)
	return b.String()
}

func format(b *strings.Builder, e Expr, name func(ID) string, nested bool) {
	switch e.Kind {
	case ExprNamed:
		b.WriteString(name(e.Named))
	case ExprRestriction:
		if nested {
			b.WriteByte('(')
		}
		b.WriteString(name(e.Relation))
		switch e.Restriction {
		case RestrictSome:
			b.WriteString(" some ")
		case RestrictAll:
			b.WriteString(" only ")
		case RestrictMin:
			fmt.Fprintf(b, " min %d ", e.N)
		}
		if e.Filler == nil {
			b.WriteString("?")
		} else {
			format(b, *e.Filler, name, true)
		}
		if nested {
			b.WriteByte(')')
		}
	case ExprIntersection, ExprUnion:
		sep := " and "
		if e.Kind == ExprUnion {
			sep = " or "
		}
		if nested {
			b.WriteByte('(')
		}
		for i, op := range e.Operands {
			if i > 0 {
				b.WriteString(sep)
			}
			format(b, op, name, true)
		}
		if nested {
			b.WriteByte(')')
		}
	default:
		if e.Note != "" {
			fmt.Fprintf(b, "<%s>", e.Note)
		} else {
			b.WriteString("<other>")
		}
	}
}
