// Package ontology holds the axiom side of ontograph: entities, class
// expressions, axioms, and the [Facade] the graph engine reads them through.
//
// # Entities
//
// Every class, individual and relation is interned into an arena and
// addressed by an [ID]. IDs are stable for the lifetime of an [Ontology];
// the zero value [None] never names an entity. Edges, relations and traversal
// configuration hold IDs rather than pointers, so nothing in the engine owns
// a live reference into the axiom set.
//
// # Expressions
//
// The right-hand side of a subsumption is an [Expr], a tagged sum over the
// shapes the engine distinguishes:
//
//   - [ExprNamed]: a named class or individual
//   - [ExprRestriction]: R some F, R only F, or R min n F
//   - [ExprIntersection]: A and B and ...
//   - [ExprUnion]: A or B or ... (never decomposed into edges)
//   - [ExprOther]: any shape the engine has no edge semantics for
//
// # Mutation and generations
//
// [Ontology] is safe for concurrent use. Every mutating call bumps a
// generation counter; caches built on top of a [Facade] compare
// [Facade.Generation] on lookup and drop stale entries themselves.
//
//	o := ontology.New("anatomy")
//	partOf := o.Relation("part_of")
//	o.SetTransitive(partOf, true)
//	finger, hand := o.Class("finger"), o.Class("hand")
//	o.SubClassOf(finger, ontology.Some(partOf, ontology.Named(hand)))
package ontology
