package ontology

import "iter"

// ID indexes an entity in an ontology's arena. The zero value is [None].
type ID uint32

// None is the ID that names no entity. As a relation it stands for the
// identity relation carried by subclass and instance edges.
const None ID = 0

// AxiomID identifies one axiom within an ontology.
type AxiomID uint32

// EntityKind classifies an entity.
type EntityKind uint8

const (
	KindClass EntityKind = iota + 1
	KindIndividual
	KindRelation
)

func (k EntityKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindIndividual:
		return "individual"
	case KindRelation:
		return "relation"
	default:
		return "unknown"
	}
}

// Entity is an interned class, individual or relation.
type Entity struct {
	ID    ID
	IRI   string
	Label string
	Kind  EntityKind
}

// AxiomKind tags the logical form of an [Axiom].
type AxiomKind uint8

const (
	// SubClassOf: Subject ⊑ Super.
	AxiomSubClassOf AxiomKind = iota + 1
	// EquivalentClasses: Subject ≡ Super. Contributes edges like SubClassOf.
	AxiomEquivalentClasses
	// ClassAssertion: individual Subject is an instance of Super.
	AxiomClassAssertion
	// PropertyAssertion: Subject Relation Object, between individuals.
	AxiomPropertyAssertion
	// SubPropertyOf: relation Subject ⊑ relation Object.
	AxiomSubPropertyOf
)

func (k AxiomKind) String() string {
	switch k {
	case AxiomSubClassOf:
		return "SubClassOf"
	case AxiomEquivalentClasses:
		return "EquivalentClasses"
	case AxiomClassAssertion:
		return "ClassAssertion"
	case AxiomPropertyAssertion:
		return "PropertyAssertion"
	case AxiomSubPropertyOf:
		return "SubPropertyOf"
	default:
		return "Unknown"
	}
}

// Axiom is one logical statement about Subject.
//
// GCIRelation and GCIFiller are set when the axiom only holds within the
// context "GCIRelation some GCIFiller" (a general class inclusion). Source
// names the imported axiom set the axiom came from; it is empty for axioms
// of the ontology itself.
type Axiom struct {
	ID       AxiomID
	Kind     AxiomKind
	Subject  ID
	Super    Expr
	Relation ID
	Object   ID

	GCIRelation ID
	GCIFiller   ID

	Source string
}

// IsGCI reports whether the axiom is restricted to a context.
func (a Axiom) IsGCI() bool { return a.GCIFiller != None }

// Facade is the read interface the graph engine needs from an axiom store.
//
// Implementations must be safe for concurrent readers. Generation must
// change whenever anything the other methods return could have changed.
type Facade interface {
	// AxiomsAbout returns the axioms whose subject is n, including those from
	// imported axiom sets (distinguished by [Axiom.Source]).
	AxiomsAbout(n ID) []Axiom
	// DeclaredSuperRelations returns the direct super-relations of r in
	// declaration order.
	DeclaredSuperRelations(r ID) []ID
	// ChainDefinition returns P1..Pn when r is defined as P1∘...∘Pn, else nil.
	ChainDefinition(r ID) []ID
	IsTransitive(r ID) bool
	AllNodes() iter.Seq[ID]
	Entity(n ID) (Entity, bool)
	// Lookup resolves an IRI, short id or label. A reference matching more
	// than one entity fails with an ambiguity error listing the candidates.
	Lookup(ref string) (ID, error)
	Generation() uint64
}
