package ontology

import (
	"iter"
	"slices"
	"strings"
	"sync"
)

// Ontology is an in-memory, mutable axiom store implementing [Facade].
//
// The zero value is not usable - use New.
type Ontology struct {
	mu sync.RWMutex

	name     string
	entities []Entity // index 0 is the None placeholder
	byIRI    map[string]ID

	axioms     map[ID][]Axiom
	owner      map[AxiomID][]ID
	nextAxiom  AxiomID
	chains     map[ID][]ID
	transitive map[ID]bool

	generation uint64
}

// New creates an empty ontology. The name is reported as the ontology
// context of edges derived from its own axioms.
func New(name string) *Ontology {
	return &Ontology{
		name:       name,
		entities:   []Entity{{}},
		byIRI:      make(map[string]ID),
		axioms:     make(map[ID][]Axiom),
		owner:      make(map[AxiomID][]ID),
		chains:     make(map[ID][]ID),
		transitive: make(map[ID]bool),
	}
}

// Name returns the ontology name given to New.
func (o *Ontology) Name() string { return o.name }

// =============================================================================
// Declarations
// =============================================================================

// Class declares (or returns the existing) class with the given IRI.
func (o *Ontology) Class(iri string) ID { return o.declare(iri, KindClass) }

// Individual declares (or returns the existing) individual with the given IRI.
func (o *Ontology) Individual(iri string) ID { return o.declare(iri, KindIndividual) }

// Relation declares (or returns the existing) relation with the given IRI.
func (o *Ontology) Relation(iri string) ID { return o.declare(iri, KindRelation) }

func (o *Ontology) declare(iri string, kind EntityKind) ID {
	o.mu.Lock()
	defer o.mu.Unlock()
	if id, ok := o.byIRI[iri]; ok {
		return id
	}
	id := ID(len(o.entities))
	o.entities = append(o.entities, Entity{ID: id, IRI: iri, Kind: kind})
	o.byIRI[iri] = id
	o.generation++
	return id
}

// SetLabel attaches a human-readable label used by Lookup and rendering.
func (o *Ontology) SetLabel(id ID, label string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.valid(id) {
		return
	}
	o.entities[id].Label = label
	o.generation++
}

// SetTransitive marks relation r as transitive (or not).
func (o *Ontology) SetTransitive(r ID, transitive bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if transitive {
		o.transitive[r] = true
	} else {
		delete(o.transitive, r)
	}
	o.generation++
}

// SetChain defines r as the composition P1∘...∘Pn. A nil chain removes the
// definition.
func (o *Ontology) SetChain(r ID, chain []ID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(chain) == 0 {
		delete(o.chains, r)
	} else {
		o.chains[r] = slices.Clone(chain)
	}
	o.generation++
}

// =============================================================================
// Axioms
// =============================================================================

// AxiomOption customises an axiom before it is added.
type AxiomOption func(*Axiom)

// InContext restricts the axiom to the context "r some filler".
func InContext(r, filler ID) AxiomOption {
	return func(a *Axiom) {
		a.GCIRelation = r
		a.GCIFiller = filler
	}
}

// FromImport tags the axiom as belonging to the named imported axiom set.
func FromImport(source string) AxiomOption {
	return func(a *Axiom) { a.Source = source }
}

// SubClassOf adds sub ⊑ super.
func (o *Ontology) SubClassOf(sub ID, super Expr, opts ...AxiomOption) AxiomID {
	return o.add(Axiom{Kind: AxiomSubClassOf, Subject: sub, Super: super}, opts)
}

// Equivalent adds cls ≡ expr. When expr is a named class the axiom is also
// indexed under it, mirrored, so both classes see the other as a super.
func (o *Ontology) Equivalent(cls ID, expr Expr, opts ...AxiomOption) AxiomID {
	return o.add(Axiom{Kind: AxiomEquivalentClasses, Subject: cls, Super: expr}, opts)
}

// ClassAssertion adds "ind is an instance of cls".
func (o *Ontology) ClassAssertion(ind ID, cls Expr, opts ...AxiomOption) AxiomID {
	return o.add(Axiom{Kind: AxiomClassAssertion, Subject: ind, Super: cls}, opts)
}

// PropertyAssertion adds the fact "subject r object".
func (o *Ontology) PropertyAssertion(subject, r, object ID, opts ...AxiomOption) AxiomID {
	return o.add(Axiom{Kind: AxiomPropertyAssertion, Subject: subject, Relation: r, Object: object}, opts)
}

// SubPropertyOf adds sub ⊑ super between relations.
func (o *Ontology) SubPropertyOf(sub, super ID, opts ...AxiomOption) AxiomID {
	return o.add(Axiom{Kind: AxiomSubPropertyOf, Subject: sub, Object: super}, opts)
}

func (o *Ontology) add(a Axiom, opts []AxiomOption) AxiomID {
	for _, opt := range opts {
		opt(&a)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nextAxiom++
	a.ID = o.nextAxiom
	o.axioms[a.Subject] = append(o.axioms[a.Subject], a)
	o.owner[a.ID] = []ID{a.Subject}
	if a.Kind == AxiomEquivalentClasses && a.Super.IsNamed() && a.Super.Named != a.Subject {
		m := a
		m.Subject, m.Super = a.Super.Named, Named(a.Subject)
		o.axioms[m.Subject] = append(o.axioms[m.Subject], m)
		o.owner[a.ID] = append(o.owner[a.ID], m.Subject)
	}
	o.generation++
	return a.ID
}

// Remove deletes an axiom. It reports whether the axiom existed.
func (o *Ontology) Remove(id AxiomID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	subjects, ok := o.owner[id]
	if !ok {
		return false
	}
	for _, s := range subjects {
		o.axioms[s] = slices.DeleteFunc(o.axioms[s], func(a Axiom) bool { return a.ID == id })
	}
	delete(o.owner, id)
	o.generation++
	return true
}

// =============================================================================
// Facade
// =============================================================================

// AxiomsAbout implements [Facade].
func (o *Ontology) AxiomsAbout(n ID) []Axiom {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return slices.Clone(o.axioms[n])
}

// DeclaredSuperRelations implements [Facade]. Super-relations come from the
// relation's SubPropertyOf axioms, in the order they were added.
func (o *Ontology) DeclaredSuperRelations(r ID) []ID {
	o.mu.RLock()
	defer o.mu.RUnlock()
	var supers []ID
	for _, a := range o.axioms[r] {
		if a.Kind == AxiomSubPropertyOf && !slices.Contains(supers, a.Object) {
			supers = append(supers, a.Object)
		}
	}
	return supers
}

// ChainDefinition implements [Facade].
func (o *Ontology) ChainDefinition(r ID) []ID {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return slices.Clone(o.chains[r])
}

// IsTransitive implements [Facade].
func (o *Ontology) IsTransitive(r ID) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.transitive[r]
}

// AllNodes implements [Facade]. The sequence is a snapshot taken when
// iteration starts.
func (o *Ontology) AllNodes() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		o.mu.RLock()
		n := len(o.entities)
		o.mu.RUnlock()
		for id := 1; id < n; id++ {
			if !yield(ID(id)) {
				return
			}
		}
	}
}

// Entity implements [Facade].
func (o *Ontology) Entity(n ID) (Entity, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if !o.valid(n) {
		return Entity{}, false
	}
	return o.entities[n], true
}

// Generation implements [Facade].
func (o *Ontology) Generation() uint64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.generation
}

// Len returns the number of declared entities.
func (o *Ontology) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.entities) - 1
}

// NameOf returns the label of n if it has one, otherwise its short id.
func (o *Ontology) NameOf(n ID) string {
	e, ok := o.Entity(n)
	if !ok {
		return "?"
	}
	if e.Label != "" {
		return e.Label
	}
	return ShortID(e.IRI)
}

func (o *Ontology) valid(id ID) bool {
	return id != None && int(id) < len(o.entities)
}

// ShortID returns the local part of an IRI: the text after the last '#' or
// '/'. Identifiers without either are returned unchanged.
func ShortID(iri string) string {
	if i := strings.LastIndexAny(iri, "#/"); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}
	return iri
}

var _ Facade = (*Ontology)(nil)
