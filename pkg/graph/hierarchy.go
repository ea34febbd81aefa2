package graph

import (
	"cmp"
	"slices"

	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Hierarchy is an immutable index over the relation hierarchy of one
// ontology generation. It is built once per generation by [BuildHierarchy]
// and shared by every traversal of that generation.
type Hierarchy struct {
	generation uint64

	// supers holds the reflexive-transitive super-relations of each relation,
	// most specific first (breadth-first from the relation itself).
	supers map[ontology.ID][]ontology.ID
	depth  map[ontology.ID]map[ontology.ID]int

	transitive map[ontology.ID]bool
	decomp     map[ontology.ID][]ontology.ID
	chains     map[[2]ontology.ID][]ontology.ID
	iri        map[ontology.ID]string
}

// BuildHierarchy indexes every relation of f.
func BuildHierarchy(f ontology.Facade) *Hierarchy {
	h := &Hierarchy{
		generation: f.Generation(),
		supers:     make(map[ontology.ID][]ontology.ID),
		depth:      make(map[ontology.ID]map[ontology.ID]int),
		transitive: make(map[ontology.ID]bool),
		decomp:     make(map[ontology.ID][]ontology.ID),
		chains:     make(map[[2]ontology.ID][]ontology.ID),
		iri:        make(map[ontology.ID]string),
	}

	for n := range f.AllNodes() {
		e, ok := f.Entity(n)
		if !ok || e.Kind != ontology.KindRelation {
			continue
		}
		h.iri[n] = e.IRI
		if f.IsTransitive(n) {
			h.transitive[n] = true
		}
		if chain := f.ChainDefinition(n); len(chain) > 0 {
			h.decomp[n] = chain
			if len(chain) == 2 {
				k := [2]ontology.ID{chain[0], chain[1]}
				h.chains[k] = append(h.chains[k], n)
			}
		}
		h.supers[n], h.depth[n] = reflexiveSupers(f, n)
	}

	for k, rs := range h.chains {
		slices.SortFunc(rs, h.compareIRI)
		h.chains[k] = rs
	}
	return h
}

func reflexiveSupers(f ontology.Facade, r ontology.ID) ([]ontology.ID, map[ontology.ID]int) {
	depth := map[ontology.ID]int{r: 0}
	order := []ontology.ID{r}
	for i := 0; i < len(order); i++ {
		cur := order[i]
		for _, s := range f.DeclaredSuperRelations(cur) {
			if _, seen := depth[s]; !seen {
				depth[s] = depth[cur] + 1
				order = append(order, s)
			}
		}
	}
	return order, depth
}

// Generation returns the ontology generation the index was built from.
func (h *Hierarchy) Generation() uint64 { return h.generation }

// SuperRelations returns r and all its super-relations, most specific first.
func (h *Hierarchy) SuperRelations(r ontology.ID) []ontology.ID {
	if s, ok := h.supers[r]; ok {
		return s
	}
	return []ontology.ID{r}
}

// IsSubRelationOf reports whether sub equals super or is a (transitive)
// sub-relation of it.
func (h *Hierarchy) IsSubRelationOf(sub, super ontology.ID) bool {
	if sub == super {
		return true
	}
	_, ok := h.depth[sub][super]
	return ok
}

// IsTransitive reports whether r is declared transitive.
func (h *Hierarchy) IsTransitive(r ontology.ID) bool { return h.transitive[r] }

// Decomposition returns the chain P1..Pn defining r, or nil.
func (h *Hierarchy) Decomposition(r ontology.ID) []ontology.ID { return h.decomp[r] }

// Chains returns the relations defined as exactly first∘second, sorted by IRI.
func (h *Hierarchy) Chains(first, second ontology.ID) []ontology.ID {
	return h.chains[[2]ontology.ID{first, second}]
}

// ChainOverSupers finds a relation R = S1∘S2 where S1 is a super-relation of
// first and S2 one of second. Pairs are tried most specific first.
func (h *Hierarchy) ChainOverSupers(first, second ontology.ID) (ontology.ID, bool) {
	if len(h.chains) == 0 {
		return ontology.None, false
	}
	for _, s1 := range h.SuperRelations(first) {
		for _, s2 := range h.SuperRelations(second) {
			if rs := h.Chains(s1, s2); len(rs) > 0 {
				return rs[0], true
			}
		}
	}
	return ontology.None, false
}

// CommonTransitiveAncestor returns the most specific transitive relation S
// such that both r1 and r2 are sub-relations of S (reflexively).
//
// When several candidates are equally specific, the one with the smaller
// maximum distance from r1 and r2 wins, then the smaller summed distance,
// then the lexicographically smaller IRI.
func (h *Hierarchy) CommonTransitiveAncestor(r1, r2 ontology.ID) (ontology.ID, bool) {
	d1, d2 := h.depthOf(r1), h.depthOf(r2)

	var candidates []ontology.ID
	for _, s := range h.SuperRelations(r1) {
		if _, ok := d2[s]; ok && h.transitive[s] {
			candidates = append(candidates, s)
		}
	}
	switch len(candidates) {
	case 0:
		return ontology.None, false
	case 1:
		return candidates[0], true
	}

	// Keep the minimal elements: drop any candidate that is a strict super
	// of another candidate.
	minimal := slices.DeleteFunc(slices.Clone(candidates), func(s ontology.ID) bool {
		for _, t := range candidates {
			if t != s && h.IsSubRelationOf(t, s) && !h.IsSubRelationOf(s, t) {
				return true
			}
		}
		return false
	})
	if len(minimal) == 0 {
		minimal = candidates
	}

	best := slices.MinFunc(minimal, func(a, b ontology.ID) int {
		if c := cmp.Compare(max(d1[a], d2[a]), max(d1[b], d2[b])); c != 0 {
			return c
		}
		if c := cmp.Compare(d1[a]+d2[a], d1[b]+d2[b]); c != 0 {
			return c
		}
		return h.compareIRI(a, b)
	})
	return best, true
}

func (h *Hierarchy) depthOf(r ontology.ID) map[ontology.ID]int {
	if d, ok := h.depth[r]; ok {
		return d
	}
	return map[ontology.ID]int{r: 0}
}

func (h *Hierarchy) compareIRI(a, b ontology.ID) int {
	if c := cmp.Compare(h.iri[a], h.iri[b]); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}
