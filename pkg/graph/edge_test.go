package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontograph/pkg/ontology"
)

func TestEdgeEquality(t *testing.T) {
	a := Edge{Source: 1, Target: 2, Label: Label{SomeOf(3)}, Axioms: []ontology.AxiomID{1}}
	b := a
	b.Axioms = []ontology.AxiomID{2}
	b.Ontology = "upper"

	assert.True(t, a.Equal(b))
	assert.False(t, a.StrictEqual(b))
	assert.True(t, a.StrictEqual(a))

	c := a
	c.Label = Label{AllOf(3)}
	assert.False(t, a.Equal(c))
}

func TestEdgeSetMerge(t *testing.T) {
	var s EdgeSet
	restricted := Edge{
		Source: 1, Target: 2, Label: Label{IsA},
		Ontology: "upper", Axioms: []ontology.AxiomID{5},
		GCIRelation: 7, GCIFiller: 8, Distance: 3,
	}
	plain := Edge{Source: 1, Target: 2, Label: Label{IsA}, Axioms: []ontology.AxiomID{4, 5}, Distance: 1}

	assert.True(t, s.Add(restricted))
	assert.False(t, s.Add(plain))
	assert.True(t, s.Contains(plain))
	require.Equal(t, 1, s.Len())

	got := s.Edges()[0]
	assert.Equal(t, []ontology.AxiomID{4, 5}, got.Axioms)
	assert.Equal(t, 1, got.Distance)
	assert.False(t, got.HasGCI())
	assert.Empty(t, got.Ontology)
}

func TestEdgeSetOrder(t *testing.T) {
	var s EdgeSet
	s.Add(Edge{Source: 2, Target: 1, Label: Label{IsA}})
	s.Add(Edge{Source: 1, Target: 3, Label: Label{SomeOf(1), IsA}})
	s.Add(Edge{Source: 1, Target: 3, Label: Label{SomeOf(1)}})
	s.Add(Edge{Source: 1, Target: 2, Label: Label{SomeOf(4)}})

	var got []string
	for _, e := range s.Edges() {
		got = append(got, e.key())
	}
	assert.Equal(t, []string{
		Edge{Source: 1, Target: 2, Label: Label{SomeOf(4)}}.key(),
		Edge{Source: 1, Target: 3, Label: Label{SomeOf(1)}}.key(),
		Edge{Source: 1, Target: 3, Label: Label{SomeOf(1), IsA}}.key(),
		Edge{Source: 2, Target: 1, Label: Label{IsA}}.key(),
	}, got)

	var empty EdgeSet
	assert.False(t, empty.Contains(Edge{}))
	assert.Empty(t, empty.Edges())
}
