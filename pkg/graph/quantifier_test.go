package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

func TestParseQuantifier(t *testing.T) {
	tests := []struct {
		in   string
		want Quantifier
	}{
		{"some", Some},
		{"SOME", Some},
		{"only", All},
		{"all", All},
		{"is_a", SubClassOf},
		{"subclass_of", SubClassOf},
		{"type", InstanceOf},
		{"subproperty_of", SubPropertyOf},
		{"property_assertion", PropertyAssertion},
		{"*", AnyQuantifier},
		{" identity ", Identity},
	}
	for _, tt := range tests {
		got, err := ParseQuantifier(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseQuantifier("most")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestQuantifierText(t *testing.T) {
	b, err := json.Marshal(struct{ Q Quantifier }{Some})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Q":"SOME"}`, string(b))

	var v struct{ Q Quantifier }
	require.NoError(t, json.Unmarshal([]byte(`{"Q":"only"}`), &v))
	assert.Equal(t, All, v.Q)

	assert.Equal(t, "Quantifier(42)", Quantifier(42).String())
}

func TestSubsumes(t *testing.T) {
	const r, s ontology.ID = 1, 2
	tests := []struct {
		name    string
		pattern QuantifiedRelation
		step    QuantifiedRelation
		want    bool
	}{
		{"exact", SomeOf(r), SomeOf(r), true},
		{"other relation", SomeOf(r), SomeOf(s), false},
		{"other quantifier", SomeOf(r), AllOf(r), false},
		{"any quantifier", QuantifiedRelation{Relation: r}, AllOf(r), true},
		{"any relation", QuantifiedRelation{Quantifier: Some}, SomeOf(s), true},
		{"wildcard", QuantifiedRelation{}, IsA, true},
		{"is_a", IsA, IsA, true},
		{"is_a vs some", IsA, SomeOf(r), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.Subsumes(tt.step))
		})
	}
}

func TestLabelFormat(t *testing.T) {
	name := func(id ontology.ID) string { return map[ontology.ID]string{1: "part_of", 2: "has_part"}[id] }

	assert.Equal(t, "SOME part_of", Label{SomeOf(1)}.Format(name))
	assert.Equal(t, "SOME part_of / ALL has_part / SUBCLASS_OF", Label{SomeOf(1), AllOf(2), IsA}.Format(name))
	assert.Equal(t, "SOME #1", Label{SomeOf(1)}.String())
	assert.True(t, Label{IdentityStep}.IsIdentity())
	assert.False(t, Label{IdentityStep, IsA}.IsIdentity())
}

func TestConfig(t *testing.T) {
	const r, s ontology.ID = 1, 2

	t.Run("validate", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())

		for _, cfg := range []Config{
			{MaxLabelLength: 0},
			{MaxLabelLength: 4, MaxEdges: -1},
			{MaxLabelLength: 4, ExcludeRelations: []QuantifiedRelation{IdentityStep}},
		} {
			err := cfg.Validate()
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "%+v", cfg)
		}
	})

	t.Run("allows", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IncludeRelations = []QuantifiedRelation{SomeOf(r)}
		cfg.ExcludeRelations = []QuantifiedRelation{{Quantifier: All}}

		assert.True(t, cfg.Allows(SomeOf(r)))
		assert.False(t, cfg.Allows(SomeOf(s)))
		assert.False(t, cfg.Allows(AllOf(r)))
		assert.True(t, cfg.Allows(IsA), "relation-less steps pass include")
		assert.True(t, cfg.AllowsLabel(Label{IsA, SomeOf(r)}))
		assert.False(t, cfg.AllowsLabel(Label{SomeOf(r), SomeOf(s)}))
	})

	t.Run("clone", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IncludeRelations = []QuantifiedRelation{SomeOf(r)}
		c := cfg.Clone()
		c.IncludeRelations[0] = SomeOf(s)
		assert.Equal(t, SomeOf(r), cfg.IncludeRelations[0])
	})
}
