package ontology

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontograph/pkg/errors"
)

func TestDeclareIsIdempotent(t *testing.T) {
	o := New("test")
	a := o.Class("http://example.org/A")
	b := o.Class("http://example.org/A")
	assert.Equal(t, a, b)
	assert.NotEqual(t, None, a)
	assert.Equal(t, 1, o.Len())
}

func TestGenerationBumpsOnMutation(t *testing.T) {
	o := New("test")
	a := o.Class("A")
	b := o.Class("B")

	steps := []struct {
		name string
		fn   func()
	}{
		{"subclass", func() { o.SubClassOf(a, Named(b)) }},
		{"label", func() { o.SetLabel(a, "alpha") }},
		{"transitive", func() { o.SetTransitive(o.Relation("r"), true) }},
		{"chain", func() { o.SetChain(o.Relation("r"), []ID{o.Relation("p")}) }},
	}
	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			before := o.Generation()
			s.fn()
			assert.Greater(t, o.Generation(), before)
		})
	}
}

func TestRemoveAxiom(t *testing.T) {
	o := New("test")
	a, b := o.Class("A"), o.Class("B")
	id := o.SubClassOf(a, Named(b))
	require.Len(t, o.AxiomsAbout(a), 1)

	gen := o.Generation()
	assert.True(t, o.Remove(id))
	assert.Empty(t, o.AxiomsAbout(a))
	assert.Greater(t, o.Generation(), gen)
	assert.False(t, o.Remove(id))
}

func TestAxiomsAboutReturnsCopy(t *testing.T) {
	o := New("test")
	a, b := o.Class("A"), o.Class("B")
	o.SubClassOf(a, Named(b))

	got := o.AxiomsAbout(a)
	got[0].Subject = b
	assert.Equal(t, a, o.AxiomsAbout(a)[0].Subject)
}

func TestAxiomOptions(t *testing.T) {
	o := New("test")
	a, b, ctx := o.Class("A"), o.Class("B"), o.Class("C")
	r := o.Relation("r")
	o.SubClassOf(a, Named(b), InContext(r, ctx), FromImport("support"))

	ax := o.AxiomsAbout(a)[0]
	assert.True(t, ax.IsGCI())
	assert.Equal(t, r, ax.GCIRelation)
	assert.Equal(t, ctx, ax.GCIFiller)
	assert.Equal(t, "support", ax.Source)
}

func TestDeclaredSuperRelations(t *testing.T) {
	o := New("test")
	r, s, u := o.Relation("r"), o.Relation("s"), o.Relation("u")
	o.SubPropertyOf(r, s)
	o.SubPropertyOf(r, u)
	o.SubPropertyOf(r, s)

	assert.Equal(t, []ID{s, u}, o.DeclaredSuperRelations(r))
	assert.Empty(t, o.DeclaredSuperRelations(s))
}

func TestAllNodes(t *testing.T) {
	o := New("test")
	a, b, r := o.Class("A"), o.Individual("b"), o.Relation("r")
	assert.Equal(t, []ID{a, b, r}, slices.Collect(o.AllNodes()))
}

func TestLookup(t *testing.T) {
	o := New("test")
	hand := o.Class("http://purl.obolibrary.org/obo/UBERON_0002398")
	o.SetLabel(hand, "manus")
	o.Class("http://a.org/onto#side")
	o.Class("http://b.org/onto/side")

	tests := []struct {
		name     string
		ref      string
		want     ID
		wantCode errors.Code
	}{
		{"exact iri", "http://purl.obolibrary.org/obo/UBERON_0002398", hand, ""},
		{"short id", "UBERON_0002398", hand, ""},
		{"curie", "UBERON:0002398", hand, ""},
		{"label", "manus", hand, ""},
		{"unknown", "nope", None, errors.ErrCodeUnknownEntity},
		{"ambiguous", "side", None, errors.ErrCodeAmbiguousIdentifier},
		{"invalid", "has space", None, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := o.Lookup(tt.ref)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
		})
	}

	_, err := o.Lookup("side")
	amb, ok := errors.AsAmbiguous(err)
	require.True(t, ok)
	assert.Equal(t, []string{"http://a.org/onto#side", "http://b.org/onto/side"}, amb.Candidates)
}

func TestFormat(t *testing.T) {
	o := New("test")
	partOf := o.Relation("part_of")
	hand, limb := o.Class("hand"), o.Class("limb")

	expr := And(Named(hand), Some(partOf, Or(Named(limb), Named(hand))), Min(2, partOf, Named(limb)))
	got := Format(expr, o.NameOf)
	assert.Equal(t, "hand and (part_of some (limb or hand)) and (part_of min 2 limb)", got)
}

func TestShortID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://example.org/onto#Hand", "Hand"},
		{"http://purl.obolibrary.org/obo/UBERON_1", "UBERON_1"},
		{"plain", "plain"},
		{"trailing/", "trailing/"},
	}
	for _, tt := range tests {
		if got := ShortID(tt.in); got != tt.want {
			t.Errorf("ShortID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEquivalentNamedIsMirrored(t *testing.T) {
	o := New("test")
	a, b := o.Class("A"), o.Class("B")
	id := o.Equivalent(a, Named(b))

	require.Len(t, o.AxiomsAbout(b), 1)
	mirror := o.AxiomsAbout(b)[0]
	assert.Equal(t, id, mirror.ID)
	assert.Equal(t, Named(a), mirror.Super)

	o.Remove(id)
	assert.Empty(t, o.AxiomsAbout(a))
	assert.Empty(t, o.AxiomsAbout(b))
}
