package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

func patternOntology() (*ontology.Ontology, ontology.ID, ontology.ID, ontology.ID) {
	o := ontology.New("t")
	partOf := o.Relation("http://example.org/part_of")
	adjacent := o.Relation("http://example.org/adjacent_to")
	meta := o.Class("http://example.org/grouping_class")
	return o, partOf, adjacent, meta
}

func TestParsePattern(t *testing.T) {
	o, partOf, _, _ := patternOntology()

	tests := []struct {
		in   string
		want graph.QuantifiedRelation
	}{
		{"part_of", graph.QuantifiedRelation{Relation: partOf}},
		{"some part_of", graph.SomeOf(partOf)},
		{"only part_of", graph.AllOf(partOf)},
		{"property_assertion part_of", graph.QuantifiedRelation{Relation: partOf, Quantifier: graph.PropertyAssertion}},
		{"only *", graph.QuantifiedRelation{Quantifier: graph.All}},
		{"is_a", graph.IsA},
		{"type", graph.Type},
		{"*", graph.QuantifiedRelation{}},
		{"  some   part_of ", graph.SomeOf(partOf)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePattern(tt.in, o)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "some part_of extra", "is_a part_of", "most part_of", "some located_in"} {
		_, err := ParsePattern(bad, o)
		assert.Error(t, err, bad)
	}
}

func TestConfigApply(t *testing.T) {
	o, partOf, adjacent, meta := patternOntology()

	doc, err := ReadConfig(strings.NewReader(`
include: [part_of, "some adjacent_to", is_a]
exclude: ["only *"]
exclude_metaclass: grouping_class
cache: false
max_edges: 500
`))
	require.NoError(t, err)

	cfg, err := doc.Apply(o, graph.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []graph.QuantifiedRelation{
		{Relation: partOf},
		graph.SomeOf(adjacent),
		graph.IsA,
	}, cfg.IncludeRelations)
	assert.Equal(t, []graph.QuantifiedRelation{{Quantifier: graph.All}}, cfg.ExcludeRelations)
	assert.Equal(t, meta, cfg.ExcludeMetaclass)
	assert.False(t, cfg.CacheEnabled)
	assert.True(t, cfg.IncludeImports, "unset fields keep the base value")
	assert.Equal(t, graph.DefaultMaxLabelLength, cfg.MaxLabelLength)
	assert.Equal(t, 500, cfg.MaxEdges)
}

func TestConfigApplyErrors(t *testing.T) {
	o, _, _, _ := patternOntology()
	o.Class("http://other.org/part_of")

	tests := []struct {
		name string
		yaml string
		code errors.Code
	}{
		{"ambiguous relation", "include: [part_of]", errors.ErrCodeAmbiguousIdentifier},
		{"unknown metaclass", "exclude_metaclass: nothing", errors.ErrCodeUnknownEntity},
		{"invalid bound", "max_label_length: 0", errors.ErrCodeInvalidConfig},
		{"identity pattern", "exclude: [identity]", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadConfig(strings.NewReader(tt.yaml))
			require.NoError(t, err)
			_, err = doc.Apply(o, graph.DefaultConfig())
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), err.Error())

			amb, ok := errors.AsAmbiguous(err)
			if tt.code == errors.ErrCodeAmbiguousIdentifier {
				require.True(t, ok)
				assert.Len(t, amb.Candidates, 2)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traversal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("include_imports: false\nunknown: 1\n"), 0o644))

	_, err := LoadConfig(path)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	_, err = LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}
