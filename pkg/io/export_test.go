package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

func exportGraph(t *testing.T) (*graph.Graph, ontology.ID) {
	t.Helper()
	o := ontology.New("anatomy")
	partOf := o.Relation("part_of")
	o.SetTransitive(partOf, true)
	o.SetLabel(partOf, "part of")
	finger, hand, limb, embryo := o.Class("finger"), o.Class("hand"), o.Class("limb"), o.Class("embryo")
	o.SubClassOf(finger, ontology.Some(partOf, ontology.Named(hand)))
	o.SubClassOf(hand, ontology.Some(partOf, ontology.Named(limb)), ontology.InContext(partOf, embryo))

	g, err := graph.New(o, graph.DefaultConfig(), log.New(bytes.NewBuffer(nil)))
	require.NoError(t, err)
	return g, finger
}

func TestWriteClosureJSON(t *testing.T) {
	g, finger := exportGraph(t)
	c := g.Ancestors(finger, false)

	var buf bytes.Buffer
	require.NoError(t, WriteClosureJSON(&buf, g.Facade(), c))

	var got Closure
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, Entity{IRI: "finger", Kind: "class"}, got.Start)
	assert.Equal(t, "outgoing", got.Direction)
	assert.False(t, got.Truncated)
	require.Len(t, got.Edges, 2)

	first := got.Edges[0]
	assert.Equal(t, "finger", first.Source)
	assert.Equal(t, "hand", first.Target)
	assert.Equal(t, []Step{{Quantifier: graph.Some, Relation: "part_of"}}, first.Label)
	assert.Equal(t, "SOME part of", first.Text)
	assert.Equal(t, 1, first.Distance)
	assert.Nil(t, first.Context)

	second := got.Edges[1]
	assert.Equal(t, "limb", second.Target)
	assert.Equal(t, 2, second.Distance)
	assert.Equal(t, &Context{Relation: "part_of", Filler: "embryo"}, second.Context)
	assert.Len(t, second.Axioms, 2)
}

func TestExportClosureJSON(t *testing.T) {
	g, finger := exportGraph(t)
	path := filepath.Join(t.TempDir(), "closure.json")

	require.NoError(t, ExportClosureJSON(path, g.Facade(), g.Ancestors(finger, true)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Closure
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Reflexive)
	require.Len(t, got.Edges, 3)
	assert.Equal(t, "IDENTITY", got.Edges[0].Text)
}

func TestEncodeCycles(t *testing.T) {
	g, finger := exportGraph(t)
	enc := NewEncoder(g.Facade())

	got := enc.Cycles([]graph.Cycle{{finger}})
	require.Len(t, got, 1)
	assert.Equal(t, "finger", got[0][0].IRI)

	assert.Equal(t, Entity{IRI: "#99"}, enc.Entity(99))
}
