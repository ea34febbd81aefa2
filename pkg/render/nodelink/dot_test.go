package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontograph/pkg/dag"
	"github.com/matzehuels/ontograph/pkg/dag/transform"
	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

type anatomy struct {
	g                         *graph.Graph
	finger, hand, limb, trunk ontology.ID
}

func newAnatomy(t *testing.T) anatomy {
	t.Helper()
	o := ontology.New("anatomy")
	partOf, adjacent := o.Relation("part_of"), o.Relation("adjacent_to")
	o.SetTransitive(partOf, true)
	a := anatomy{finger: o.Class("finger"), hand: o.Class("hand"), limb: o.Class("limb"), trunk: o.Class("trunk")}
	digit := o.Class("digit")
	o.SubClassOf(a.finger, ontology.Some(partOf, ontology.Named(a.hand)))
	o.SubClassOf(a.finger, ontology.Named(digit))
	o.SubClassOf(a.hand, ontology.Some(partOf, ontology.Named(a.limb)))
	o.SubClassOf(a.limb, ontology.Some(adjacent, ontology.Named(a.trunk)))

	g, err := graph.New(o, graph.DefaultConfig(), log.New(&bytes.Buffer{}))
	require.NoError(t, err)
	a.g = g
	return a
}

func TestFromClosure(t *testing.T) {
	a := newAnatomy(t)
	d := FromClosure(a.g, a.g.Ancestors(a.finger, false), Options{})

	require.Equal(t, 4, d.NodeCount())
	focus, ok := d.Node("finger")
	require.True(t, ok)
	assert.True(t, focus.IsFocus())
	assert.Equal(t, "class", focus.Meta[MetaKind])

	assert.ElementsMatch(t, []string{"digit", "hand"}, d.Children("finger"))
	assert.Equal(t, []string{"limb"}, d.Children("hand"))
	assert.Empty(t, d.Children("limb"), "trunk is not reached without a chain")

	between := d.EdgesBetween("finger", "digit")
	require.Len(t, between, 1)
	assert.Empty(t, between[0].Label)
	assert.Equal(t, "part_of", d.EdgesBetween("finger", "hand")[0].Label)
}

func TestFromClosureBoundary(t *testing.T) {
	a := newAnatomy(t)
	d := FromClosure(a.g, a.g.Ancestors(a.finger, false), Options{Boundary: true})

	_, ok := d.Node("trunk")
	require.True(t, ok)
	edges := d.EdgesBetween("limb", "trunk")
	require.Len(t, edges, 1)
	assert.Equal(t, true, edges[0].Meta[MetaBoundary])
}

func TestLabelText(t *testing.T) {
	name := func(ontology.ID) string { return "part_of" }

	assert.Equal(t, "", LabelText(graph.Label{graph.IsA}, name))
	assert.Equal(t, "part_of", LabelText(graph.Label{graph.SomeOf(1)}, name))
	assert.Equal(t, "only part_of", LabelText(graph.Label{graph.AllOf(1)}, name))
	assert.Equal(t, "type", LabelText(graph.Label{graph.Type}, name))
	assert.Equal(t, "part_of / is_a", LabelText(graph.Label{graph.SomeOf(1), graph.IsA}, name))
}

func TestToDOT(t *testing.T) {
	a := newAnatomy(t)
	d := transform.Prepare(FromClosure(a.g, a.g.Ancestors(a.finger, false), Options{Boundary: true}))

	dot := ToDOT(d, Options{})
	assert.True(t, strings.HasPrefix(dot, "digraph G {"))
	assert.Contains(t, dot, `"finger" [label="finger", style="rounded,filled,bold"`)
	assert.Contains(t, dot, `"finger" -> "hand" [label="part_of"];`)
	assert.Contains(t, dot, `"finger" -> "digit";`)
	assert.Contains(t, dot, `"limb" -> "trunk" [label="adjacent_to", style=dashed`)
	assert.Contains(t, dot, "rank=same")
	assert.Contains(t, dot, `label="Ancestors of finger";`)

	detailed := ToDOT(d, Options{Detailed: true})
	assert.Contains(t, detailed, `iri: finger`)
}

func TestToDOTRows(t *testing.T) {
	d := dag.New(nil)
	_ = d.AddNode(dag.Node{ID: "a", Kind: dag.NodeKindFocus})
	dot := ToDOT(d, Options{})
	assert.NotContains(t, dot, "rank=same", "single row needs no rank pinning")
}

func TestRenderSVG(t *testing.T) {
	a := newAnatomy(t)
	svg, err := Render(context.Background(), a.g, a.g.Ancestors(a.finger, false), Options{})
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "finger")
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	assert.Contains(t, out, `viewBox="0 0 100.00 50.00" width="100" height="50"`)

	untouched := []byte(`<svg><g/></svg>`)
	assert.Equal(t, untouched, normalizeViewBox(untouched))
}
