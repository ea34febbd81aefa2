package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Entity is the JSON form of an ontology entity.
type Entity struct {
	IRI   string `json:"iri"`
	Label string `json:"label,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// Step is the JSON form of one label step.
type Step struct {
	Quantifier graph.Quantifier `json:"quantifier"`
	Relation   string           `json:"relation,omitempty"`
}

// Context is the JSON form of a GCI context.
type Context struct {
	Relation string `json:"relation"`
	Filler   string `json:"filler"`
}

// Edge is the JSON form of a [graph.Edge]. Text is the label rendered with
// display names.
type Edge struct {
	Source   string             `json:"source"`
	Target   string             `json:"target"`
	Label    []Step             `json:"label"`
	Text     string             `json:"text"`
	Ontology string             `json:"ontology,omitempty"`
	Axioms   []ontology.AxiomID `json:"axioms,omitempty"`
	Distance int                `json:"distance"`
	Context  *Context           `json:"context,omitempty"`
}

// Closure is the JSON form of a [graph.Closure].
type Closure struct {
	Start      Entity `json:"start"`
	Direction  string `json:"direction"`
	Reflexive  bool   `json:"reflexive"`
	Generation uint64 `json:"generation"`
	Truncated  bool   `json:"truncated,omitempty"`
	Edges      []Edge `json:"edges"`
	Boundary   []Edge `json:"boundary,omitempty"`
}

// Encoder converts graph values to their JSON forms, naming entities by
// IRI.
type Encoder struct {
	f ontology.Facade
}

// NewEncoder returns an encoder resolving names through f.
func NewEncoder(f ontology.Facade) *Encoder {
	return &Encoder{f: f}
}

func (enc *Encoder) iri(id ontology.ID) string {
	if e, ok := enc.f.Entity(id); ok {
		return e.IRI
	}
	return fmt.Sprintf("#%d", id)
}

func (enc *Encoder) display(id ontology.ID) string {
	e, ok := enc.f.Entity(id)
	switch {
	case !ok:
		return fmt.Sprintf("#%d", id)
	case e.Label != "":
		return e.Label
	}
	return ontology.ShortID(e.IRI)
}

// Entity encodes a single entity.
func (enc *Encoder) Entity(id ontology.ID) Entity {
	e, ok := enc.f.Entity(id)
	if !ok {
		return Entity{IRI: enc.iri(id)}
	}
	return Entity{IRI: e.IRI, Label: e.Label, Kind: e.Kind.String()}
}

// Edges encodes edges in order.
func (enc *Encoder) Edges(edges []graph.Edge) []Edge {
	out := make([]Edge, len(edges))
	for i, e := range edges {
		steps := make([]Step, len(e.Label))
		for j, q := range e.Label {
			steps[j] = Step{Quantifier: q.Quantifier}
			if q.HasRelation() {
				steps[j].Relation = enc.iri(q.Relation)
			}
		}
		out[i] = Edge{
			Source:   enc.iri(e.Source),
			Target:   enc.iri(e.Target),
			Label:    steps,
			Text:     e.Label.Format(enc.display),
			Ontology: e.Ontology,
			Axioms:   e.Axioms,
			Distance: e.Distance,
		}
		if e.HasGCI() {
			out[i].Context = &Context{Relation: enc.iri(e.GCIRelation), Filler: enc.iri(e.GCIFiller)}
		}
	}
	return out
}

// Closure encodes a closure.
func (enc *Encoder) Closure(c *graph.Closure) Closure {
	return Closure{
		Start:      enc.Entity(c.Start),
		Direction:  c.Direction.String(),
		Reflexive:  c.Reflexive,
		Generation: c.Generation,
		Truncated:  c.Truncated,
		Edges:      enc.Edges(c.Edges),
		Boundary:   enc.Edges(c.Boundary),
	}
}

// Cycles encodes each cycle as its member entities.
func (enc *Encoder) Cycles(cycles []graph.Cycle) [][]Entity {
	out := make([][]Entity, len(cycles))
	for i, c := range cycles {
		out[i] = make([]Entity, len(c))
		for j, n := range c {
			out[i][j] = enc.Entity(n)
		}
	}
	return out
}

// WriteJSON encodes v as indented JSON to w.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteClosureJSON encodes a closure as JSON and writes it to w.
func WriteClosureJSON(w io.Writer, f ontology.Facade, c *graph.Closure) error {
	return WriteJSON(w, NewEncoder(f).Closure(c))
}

// ExportClosureJSON writes a closure to a JSON file at path.
// This is a convenience wrapper around [WriteClosureJSON] for file-based output.
func ExportClosureJSON(path string, f ontology.Facade, c *graph.Closure) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	return WriteClosureJSON(out, f, c)
}
