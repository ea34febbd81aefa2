package graph

import (
	"slices"

	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Direction selects which way a closure follows edges.
type Direction uint8

const (
	// Outgoing follows edges from source to target (ancestors).
	Outgoing Direction = iota
	// Incoming follows edges from target to source (descendants).
	Incoming
)

func (d Direction) String() string {
	if d == Incoming {
		return "incoming"
	}
	return "outgoing"
}

// Closure is the set of edges reachable from Start by traversal and
// combination. For outgoing closures every edge has Source == Start; for
// incoming closures every edge has Target == Start.
//
// Closures returned by [Graph] may be shared through the cache and must be
// treated as read-only.
type Closure struct {
	Start     ontology.ID
	Direction Direction
	Reflexive bool

	Edges []Edge
	// Boundary holds the primitive hops where chaining stopped because the
	// pair did not combine.
	Boundary []Edge
	// Truncated is set when the closure hit Config.MaxEdges.
	Truncated bool

	Generation uint64
}

// Far returns the endpoint of e away from the closure's start.
func (c *Closure) Far(e Edge) ontology.ID {
	if c.Direction == Incoming {
		return e.Source
	}
	return e.Target
}

// Nodes returns the distinct far endpoints of the closure, sorted.
func (c *Closure) Nodes() []ontology.ID {
	nodes := make([]ontology.ID, 0, len(c.Edges))
	for _, e := range c.Edges {
		nodes = append(nodes, c.Far(e))
	}
	slices.Sort(nodes)
	return slices.Compact(nodes)
}

// EdgesTo returns the edges whose far endpoint is n.
func (c *Closure) EdgesTo(n ontology.ID) []Edge {
	var out []Edge
	for _, e := range c.Edges {
		if c.Far(e) == n {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether the closure has an edge to n with label l.
func (c *Closure) Contains(n ontology.ID, l Label) bool {
	for _, e := range c.Edges {
		if c.Far(e) == n && slices.Equal(e.Label, l) {
			return true
		}
	}
	return false
}

// traversal computes one closure. step returns the primitive edges leaving
// (outgoing) or entering (incoming) a node; pruned reports nodes excluded
// by the metaclass predicate.
type traversal struct {
	hier   *Hierarchy
	cfg    Config
	step   func(ontology.ID) []Edge
	pruned func(ontology.ID) bool
}

// run is a breadth-first worklist over accumulated path edges, seeded with
// the identity self-edge. Each path edge is extended by every allowed
// primitive edge at its far end. A pair that does not combine is recorded
// on the boundary and not extended further. Paths are de-duplicated by
// structural equality, which bounds the work on cyclic graphs.
func (t *traversal) run(start ontology.ID, dir Direction, reflexive bool) *Closure {
	out := &Closure{
		Start:      start,
		Direction:  dir,
		Reflexive:  reflexive,
		Generation: t.hier.Generation(),
	}

	seed := Edge{Source: start, Target: start, Label: Label{IdentityStep}}
	var edges, boundary EdgeSet
	if reflexive {
		edges.Add(seed)
	}
	visited := map[string]bool{seed.key(): true}
	maxLabel := t.cfg.maxLabelLength()

	queue := []Edge{seed}
walk:
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		frontier := cur.Target
		if dir == Incoming {
			frontier = cur.Source
		}

		for _, p := range t.step(frontier) {
			if !t.cfg.allowsEdge(p) {
				continue
			}
			far := p.Target
			if dir == Incoming {
				far = p.Source
			}
			if t.pruned != nil && t.pruned(far) {
				continue
			}

			var c Edge
			var ok bool
			if dir == Outgoing {
				c, ok = CombineEdges(t.hier, cur, p, t.cfg.Excludes)
			} else {
				c, ok = CombineEdges(t.hier, p, cur, t.cfg.Excludes)
			}
			if !ok || len(c.Label) > maxLabel {
				boundary.Add(p)
				continue
			}

			k := c.key()
			if visited[k] {
				edges.Add(c)
				continue
			}
			if t.cfg.MaxEdges > 0 && edges.Len() >= t.cfg.MaxEdges {
				out.Truncated = true
				break walk
			}
			visited[k] = true
			edges.Add(c)
			queue = append(queue, c)
		}
	}

	out.Edges = edges.Edges()
	out.Boundary = boundary.Edges()
	return out
}
