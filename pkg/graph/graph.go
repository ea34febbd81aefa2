package graph

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontograph/pkg/cache"
	"github.com/matzehuels/ontograph/pkg/observability"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

type closureKey struct {
	node      ontology.ID
	direction Direction
	reflexive bool
}

type primitiveKey struct {
	node    ontology.ID
	imports bool
}

type reverseIndex struct {
	generation uint64
	imports    bool
	incoming   map[ontology.ID][]Edge
}

// Graph answers closure queries over an ontology.
//
// Graph is safe for concurrent use. Derived data (the relation hierarchy,
// primitive edges and closures) is memoized per ontology generation, so any
// mutation through the facade invalidates it on the next query. Config
// changes do not: call [Graph.ClearCache] after [Graph.SetConfig] to drop
// closures computed under the previous config.
type Graph struct {
	Logger *log.Logger

	facade ontology.Facade

	mu       sync.RWMutex
	cfg      Config
	closures cache.Store[closureKey, *Closure]

	hier       atomic.Pointer[Hierarchy]
	reverse    atomic.Pointer[reverseIndex]
	primitives *cache.Memo[primitiveKey, []Edge]
}

// New creates a graph over f. If logger is nil, log.Default() is used.
// The config is validated; see [Config.Validate].
func New(f ontology.Facade, cfg Config, logger *log.Logger) (*Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	g := &Graph{
		Logger:     logger,
		facade:     f,
		primitives: cache.NewMemo[primitiveKey, []Edge]("primitive"),
	}
	g.applyConfig(cfg)
	return g, nil
}

// Facade returns the ontology the graph reads from.
func (g *Graph) Facade() ontology.Facade { return g.facade }

// Config returns a copy of the current configuration.
func (g *Graph) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cfg.Clone()
}

// SetConfig replaces the configuration for subsequent traversals. Cached
// closures are kept unless caching is switched off.
func (g *Graph) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.applyConfig(cfg)
	g.Logger.Debug("config updated", "cache", cfg.CacheEnabled, "include", len(cfg.IncludeRelations), "exclude", len(cfg.ExcludeRelations))
	return nil
}

func (g *Graph) applyConfig(cfg Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cfg = cfg.Clone()
	switch {
	case !cfg.CacheEnabled:
		g.closures = cache.NewNull[closureKey, *Closure]()
	case !isMemo(g.closures):
		g.closures = cache.NewMemo[closureKey, *Closure]("closure")
	}
}

func isMemo(s cache.Store[closureKey, *Closure]) bool {
	_, ok := s.(*cache.Memo[closureKey, *Closure])
	return ok
}

func (g *Graph) store() cache.Store[closureKey, *Closure] {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.closures
}

// ClearCache drops every memoized closure, primitive edge list and the
// relation hierarchy index.
func (g *Graph) ClearCache() {
	g.store().Clear()
	g.primitives.Clear()
	g.reverse.Store(nil)
	g.hier.Store(nil)
	g.Logger.Debug("cache cleared")
}

// Hierarchy returns the relation hierarchy index for the current ontology
// generation, building it if needed.
func (g *Graph) Hierarchy() *Hierarchy {
	gen := g.facade.Generation()
	if h := g.hier.Load(); h != nil && h.Generation() == gen {
		return h
	}
	h := BuildHierarchy(g.facade)
	g.hier.Store(h)
	return h
}

// Name returns a display name for n: its label, else its short id.
func (g *Graph) Name(n ontology.ID) string {
	e, ok := g.facade.Entity(n)
	if !ok {
		return "#" + strconv.Itoa(int(n))
	}
	if e.Label != "" {
		return e.Label
	}
	return ontology.ShortID(e.IRI)
}

// =============================================================================
// Primitive edges
// =============================================================================

func (g *Graph) primitive(n ontology.ID, h *Hierarchy, imports bool) []Edge {
	key := primitiveKey{node: n, imports: imports}
	if edges, ok := g.primitives.Get(key, h.Generation()); ok {
		return edges
	}
	edges, malformed := Extract(g.facade, h, n, imports)
	for _, m := range malformed {
		g.Logger.Debug("skipped axiom", "node", g.Name(n), "axiom", m.Axiom, "kind", m.Kind, "reason", m.Reason)
		observability.Graph().OnMalformedAxiom(m.Kind.String())
	}
	g.primitives.Set(key, h.Generation(), edges)
	return edges
}

func (g *Graph) reverseIndex(h *Hierarchy, imports bool) *reverseIndex {
	if r := g.reverse.Load(); r != nil && r.generation == h.Generation() && r.imports == imports {
		return r
	}
	idx := &reverseIndex{
		generation: h.Generation(),
		imports:    imports,
		incoming:   make(map[ontology.ID][]Edge),
	}
	for n := range g.facade.AllNodes() {
		for _, e := range g.primitive(n, h, imports) {
			idx.incoming[e.Target] = append(idx.incoming[e.Target], e)
		}
	}
	for _, edges := range idx.incoming {
		SortEdges(edges)
	}
	g.reverse.Store(idx)
	return idx
}

// metaclassFilter returns a predicate reporting nodes asserted to be
// instances of cfg.ExcludeMetaclass, or nil when the option is off.
func (g *Graph) metaclassFilter(cfg Config) func(ontology.ID) bool {
	meta := cfg.ExcludeMetaclass
	if meta == ontology.None {
		return nil
	}
	seen := make(map[ontology.ID]bool)
	return func(n ontology.ID) bool {
		if v, ok := seen[n]; ok {
			return v
		}
		pruned := false
		for _, a := range g.facade.AxiomsAbout(n) {
			if a.Source != "" && !cfg.IncludeImports {
				continue
			}
			if a.Kind == ontology.AxiomClassAssertion && a.Super.IsNamed() && a.Super.Named == meta {
				pruned = true
				break
			}
		}
		seen[n] = pruned
		return pruned
	}
}

func (g *Graph) filterPrimitive(edges []Edge, cfg Config, dir Direction) []Edge {
	pruned := g.metaclassFilter(cfg)
	var out []Edge
	for _, e := range edges {
		if !cfg.allowsEdge(e) {
			continue
		}
		far := e.Target
		if dir == Incoming {
			far = e.Source
		}
		if pruned != nil && pruned(far) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// OutgoingEdges returns the primitive edges leaving n that pass the current
// config.
func (g *Graph) OutgoingEdges(n ontology.ID) []Edge {
	cfg := g.Config()
	return g.filterPrimitive(g.primitive(n, g.Hierarchy(), cfg.IncludeImports), cfg, Outgoing)
}

// IncomingEdges returns the primitive edges entering n that pass the
// current config.
func (g *Graph) IncomingEdges(n ontology.ID) []Edge {
	cfg := g.Config()
	idx := g.reverseIndex(g.Hierarchy(), cfg.IncludeImports)
	return g.filterPrimitive(idx.incoming[n], cfg, Incoming)
}

// =============================================================================
// Closures
// =============================================================================

// Edges returns the closure of n in the given direction, computing it on a
// cache miss. With reflexive set, the closure contains the identity
// self-edge of n.
func (g *Graph) Edges(n ontology.ID, dir Direction, reflexive bool) *Closure {
	cfg := g.Config()
	h := g.Hierarchy()
	store := g.store()
	key := closureKey{node: n, direction: dir, reflexive: reflexive}

	if c, ok := store.Get(key, h.Generation()); ok {
		return c
	}

	start := time.Now()
	c := g.compute(n, dir, reflexive, cfg, h)
	elapsed := time.Since(start)

	g.Logger.Debug("closure computed",
		"node", g.Name(n),
		"direction", dir,
		"reflexive", reflexive,
		"edges", len(c.Edges),
		"boundary", len(c.Boundary),
		"truncated", c.Truncated,
		"elapsed", elapsed)
	observability.Graph().OnClosureComplete(dir.String(), len(c.Edges), elapsed)

	store.Set(key, h.Generation(), c)
	return c
}

func (g *Graph) compute(n ontology.ID, dir Direction, reflexive bool, cfg Config, h *Hierarchy) *Closure {
	t := traversal{
		hier:   h,
		cfg:    cfg,
		pruned: g.metaclassFilter(cfg),
	}
	if dir == Outgoing {
		t.step = func(x ontology.ID) []Edge { return g.primitive(x, h, cfg.IncludeImports) }
	} else {
		idx := g.reverseIndex(h, cfg.IncludeImports)
		t.step = func(x ontology.ID) []Edge { return idx.incoming[x] }
	}
	return t.run(n, dir, reflexive)
}

// Ancestors returns the outgoing closure of n.
func (g *Graph) Ancestors(n ontology.ID, reflexive bool) *Closure {
	return g.Edges(n, Outgoing, reflexive)
}

// Descendants returns the incoming closure of n.
func (g *Graph) Descendants(n ontology.ID, reflexive bool) *Closure {
	return g.Edges(n, Incoming, reflexive)
}

// AncestorNodes returns the distinct nodes reachable from n, excluding the
// identity self-edge.
func (g *Graph) AncestorNodes(n ontology.ID) []ontology.ID {
	return g.Ancestors(n, false).Nodes()
}

// DescendantNodes returns the distinct nodes that reach n, excluding the
// identity self-edge.
func (g *Graph) DescendantNodes(n ontology.ID) []ontology.ID {
	return g.Descendants(n, false).Nodes()
}

// EdgesBetween returns the closure edges from a to b. When a == b the
// identity self-edge is included.
func (g *Graph) EdgesBetween(a, b ontology.ID) []Edge {
	return g.Ancestors(a, true).EdgesTo(b)
}

// Diagnostics extracts every node and returns the axiom shapes that were
// skipped, in node order.
func (g *Graph) Diagnostics() []*MalformedAxiom {
	h := g.Hierarchy()
	imports := g.Config().IncludeImports
	var out []*MalformedAxiom
	for n := range g.facade.AllNodes() {
		_, malformed := Extract(g.facade, h, n, imports)
		out = append(out, malformed...)
	}
	return out
}
