package graph

import (
	"context"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ontograph/pkg/dag"
	"github.com/matzehuels/ontograph/pkg/observability"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Cycle is a set of nodes that all reach one another, sorted by ID.
type Cycle []ontology.ID

// FindCycles reports every strongly connected component of more than one
// node in the "ancestor of" relation restricted to relations. A nil
// relations slice uses every relation.
//
// Closures are computed in parallel with the current config's exclusions
// and budget, bypassing the closure cache. Cycles are reported, never
// repaired. The only error is ctx's.
func (g *Graph) FindCycles(ctx context.Context, relations []QuantifiedRelation) ([]Cycle, error) {
	start := time.Now()
	cfg := g.Config()
	cfg.IncludeRelations = slices.Clone(relations)
	h := g.Hierarchy()

	var nodes []ontology.ID
	for n := range g.facade.AllNodes() {
		nodes = append(nodes, n)
	}

	adj := make(map[ontology.ID][]ontology.ID, len(nodes))
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, n := range nodes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ancestors := g.compute(n, Outgoing, false, cfg, h).Nodes()
			mu.Lock()
			adj[n] = ancestors
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var cycles []Cycle
	for _, c := range dag.StronglyConnected(nodes, func(n ontology.ID) []ontology.ID { return adj[n] }) {
		if len(c) > 1 {
			cycles = append(cycles, Cycle(c))
		}
	}

	elapsed := time.Since(start)
	g.Logger.Debug("cycle scan complete", "nodes", len(nodes), "cycles", len(cycles), "elapsed", elapsed)
	observability.Graph().OnCycleScan(len(nodes), len(cycles), elapsed)
	return cycles, nil
}
