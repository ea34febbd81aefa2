package graph

import (
	"slices"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// DefaultMaxLabelLength bounds the number of steps a chained label may grow to.
const DefaultMaxLabelLength = 4

// Config controls which edges a traversal follows.
type Config struct {
	// IncludeRelations restricts traversal to steps matched by one of the
	// patterns. Nil includes everything. Steps without a relation (subclass,
	// instance, identity, sub-property) are always included.
	IncludeRelations []QuantifiedRelation
	// ExcludeRelations drops steps matched by any pattern, including
	// composed steps.
	ExcludeRelations []QuantifiedRelation
	// ExcludeMetaclass, when set, prunes every node asserted to be an
	// instance of it.
	ExcludeMetaclass ontology.ID
	// CacheEnabled turns closure memoization on.
	CacheEnabled bool
	// IncludeImports makes extraction read axioms from imported sets.
	IncludeImports bool
	// MaxLabelLength caps chained labels; hops that would exceed it are
	// treated as uncombinable.
	MaxLabelLength int
	// MaxEdges caps the number of edges in one closure. Zero is unbounded.
	// A closure that hits the cap is marked truncated.
	MaxEdges int
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		CacheEnabled:   true,
		IncludeImports: true,
		MaxLabelLength: DefaultMaxLabelLength,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.MaxLabelLength < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max label length must be at least 1, got %d", c.MaxLabelLength)
	}
	if c.MaxEdges < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max edges must not be negative, got %d", c.MaxEdges)
	}
	for _, p := range slices.Concat(c.IncludeRelations, c.ExcludeRelations) {
		if p.Quantifier == Identity {
			return errors.New(errors.ErrCodeInvalidConfig, "identity cannot be used as a relation pattern")
		}
	}
	return nil
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.IncludeRelations = slices.Clone(c.IncludeRelations)
	c.ExcludeRelations = slices.Clone(c.ExcludeRelations)
	return c
}

// Allows reports whether a single step passes the include and exclude lists.
func (c Config) Allows(q QuantifiedRelation) bool {
	if c.Excludes(q) {
		return false
	}
	if c.IncludeRelations == nil || !q.HasRelation() {
		return true
	}
	for _, p := range c.IncludeRelations {
		if p.Subsumes(q) {
			return true
		}
	}
	return false
}

// Excludes reports whether a step matches the exclude list.
func (c Config) Excludes(q QuantifiedRelation) bool {
	for _, p := range c.ExcludeRelations {
		if p.Subsumes(q) {
			return true
		}
	}
	return false
}

// AllowsLabel reports whether every step of l is allowed.
func (c Config) AllowsLabel(l Label) bool {
	for _, q := range l {
		if !c.Allows(q) {
			return false
		}
	}
	return true
}

// allowsEdge reports whether a primitive edge passes the filters. A
// decomposed chain edge also needs the step it was expanded from to pass.
func (c Config) allowsEdge(e Edge) bool {
	if e.via.HasRelation() && !c.Allows(e.via) {
		return false
	}
	return c.AllowsLabel(e.Label)
}

func (c Config) maxLabelLength() int {
	if c.MaxLabelLength < 1 {
		return DefaultMaxLabelLength
	}
	return c.MaxLabelLength
}
