package io

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// ConfigDocument is the YAML form of a traversal configuration:
//
//	include: [part_of, "some adjacent_to", is_a]
//	exclude: ["only *"]
//	exclude_metaclass: grouping_class
//	cache: true
//	include_imports: false
//	max_label_length: 4
//	max_edges: 10000
//
// Relations and the metaclass are referenced by identifier and resolved
// against an ontology when the document is applied. Unset fields keep the
// base config's value.
type ConfigDocument struct {
	Include          []string `yaml:"include"`
	Exclude          []string `yaml:"exclude"`
	ExcludeMetaclass string   `yaml:"exclude_metaclass"`
	Cache            *bool    `yaml:"cache"`
	IncludeImports   *bool    `yaml:"include_imports"`
	MaxLabelLength   *int     `yaml:"max_label_length"`
	MaxEdges         *int     `yaml:"max_edges"`
}

// ReadConfig decodes a config document from r. Unknown keys are rejected.
func ReadConfig(r io.Reader) (*ConfigDocument, error) {
	var doc ConfigDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	return &doc, nil
}

// LoadConfig reads the config document at path.
func LoadConfig(path string) (*ConfigDocument, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "%s does not exist", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadConfig(f)
}

// Apply resolves the document against f and overlays it on base. The
// result is validated.
func (d *ConfigDocument) Apply(f ontology.Facade, base graph.Config) (graph.Config, error) {
	cfg := base.Clone()
	if d.Include != nil {
		ps, err := ParsePatterns(d.Include, f)
		if err != nil {
			return graph.Config{}, fmt.Errorf("include: %w", err)
		}
		cfg.IncludeRelations = ps
	}
	if d.Exclude != nil {
		ps, err := ParsePatterns(d.Exclude, f)
		if err != nil {
			return graph.Config{}, fmt.Errorf("exclude: %w", err)
		}
		cfg.ExcludeRelations = ps
	}
	if d.ExcludeMetaclass != "" {
		id, err := f.Lookup(d.ExcludeMetaclass)
		if err != nil {
			return graph.Config{}, fmt.Errorf("exclude_metaclass: %w", err)
		}
		cfg.ExcludeMetaclass = id
	}
	if d.Cache != nil {
		cfg.CacheEnabled = *d.Cache
	}
	if d.IncludeImports != nil {
		cfg.IncludeImports = *d.IncludeImports
	}
	if d.MaxLabelLength != nil {
		cfg.MaxLabelLength = *d.MaxLabelLength
	}
	if d.MaxEdges != nil {
		cfg.MaxEdges = *d.MaxEdges
	}
	if err := cfg.Validate(); err != nil {
		return graph.Config{}, err
	}
	return cfg, nil
}

// ParsePattern parses a relation pattern:
//
//	part_of           any quantifier over part_of
//	some part_of      existential steps over part_of
//	only *            universal steps over any relation
//	is_a, type        relation-less steps
//	*                 everything
//
// Relation names are resolved with f.Lookup.
func ParsePattern(s string, f ontology.Facade) (graph.QuantifiedRelation, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		tok := fields[0]
		if tok == "*" {
			return graph.QuantifiedRelation{}, nil
		}
		if q, err := graph.ParseQuantifier(tok); err == nil {
			return graph.QuantifiedRelation{Quantifier: q}, nil
		}
		r, err := f.Lookup(tok)
		if err != nil {
			return graph.QuantifiedRelation{}, err
		}
		return graph.QuantifiedRelation{Relation: r}, nil

	case 2:
		q, err := graph.ParseQuantifier(fields[0])
		if err != nil {
			return graph.QuantifiedRelation{}, err
		}
		switch q {
		case graph.SubClassOf, graph.InstanceOf, graph.Identity, graph.SubPropertyOf:
			return graph.QuantifiedRelation{}, errors.New(errors.ErrCodeInvalidInput, "pattern %q: %s takes no relation", s, q)
		}
		if fields[1] == "*" {
			return graph.QuantifiedRelation{Quantifier: q}, nil
		}
		r, err := f.Lookup(fields[1])
		if err != nil {
			return graph.QuantifiedRelation{}, err
		}
		return graph.QuantifiedRelation{Relation: r, Quantifier: q}, nil
	}
	return graph.QuantifiedRelation{}, errors.New(errors.ErrCodeInvalidInput, "pattern %q: want [quantifier] relation", s)
}

// ParsePatterns parses each pattern in turn. A nil input yields nil.
func ParsePatterns(ss []string, f ontology.Facade) ([]graph.QuantifiedRelation, error) {
	if ss == nil {
		return nil, nil
	}
	out := make([]graph.QuantifiedRelation, 0, len(ss))
	for _, s := range ss {
		p, err := ParsePattern(s, f)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
