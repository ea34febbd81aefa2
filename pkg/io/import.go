package io

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Format is an ontology document encoding.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatFromPath picks the document format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", filepath.Ext(path))
}

// Document is the on-disk form of an ontology.
//
// Entity ids are IRIs or CURIEs; a CURIE whose prefix appears in Prefixes
// is expanded to a full IRI. Expressions use the syntax of [ParseExpr] and
// may name entities by id or by label. Classes referenced in expressions
// but never declared are declared implicitly; relations must be declared.
type Document struct {
	Name        string            `toml:"name" yaml:"name"`
	Prefixes    map[string]string `toml:"prefixes" yaml:"prefixes"`
	Relations   []RelationDecl    `toml:"relations" yaml:"relations"`
	Classes     []ClassDecl       `toml:"classes" yaml:"classes"`
	Individuals []IndividualDecl  `toml:"individuals" yaml:"individuals"`
	// Imports are axiom sets merged into the ontology. Their axioms are
	// tagged with the import's Name, which is required.
	Imports []Document `toml:"imports" yaml:"imports"`
}

// RelationDecl declares a relation (object property).
type RelationDecl struct {
	ID            string   `toml:"id" yaml:"id"`
	Label         string   `toml:"label" yaml:"label"`
	Transitive    bool     `toml:"transitive" yaml:"transitive"`
	SubPropertyOf []string `toml:"sub_property_of" yaml:"sub_property_of"`
	// Chain defines the relation as the composition of the listed relations.
	Chain []string `toml:"chain" yaml:"chain"`
}

// ClassDecl declares a class and its axioms.
type ClassDecl struct {
	ID           string         `toml:"id" yaml:"id"`
	Label        string         `toml:"label" yaml:"label"`
	SubClassOf   []string       `toml:"sub_class_of" yaml:"sub_class_of"`
	EquivalentTo []string       `toml:"equivalent_to" yaml:"equivalent_to"`
	InContext    []ContextAxiom `toml:"in_context" yaml:"in_context"`
}

// ContextAxiom is a subclass axiom that only holds for instances of
// "Relation some Filler".
type ContextAxiom struct {
	SubClassOf string `toml:"sub_class_of" yaml:"sub_class_of"`
	Relation   string `toml:"relation" yaml:"relation"`
	Filler     string `toml:"filler" yaml:"filler"`
}

// IndividualDecl declares an individual, its types and its facts.
type IndividualDecl struct {
	ID    string   `toml:"id" yaml:"id"`
	Label string   `toml:"label" yaml:"label"`
	Types []string `toml:"types" yaml:"types"`
	Facts []Fact   `toml:"facts" yaml:"facts"`
}

// Fact is a property assertion "subject Relation Object".
type Fact struct {
	Relation string `toml:"relation" yaml:"relation"`
	Object   string `toml:"object" yaml:"object"`
}

// ReadDocument decodes a document from r. Unknown keys are rejected.
func ReadDocument(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
		}
	}
	return &doc, nil
}

// ParseDocument decodes a document held in memory.
func ParseDocument(data []byte, format Format) (*Document, error) {
	return ReadDocument(bytes.NewReader(data), format)
}

// LoadDocument reads the document at path, choosing the format from its
// extension.
func LoadDocument(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
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

	doc, err := ReadDocument(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// LoadOntology reads and builds the document at path.
func LoadOntology(path string) (*ontology.Ontology, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	o, err := Build(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// Build turns a document into an in-memory ontology. Declarations from the
// document and all its imports are made first, so expressions may refer to
// entities declared anywhere.
func Build(doc *Document) (*ontology.Ontology, error) {
	b := &builder{
		o:        ontology.New(doc.Name),
		prefixes: make(map[string]string),
		byIRI:    make(map[string]ontology.ID),
		byLabel:  make(map[string][]ontology.ID),
	}
	if err := b.declare(doc, true); err != nil {
		return nil, err
	}
	if err := b.axioms(doc, ""); err != nil {
		return nil, err
	}
	return b.o, nil
}

type builder struct {
	o        *ontology.Ontology
	prefixes map[string]string
	byIRI    map[string]ontology.ID
	byLabel  map[string][]ontology.ID
}

func (b *builder) iri(id string) string {
	if i := strings.IndexByte(id, ':'); i > 0 && !strings.Contains(id, "://") {
		if base, ok := b.prefixes[id[:i]]; ok {
			return base + id[i+1:]
		}
	}
	return id
}

func (b *builder) add(id, label string, kind ontology.EntityKind) (ontology.ID, error) {
	if err := errors.ValidateIdentifier(id); err != nil {
		return ontology.None, err
	}
	iri := b.iri(id)
	var n ontology.ID
	switch kind {
	case ontology.KindRelation:
		n = b.o.Relation(iri)
	case ontology.KindIndividual:
		n = b.o.Individual(iri)
	default:
		n = b.o.Class(iri)
	}
	if e, _ := b.o.Entity(n); e.Kind != kind {
		return ontology.None, errors.New(errors.ErrCodeInvalidFormat, "%s is declared as both %s and %s", iri, e.Kind, kind)
	}
	b.byIRI[iri] = n
	if label != "" {
		b.o.SetLabel(n, label)
		if !slices.Contains(b.byLabel[label], n) {
			b.byLabel[label] = append(b.byLabel[label], n)
		}
	}
	return n, nil
}

func (b *builder) declare(doc *Document, root bool) error {
	if !root && doc.Name == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "import without a name")
	}
	for p, base := range doc.Prefixes {
		b.prefixes[p] = base
	}
	for _, r := range doc.Relations {
		if _, err := b.add(r.ID, r.Label, ontology.KindRelation); err != nil {
			return err
		}
	}
	for _, c := range doc.Classes {
		if _, err := b.add(c.ID, c.Label, ontology.KindClass); err != nil {
			return err
		}
	}
	for _, ind := range doc.Individuals {
		if _, err := b.add(ind.ID, ind.Label, ontology.KindIndividual); err != nil {
			return err
		}
	}
	for i := range doc.Imports {
		if err := b.declare(&doc.Imports[i], false); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) axioms(doc *Document, source string) error {
	var opts []ontology.AxiomOption
	if source != "" {
		opts = append(opts, ontology.FromImport(source))
	}

	for _, r := range doc.Relations {
		id := b.byIRI[b.iri(r.ID)]
		if r.Transitive {
			b.o.SetTransitive(id, true)
		}
		for _, s := range r.SubPropertyOf {
			super, err := b.Relation(s)
			if err != nil {
				return fmt.Errorf("relation %s: %w", r.ID, err)
			}
			b.o.SubPropertyOf(id, super, opts...)
		}
		if len(r.Chain) > 0 {
			chain := make([]ontology.ID, len(r.Chain))
			for i, s := range r.Chain {
				p, err := b.Relation(s)
				if err != nil {
					return fmt.Errorf("relation %s: chain: %w", r.ID, err)
				}
				chain[i] = p
			}
			b.o.SetChain(id, chain)
		}
	}

	for _, c := range doc.Classes {
		id := b.byIRI[b.iri(c.ID)]
		for _, s := range c.SubClassOf {
			e, err := ParseExpr(s, b)
			if err != nil {
				return fmt.Errorf("class %s: %w", c.ID, err)
			}
			b.o.SubClassOf(id, e, opts...)
		}
		for _, s := range c.EquivalentTo {
			e, err := ParseExpr(s, b)
			if err != nil {
				return fmt.Errorf("class %s: %w", c.ID, err)
			}
			b.o.Equivalent(id, e, opts...)
		}
		for _, ctx := range c.InContext {
			e, err := ParseExpr(ctx.SubClassOf, b)
			if err != nil {
				return fmt.Errorf("class %s: %w", c.ID, err)
			}
			r, err := b.Relation(ctx.Relation)
			if err != nil {
				return fmt.Errorf("class %s: context: %w", c.ID, err)
			}
			filler, err := b.Class(ctx.Filler)
			if err != nil {
				return fmt.Errorf("class %s: context: %w", c.ID, err)
			}
			b.o.SubClassOf(id, e, append(opts, ontology.InContext(r, filler))...)
		}
	}

	for _, ind := range doc.Individuals {
		id := b.byIRI[b.iri(ind.ID)]
		for _, s := range ind.Types {
			e, err := ParseExpr(s, b)
			if err != nil {
				return fmt.Errorf("individual %s: %w", ind.ID, err)
			}
			b.o.ClassAssertion(id, e, opts...)
		}
		for _, f := range ind.Facts {
			r, err := b.Relation(f.Relation)
			if err != nil {
				return fmt.Errorf("individual %s: %w", ind.ID, err)
			}
			obj, err := b.resolve(f.Object, ontology.KindIndividual)
			if err != nil {
				return fmt.Errorf("individual %s: %w", ind.ID, err)
			}
			b.o.PropertyAssertion(id, r, obj, opts...)
		}
	}

	for i := range doc.Imports {
		imp := &doc.Imports[i]
		if err := b.axioms(imp, imp.Name); err != nil {
			return fmt.Errorf("import %s: %w", imp.Name, err)
		}
	}
	return nil
}

// Class implements [Resolver]. Unknown class names are declared.
func (b *builder) Class(name string) (ontology.ID, error) {
	id, err := b.resolve(name, ontology.KindClass)
	if errors.Is(err, errors.ErrCodeUnknownEntity) {
		return b.add(name, "", ontology.KindClass)
	}
	return id, err
}

// Relation implements [Resolver].
func (b *builder) Relation(name string) (ontology.ID, error) {
	return b.resolve(name, ontology.KindRelation)
}

func (b *builder) resolve(name string, kind ontology.EntityKind) (ontology.ID, error) {
	id, ok := b.byIRI[b.iri(name)]
	if !ok {
		switch ids := b.byLabel[name]; len(ids) {
		case 0:
			return ontology.None, errors.New(errors.ErrCodeUnknownEntity, "%s %q is not declared", kind, name)
		case 1:
			id = ids[0]
		default:
			candidates := make([]string, len(ids))
			for i, c := range ids {
				e, _ := b.o.Entity(c)
				candidates[i] = e.IRI
			}
			return ontology.None, &errors.AmbiguousError{Ref: name, Candidates: candidates}
		}
	}
	if e, _ := b.o.Entity(id); e.Kind != kind {
		return ontology.None, errors.New(errors.ErrCodeInvalidExpression, "%q is a %s, not a %s", name, e.Kind, kind)
	}
	return id, nil
}
