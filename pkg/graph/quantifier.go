package graph

import (
	"strconv"
	"strings"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Quantifier is how a relation holds along an edge.
type Quantifier uint8

const (
	// AnyQuantifier only appears in patterns, where it matches every
	// quantifier.
	AnyQuantifier Quantifier = iota
	Some
	All
	SubClassOf
	InstanceOf
	Identity
	SubPropertyOf
	PropertyAssertion
)

var quantifierNames = [...]string{
	AnyQuantifier:     "*",
	Some:              "SOME",
	All:               "ALL",
	SubClassOf:        "SUBCLASS_OF",
	InstanceOf:        "INSTANCE_OF",
	Identity:          "IDENTITY",
	SubPropertyOf:     "SUBPROPERTY_OF",
	PropertyAssertion: "PROPERTY_ASSERTION",
}

func (q Quantifier) String() string {
	if int(q) < len(quantifierNames) {
		return quantifierNames[q]
	}
	return "Quantifier(" + strconv.Itoa(int(q)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (q Quantifier) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quantifier) UnmarshalText(b []byte) error {
	v, err := ParseQuantifier(string(b))
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// ParseQuantifier parses a quantifier name. Matching is case-insensitive and
// accepts the common aliases "is_a", "only" and "*".
func ParseQuantifier(s string) (Quantifier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "*", "ANY", "":
		return AnyQuantifier, nil
	case "SOME":
		return Some, nil
	case "ALL", "ONLY":
		return All, nil
	case "SUBCLASS_OF", "IS_A":
		return SubClassOf, nil
	case "INSTANCE_OF", "TYPE":
		return InstanceOf, nil
	case "IDENTITY":
		return Identity, nil
	case "SUBPROPERTY_OF":
		return SubPropertyOf, nil
	case "PROPERTY_ASSERTION":
		return PropertyAssertion, nil
	}
	return AnyQuantifier, errors.New(errors.ErrCodeInvalidInput, "unknown quantifier %q", s)
}

// QuantifiedRelation is one step of an edge label: a relation and the
// quantifier it holds with. Subclass, instance, identity and sub-property
// steps carry no relation.
//
// Used as a pattern (in [Config]), a zero Relation matches any relation and
// [AnyQuantifier] matches any quantifier.
type QuantifiedRelation struct {
	Relation   ontology.ID
	Quantifier Quantifier
}

// Common patterns and steps.
var (
	IsA          = QuantifiedRelation{Quantifier: SubClassOf}
	Type         = QuantifiedRelation{Quantifier: InstanceOf}
	IdentityStep = QuantifiedRelation{Quantifier: Identity}
	SubProperty  = QuantifiedRelation{Quantifier: SubPropertyOf}
)

// SomeOf returns the existential step over r.
func SomeOf(r ontology.ID) QuantifiedRelation {
	return QuantifiedRelation{Relation: r, Quantifier: Some}
}

// AllOf returns the universal step over r.
func AllOf(r ontology.ID) QuantifiedRelation {
	return QuantifiedRelation{Relation: r, Quantifier: All}
}

// HasRelation reports whether the step names a relation.
func (q QuantifiedRelation) HasRelation() bool { return q.Relation != ontology.None }

// IsIdentity reports whether the step is the reflexive identity.
func (q QuantifiedRelation) IsIdentity() bool { return q.Quantifier == Identity }

// Subsumes reports whether pattern q matches step other.
func (q QuantifiedRelation) Subsumes(other QuantifiedRelation) bool {
	if q.Quantifier != AnyQuantifier && q.Quantifier != other.Quantifier {
		return false
	}
	if q.Relation != ontology.None && q.Relation != other.Relation {
		return false
	}
	return true
}

// Format renders the step, resolving the relation through name.
func (q QuantifiedRelation) Format(name func(ontology.ID) string) string {
	if !q.HasRelation() {
		return q.Quantifier.String()
	}
	return q.Quantifier.String() + " " + name(q.Relation)
}

func (q QuantifiedRelation) String() string {
	return q.Format(func(id ontology.ID) string { return "#" + strconv.Itoa(int(id)) })
}

// Label is the ordered sequence of steps on an edge. Most labels have a
// single step; longer labels come from property-chain decomposition and
// anonymous filler flattening.
type Label []QuantifiedRelation

// Single returns the only step of a length-1 label.
func (l Label) Single() (QuantifiedRelation, bool) {
	if len(l) != 1 {
		return QuantifiedRelation{}, false
	}
	return l[0], true
}

// IsIdentity reports whether l is the reflexive self-edge label.
func (l Label) IsIdentity() bool {
	q, ok := l.Single()
	return ok && q.IsIdentity()
}

// Format renders the label as steps joined by " / ".
func (l Label) Format(name func(ontology.ID) string) string {
	parts := make([]string, len(l))
	for i, q := range l {
		parts[i] = q.Format(name)
	}
	return strings.Join(parts, " / ")
}

func (l Label) String() string {
	parts := make([]string, len(l))
	for i, q := range l {
		parts[i] = q.String()
	}
	return strings.Join(parts, " / ")
}

func (l Label) appendKey(b []byte) []byte {
	for _, q := range l {
		b = strconv.AppendUint(b, uint64(q.Relation), 36)
		b = append(b, ':')
		b = strconv.AppendUint(b, uint64(q.Quantifier), 10)
		b = append(b, ',')
	}
	return b
}

func compareLabels(a, b Label) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := range a {
		if a[i].Relation != b[i].Relation {
			if a[i].Relation < b[i].Relation {
				return -1
			}
			return 1
		}
		if a[i].Quantifier != b[i].Quantifier {
			if a[i].Quantifier < b[i].Quantifier {
				return -1
			}
			return 1
		}
	}
	return 0
}
