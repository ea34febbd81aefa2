// Package io reads ontology and traversal-config documents and writes
// closures as JSON.
//
// # Ontology Documents
//
// An ontology is described in TOML or YAML. Class axioms are written in a
// small Manchester-like expression syntax (see [ParseExpr]):
//
//	name = "anatomy"
//
//	[prefixes]
//	UBERON = "http://purl.obolibrary.org/obo/UBERON_"
//
//	[[relations]]
//	id = "part_of"
//	transitive = true
//
//	[[relations]]
//	id = "adjacent_to"
//
//	[[relations]]
//	id = "part_of_adjacent_to"
//	chain = ["part_of", "adjacent_to"]
//
//	[[classes]]
//	id = "UBERON:0002389"
//	label = "finger"
//	sub_class_of = ["part_of some hand", "digit"]
//
// Imported axiom sets are nested documents under "imports"; their axioms
// keep the import name so traversal can include or skip them.
//
// Use [LoadOntology] to read and build a file in one step, or
// [ReadDocument] and [Build] to work from any io.Reader.
//
// # Config Documents
//
// [ConfigDocument] is a YAML overlay on [graph.Config] naming relations by
// identifier. [ConfigDocument.Apply] resolves the names against an
// ontology; an ambiguous short id fails with AMBIGUOUS_IDENTIFIER.
//
// # Closure Export
//
// [WriteClosureJSON] and [ExportClosureJSON] write a closure with every
// entity named by IRI:
//
//	{
//	  "start": {"iri": "finger", "kind": "class"},
//	  "direction": "outgoing",
//	  "reflexive": false,
//	  "generation": 12,
//	  "edges": [
//	    {
//	      "source": "finger",
//	      "target": "hand",
//	      "label": [{"quantifier": "SOME", "relation": "part_of"}],
//	      "text": "SOME part_of",
//	      "axioms": [1],
//	      "distance": 1
//	    }
//	  ]
//	}
//
// The same [Encoder] backs the HTTP query service.
package io
