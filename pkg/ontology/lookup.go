package ontology

import (
	"slices"
	"strings"

	"github.com/matzehuels/ontograph/pkg/errors"
)

// Lookup implements [Facade].
//
// Resolution order:
//  1. an exact IRI match wins outright
//  2. otherwise every entity whose short id or label equals ref is a
//     candidate; a CURIE such as "UBERON:0001" also matches the short id
//     "UBERON_0001"
//
// Zero candidates is an UNKNOWN_ENTITY error, more than one is an
// [errors.AmbiguousError]. Lookup never guesses between candidates.
func (o *Ontology) Lookup(ref string) (ID, error) {
	if err := errors.ValidateIdentifier(ref); err != nil {
		return None, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	if id, ok := o.byIRI[ref]; ok {
		return id, nil
	}

	alt := ""
	if i := strings.IndexByte(ref, ':'); i > 0 && !strings.Contains(ref, "://") {
		alt = ref[:i] + "_" + ref[i+1:]
	}

	var matches []ID
	for _, e := range o.entities[1:] {
		short := ShortID(e.IRI)
		if short == ref || e.Label == ref || (alt != "" && short == alt) {
			matches = append(matches, e.ID)
		}
	}

	switch len(matches) {
	case 0:
		return None, errors.New(errors.ErrCodeUnknownEntity, "no entity matches %q", ref)
	case 1:
		return matches[0], nil
	}

	candidates := make([]string, len(matches))
	for i, id := range matches {
		candidates[i] = o.entities[id].IRI
	}
	slices.Sort(candidates)
	return None, &errors.AmbiguousError{Ref: ref, Candidates: candidates}
}
