package types

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// Finalize sorts the schema keywords into the order required for
// validation. Normally there is no need to call this explicitly.
// It will be called automatically by a Builder or when building
// a schema from a decoded value.
func (s *Schema) Finalize(v *Vocabulary) {
	slices.SortStableFunc(s.Parts, func(a, b Part) int {
		return v.Cmp(a.Keyword.Name, b.Keyword.Name)
	})
}

// Resolve walks a schema to register subschemas bearing an "id"
// and to pre-load external references. Load failures are
// swallowed; an unresolved reference surfaces only if it is
// dereferenced during validation.
func (s *Schema) Resolve(opts *ResolveOpts) error {
	var v *Vocabulary
	if opts != nil {
		v = opts.Vocabulary
	}

	if v == nil {
		for _, part := range s.Parts {
			if part.Keyword == &SchemaKeyword {
				v = LookupVocabulary(string(part.Value.(PartString)))
				if v == nil {
					return fmt.Errorf("no registered vocabulary for schema %q when resolving", part.Value.(PartString))
				}
				break
			}
		}
		if v == nil {
			v = DefaultVocabulary()
		}
		if v == nil {
			return errors.New("unknown schema vocabulary when resolving")
		}
	}

	if opts == nil {
		opts = &ResolveOpts{}
	}
	opts.Vocabulary = v

	return v.Resolve(s, opts)
}

// ResolveOpts is options to use when resolving the schema.
// These are all optional.
type ResolveOpts struct {
	// The vocabulary to use.
	Vocabulary *Vocabulary
	// URI of the root of the schema.
	// This is overridden by an "id" keyword, if present.
	URI *url.URL
	// Registry receives subschemas registered under their "id"
	// and externally loaded documents.
	Registry SchemaRegistry
	// Loader fetches the raw bytes of an external schema
	// document by absolute URI. May be nil, in which case
	// external references stay unresolved.
	Loader func(uri *url.URL) ([]byte, error)
}
