package draft3

import (
	"net/url"

	"github.com/schemata/draft3/pkg/loader"
	"github.com/schemata/draft3/pkg/types"
)

// resolveState holds state during resolveSchema.
type resolveState struct {
	ropts   *types.ResolveOpts
	visited map[*types.Schema]bool
}

// resolveSchema is the Vocabulary.Resolve field. It makes a single
// eager pass over the schema tree: any subschema bearing an "id"
// is registered under its resolved URI, and the document behind
// any "$ref" that is not yet registered is loaded, registered and
// walked in turn. Load failures are swallowed here; an unresolved
// reference surfaces only if it is dereferenced during validation.
func resolveSchema(schema *types.Schema, ropts *types.ResolveOpts) error {
	state := &resolveState{
		ropts:   ropts,
		visited: make(map[*types.Schema]bool),
	}
	base := ropts.URI
	if schema.Base != nil {
		base = schema.Base
	}
	walkSchema(schema, base, state)
	return nil
}

// walkSchema registers ids and pre-loads references in one
// subtree. The base URI changes as the walk descends through
// id-bearing subschemas.
func walkSchema(schema *types.Schema, base *url.URL, state *resolveState) {
	if schema == nil || state.visited[schema] {
		return
	}
	state.visited[schema] = true

	if pv, ok := schema.LookupKeyword("id"); ok {
		if id, ok := pv.(types.PartString); ok {
			if u, err := types.ResolveRef(base, string(id)); err == nil {
				u.Fragment = ""
				schema.Base = u
				base = u
				if state.ropts.Registry != nil {
					state.ropts.Registry.Store(u.String(), schema)
				}
			}
		}
	}

	if pv, ok := schema.LookupKeyword("$ref"); ok {
		if ref, ok := pv.(types.PartString); ok {
			preloadRef(string(ref), base, state)
		}
	}

	for _, sub := range schema.Children() {
		walkSchema(sub, base, state)
	}
}

// preloadRef fetches the document behind a reference if it is
// not already registered. All failures are swallowed.
func preloadRef(ref string, base *url.URL, state *resolveState) {
	if state.ropts.Registry == nil || state.ropts.Loader == nil {
		return
	}

	target, err := types.ResolveRef(base, ref)
	if err != nil {
		return
	}
	doc := *target
	doc.Fragment = ""
	doc.RawFragment = ""
	key := doc.String()
	if key == "" || !doc.IsAbs() {
		return
	}
	if state.ropts.Registry.Lookup(key) != nil {
		return
	}

	data, err := state.ropts.Loader(&doc)
	if err != nil {
		return
	}
	v, err := loader.DecoderFor(&doc)(data)
	if err != nil {
		return
	}
	loaded, err := types.SchemaFromValue(v, &doc, state.ropts.Vocabulary)
	if err != nil {
		return
	}

	// Register before walking: the loaded document may refer
	// back to itself.
	loaded = state.ropts.Registry.Store(key, loaded)
	walkSchema(loaded, &doc, state)
}
