package types

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Children returns an iterator over the immediate subschemas.
// The first iterator value is the name of the subschema as used in
// a fragment path, the second is the schema itself. These are
// exactly the subschema-bearing positions: declarations of "type"
// and "disallow", every value under "properties" and
// "patternProperties", "items" (single or positional),
// "additionalProperties", "additionalItems", "extends",
// and each "dependencies" value that is a schema.
func (s *Schema) Children() iter.Seq2[string, *Schema] {
	return func(yield func(string, *Schema) bool) {
		for _, part := range s.Parts {
			switch part.Keyword.ArgType {
			case ArgTypeSchema:
				if !yield(part.Keyword.Name, part.Value.(PartSchema).S) {
					return
				}

			case ArgTypeSchemas:
				for i, sub := range part.Value.(PartSchemas) {
					name := fmt.Sprintf("%s/%d", part.Keyword.Name, i)
					if !yield(name, sub) {
						return
					}
				}

			case ArgTypeMapSchema:
				// Sort for determinism.
				m := part.Value.(PartMapSchema)
				for _, k := range sortedKeys(m) {
					name := part.Keyword.Name + "/" + k
					if !yield(name, m[k]) {
						return
					}
				}

			case ArgTypeSchemaOrSchemas:
				pv := part.Value.(PartSchemaOrSchemas)
				if pv.Schema != nil {
					if !yield(part.Keyword.Name, pv.Schema) {
						return
					}
				} else {
					for i, sub := range pv.Schemas {
						name := fmt.Sprintf("%s/%d", part.Keyword.Name, i)
						if !yield(name, sub) {
							return
						}
					}
				}

			case ArgTypeBoolOrSchema:
				pv := part.Value.(PartBoolOrSchema)
				if pv.Schema != nil {
					if !yield(part.Keyword.Name, pv.Schema) {
						return
					}
				}

			case ArgTypeMapArrayOrSchema:
				m := part.Value.(PartMapArrayOrSchema)
				keys := make([]string, 0, len(m))
				for k, v := range m {
					if v.Schema != nil {
						keys = append(keys, k)
					}
				}
				slices.SortFunc(keys, strings.Compare)
				for _, k := range keys {
					name := part.Keyword.Name + "/" + k
					if !yield(name, m[k].Schema) {
						return
					}
				}

			case ArgTypeDecls:
				for i, decl := range part.Value.(PartDecls) {
					if decl.Schema == nil {
						continue
					}
					name := fmt.Sprintf("%s/%d", part.Keyword.Name, i)
					if !yield(name, decl.Schema) {
						return
					}
				}
			}
		}
	}
}

// sortedKeys returns the keys of a schema map in sorted order.
func sortedKeys(m PartMapSchema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, strings.Compare)
	return keys
}
