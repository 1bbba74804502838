// Package jsonpointer implements fragment-path navigation into
// schema documents. This is not a fully general package: tokens
// are split naively on "/", empty tokens are skipped, and no
// "~0"/"~1" unescaping is applied.
package jsonpointer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/schemata/draft3/internal/validerr"
	"github.com/schemata/draft3/pkg/types"
	"github.com/schemata/draft3/pkg/value"
)

// DerefSchema takes a fragment path and a root schema and returns
// the schema to which the path refers. Numeric tokens index
// sequences and string tokens key mappings. A token naming a
// non-existent node is a [*validerr.SchemaError]: it signals a
// broken schema, not a non-conforming instance.
//
// The vocabulary is used to build a schema on demand when the
// path descends through an unrecognized keyword such as
// "definitions". The result shares the root's base URI.
func DerefSchema(voc *types.Vocabulary, root *types.Schema, pointer string) (*types.Schema, error) {
	s := root
	toks := splitTokens(pointer)
	for i := 0; i < len(toks); i++ {
		tok := toks[i]

		part, ok := findPart(s, tok)
		if !ok {
			return nil, derefError(pointer, "no node named %q", tok)
		}

		switch part.Keyword.ArgType {
		case types.ArgTypeSchema:
			s = part.Value.(types.PartSchema).S

		case types.ArgTypeSchemas:
			idx, err := indexToken(pointer, toks, &i)
			if err != nil {
				return nil, err
			}
			schemas := part.Value.(types.PartSchemas)
			if idx < 0 || idx >= len(schemas) {
				return nil, derefError(pointer, "index %d out of range (length %d)", idx, len(schemas))
			}
			s = schemas[idx]

		case types.ArgTypeMapSchema:
			i++
			if i >= len(toks) {
				return nil, derefError(pointer, "expected map key after %q", tok)
			}
			m := part.Value.(types.PartMapSchema)
			ms, ok := m[toks[i]]
			if !ok {
				return nil, derefError(pointer, "map key %q not present", toks[i])
			}
			s = ms

		case types.ArgTypeSchemaOrSchemas:
			pv := part.Value.(types.PartSchemaOrSchemas)
			if pv.Schema != nil {
				s = pv.Schema
			} else {
				idx, err := indexToken(pointer, toks, &i)
				if err != nil {
					return nil, err
				}
				if idx < 0 || idx >= len(pv.Schemas) {
					return nil, derefError(pointer, "index %d out of range (length %d)", idx, len(pv.Schemas))
				}
				s = pv.Schemas[idx]
			}

		case types.ArgTypeBoolOrSchema:
			pv := part.Value.(types.PartBoolOrSchema)
			if pv.Schema == nil {
				return nil, derefError(pointer, "node %q is not a schema", tok)
			}
			s = pv.Schema

		case types.ArgTypeMapArrayOrSchema:
			i++
			if i >= len(toks) {
				return nil, derefError(pointer, "expected map key after %q", tok)
			}
			m := part.Value.(types.PartMapArrayOrSchema)
			mv, ok := m[toks[i]]
			if !ok {
				return nil, derefError(pointer, "map key %q not present", toks[i])
			}
			if mv.Schema == nil {
				return nil, derefError(pointer, "map key %q is not a schema", toks[i])
			}
			s = mv.Schema

		case types.ArgTypeDecls:
			idx, err := indexToken(pointer, toks, &i)
			if err != nil {
				return nil, err
			}
			decls := part.Value.(types.PartDecls)
			if idx < 0 || idx >= len(decls) {
				return nil, derefError(pointer, "index %d out of range (length %d)", idx, len(decls))
			}
			if decls[idx].Schema == nil {
				return nil, derefError(pointer, "declaration %d is not a schema", idx)
			}
			s = decls[idx].Schema

		case types.ArgTypeAny:
			sub, err := derefValue(voc, root, pointer, part.Value.(types.PartAny).V, toks, &i)
			if err != nil {
				return nil, err
			}
			s = sub

		default:
			return nil, derefError(pointer, "cannot descend through %q", tok)
		}
	}

	return s, nil
}

// derefValue navigates the remaining tokens through a raw value,
// as stored for unrecognized keywords like "definitions", and
// builds a schema from the mapping it lands on.
func derefValue(voc *types.Vocabulary, root *types.Schema, pointer string, v value.Value, toks []string, i *int) (*types.Schema, error) {
	for {
		switch vv := v.(type) {
		case *value.Object:
			if isSchemaObject(vv, *i, toks) {
				sub, err := types.SchemaFromValue(vv, root.Base, voc)
				if err != nil {
					return nil, derefError(pointer, "failed to build referenced schema: %v", err)
				}
				return sub, nil
			}
			*i++
			e, ok := vv.Get(toks[*i])
			if !ok {
				return nil, derefError(pointer, "map key %q not present", toks[*i])
			}
			v = e

		case value.Array:
			*i++
			if *i >= len(toks) {
				return nil, derefError(pointer, "expected index after %q", toks[*i-1])
			}
			idx, err := strconv.Atoi(toks[*i])
			if err != nil {
				return nil, derefError(pointer, "got token %q, expected index", toks[*i])
			}
			if idx < 0 || idx >= len(vv) {
				return nil, derefError(pointer, "index %d out of range (length %d)", idx, len(vv))
			}
			v = vv[idx]

		default:
			return nil, derefError(pointer, "cannot descend through %s", value.TypeName(v))
		}
	}
}

// isSchemaObject reports whether navigation should stop at obj:
// the tokens are exhausted. A next token that is not a key of obj
// is left to the caller, which reports it as a missing node.
func isSchemaObject(obj *value.Object, i int, toks []string) bool {
	return i+1 >= len(toks)
}

// findPart looks up a schema part by keyword name.
func findPart(s *types.Schema, name string) (types.Part, bool) {
	for _, part := range s.Parts {
		if part.Keyword.Name == name {
			return part, true
		}
	}
	return types.Part{}, false
}

// indexToken consumes the next token as a sequence index.
func indexToken(pointer string, toks []string, i *int) (int, error) {
	*i++
	if *i >= len(toks) {
		return 0, derefError(pointer, "expected index after %q", toks[*i-1])
	}
	idx, err := strconv.Atoi(toks[*i])
	if err != nil {
		return 0, derefError(pointer, "got token %q, expected index", toks[*i])
	}
	return idx, nil
}

// splitTokens splits a fragment path on "/", skipping empty tokens.
func splitTokens(pointer string) []string {
	var toks []string
	for _, tok := range strings.Split(pointer, "/") {
		if tok != "" {
			toks = append(toks, tok)
		}
	}
	return toks
}

// derefError builds a schema error for a navigation failure.
func derefError(pointer, format string, args ...any) *validerr.SchemaError {
	return &validerr.SchemaError{
		Message: fmt.Sprintf("when dereferencing pointer %q ", pointer) + fmt.Sprintf(format, args...),
	}
}
