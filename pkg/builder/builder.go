// Package builder defines a [Builder] type that may be used
// to build a schema step by step.
//
// It is usually more convenient to use the Builder defined by
// the schema draft that you are using.
package builder

import (
	"fmt"
	"math/big"

	"github.com/schemata/draft3/pkg/types"
	"github.com/schemata/draft3/pkg/value"
)

// Builder is a schema builder.
// Builder provides a list of methods that may be used to add
// new elements to the schema. This should be used by programs
// that need to create a schema from scratch, rather than
// decoding it from a serialized representation.
type Builder struct {
	s types.Schema
	v *types.Vocabulary
}

// New returns a new [Builder] to build a [*types.Schema]
// described by the [*types.Vocabulary] v.
func New(v *types.Vocabulary) *Builder {
	return &Builder{v: v}
}

// Build builds and returns the [*types.Schema].
func (b *Builder) Build() *types.Schema {
	s := b.s
	s.Finalize(b.v)
	return &s
}

// NewBuilder returns a new Builder with the same vocabulary.
func (b *Builder) NewBuilder() *Builder {
	return New(b.v)
}

// AddBool adds a keyword whose argument is a bool.
// This panics if the keyword does not expect a bool.
func (b *Builder) AddBool(keyword *types.Keyword, v bool) *Builder {
	if keyword.ArgType == types.ArgTypeBoolOrSchema {
		b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartBoolOrSchema{Bool: v}))
		return b
	}
	b.check(keyword, types.ArgTypeBool)
	b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartBool(v)))
	return b
}

// AddString adds a keyword whose argument is a string.
func (b *Builder) AddString(keyword *types.Keyword, s string) *Builder {
	b.check(keyword, types.ArgTypeString)
	b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartString(s)))
	return b
}

// AddStrings adds a keyword whose argument is an array of strings.
func (b *Builder) AddStrings(keyword *types.Keyword, s []string) *Builder {
	b.check(keyword, types.ArgTypeStrings)
	b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartStrings(s)))
	return b
}

// AddInt adds a keyword whose argument is an int.
func (b *Builder) AddInt(keyword *types.Keyword, i int64) *Builder {
	b.check(keyword, types.ArgTypeInt)
	b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartInt(i)))
	return b
}

// AddNumber adds a keyword whose argument is a number,
// given as an exact rational.
func (b *Builder) AddNumber(keyword *types.Keyword, r *big.Rat) *Builder {
	b.check(keyword, types.ArgTypeNumber)
	if r == nil {
		panic(fmt.Sprintf("%s rational is nil", keyword.Name))
	}
	b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartNumber{Rat: r}))
	return b
}

// AddFloat adds a keyword whose argument is a number,
// given as a float. The rational takes the exact binary value
// of the float.
func (b *Builder) AddFloat(keyword *types.Keyword, f float64) *Builder {
	return b.AddNumber(keyword, new(big.Rat).SetFloat64(f))
}

// AddSchema adds a keyword whose argument is a schema.
// This also covers the single-schema form of keywords that take
// a schema or a list, and the schema form of keywords that take
// a bool or a schema. This panics if the schema is nil.
func (b *Builder) AddSchema(keyword *types.Keyword, s *types.Schema) *Builder {
	if s == nil {
		panic(fmt.Sprintf("%s schema is nil", keyword.Name))
	}
	switch keyword.ArgType {
	case types.ArgTypeSchema:
		b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartSchema{S: s}))
	case types.ArgTypeSchemaOrSchemas:
		b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartSchemaOrSchemas{Schema: s}))
	case types.ArgTypeBoolOrSchema:
		b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartBoolOrSchema{Schema: s}))
	default:
		panic(fmt.Sprintf("keyword %s does not accept a schema", keyword.Name))
	}
	return b
}

// AddSchemas adds a keyword whose argument is a list of schemas.
// This panics if the list of schemas is empty or any is nil.
func (b *Builder) AddSchemas(keyword *types.Keyword, schemas []*types.Schema) *Builder {
	if len(schemas) == 0 {
		panic(fmt.Sprintf("%s requires at least one schema", keyword.Name))
	}
	for i, s := range schemas {
		if s == nil {
			panic(fmt.Sprintf("%s schema %d is nil", keyword.Name, i))
		}
	}
	switch keyword.ArgType {
	case types.ArgTypeSchemas:
		b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartSchemas(schemas)))
	case types.ArgTypeSchemaOrSchemas:
		b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartSchemaOrSchemas{Schemas: schemas}))
	default:
		panic(fmt.Sprintf("keyword %s does not accept a schema list", keyword.Name))
	}
	return b
}

// AddMapSchema adds a keyword whose argument is a map from
// strings to schemas.
func (b *Builder) AddMapSchema(keyword *types.Keyword, m map[string]*types.Schema) *Builder {
	b.check(keyword, types.ArgTypeMapSchema)
	for k, s := range m {
		if s == nil {
			panic(fmt.Sprintf("%s schema %q is nil", keyword.Name, k))
		}
	}
	b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartMapSchema(m)))
	return b
}

// AddMapArrayOrSchema adds a keyword whose argument maps strings
// to either string arrays or schemas.
func (b *Builder) AddMapArrayOrSchema(keyword *types.Keyword, m map[string]types.ArrayOrSchema) *Builder {
	b.check(keyword, types.ArgTypeMapArrayOrSchema)
	b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartMapArrayOrSchema(m)))
	return b
}

// AddDecls adds a keyword whose argument is a union of type
// declarations.
func (b *Builder) AddDecls(keyword *types.Keyword, decls []types.TypeDecl) *Builder {
	b.check(keyword, types.ArgTypeDecls)
	if len(decls) == 0 {
		panic(fmt.Sprintf("%s requires at least one declaration", keyword.Name))
	}
	b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartDecls(decls)))
	return b
}

// AddAny adds a keyword whose argument is an arbitrary value.
func (b *Builder) AddAny(keyword *types.Keyword, v value.Value) *Builder {
	b.check(keyword, types.ArgTypeAny)
	b.s.Parts = append(b.s.Parts, types.MakePart(keyword, types.PartAny{V: v}))
	return b
}

// check panics if the keyword does not expect the given ArgType.
func (b *Builder) check(keyword *types.Keyword, at types.ArgType) {
	if keyword.ArgType != at {
		panic(fmt.Sprintf("keyword %s has wrong type", keyword.Name))
	}
}
