package draft3

import (
	"math/big"

	"github.com/schemata/draft3/pkg/builder"
	"github.com/schemata/draft3/pkg/types"
	"github.com/schemata/draft3/pkg/value"
)

// Builder is a draft 3 schema builder.
// Builder provides a list of methods that may be used to add
// new elements to the schema. This should be used by programs
// that need to create a schema from scratch, rather than
// decoding it from a serialized representation.
//
// Programs should use [NewBuilder] or [NewSubBuilder] to get a Builder.
type Builder struct {
	b *builder.Builder
}

// NewBuilder returns a [Builder] to use to build a draft 3 schema.
// Use this to build an entirely new schema.
func NewBuilder() *Builder {
	b := &Builder{builder.New(Vocabulary)}
	return b.AddSchemaVersion()
}

// NewSubBuilder returns a [Builder] like [NewBuilder],
// but is for a schema that will be part of some larger schema.
func NewSubBuilder() *Builder {
	return &Builder{builder.New(Vocabulary)}
}

// Build returns the newly built schema.
func (b *Builder) Build() *types.Schema {
	return b.b.Build()
}

// AddSchemaVersion adds the $schema keyword naming draft 3.
func (b *Builder) AddSchemaVersion() *Builder {
	b.b.AddString(&types.SchemaKeyword, SchemaID)
	return b
}

// AddID adds the id keyword to the schema.
func (b *Builder) AddID(id string) *Builder {
	b.b.AddString(&IDKeyword, id)
	return b
}

// AddType adds the type keyword with one or more primitive
// class names to the schema.
func (b *Builder) AddType(names ...string) *Builder {
	decls := make([]types.TypeDecl, len(names))
	for i, n := range names {
		decls[i] = types.TypeDecl{Name: n}
	}
	b.b.AddDecls(&TypeKeyword, decls)
	return b
}

// AddTypeDecls adds the type keyword with explicit declarations,
// which may include subschemas.
func (b *Builder) AddTypeDecls(decls ...types.TypeDecl) *Builder {
	b.b.AddDecls(&TypeKeyword, decls)
	return b
}

// AddDisallow adds the disallow keyword with one or more
// primitive class names to the schema.
func (b *Builder) AddDisallow(names ...string) *Builder {
	decls := make([]types.TypeDecl, len(names))
	for i, n := range names {
		decls[i] = types.TypeDecl{Name: n}
	}
	b.b.AddDecls(&DisallowKeyword, decls)
	return b
}

// AddMinimum adds the minimum keyword to the schema.
func (b *Builder) AddMinimum(f float64) *Builder {
	b.b.AddFloat(&MinimumKeyword, f)
	return b
}

// AddMaximum adds the maximum keyword to the schema.
func (b *Builder) AddMaximum(f float64) *Builder {
	b.b.AddFloat(&MaximumKeyword, f)
	return b
}

// AddExclusiveMinimum adds the exclusiveMinimum keyword to the schema.
func (b *Builder) AddExclusiveMinimum(on bool) *Builder {
	b.b.AddBool(&ExclusiveMinimumKeyword, on)
	return b
}

// AddExclusiveMaximum adds the exclusiveMaximum keyword to the schema.
func (b *Builder) AddExclusiveMaximum(on bool) *Builder {
	b.b.AddBool(&ExclusiveMaximumKeyword, on)
	return b
}

// AddDivisibleBy adds the divisibleBy keyword to the schema.
// To keep a decimal divisor exact, use [Builder.AddDivisibleByRat].
func (b *Builder) AddDivisibleBy(f float64) *Builder {
	b.b.AddFloat(&DivisibleByKeyword, f)
	return b
}

// AddDivisibleByRat adds the divisibleBy keyword with an exact
// rational divisor.
func (b *Builder) AddDivisibleByRat(r *big.Rat) *Builder {
	b.b.AddNumber(&DivisibleByKeyword, r)
	return b
}

// AddMinItems adds the minItems keyword to the schema.
func (b *Builder) AddMinItems(n int64) *Builder {
	b.b.AddInt(&MinItemsKeyword, n)
	return b
}

// AddMaxItems adds the maxItems keyword to the schema.
func (b *Builder) AddMaxItems(n int64) *Builder {
	b.b.AddInt(&MaxItemsKeyword, n)
	return b
}

// AddUniqueItems adds the uniqueItems keyword to the schema.
func (b *Builder) AddUniqueItems(on bool) *Builder {
	b.b.AddBool(&UniqueItemsKeyword, on)
	return b
}

// AddPattern adds the pattern keyword to the schema.
func (b *Builder) AddPattern(re string) *Builder {
	b.b.AddString(&PatternKeyword, re)
	return b
}

// AddMinLength adds the minLength keyword to the schema.
func (b *Builder) AddMinLength(n int64) *Builder {
	b.b.AddInt(&MinLengthKeyword, n)
	return b
}

// AddMaxLength adds the maxLength keyword to the schema.
func (b *Builder) AddMaxLength(n int64) *Builder {
	b.b.AddInt(&MaxLengthKeyword, n)
	return b
}

// AddEnum adds the enum keyword to the schema.
func (b *Builder) AddEnum(vals ...value.Value) *Builder {
	b.b.AddAny(&EnumKeyword, value.Array(vals))
	return b
}

// AddRequired adds the required keyword to the schema.
// This is meaningful on a property subschema.
func (b *Builder) AddRequired(on bool) *Builder {
	b.b.AddBool(&RequiredKeyword, on)
	return b
}

// AddProperties adds the properties keyword to the schema.
func (b *Builder) AddProperties(m map[string]*types.Schema) *Builder {
	b.b.AddMapSchema(&PropertiesKeyword, m)
	return b
}

// AddPatternProperties adds the patternProperties keyword to the schema.
func (b *Builder) AddPatternProperties(m map[string]*types.Schema) *Builder {
	b.b.AddMapSchema(&PatternPropertiesKeyword, m)
	return b
}

// AddAdditionalProperties adds the additionalProperties keyword
// with a boolean argument.
func (b *Builder) AddAdditionalProperties(allow bool) *Builder {
	b.b.AddBool(&AdditionalPropertiesKeyword, allow)
	return b
}

// AddAdditionalPropertiesSchema adds the additionalProperties
// keyword with a schema argument.
func (b *Builder) AddAdditionalPropertiesSchema(s *types.Schema) *Builder {
	b.b.AddSchema(&AdditionalPropertiesKeyword, s)
	return b
}

// AddItems adds the items keyword with a single schema applied
// to every element.
func (b *Builder) AddItems(s *types.Schema) *Builder {
	b.b.AddSchema(&ItemsKeyword, s)
	return b
}

// AddItemsList adds the items keyword with positional schemas.
func (b *Builder) AddItemsList(schemas ...*types.Schema) *Builder {
	b.b.AddSchemas(&ItemsKeyword, schemas)
	return b
}

// AddAdditionalItems adds the additionalItems keyword with a
// boolean argument.
func (b *Builder) AddAdditionalItems(allow bool) *Builder {
	b.b.AddBool(&AdditionalItemsKeyword, allow)
	return b
}

// AddAdditionalItemsSchema adds the additionalItems keyword with
// a schema argument.
func (b *Builder) AddAdditionalItemsSchema(s *types.Schema) *Builder {
	b.b.AddSchema(&AdditionalItemsKeyword, s)
	return b
}

// AddDependencies adds the dependencies keyword to the schema.
func (b *Builder) AddDependencies(m map[string]types.ArrayOrSchema) *Builder {
	b.b.AddMapArrayOrSchema(&DependenciesKeyword, m)
	return b
}

// AddExtends adds the extends keyword with one or more schemas.
func (b *Builder) AddExtends(schemas ...*types.Schema) *Builder {
	if len(schemas) == 1 {
		b.b.AddSchema(&ExtendsKeyword, schemas[0])
	} else {
		b.b.AddSchemas(&ExtendsKeyword, schemas)
	}
	return b
}

// AddRef adds the $ref keyword to the schema.
func (b *Builder) AddRef(ref string) *Builder {
	b.b.AddString(&RefKeyword, ref)
	return b
}

// AddTitle adds the title keyword to the schema.
func (b *Builder) AddTitle(title string) *Builder {
	b.b.AddString(&TitleKeyword, title)
	return b
}

// AddDescription adds the description keyword to the schema.
func (b *Builder) AddDescription(desc string) *Builder {
	b.b.AddString(&DescriptionKeyword, desc)
	return b
}

// AddDefault adds the default keyword to the schema.
func (b *Builder) AddDefault(v value.Value) *Builder {
	b.b.AddAny(&DefaultKeyword, v)
	return b
}
