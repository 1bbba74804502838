// Package types defines the schema types.
// Most programs do not need to use this package.
//
// A schema draft must be imported separately to register its
// vocabulary. To use draft 3, a program should also
//
//	import _ "github.com/schemata/draft3/pkg/draft3"
package types

import (
	"fmt"
	"math/big"
	"net/url"
	"slices"
	"strings"

	"github.com/schemata/draft3/pkg/value"
)

// Schema is a schema. A schema determines whether an instance
// is valid or not. Do not create values of this type directly.
// Instead, unmarshal from JSON or use a draft-specific Builder.
//
// If you have an existing Schema, you can edit the Parts list,
// but you must call [Schema.Finalize] afterward.
type Schema struct {
	// The different elements of this Schema.
	Parts []Part

	// Base is the URI used to resolve relative references
	// encountered inside this schema. Subschemas reached by
	// descent share the root's base unless they carry their
	// own "id".
	Base *url.URL
}

// Clone returns a copy of a Schema.
func (s *Schema) Clone() *Schema {
	return &Schema{Parts: slices.Clone(s.Parts), Base: s.Base}
}

// String returns a somewhat readable representation of a Schema.
// The format differs from JSON output.
func (s *Schema) String() string {
	var sb strings.Builder
	sb.WriteString("Schema{")
	for i, part := range s.Parts {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "{%s %v}", part.Keyword.Name, part.Value)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Part is one part of a schema.
// This is a keyword, such as "type" or "properties",
// along with the value associated with that keyword in the schema.
type Part struct {
	Keyword *Keyword
	Value   PartValue
}

// MakePart builds a Part.
func MakePart(keyword *Keyword, value PartValue) Part {
	return Part{
		Keyword: keyword,
		Value:   value,
	}
}

// Keyword is a schema keyword.
type Keyword struct {
	// Name is the keyword, such as type, properties, and so forth.
	Name string

	// ArgType is the type of argument expected.
	ArgType ArgType

	// Validate is a function that checks whether the instance
	// matches the keyword. arg is the value from the schema,
	// which is [Part.Value].
	//
	// A failure to validate is reported with an error of type
	// [*validerr.ValidationError]. An error of type
	// [*validerr.SchemaError] or any other type indicates a
	// problem with the schema itself, not the instance.
	Validate func(arg PartValue, instance value.Value, state *ValidationState) error
}

// Equal reports whether two keywords are equal.
// This is for the benefit of the github.com/google/go-cmp package,
// which won't compare the Validate function values.
func (k1 Keyword) Equal(k2 Keyword) bool {
	return k1.Name == k2.Name && k1.ArgType == k2.ArgType
}

// PartValue is the value of a schema element.
// This is accessed via a type switch.
// The possible types are
//   - [PartBool]
//   - [PartString]
//   - [PartStrings]
//   - [PartInt]
//   - [PartNumber]
//   - [PartSchema]
//   - [PartSchemas]
//   - [PartMapSchema]
//   - [PartSchemaOrSchemas]
//   - [PartBoolOrSchema]
//   - [PartMapArrayOrSchema]
//   - [PartDecls]
//   - [PartAny]
type PartValue interface {
	partValue() // restrict to types defined in this package
}

// PartBool is a schema part value that is a bool.
// For example, the schema keyword "uniqueItems" takes a bool
// that requires array elements to be distinct.
type PartBool bool

// PartString is a schema part value that is a string.
// For example, the schema keyword "pattern" has a string
// value that must be a regexp that must match the instance value.
type PartString string

// PartStrings is a schema part value that is a list of strings.
type PartStrings []string

// PartInt is a schema part value that is an integer.
// For example, the schema keyword "minLength" specifies
// the minimum length of a string.
type PartInt int64

// PartNumber is a schema part value that is a number,
// held as an exact rational. The "divisibleBy" keyword depends
// on exactness: a schema divisor of 0.1 must be exactly 1/10,
// which binary floating point cannot represent.
type PartNumber struct {
	Rat *big.Rat
}

// PartSchema is a schema part value that is a reference to a schema.
type PartSchema struct {
	S *Schema
}

// PartSchemas is a schema part value that is a list of schemas.
// For example, the schema keyword "extends" may take a list of
// schemas that the instance must additionally match.
type PartSchemas []*Schema

// PartMapSchema is a schema part value that is a map from strings
// to schemas. For example, the schema keyword "properties" has a
// mapping from field names to schemas, and matches an instance if
// the corresponding instance fields match the schemas.
type PartMapSchema map[string]*Schema

// PartSchemaOrSchemas is either a single schema (like [PartSchema])
// or a list of schemas (like [PartSchemas]). For example, the
// "items" keyword takes either a single schema applied to every
// element or a positional list of schemas.
// Exactly one of the fields will be nil.
type PartSchemaOrSchemas struct {
	Schema  *Schema
	Schemas []*Schema
}

// PartBoolOrSchema is either the literal false/true or a schema.
// This is used for "additionalProperties" and "additionalItems".
// If Schema is non-nil the bool form is not in effect.
type PartBoolOrSchema struct {
	Bool   bool
	Schema *Schema
}

// PartMapArrayOrSchema is a map from strings to elements,
// where each element is either an array of strings or a schema.
// This is used for the "dependencies" keyword. A single string
// dependency is normalized to a one-element array.
type PartMapArrayOrSchema map[string]ArrayOrSchema

// ArrayOrSchema is the element type of the PartMapArrayOrSchema map.
// Exactly one of the fields will be nil.
type ArrayOrSchema struct {
	Array  []string // a zero-length slice is []string{}, not nil
	Schema *Schema
}

// TypeDecl is one declaration in a "type" or "disallow" argument:
// either the name of a primitive class or a subschema.
// Exactly one of the fields is set.
type TypeDecl struct {
	Name   string
	Schema *Schema
}

// PartDecls is the argument of the "type" and "disallow" keywords:
// a union of declarations. A single declaration is represented as
// a one-element list.
type PartDecls []TypeDecl

// PartAny is a schema part value that is an arbitrary value.
// For example, the schema keyword "enum" expects an array,
// and matches an instance if the instance is equal to one of the
// elements in the array. Unrecognized keywords are also retained
// this way, so fragment navigation can descend into them.
type PartAny struct {
	V value.Value
}

// Define a partValue method for each permitted Part type.
// This implements the [PartValue] interface.

func (PartBool) partValue()             {}
func (PartString) partValue()           {}
func (PartStrings) partValue()          {}
func (PartInt) partValue()              {}
func (PartNumber) partValue()           {}
func (PartSchema) partValue()           {}
func (PartSchemas) partValue()          {}
func (PartMapSchema) partValue()        {}
func (PartSchemaOrSchemas) partValue()  {}
func (PartBoolOrSchema) partValue()     {}
func (PartMapArrayOrSchema) partValue() {}
func (PartDecls) partValue()            {}
func (PartAny) partValue()              {}

// ArgType is an enumeration of the possible schema part types.
type ArgType int

const (
	ArgTypeBool ArgType = iota + 1
	ArgTypeString
	ArgTypeStrings
	ArgTypeInt
	ArgTypeNumber
	ArgTypeSchema
	ArgTypeSchemas
	ArgTypeMapSchema
	ArgTypeSchemaOrSchemas
	ArgTypeBoolOrSchema
	ArgTypeMapArrayOrSchema
	ArgTypeDecls
	ArgTypeAny
)

// LookupKeyword returns the value associated with a keyword in the schema.
// The bool result reports whether the keyword is present at all.
func (s *Schema) LookupKeyword(keyword string) (PartValue, bool) {
	for _, part := range s.Parts {
		if part.Keyword.Name == keyword {
			return part.Value, true
		}
	}
	return nil, false
}
