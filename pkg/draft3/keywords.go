package draft3

import (
	"github.com/schemata/draft3/internal/validator"
	"github.com/schemata/draft3/pkg/types"
)

// The draft 3 keywords. Keywords that carry information for other
// keywords, such as "required" (read by "properties") and the
// exclusive bound companions (read by "minimum"/"maximum"),
// always validate.

// IDKeyword is the id keyword.
var IDKeyword = types.Keyword{
	Name:     "id",
	ArgType:  types.ArgTypeString,
	Validate: types.ValidateTrue,
}

// RequiredKeyword is the required keyword.
var RequiredKeyword = types.Keyword{
	Name:     "required",
	ArgType:  types.ArgTypeBool,
	Validate: types.ValidateTrue,
}

// ExclusiveMinimumKeyword is the exclusiveMinimum keyword.
var ExclusiveMinimumKeyword = types.Keyword{
	Name:     "exclusiveMinimum",
	ArgType:  types.ArgTypeBool,
	Validate: types.ValidateTrue,
}

// ExclusiveMaximumKeyword is the exclusiveMaximum keyword.
var ExclusiveMaximumKeyword = types.Keyword{
	Name:     "exclusiveMaximum",
	ArgType:  types.ArgTypeBool,
	Validate: types.ValidateTrue,
}

// TitleKeyword is the title keyword.
var TitleKeyword = types.Keyword{
	Name:     "title",
	ArgType:  types.ArgTypeString,
	Validate: types.ValidateTrue,
}

// DescriptionKeyword is the description keyword.
var DescriptionKeyword = types.Keyword{
	Name:     "description",
	ArgType:  types.ArgTypeString,
	Validate: types.ValidateTrue,
}

// DefaultKeyword is the default keyword.
// This supplies a default value, but it always validates.
var DefaultKeyword = types.Keyword{
	Name:     "default",
	ArgType:  types.ArgTypeAny,
	Validate: types.ValidateTrue,
}

// TypeKeyword is the type keyword.
var TypeKeyword = types.Keyword{
	Name:     "type",
	ArgType:  types.ArgTypeDecls,
	Validate: validator.Adapt(validator.ValidateType),
}

// DisallowKeyword is the disallow keyword.
var DisallowKeyword = types.Keyword{
	Name:     "disallow",
	ArgType:  types.ArgTypeDecls,
	Validate: validator.Adapt(validator.ValidateDisallow),
}

// MinimumKeyword is the minimum keyword.
var MinimumKeyword = types.Keyword{
	Name:     "minimum",
	ArgType:  types.ArgTypeNumber,
	Validate: validator.Adapt(validator.ValidateMinimum),
}

// MaximumKeyword is the maximum keyword.
var MaximumKeyword = types.Keyword{
	Name:     "maximum",
	ArgType:  types.ArgTypeNumber,
	Validate: validator.Adapt(validator.ValidateMaximum),
}

// MinItemsKeyword is the minItems keyword.
var MinItemsKeyword = types.Keyword{
	Name:     "minItems",
	ArgType:  types.ArgTypeInt,
	Validate: validator.Adapt(validator.ValidateMinItems),
}

// MaxItemsKeyword is the maxItems keyword.
var MaxItemsKeyword = types.Keyword{
	Name:     "maxItems",
	ArgType:  types.ArgTypeInt,
	Validate: validator.Adapt(validator.ValidateMaxItems),
}

// UniqueItemsKeyword is the uniqueItems keyword.
var UniqueItemsKeyword = types.Keyword{
	Name:     "uniqueItems",
	ArgType:  types.ArgTypeBool,
	Validate: validator.Adapt(validator.ValidateUniqueItems),
}

// PatternKeyword is the pattern keyword.
var PatternKeyword = types.Keyword{
	Name:     "pattern",
	ArgType:  types.ArgTypeString,
	Validate: validator.Adapt(validator.ValidatePattern),
}

// MinLengthKeyword is the minLength keyword.
var MinLengthKeyword = types.Keyword{
	Name:     "minLength",
	ArgType:  types.ArgTypeInt,
	Validate: validator.Adapt(validator.ValidateMinLength),
}

// MaxLengthKeyword is the maxLength keyword.
var MaxLengthKeyword = types.Keyword{
	Name:     "maxLength",
	ArgType:  types.ArgTypeInt,
	Validate: validator.Adapt(validator.ValidateMaxLength),
}

// DivisibleByKeyword is the divisibleBy keyword.
var DivisibleByKeyword = types.Keyword{
	Name:     "divisibleBy",
	ArgType:  types.ArgTypeNumber,
	Validate: validator.Adapt(validator.ValidateDivisibleBy),
}

// EnumKeyword is the enum keyword.
var EnumKeyword = types.Keyword{
	Name:     "enum",
	ArgType:  types.ArgTypeAny,
	Validate: validator.Adapt(validator.ValidateEnum),
}

// PropertiesKeyword is the properties keyword.
var PropertiesKeyword = types.Keyword{
	Name:     "properties",
	ArgType:  types.ArgTypeMapSchema,
	Validate: validator.Adapt(validator.ValidateProperties),
}

// PatternPropertiesKeyword is the patternProperties keyword.
var PatternPropertiesKeyword = types.Keyword{
	Name:     "patternProperties",
	ArgType:  types.ArgTypeMapSchema,
	Validate: validator.Adapt(validator.ValidatePatternProperties),
}

// AdditionalPropertiesKeyword is the additionalProperties keyword.
var AdditionalPropertiesKeyword = types.Keyword{
	Name:     "additionalProperties",
	ArgType:  types.ArgTypeBoolOrSchema,
	Validate: validator.Adapt(validator.ValidateAdditionalProperties),
}

// ItemsKeyword is the items keyword.
var ItemsKeyword = types.Keyword{
	Name:     "items",
	ArgType:  types.ArgTypeSchemaOrSchemas,
	Validate: validator.Adapt(validator.ValidateItems),
}

// AdditionalItemsKeyword is the additionalItems keyword.
var AdditionalItemsKeyword = types.Keyword{
	Name:     "additionalItems",
	ArgType:  types.ArgTypeBoolOrSchema,
	Validate: validator.Adapt(validator.ValidateAdditionalItems),
}

// DependenciesKeyword is the dependencies keyword.
var DependenciesKeyword = types.Keyword{
	Name:     "dependencies",
	ArgType:  types.ArgTypeMapArrayOrSchema,
	Validate: validator.Adapt(validator.ValidateDependencies),
}

// ExtendsKeyword is the extends keyword.
var ExtendsKeyword = types.Keyword{
	Name:     "extends",
	ArgType:  types.ArgTypeSchemaOrSchemas,
	Validate: validator.Adapt(validator.ValidateExtends),
}

// RefKeyword is the $ref keyword.
var RefKeyword = types.Keyword{
	Name:     "$ref",
	ArgType:  types.ArgTypeString,
	Validate: validator.Adapt(validateRef),
}

// keywordMap indexes the draft 3 keywords by name.
var keywordMap = map[string]*types.Keyword{
	"$schema":              &types.SchemaKeyword,
	"id":                   &IDKeyword,
	"required":             &RequiredKeyword,
	"exclusiveMinimum":     &ExclusiveMinimumKeyword,
	"exclusiveMaximum":     &ExclusiveMaximumKeyword,
	"title":                &TitleKeyword,
	"description":          &DescriptionKeyword,
	"default":              &DefaultKeyword,
	"type":                 &TypeKeyword,
	"disallow":             &DisallowKeyword,
	"minimum":              &MinimumKeyword,
	"maximum":              &MaximumKeyword,
	"minItems":             &MinItemsKeyword,
	"maxItems":             &MaxItemsKeyword,
	"uniqueItems":          &UniqueItemsKeyword,
	"pattern":              &PatternKeyword,
	"minLength":            &MinLengthKeyword,
	"maxLength":            &MaxLengthKeyword,
	"divisibleBy":          &DivisibleByKeyword,
	"enum":                 &EnumKeyword,
	"properties":           &PropertiesKeyword,
	"patternProperties":    &PatternPropertiesKeyword,
	"additionalProperties": &AdditionalPropertiesKeyword,
	"items":                &ItemsKeyword,
	"additionalItems":      &AdditionalItemsKeyword,
	"dependencies":         &DependenciesKeyword,
	"extends":              &ExtendsKeyword,
	"$ref":                 &RefKeyword,
}

// keywordRank fixes the keyword evaluation order. The order is
// observable: the first failing keyword determines the reported
// error. Keywords that only carry information sort first, and
// "$ref" runs last.
var keywordRank = map[string]int{
	"type":                 100,
	"disallow":             110,
	"minimum":              120,
	"maximum":              130,
	"minItems":             140,
	"maxItems":             150,
	"uniqueItems":          160,
	"pattern":              170,
	"minLength":            180,
	"maxLength":            190,
	"divisibleBy":          200,
	"enum":                 210,
	"properties":           220,
	"patternProperties":    230,
	"additionalProperties": 240,
	"items":                250,
	"additionalItems":      260,
	"dependencies":         270,
	"extends":              280,
	"$ref":                 290,
}

// keywordCmp is the Vocabulary.Cmp function. Keywords without an
// entry in keywordRank do not validate and keep their relative
// order ahead of the validated ones.
func keywordCmp(a, b string) int {
	return rank(a) - rank(b)
}

func rank(name string) int {
	if r, ok := keywordRank[name]; ok {
		return r
	}
	return 0
}
