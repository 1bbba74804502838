package types

import "github.com/schemata/draft3/pkg/value"

// SchemaKeyword is a keyword to hold the schema version.
var SchemaKeyword = Keyword{
	Name:     "$schema",
	ArgType:  ArgTypeString,
	Validate: validateTrue,
}

// validateTrue is a validator function that always succeeds.
// It is used for keywords that carry meaning for the schema but
// don't affect whether the schema validates an instance.
func validateTrue(PartValue, value.Value, *ValidationState) error {
	return nil
}

// ValidateTrue is validateTrue for use by draft packages.
func ValidateTrue(PartValue, value.Value, *ValidationState) error {
	return nil
}
