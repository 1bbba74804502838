// Package validerr defines the errors returned by a failure to validate.
package validerr

import "fmt"

// ValidationError is returned by a validation function when an
// instance fails validation. It carries the location within the
// instance and the schema that was being applied.
type ValidationError struct {
	// Message describes the violation.
	Message string
	// Path is the location within the instance,
	// rendered as "#/a/b/0". The empty path renders as "#/".
	Path string
	// Schema is the governing *types.Schema.
	// The field is typed any to keep this package free of
	// a dependency on the types package.
	Schema any
}

// Error returns the error message that a user should see.
// This implements the error interface.
func (ve *ValidationError) Error() string {
	p := ve.Path
	if p == "" {
		p = "#/"
	}
	return fmt.Sprintf("%s: %s", p, ve.Message)
}

// SchemaError reports a structurally defective schema, such as a
// reference fragment naming a node that does not exist. It always
// terminates validation; it is never a "false" validation result.
type SchemaError struct {
	Message string
}

// Error implements the error interface.
func (se *SchemaError) Error() string {
	return "schema error: " + se.Message
}

// IsValidationError reports whether err is a validation error,
// as opposed to a schema error or a processing error.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
