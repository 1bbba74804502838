package types

import (
	"errors"
	"net/url"
	"strings"

	"github.com/schemata/draft3/internal/validerr"
	"github.com/schemata/draft3/pkg/notes"
	"github.com/schemata/draft3/pkg/value"
)

// Validate reports whether instance satisfies schema.
// If it does, this will return nil.
// If it does not, this will return an error of type
// [*ValidationError] describing the first violation.
// An error of type [*SchemaError] indicates a structurally
// defective schema; any other non-nil error indicates a problem
// during validation processing.
func (s *Schema) Validate(instance value.Value) error {
	return s.ValidateWithOpts(instance, nil)
}

// ValidateOpts describes validation options.
// These are uncommon so we use a separate method for them.
type ValidateOpts struct {
	// Registry resolves "$ref" targets by absolute URI.
	// If nil, only references into the root document resolve.
	Registry SchemaRegistry
}

// SchemaRegistry maps absolute URIs (fragment stripped) to loaded
// schema roots. Store is first-write-wins: it returns the entry
// that survives, which is the existing one if the key was taken.
type SchemaRegistry interface {
	Lookup(key string) *Schema
	Store(key string, s *Schema) *Schema
}

// ValidateWithOpts is like Validate but supports options.
func (s *Schema) ValidateWithOpts(instance value.Value, opts *ValidateOpts) error {
	state := &ValidationState{
		Root: s,
		URI:  s.Base,
	}
	if opts != nil {
		state.Registry = opts.Registry
	}
	return s.ValidateSubSchema(instance, state)
}

// ValidateSubSchema reports whether instance satisfies schema,
// where schema is a sub-schema of some larger validation request.
// This is like Validate but also accepts the current validation state.
//
// Keywords are applied in the order fixed by the vocabulary;
// the first failure stops the walk and is the reported error.
func (s *Schema) ValidateSubSchema(instance value.Value, state *ValidationState) error {
	subState, err := state.Child()
	if err != nil {
		return err
	}
	subState.Schema = s

	if id, ok := s.LookupKeyword("id"); ok {
		if idStr, ok := id.(PartString); ok {
			if u, err := ResolveRef(state.URI, string(idStr)); err == nil {
				u.Fragment = ""
				subState.URI = u
			}
		}
	}

	for _, p := range s.Parts {
		if p.Keyword.Validate == nil {
			continue
		}
		if err := p.Keyword.Validate(p.Value, instance, subState); err != nil {
			return err
		}
	}
	return nil
}

// ValidationState is state we maintain while validating a schema.
// This is exported for use by draft implementations. It is not
// expected to be used by code that just wants to validate.
type ValidationState struct {
	// The root of the Schema being validated.
	Root *Schema
	// The Schema being validated.
	Schema *Schema
	// Current base URI, from the root or an "id" keyword.
	URI *url.URL
	// Registry for resolving references during validation.
	Registry SchemaRegistry
	// Notes created during validation.
	Notes notes.Notes
	// Depth of tree when validating. Used to avoid infinite
	// recursion through cyclic reference graphs.
	Depth int

	// InstancePath holds the path segments to the current
	// location within the instance being validated.
	InstancePath []string
}

// Child returns a new ValidationState that is a child of vs.
// This can be used to validate a subschema without changing
// the notes stored in vs.
func (vs *ValidationState) Child() (*ValidationState, error) {
	if vs.Depth > 1000 {
		return nil, errors.New("recursion while validating schema too deep")
	}

	return &ValidationState{
		Root:         vs.Root,
		Schema:       vs.Schema,
		URI:          vs.URI,
		Registry:     vs.Registry,
		Depth:        vs.Depth + 1,
		InstancePath: append([]string(nil), vs.InstancePath...),
	}, nil
}

// PushInstanceToken appends a segment to the instance path.
// Every push must be balanced by a pop on all exit paths,
// including failing ones.
func (vs *ValidationState) PushInstanceToken(tok string) {
	vs.InstancePath = append(vs.InstancePath, tok)
}

// PopInstanceToken removes the last segment from the instance path.
func (vs *ValidationState) PopInstanceToken() {
	if n := len(vs.InstancePath); n > 0 {
		vs.InstancePath = vs.InstancePath[:n-1]
	}
}

// InstancePointer returns the current instance location.
// The empty path renders as "#/". Segments are joined with "/"
// and are not escaped.
func (vs *ValidationState) InstancePointer() string {
	return "#/" + strings.Join(vs.InstancePath, "/")
}

// ValidationError is returned by a validation function
// when an instance fails validation.
type ValidationError = validerr.ValidationError

// SchemaError reports a structurally defective schema.
type SchemaError = validerr.SchemaError

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	return validerr.IsValidationError(err)
}
