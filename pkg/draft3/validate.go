package draft3

import (
	"github.com/schemata/draft3/internal/validerr"
	"github.com/schemata/draft3/pkg/jsonpointer"
	"github.com/schemata/draft3/pkg/types"
	"github.com/schemata/draft3/pkg/value"
)

// validateRef validates a $ref keyword.
//
// Resolution is lazy: the reference is resolved against the
// current base URI at validation time, and the document portion
// is looked up in the registry. A document that was never loaded
// is a validation error; a fragment naming a non-existent node is
// a schema error. The instance is validated against the resolved
// subschema with the reference's URI as the new base.
func validateRef(arg types.PartString, instance value.Value, state *types.ValidationState) error {
	target, err := types.ResolveRef(state.URI, string(arg))
	if err != nil {
		return &validerr.SchemaError{
			Message: `cannot parse "$ref" value ` + string(arg),
		}
	}

	doc := *target
	doc.Fragment = ""
	doc.RawFragment = ""
	key := doc.String()

	var root *types.Schema
	switch {
	case key == "":
		// A fragment-only reference with no base: the root document.
		root = state.Root
	case state.Registry != nil:
		root = state.Registry.Lookup(key)
	}
	if root == nil {
		// Fall back to the root schema when the reference points
		// at the document being validated.
		if state.Root != nil && state.Root.Base != nil && state.Root.Base.String() == key {
			root = state.Root
		}
	}
	if root == nil {
		return &validerr.ValidationError{
			Message: "unresolvable reference " + string(arg),
			Path:    state.InstancePointer(),
			Schema:  state.Schema,
		}
	}

	sub, err := jsonpointer.DerefSchema(Vocabulary, root, target.Fragment)
	if err != nil {
		return err
	}

	oldURI := state.URI
	state.URI = &doc
	err = sub.ValidateSubSchema(instance, state)
	state.URI = oldURI
	return err
}
