// Package validator contains the validation functions for the
// draft3 keywords. Each function is a guard: if the instance is
// not of the applicable case, the function silently succeeds.
// Type gating is the responsibility of the "type" keyword alone.
package validator

import (
	"fmt"
	"math/big"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/schemata/draft3/internal/validerr"
	"github.com/schemata/draft3/pkg/notes"
	"github.com/schemata/draft3/pkg/types"
	"github.com/schemata/draft3/pkg/value"
)

// Adapt converts a typed validation function into the
// [types.Keyword] Validate signature.
func Adapt[A types.PartValue](fn func(A, value.Value, *types.ValidationState) error) func(types.PartValue, value.Value, *types.ValidationState) error {
	return func(pv types.PartValue, instance value.Value, state *types.ValidationState) error {
		return fn(pv.(A), instance, state)
	}
}

// fail builds a validation error at the current instance location,
// governed by the schema currently being applied.
func fail(state *types.ValidationState, format string, args ...any) *validerr.ValidationError {
	return &validerr.ValidationError{
		Message: fmt.Sprintf(format, args...),
		Path:    state.InstancePointer(),
		Schema:  state.Schema,
	}
}

// matchDecl reports whether a single type declaration matches the
// instance. A subschema declaration is a trial: its validation
// failure is swallowed, while schema errors propagate.
func matchDecl(decl types.TypeDecl, instance value.Value, state *types.ValidationState) (bool, error) {
	if decl.Schema != nil {
		err := decl.Schema.ValidateSubSchema(instance, state)
		if err == nil {
			return true, nil
		}
		if !validerr.IsValidationError(err) {
			return false, err
		}
		return false, nil
	}

	switch decl.Name {
	case "null":
		_, ok := instance.(value.Null)
		return ok, nil
	case "boolean":
		_, ok := instance.(value.Bool)
		return ok, nil
	case "integer":
		_, ok := instance.(value.Int)
		return ok, nil
	case "number":
		_, ok := value.Rat(instance)
		return ok, nil
	case "string":
		_, ok := instance.(value.String)
		return ok, nil
	case "array":
		_, ok := instance.(value.Array)
		return ok, nil
	case "object":
		_, ok := instance.(*value.Object)
		return ok, nil
	case "any":
		return true, nil
	default:
		// An unrecognized name matches, for forward compatibility.
		return true, nil
	}
}

// declsString renders a declaration list for error messages.
func declsString(arg types.PartDecls) string {
	var sb strings.Builder
	if len(arg) > 1 {
		sb.WriteByte('[')
	}
	for i, decl := range arg {
		if i > 0 {
			sb.WriteString(", ")
		}
		if decl.Schema != nil {
			sb.WriteString("<schema>")
		} else {
			fmt.Fprintf(&sb, "%q", decl.Name)
		}
	}
	if len(arg) > 1 {
		sb.WriteByte(']')
	}
	return sb.String()
}

// ValidateType implements the type keyword.
// The instance must match at least one declaration.
func ValidateType(arg types.PartDecls, instance value.Value, state *types.ValidationState) error {
	for _, decl := range arg {
		ok, err := matchDecl(decl, instance, state)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return fail(state, "instance has type %q, want %s", value.TypeName(instance), declsString(arg))
}

// ValidateDisallow implements the disallow keyword.
// The instance must match none of the declarations.
func ValidateDisallow(arg types.PartDecls, instance value.Value, state *types.ValidationState) error {
	for _, decl := range arg {
		ok, err := matchDecl(decl, instance, state)
		if err != nil {
			return err
		}
		if ok {
			return fail(state, "instance has disallowed type %s", declsString(types.PartDecls{decl}))
		}
	}
	return nil
}

// exclusiveBound reports whether a companion keyword such as
// exclusiveMinimum is present and true.
func exclusiveBound(state *types.ValidationState, keyword string) bool {
	pv, ok := state.Schema.LookupKeyword(keyword)
	if !ok {
		return false
	}
	b, ok := pv.(types.PartBool)
	return ok && bool(b)
}

// ValidateMinimum implements the minimum keyword.
func ValidateMinimum(arg types.PartNumber, instance value.Value, state *types.ValidationState) error {
	r, ok := value.Rat(instance)
	if !ok {
		return nil
	}
	if exclusiveBound(state, "exclusiveMinimum") {
		if r.Cmp(arg.Rat) <= 0 {
			return fail(state, `value %s is not above the exclusive "minimum" limit %s`, value.RatString(r), value.RatString(arg.Rat))
		}
	} else if r.Cmp(arg.Rat) < 0 {
		return fail(state, `value %s is smaller than "minimum" limit %s`, value.RatString(r), value.RatString(arg.Rat))
	}
	return nil
}

// ValidateMaximum implements the maximum keyword.
func ValidateMaximum(arg types.PartNumber, instance value.Value, state *types.ValidationState) error {
	r, ok := value.Rat(instance)
	if !ok {
		return nil
	}
	if exclusiveBound(state, "exclusiveMaximum") {
		if r.Cmp(arg.Rat) >= 0 {
			return fail(state, `value %s is not below the exclusive "maximum" limit %s`, value.RatString(r), value.RatString(arg.Rat))
		}
	} else if r.Cmp(arg.Rat) > 0 {
		return fail(state, `value %s is larger than "maximum" limit %s`, value.RatString(r), value.RatString(arg.Rat))
	}
	return nil
}

// ValidateMinItems implements the minItems keyword.
func ValidateMinItems(arg types.PartInt, instance value.Value, state *types.ValidationState) error {
	a, ok := instance.(value.Array)
	if !ok {
		return nil
	}
	if int64(len(a)) < int64(arg) {
		return fail(state, `length %d too short for "minItems" argument %d`, len(a), arg)
	}
	return nil
}

// ValidateMaxItems implements the maxItems keyword.
func ValidateMaxItems(arg types.PartInt, instance value.Value, state *types.ValidationState) error {
	a, ok := instance.(value.Array)
	if !ok {
		return nil
	}
	if int64(len(a)) > int64(arg) {
		return fail(state, `length %d exceeds the maximum number of items %d`, len(a), arg)
	}
	return nil
}

// ValidateUniqueItems implements the uniqueItems keyword.
// Equality is deep and numeric across the integer and number
// cases, so 1 and 1.0 are duplicates.
func ValidateUniqueItems(arg types.PartBool, instance value.Value, state *types.ValidationState) error {
	if !arg {
		return nil
	}
	a, ok := instance.(value.Array)
	if !ok {
		return nil
	}
	for i := 0; i < len(a); i++ {
		for j := i + 1; j < len(a); j++ {
			if value.Equal(a[i], a[j]) {
				return fail(state, `"uniqueItems" failure: %s appears more than once`, value.Display(a[i]))
			}
		}
	}
	return nil
}

// ValidatePattern implements the pattern keyword.
// Matching is substring-style; the regexp is not anchored.
func ValidatePattern(arg types.PartString, instance value.Value, state *types.ValidationState) error {
	s, ok := instance.(value.String)
	if !ok {
		return nil
	}

	re, err := regexp.Compile(string(arg))
	if err != nil {
		return fmt.Errorf(`"pattern" regexp %q failed: %v`, arg, err)
	}

	if !re.MatchString(string(s)) {
		return fail(state, `"pattern" regexp %q did not match %q`, arg, s)
	}
	return nil
}

// ValidateMinLength implements the minLength keyword.
// Lengths are measured in Unicode code points.
func ValidateMinLength(arg types.PartInt, instance value.Value, state *types.ValidationState) error {
	if arg < 0 {
		return fmt.Errorf(`"minLength" argument is %d, must be non-negative`, arg)
	}
	if s, ok := instance.(value.String); ok {
		if int64(utf8.RuneCountInString(string(s))) < int64(arg) {
			return fail(state, `value %q too short for "minLength" argument %d`, s, arg)
		}
	}
	return nil
}

// ValidateMaxLength implements the maxLength keyword.
func ValidateMaxLength(arg types.PartInt, instance value.Value, state *types.ValidationState) error {
	if arg < 0 {
		return fmt.Errorf(`"maxLength" argument is %d, must be non-negative`, arg)
	}
	if s, ok := instance.(value.String); ok {
		if int64(utf8.RuneCountInString(string(s))) > int64(arg) {
			return fail(state, `value %q too long for "maxLength" argument %d`, s, arg)
		}
	}
	return nil
}

// ValidateDivisibleBy implements the divisibleBy keyword.
// The quotient is computed with exact rational arithmetic;
// binary floating point would misjudge divisors like 0.1.
func ValidateDivisibleBy(arg types.PartNumber, instance value.Value, state *types.ValidationState) error {
	r, ok := value.Rat(instance)
	if !ok {
		return nil
	}
	if arg.Rat.Sign() == 0 {
		return fail(state, `"divisibleBy" divisor is zero`)
	}
	q := new(big.Rat).Quo(r, arg.Rat)
	if !q.IsInt() {
		return fail(state, `value %s is not divisible by %s`, value.RatString(r), value.RatString(arg.Rat))
	}
	return nil
}

// ValidateEnum implements the enum keyword.
func ValidateEnum(arg types.PartAny, instance value.Value, state *types.ValidationState) error {
	a, ok := arg.V.(value.Array)
	if !ok {
		return fmt.Errorf(`"enum" argument is %s, must be an array`, value.TypeName(arg.V))
	}
	for _, e := range a {
		if value.Equal(instance, e) {
			return nil
		}
	}
	return fail(state, `no "enum" value matched %s`, value.Display(instance))
}

// ValidateProperties implements the properties keyword.
// A property subschema with "required": true makes the property
// mandatory; a present property is validated with its name
// appended to the instance path.
func ValidateProperties(arg types.PartMapSchema, instance value.Value, state *types.ValidationState) error {
	obj, isObj := instance.(*value.Object)

	// Sort for determinism.
	names := make([]string, 0, len(arg))
	for name := range arg {
		names = append(names, name)
	}
	slices.SortFunc(names, strings.Compare)

	for _, name := range names {
		sub := arg[name]

		// Record the name so additionalProperties can tell which
		// instance fields are accounted for.
		notes.AppendNote(&state.Notes, "properties", name)

		if !isObj {
			continue
		}

		f, ok := obj.Get(name)
		if !ok {
			if pv, hasReq := sub.LookupKeyword("required"); hasReq {
				if b, isBool := pv.(types.PartBool); isBool && bool(b) {
					return fail(state, "missing required field %q", name)
				}
			}
			continue
		}

		state.PushInstanceToken(name)
		err := sub.ValidateSubSchema(f, state)
		state.PopInstanceToken()
		if err != nil {
			return err
		}
	}
	return nil
}

// ValidatePatternProperties implements the patternProperties keyword.
func ValidatePatternProperties(arg types.PartMapSchema, instance value.Value, state *types.ValidationState) error {
	obj, ok := instance.(*value.Object)
	if !ok {
		return nil
	}

	// Sort for determinism.
	patterns := make([]string, 0, len(arg))
	for p := range arg {
		patterns = append(patterns, p)
	}
	slices.SortFunc(patterns, strings.Compare)

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf(`"patternProperties" regexp %q failed: %v`, p, err)
		}
		sub := arg[p]

		for _, name := range obj.Keys() {
			if !re.MatchString(name) {
				continue
			}

			// Record the name so additionalProperties can tell
			// which instance fields are accounted for.
			notes.AppendNote(&state.Notes, "patternProperties", name)

			f, _ := obj.Get(name)
			state.PushInstanceToken(name)
			err := sub.ValidateSubSchema(f, state)
			state.PopInstanceToken()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateAdditionalProperties implements the additionalProperties
// keyword. The extra fields are those not named by "properties"
// and not matching any "patternProperties" regexp; the keyword
// ordering guarantees both have already recorded their notes.
func ValidateAdditionalProperties(arg types.PartBoolOrSchema, instance value.Value, state *types.ValidationState) error {
	obj, ok := instance.(*value.Object)
	if !ok {
		return nil
	}
	if arg.Schema == nil && arg.Bool {
		return nil
	}

	accounted := make(map[string]bool)
	for _, key := range []string{"properties", "patternProperties"} {
		if noted, ok := state.Notes.Get(key); ok {
			for _, name := range noted.([]string) {
				accounted[name] = true
			}
		}
	}

	for _, name := range obj.Keys() {
		if accounted[name] {
			continue
		}
		if arg.Schema == nil {
			return fail(state, "additional property %q is not allowed", name)
		}
		f, _ := obj.Get(name)
		state.PushInstanceToken(name)
		err := arg.Schema.ValidateSubSchema(f, state)
		state.PopInstanceToken()
		if err != nil {
			return err
		}
	}
	return nil
}

// itemsNote is the type of the note recorded for items.
// We need to track whether every element was covered and, for the
// positional form, how many, as items only affects additionalItems
// in the same schema.
type itemsNote struct {
	all bool
	idx int
}

// ValidateItems implements the items keyword.
// A single schema applies to every element; a positional list
// applies index by index, with the excess left to additionalItems.
func ValidateItems(arg types.PartSchemaOrSchemas, instance value.Value, state *types.ValidationState) error {
	a, ok := instance.(value.Array)
	if !ok {
		return nil
	}

	if arg.Schema != nil {
		state.Notes.Set("items", itemsNote{all: true})
		for i, e := range a {
			state.PushInstanceToken(strconv.Itoa(i))
			err := arg.Schema.ValidateSubSchema(e, state)
			state.PopInstanceToken()
			if err != nil {
				return err
			}
		}
		return nil
	}

	state.Notes.Set("items", itemsNote{idx: len(arg.Schemas)})
	for i, sub := range arg.Schemas {
		if i >= len(a) {
			break
		}
		state.PushInstanceToken(strconv.Itoa(i))
		err := sub.ValidateSubSchema(a[i], state)
		state.PopInstanceToken()
		if err != nil {
			return err
		}
	}
	return nil
}

// ValidateAdditionalItems implements the additionalItems keyword.
// It is only meaningful when items is a positional list.
func ValidateAdditionalItems(arg types.PartBoolOrSchema, instance value.Value, state *types.ValidationState) error {
	a, ok := instance.(value.Array)
	if !ok {
		return nil
	}

	noted, ok := state.Notes.Get("items")
	if !ok {
		return nil
	}
	note := noted.(itemsNote)
	if note.all {
		return nil
	}

	if arg.Schema == nil {
		if arg.Bool {
			return nil
		}
		if len(a) > note.idx {
			return fail(state, `length %d exceeds the %d positional "items" schemas and "additionalItems" is false`, len(a), note.idx)
		}
		return nil
	}

	for i := note.idx; i < len(a); i++ {
		state.PushInstanceToken(strconv.Itoa(i))
		err := arg.Schema.ValidateSubSchema(a[i], state)
		state.PopInstanceToken()
		if err != nil {
			return err
		}
	}
	return nil
}

// ValidateDependencies implements the dependencies keyword.
// A named dependency requires other fields to be present;
// a schema dependency validates the whole instance, with no
// path descent.
func ValidateDependencies(arg types.PartMapArrayOrSchema, instance value.Value, state *types.ValidationState) error {
	obj, ok := instance.(*value.Object)
	if !ok {
		return nil
	}

	// Sort for determinism.
	names := make([]string, 0, len(arg))
	for name := range arg {
		names = append(names, name)
	}
	slices.SortFunc(names, strings.Compare)

	for _, name := range names {
		if !obj.Has(name) {
			continue
		}
		as := arg[name]
		if as.Schema != nil {
			if err := as.Schema.ValidateSubSchema(instance, state); err != nil {
				return err
			}
			continue
		}
		for _, dep := range as.Array {
			if !obj.Has(dep) {
				return fail(state, `"dependencies" failure: have field %q but not field %q`, name, dep)
			}
		}
	}
	return nil
}

// ValidateExtends implements the extends keyword.
// The instance must additionally validate against each
// extended schema.
func ValidateExtends(arg types.PartSchemaOrSchemas, instance value.Value, state *types.ValidationState) error {
	if arg.Schema != nil {
		return arg.Schema.ValidateSubSchema(instance, state)
	}
	for _, sub := range arg.Schemas {
		if err := sub.ValidateSubSchema(instance, state); err != nil {
			return err
		}
	}
	return nil
}
