package draft3_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/schemata/draft3/pkg/draft3"
	"github.com/schemata/draft3/pkg/types"
	"github.com/schemata/draft3/pkg/value"
)

// mustSchema builds a schema from JSON text.
func mustSchema(t *testing.T, src string) *types.Schema {
	t.Helper()
	v, err := value.Decode([]byte(src))
	if err != nil {
		t.Fatalf("decode schema %s: %v", src, err)
	}
	s, err := types.SchemaFromValue(v, nil, draft3.Vocabulary)
	if err != nil {
		t.Fatalf("build schema %s: %v", src, err)
	}
	return s
}

// mustValue decodes instance JSON text.
func mustValue(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := value.Decode([]byte(src))
	if err != nil {
		t.Fatalf("decode instance %s: %v", src, err)
	}
	return v
}

// check validates an instance and reports a mismatch with want.
func check(t *testing.T, schema, instance string, want bool) {
	t.Helper()
	s := mustSchema(t, schema)
	err := s.Validate(mustValue(t, instance))
	if (err == nil) != want {
		t.Errorf("schema %s instance %s: got err %v, want valid %t", schema, instance, err, want)
	}
	if err != nil && !types.IsValidationError(err) {
		t.Errorf("schema %s instance %s: error is %T, want validation error", schema, instance, err)
	}
}

// failPath validates an instance, expecting failure at path.
func failPath(t *testing.T, schema, instance, path string) {
	t.Helper()
	s := mustSchema(t, schema)
	err := s.Validate(mustValue(t, instance))
	if err == nil {
		t.Errorf("schema %s instance %s: valid, want failure at %s", schema, instance, path)
		return
	}
	var ve *types.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("schema %s instance %s: error is %T, want ValidationError", schema, instance, err)
		return
	}
	if ve.Path != path {
		t.Errorf("schema %s instance %s: path %q, want %q", schema, instance, ve.Path, path)
	}
	if ve.Schema == nil {
		t.Errorf("schema %s instance %s: error carries no schema", schema, instance)
	}
}

func TestType(t *testing.T) {
	tests := []struct {
		typ      string
		instance string
		want     bool
	}{
		{`"integer"`, `5`, true},
		{`"integer"`, `5.0`, false},
		{`"integer"`, `"5"`, false},
		{`"number"`, `5`, true},
		{`"number"`, `5.5`, true},
		{`"number"`, `"5"`, false},
		{`"string"`, `"taco"`, true},
		{`"string"`, `5`, false},
		{`"boolean"`, `true`, true},
		{`"boolean"`, `null`, false},
		{`"null"`, `null`, true},
		{`"null"`, `false`, false},
		{`"object"`, `{}`, true},
		{`"object"`, `[]`, false},
		{`"array"`, `[]`, true},
		{`"array"`, `{}`, false},
		{`"any"`, `null`, true},
		{`"any"`, `{"a": 1}`, true},
		// An unrecognized type name matches, for forward
		// compatibility.
		{`"wibble"`, `5`, true},
	}
	for _, test := range tests {
		check(t, `{"type": `+test.typ+`}`, test.instance, test.want)
	}
}

func TestTypeUnion(t *testing.T) {
	// validate({type:[A,B]}, x) = validate({type:A}, x) or
	// validate({type:B}, x).
	prims := []string{"string", "number", "integer", "boolean", "object", "array", "null"}
	instances := []string{`5`, `2.5`, `"x"`, `true`, `null`, `[1]`, `{"a":1}`}
	for i, a := range prims {
		for _, b := range prims[i:] {
			for _, inst := range instances {
				sa := mustSchema(t, `{"type": "`+a+`"}`)
				sb := mustSchema(t, `{"type": "`+b+`"}`)
				su := mustSchema(t, `{"type": ["`+a+`", "`+b+`"]}`)
				v := mustValue(t, inst)
				want := sa.Validate(v) == nil || sb.Validate(v) == nil
				if got := su.Validate(v) == nil; got != want {
					t.Errorf("type [%s, %s] on %s = %t, want %t", a, b, inst, got, want)
				}
			}
		}
	}
}

func TestTypeUnionSubschema(t *testing.T) {
	schema := `{"type": ["string", {"properties": {"a": {"type": "integer", "required": true}}}]}`
	check(t, schema, `"x"`, true)
	check(t, schema, `{"a": 1}`, true)
	check(t, schema, `{"b": 1}`, false)
}

func TestDisallowComplement(t *testing.T) {
	prims := []string{"string", "number", "integer", "boolean", "object", "array", "null", "any"}
	instances := []string{`5`, `2.5`, `"x"`, `true`, `null`, `[1]`, `{"a":1}`}
	for _, p := range prims {
		for _, inst := range instances {
			st := mustSchema(t, `{"type": "`+p+`"}`)
			sd := mustSchema(t, `{"disallow": "`+p+`"}`)
			v := mustValue(t, inst)
			typeOK := st.Validate(v) == nil
			disallowOK := sd.Validate(v) == nil
			if typeOK == disallowOK {
				t.Errorf("disallow %q on %s is not the complement of type", p, inst)
			}
		}
	}
}

func TestBounds(t *testing.T) {
	check(t, `{"minimum": 2}`, `2`, true)
	check(t, `{"minimum": 2}`, `1.5`, false)
	check(t, `{"minimum": 2, "exclusiveMinimum": true}`, `2`, false)
	check(t, `{"minimum": 2, "exclusiveMinimum": true}`, `2.001`, true)
	check(t, `{"maximum": 2}`, `2`, true)
	check(t, `{"maximum": 2}`, `2.5`, false)
	check(t, `{"maximum": 2, "exclusiveMaximum": true}`, `2`, false)
	// exclusiveMinimum at zero rejects zero and accepts the
	// smallest positive input.
	check(t, `{"minimum": 0, "exclusiveMinimum": true}`, `0`, false)
	check(t, `{"minimum": 0, "exclusiveMinimum": true}`, `1e-300`, true)
	// Bounds are guards: non-numbers pass.
	check(t, `{"minimum": 2}`, `"taco"`, true)
}

func TestDivisibleBy(t *testing.T) {
	// Exact decimal arithmetic: 0.3 is an exact multiple of 0.1,
	// which float remainder gets wrong.
	check(t, `{"divisibleBy": 0.1}`, `0.3`, true)
	check(t, `{"divisibleBy": 0.1}`, `0.25`, false)
	check(t, `{"divisibleBy": 2}`, `8`, true)
	check(t, `{"divisibleBy": 2}`, `7`, false)
	check(t, `{"divisibleBy": 0.01}`, `1.07`, true)
	// A zero divisor is itself a violation.
	check(t, `{"divisibleBy": 0}`, `5`, false)
	check(t, `{"divisibleBy": 0}`, `"x"`, true)
}

func TestStringKeywords(t *testing.T) {
	check(t, `{"pattern": "ac"}`, `"taco"`, true)
	check(t, `{"pattern": "ac"}`, `"tac0o"`, false)
	// Matching is unanchored, but explicit anchors still bind.
	check(t, `{"pattern": "^a"}`, `"abc"`, true)
	check(t, `{"pattern": "^a"}`, `"bab"`, false)
	check(t, `{"minLength": 3}`, `"tac"`, true)
	check(t, `{"minLength": 3}`, `"ta"`, false)
	check(t, `{"maxLength": 3}`, `"taco"`, false)
	// Lengths count code points, not bytes.
	check(t, `{"maxLength": 4}`, `"héllo"`, false)
	check(t, `{"maxLength": 5}`, `"héllo"`, true)
	check(t, `{"minLength": 3}`, `5`, true)
}

func TestArrayKeywords(t *testing.T) {
	check(t, `{"minItems": 2}`, `[1, 2.5]`, true)
	check(t, `{"minItems": 2}`, `[1]`, false)
	check(t, `{"maxItems": 1}`, `[1, 2]`, false)
	check(t, `{"uniqueItems": true}`, `[1, 2, 3]`, true)
	check(t, `{"uniqueItems": true}`, `[1, 2, 1]`, false)
	// 1 and 1.0 are equal under numeric structural equality.
	check(t, `{"uniqueItems": true}`, `[1, 1.0]`, false)
	check(t, `{"uniqueItems": true}`, `[[1], [1]]`, false)
	check(t, `{"uniqueItems": false}`, `[1, 1]`, true)

	check(t, `{"items": {"type": "number"}}`, `[1, 2.5]`, true)
	failPath(t, `{"items": {"type": "number"}}`, `[1, "x"]`, "#/1")

	positional := `{"items": [{"type": "integer"}, {"type": "string"}]}`
	check(t, positional, `[1, "x"]`, true)
	check(t, positional, `[1]`, true)
	check(t, positional, `[1, "x", true, null]`, true)
	failPath(t, positional, `["x"]`, "#/0")

	bounded := `{"items": [{"type": "integer"}], "additionalItems": false}`
	check(t, bounded, `[1]`, true)
	check(t, bounded, `[1, 2]`, false)

	tail := `{"items": [{"type": "integer"}], "additionalItems": {"type": "string"}}`
	check(t, tail, `[1, "x", "y"]`, true)
	failPath(t, tail, `[1, "x", 3]`, "#/2")

	// additionalItems is meaningless when items covers everything.
	check(t, `{"items": {"type": "integer"}, "additionalItems": false}`, `[1, 2, 3]`, true)
}

func TestObjectKeywords(t *testing.T) {
	schema := `{"type": "object", "properties": {"a": {"type": "integer", "required": true}}}`
	check(t, schema, `{"a": 5}`, true)
	failPath(t, schema, `{}`, "#/")
	failPath(t, schema, `{"a": "taco"}`, "#/a")

	// The type failure message names the wanted class.
	s := mustSchema(t, schema)
	err := s.Validate(mustValue(t, `{"a": "taco"}`))
	if err == nil || !strings.Contains(err.Error(), "integer") {
		t.Errorf("type failure message %v does not mention integer", err)
	}

	pattern := `{"patternProperties": {"^x": {"type": "integer"}}}`
	check(t, pattern, `{"x1": 5, "other": "ok"}`, true)
	failPath(t, pattern, `{"x1": "s"}`, "#/x1")

	closed := `{"properties": {"a": {}}, "additionalProperties": false}`
	check(t, closed, `{"a": 1}`, true)
	check(t, closed, `{"a": 1, "b": 2}`, false)

	closedPattern := `{"patternProperties": {"^x": {}}, "additionalProperties": false}`
	check(t, closedPattern, `{"x1": 1, "x2": 2}`, true)
	check(t, closedPattern, `{"x1": 1, "y": 2}`, false)

	extraSchema := `{"properties": {"a": {}}, "additionalProperties": {"type": "string"}}`
	check(t, extraSchema, `{"a": 1, "b": "ok"}`, true)
	failPath(t, extraSchema, `{"a": 1, "b": 2}`, "#/b")
}

func TestDependencies(t *testing.T) {
	dep := `{"type": "object", "dependencies": {"a": "b"}}`
	check(t, dep, `{"a": 1}`, false)
	check(t, dep, `{"a": 1, "b": 2}`, true)
	check(t, dep, `{"b": 2}`, true)

	multi := `{"dependencies": {"a": ["b", "c"]}}`
	check(t, multi, `{"a": 1, "b": 2}`, false)
	check(t, multi, `{"a": 1, "b": 2, "c": 3}`, true)

	schemaDep := `{"dependencies": {"a": {"properties": {"b": {"type": "integer", "required": true}}}}}`
	check(t, schemaDep, `{"a": 1, "b": 2}`, true)
	check(t, schemaDep, `{"a": 1, "b": "x"}`, false)
	check(t, schemaDep, `{"a": 1}`, false)
	check(t, schemaDep, `{"c": 1}`, true)
}

func TestExtends(t *testing.T) {
	one := `{"type": "object", "extends": {"properties": {"a": {"required": true}}}}`
	check(t, one, `{"a": 1}`, true)
	check(t, one, `{}`, false)

	many := `{"extends": [{"minimum": 2}, {"maximum": 4}]}`
	check(t, many, `3`, true)
	check(t, many, `1`, false)
	check(t, many, `5`, false)
}

func TestEnum(t *testing.T) {
	schema := `{"enum": [1, "two", [3], {"four": 4}]}`
	check(t, schema, `1`, true)
	check(t, schema, `1.0`, true)
	check(t, schema, `"two"`, true)
	check(t, schema, `[3]`, true)
	check(t, schema, `{"four": 4}`, true)
	check(t, schema, `2`, false)
	check(t, schema, `"three"`, false)
}

func TestRef(t *testing.T) {
	schema := `{"$ref": "#/definitions/X", "definitions": {"X": {"type": "integer"}}}`
	check(t, schema, `7`, true)
	check(t, schema, `"7"`, false)
}

func TestRefNested(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {"n": {"$ref": "#/definitions/positive"}},
		"definitions": {"positive": {"minimum": 0, "exclusiveMinimum": true}}
	}`
	check(t, schema, `{"n": 3}`, true)
	failPath(t, schema, `{"n": -1}`, "#/n")
}

func TestRefUnresolvable(t *testing.T) {
	s := mustSchema(t, `{"$ref": "http://nowhere.invalid/missing.json"}`)
	err := s.Validate(mustValue(t, `1`))
	if err == nil {
		t.Fatal("unresolvable reference validated")
	}
	if !types.IsValidationError(err) {
		t.Errorf("unresolvable reference error is %T, want ValidationError", err)
	}
}

func TestRefBrokenFragment(t *testing.T) {
	s := mustSchema(t, `{"$ref": "#/definitions/missing", "definitions": {"X": {}}}`)
	err := s.Validate(mustValue(t, `1`))
	if err == nil {
		t.Fatal("broken fragment validated")
	}
	var se *types.SchemaError
	if !errors.As(err, &se) {
		t.Errorf("broken fragment error is %T, want SchemaError", err)
	}
}

func TestRefCycle(t *testing.T) {
	// A self-referential schema terminates as the instance
	// is consumed.
	schema := `{
		"type": "object",
		"properties": {"next": {"$ref": "#"}},
		"definitions": {}
	}`
	check(t, schema, `{"next": {"next": {}}}`, true)
	check(t, schema, `{"next": "x"}`, false)
}

func TestNestedErrorPath(t *testing.T) {
	schema := `{
		"properties": {
			"a": {"items": {"properties": {"b": {"type": "integer"}}}}
		}
	}`
	failPath(t, schema, `{"a": [{"b": "x"}]}`, "#/a/0/b")
}

func TestFirstErrorWins(t *testing.T) {
	// minimum runs before enum in the fixed order, so the
	// reported failure is the minimum violation.
	s := mustSchema(t, `{"minimum": 10, "enum": [99]}`)
	err := s.Validate(mustValue(t, `5`))
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "minimum") {
		t.Errorf("first error %v is not the minimum violation", err)
	}
}

func TestPathIsolation(t *testing.T) {
	// A failed validation leaves no path state behind: repeating
	// the same validation reports the same path, and a later
	// validation of a non-object instance passes.
	s := mustSchema(t, `{"properties": {"a": {"items": {"type": "integer"}}}}`)
	inst := mustValue(t, `{"a": [1, "x"]}`)
	for range 3 {
		err := s.Validate(inst)
		var ve *types.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error is %T, want ValidationError", err)
		}
		if ve.Path != "#/a/1" {
			t.Fatalf("path = %q, want #/a/1", ve.Path)
		}
	}
	err := s.Validate(mustValue(t, `5`))
	if err != nil {
		t.Fatalf("non-object instance failed: %v", err)
	}
}

func TestBuilder(t *testing.T) {
	sub := draft3.NewSubBuilder().AddType("integer").AddMinimum(2).Build()
	s := draft3.NewBuilder().
		AddType("array").
		AddItems(sub).
		AddMinItems(1).
		Build()

	if err := s.Validate(mustValue(t, `[2, 3]`)); err != nil {
		t.Errorf("built schema rejects valid instance: %v", err)
	}
	if err := s.Validate(mustValue(t, `[1]`)); err == nil {
		t.Error("built schema accepts out-of-range element")
	}
	if err := s.Validate(mustValue(t, `[]`)); err == nil {
		t.Error("built schema accepts empty array")
	}
}
