package jsonschema_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/schemata/draft3/pkg/draft3"
	"github.com/schemata/draft3/pkg/jsonschema"
)

func TestValidateAgreement(t *testing.T) {
	// validate is true exactly when validate_strict returns
	// normally.
	tests := []struct {
		schema, instance string
	}{
		{`{"type": "integer"}`, `5`},
		{`{"type": "integer"}`, `"x"`},
		{`{"minimum": 2}`, `1`},
		{`{"properties": {"a": {"required": true}}}`, `{}`},
		{`{"items": {"type": "number"}, "minItems": 2}`, `[1, 2.5]`},
		{`{"items": {"type": "number"}, "minItems": 2}`, `[1]`},
	}
	e := jsonschema.New()
	for _, test := range tests {
		ok, err := e.Validate(test.schema, test.instance, nil)
		if err != nil {
			t.Errorf("Validate(%s, %s): %v", test.schema, test.instance, err)
			continue
		}
		strict := e.ValidateStrict(test.schema, test.instance, nil)
		if ok != (strict == nil) {
			t.Errorf("Validate(%s, %s) = %t but ValidateStrict = %v", test.schema, test.instance, ok, strict)
		}
	}
}

// strictPath validates and returns the reported instance path.
func strictPath(t *testing.T, e *jsonschema.Engine, schema, instance string) string {
	t.Helper()
	err := e.ValidateStrict(schema, instance, nil)
	if err == nil {
		t.Fatalf("schema %s instance %s: valid, want failure", schema, instance)
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("schema %s instance %s: error is %T, want ValidationError", schema, instance, err)
	}
	return ve.Path
}

func TestScenarioRequiredProperty(t *testing.T) {
	e := jsonschema.New()
	schema := `{"type": "object", "properties": {"a": {"type": "integer", "required": true}}}`

	if ok, err := e.Validate(schema, `{"a": 5}`, nil); err != nil || !ok {
		t.Errorf("valid instance rejected: ok=%t err=%v", ok, err)
	}
	if got := strictPath(t, e, schema, `{}`); got != "#/" {
		t.Errorf("missing required path = %q, want #/", got)
	}

	err := e.ValidateStrict(schema, `{"a": "taco"}`, nil)
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error is %T, want ValidationError", err)
	}
	if ve.Path != "#/a" {
		t.Errorf("type mismatch path = %q, want #/a", ve.Path)
	}
	if !strings.Contains(ve.Message, "integer") {
		t.Errorf("message %q does not mention integer", ve.Message)
	}
}

func TestScenarioArray(t *testing.T) {
	e := jsonschema.New()
	schema := `{"type": "array", "items": {"type": "number"}, "minItems": 2}`
	if ok, err := e.Validate(schema, `[1, 2.5]`, nil); err != nil || !ok {
		t.Errorf("valid instance rejected: ok=%t err=%v", ok, err)
	}
	if got := strictPath(t, e, schema, `[1]`); got != "#/" {
		t.Errorf("minItems path = %q, want #/", got)
	}
}

func TestScenarioDependencies(t *testing.T) {
	e := jsonschema.New()
	schema := `{"type": "object", "dependencies": {"a": "b"}}`
	if ok, err := e.Validate(schema, `{"a": 1}`, nil); err != nil || ok {
		t.Errorf("dependency violation accepted: ok=%t err=%v", ok, err)
	}
	if ok, err := e.Validate(schema, `{"a": 1, "b": 2}`, nil); err != nil || !ok {
		t.Errorf("satisfied dependency rejected: ok=%t err=%v", ok, err)
	}
}

func TestScenarioRef(t *testing.T) {
	e := jsonschema.New()
	schema := `{"$ref": "#/definitions/X", "definitions": {"X": {"type": "integer"}}}`
	if ok, err := e.Validate(schema, `7`, nil); err != nil || !ok {
		t.Errorf("valid instance rejected: ok=%t err=%v", ok, err)
	}
	if ok, err := e.Validate(schema, `"7"`, nil); err != nil || ok {
		t.Errorf("invalid instance accepted: ok=%t err=%v", ok, err)
	}
}

func TestScenarioList(t *testing.T) {
	e := jsonschema.New()
	schema := `{"type": "integer"}`
	opts := &jsonschema.Options{List: true}

	if ok, err := e.Validate(schema, `[1, 2, 3]`, opts); err != nil || !ok {
		t.Errorf("valid list rejected: ok=%t err=%v", ok, err)
	}

	err := e.ValidateStrict(schema, `[1, "x"]`, opts)
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error is %T, want ValidationError", err)
	}
	if ve.Path != "#/1" {
		t.Errorf("list element path = %q, want #/1", ve.Path)
	}

	// Without the option an array is not an integer.
	if ok, err := e.Validate(schema, `[1, 2, 3]`, nil); err != nil || ok {
		t.Errorf("array accepted without list option: ok=%t err=%v", ok, err)
	}
}

func TestSchemaErrorPropagates(t *testing.T) {
	e := jsonschema.New()
	schema := `{"$ref": "#/definitions/missing", "definitions": {"X": {}}}`

	// A schema error is never folded into a false result.
	_, err := e.Validate(schema, `1`, nil)
	var se *jsonschema.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("Validate error is %T, want SchemaError", err)
	}
}

func TestAddSchemaIdempotent(t *testing.T) {
	e := jsonschema.New()
	e.SetCachePersistence(true)

	s := draft3.NewBuilder().AddID("http://example.com/point.json").AddType("object").Build()
	if err := e.AddSchema(s); err != nil {
		t.Fatalf("AddSchema: %v", err)
	}
	if err := e.AddSchema(s.Clone()); err != nil {
		t.Fatalf("AddSchema again: %v", err)
	}

	schemas := e.Schemas()
	if len(schemas) != 1 {
		t.Fatalf("registry has %d entries, want 1", len(schemas))
	}
	if schemas["http://example.com/point.json"] != s {
		t.Error("second AddSchema replaced the first registration")
	}
}

func TestCacheLifecycle(t *testing.T) {
	e := jsonschema.New()

	// Default: the registry is cleared after each validation.
	if _, err := e.Validate(`{"type": "integer"}`, `5`, nil); err != nil {
		t.Fatal(err)
	}
	if n := len(e.Schemas()); n != 0 {
		t.Errorf("registry has %d entries after validation, want 0", n)
	}

	// Persistent: entries survive, and ClearCache is a no-op.
	e.SetCachePersistence(true)
	if _, err := e.Validate(`{"type": "integer"}`, `5`, nil); err != nil {
		t.Fatal(err)
	}
	if n := len(e.Schemas()); n == 0 {
		t.Error("registry empty despite cache persistence")
	}
	e.ClearCache()
	if n := len(e.Schemas()); n == 0 {
		t.Error("ClearCache cleared a persistent cache")
	}

	// Off again: ClearCache discards.
	e.SetCachePersistence(false)
	e.ClearCache()
	if n := len(e.Schemas()); n != 0 {
		t.Errorf("registry has %d entries after ClearCache, want 0", n)
	}
}

func TestSchemaFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	if err := os.WriteFile(path, []byte(`{"type": "integer"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	e := jsonschema.New()
	if ok, err := e.Validate(path, `5`, nil); err != nil || !ok {
		t.Errorf("Validate with schema path: ok=%t err=%v", ok, err)
	}
	if ok, err := e.Validate(path, `"x"`, nil); err != nil || ok {
		t.Errorf("Validate with schema path accepted bad instance: ok=%t err=%v", ok, err)
	}
}

func TestSchemaFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	src := "type: object\nproperties:\n  a:\n    type: integer\n    required: true\n"
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	e := jsonschema.New()
	if ok, err := e.Validate(path, `{"a": 3}`, nil); err != nil || !ok {
		t.Errorf("YAML schema rejected valid instance: ok=%t err=%v", ok, err)
	}
	if ok, err := e.Validate(path, `{}`, nil); err != nil || ok {
		t.Errorf("YAML schema accepted invalid instance: ok=%t err=%v", ok, err)
	}
}

func TestExternalRef(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "leaf.json"), []byte(`{"type": "integer"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(dir, "root.json")
	src := `{"type": "object", "properties": {"n": {"$ref": "leaf.json"}}}`
	if err := os.WriteFile(root, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	e := jsonschema.New()
	if ok, err := e.Validate(root, `{"n": 3}`, nil); err != nil || !ok {
		t.Errorf("external ref rejected valid instance: ok=%t err=%v", ok, err)
	}
	if ok, err := e.Validate(root, `{"n": "x"}`, nil); err != nil || ok {
		t.Errorf("external ref accepted invalid instance: ok=%t err=%v", ok, err)
	}
}

func TestUnloadableRefSurfacesLate(t *testing.T) {
	// A reference that cannot be loaded is swallowed during the
	// graph walk and surfaces only when exercised.
	e := jsonschema.New()
	dead := `{"properties": {"n": {"$ref": "http://nowhere.invalid/missing.json"}}}`

	if ok, err := e.Validate(dead, `{}`, nil); err != nil || !ok {
		t.Errorf("unexercised dead reference failed: ok=%t err=%v", ok, err)
	}
	if ok, err := e.Validate(dead, `{"n": 1}`, nil); err != nil || ok {
		t.Errorf("exercised dead reference did not fail validation: ok=%t err=%v", ok, err)
	}
}

func TestInstanceForms(t *testing.T) {
	e := jsonschema.New()
	schema := `{"type": "object"}`
	if ok, err := e.Validate(schema, []byte(`{"a": 1}`), nil); err != nil || !ok {
		t.Errorf("[]byte instance: ok=%t err=%v", ok, err)
	}
	if _, err := e.Validate(schema, struct{}{}, nil); err == nil {
		t.Error("unsupported instance type accepted")
	}
}

func TestBuiltSchema(t *testing.T) {
	e := jsonschema.New()
	s := draft3.NewBuilder().
		AddType("object").
		AddProperties(map[string]*jsonschema.Schema{
			"name": draft3.NewSubBuilder().AddType("string").AddRequired(true).Build(),
		}).
		AddAdditionalProperties(false).
		Build()

	if ok, err := e.Validate(s, `{"name": "x"}`, nil); err != nil || !ok {
		t.Errorf("built schema rejected valid instance: ok=%t err=%v", ok, err)
	}
	if ok, err := e.Validate(s, `{"name": "x", "extra": 1}`, nil); err != nil || ok {
		t.Errorf("built schema accepted extra property: ok=%t err=%v", ok, err)
	}
}

func TestDefaultEngine(t *testing.T) {
	if ok, err := jsonschema.Validate(`{"type": "integer"}`, `5`, nil); err != nil || !ok {
		t.Errorf("package-level Validate: ok=%t err=%v", ok, err)
	}
	if err := jsonschema.ValidateStrict(`{"type": "integer"}`, `5`, nil); err != nil {
		t.Errorf("package-level ValidateStrict: %v", err)
	}
}
