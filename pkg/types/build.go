package types

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/schemata/draft3/pkg/value"
)

// SchemaFromValue builds a [Schema] from a decoded value.
// The value must be an object. The optional uri is where the
// schema was loaded from; it becomes the schema's base URI.
//
// The vocabulary is chosen from a "$schema" keyword if present
// and recognized, otherwise the default vocabulary is used.
//
// It is normally necessary to call Resolve on the result.
func SchemaFromValue(v value.Value, uri *url.URL, voc *Vocabulary) (*Schema, error) {
	obj, ok := v.(*value.Object)
	if !ok {
		return nil, fmt.Errorf("draft3: schema is %s, want object", value.TypeName(v))
	}

	if voc == nil {
		if sv, ok := obj.Get("$schema"); ok {
			if s, ok := sv.(value.String); ok {
				voc = LookupVocabulary(string(s))
			}
		}
	}
	if voc == nil {
		voc = DefaultVocabulary()
	}
	if voc == nil {
		return nil, errors.New("draft3: no schema vocabulary registered")
	}

	s := &Schema{Base: uri}
	if err := s.buildFromValue(obj, voc); err != nil {
		return nil, err
	}
	return s, nil
}

// buildFromValue fills in a [Schema] from a decoded object.
func (s *Schema) buildFromValue(obj *value.Object, voc *Vocabulary) error {
	for _, keyword := range obj.Keys() {
		val, _ := obj.Get(keyword)
		if err := s.addKeywordFromValue(keyword, val, voc); err != nil {
			return err
		}
	}
	s.Finalize(voc)
	return nil
}

// subSchemaFromValue builds a subschema at a subschema-bearing
// position. Subschemas share the parent's base URI.
func subSchemaFromValue(v value.Value, voc *Vocabulary) (*Schema, error) {
	obj, ok := v.(*value.Object)
	if !ok {
		return nil, fmt.Errorf("draft3: subschema is %s, want object", value.TypeName(v))
	}
	var s Schema
	if err := s.buildFromValue(obj, voc); err != nil {
		return nil, err
	}
	return &s, nil
}

// addKeywordFromValue adds a [Schema] keyword and its decoded value.
func (s *Schema) addKeywordFromValue(keyword string, val value.Value, voc *Vocabulary) error {
	if len(keyword) == 0 {
		return errors.New("draft3: empty schema keyword")
	}

	sk, ok := voc.Keywords[keyword]
	if !ok {
		// Unrecognized keywords are ignored. They do not affect
		// the validation result, but fragment navigation can
		// still descend into them.
		s.Parts = append(s.Parts, Part{
			Keyword: &Keyword{
				Name:     keyword,
				ArgType:  ArgTypeAny,
				Validate: validateTrue,
			},
			Value: PartAny{val},
		})
		return nil
	}

	var spv PartValue
	switch sk.ArgType {
	case ArgTypeBool:
		b, ok := val.(value.Bool)
		if !ok {
			return fmt.Errorf("draft3: %q argument is %s, want boolean", keyword, value.TypeName(val))
		}
		spv = PartBool(b)

	case ArgTypeString:
		str, ok := val.(value.String)
		if !ok {
			return fmt.Errorf("draft3: %q argument is %s, want string", keyword, value.TypeName(val))
		}
		spv = PartString(str)

	case ArgTypeStrings:
		a, ok := val.(value.Array)
		if !ok {
			return fmt.Errorf("draft3: %q argument is %s, want array of string", keyword, value.TypeName(val))
		}
		strs := make([]string, 0, len(a))
		for i, e := range a {
			str, ok := e.(value.String)
			if !ok {
				return fmt.Errorf("draft3: %q argument item %d is %s, want string", keyword, i, value.TypeName(e))
			}
			strs = append(strs, string(str))
		}
		spv = PartStrings(strs)

	case ArgTypeInt:
		i, ok := val.(value.Int)
		if !ok {
			if r, isNum := value.Rat(val); isNum && r.IsInt() && r.Num().IsInt64() {
				i = value.Int(r.Num().Int64())
			} else {
				return fmt.Errorf("draft3: %q argument is %s, want integer", keyword, value.TypeName(val))
			}
		}
		spv = PartInt(i)

	case ArgTypeNumber:
		r, ok := value.Rat(val)
		if !ok {
			return fmt.Errorf("draft3: %q argument is %s, want number", keyword, value.TypeName(val))
		}
		spv = PartNumber{Rat: r}

	case ArgTypeSchema:
		sub, err := subSchemaFromValue(val, voc)
		if err != nil {
			return err
		}
		spv = PartSchema{sub}

	case ArgTypeSchemas:
		a, ok := val.(value.Array)
		if !ok {
			return fmt.Errorf("draft3: %q argument is %s, want array", keyword, value.TypeName(val))
		}
		schemas := make([]*Schema, 0, len(a))
		for _, e := range a {
			sub, err := subSchemaFromValue(e, voc)
			if err != nil {
				return err
			}
			schemas = append(schemas, sub)
		}
		spv = PartSchemas(schemas)

	case ArgTypeMapSchema:
		obj, ok := val.(*value.Object)
		if !ok {
			return fmt.Errorf("draft3: %q argument is %s, want object", keyword, value.TypeName(val))
		}
		nm := make(map[string]*Schema, obj.Len())
		for _, k := range obj.Keys() {
			e, _ := obj.Get(k)
			sub, err := subSchemaFromValue(e, voc)
			if err != nil {
				return err
			}
			nm[k] = sub
		}
		spv = PartMapSchema(nm)

	case ArgTypeSchemaOrSchemas:
		if a, ok := val.(value.Array); ok {
			schemas := make([]*Schema, 0, len(a))
			for _, e := range a {
				sub, err := subSchemaFromValue(e, voc)
				if err != nil {
					return err
				}
				schemas = append(schemas, sub)
			}
			spv = PartSchemaOrSchemas{Schemas: schemas}
		} else {
			sub, err := subSchemaFromValue(val, voc)
			if err != nil {
				return err
			}
			spv = PartSchemaOrSchemas{Schema: sub}
		}

	case ArgTypeBoolOrSchema:
		switch v := val.(type) {
		case value.Bool:
			spv = PartBoolOrSchema{Bool: bool(v)}
		case *value.Object:
			sub, err := subSchemaFromValue(v, voc)
			if err != nil {
				return err
			}
			spv = PartBoolOrSchema{Schema: sub}
		default:
			return fmt.Errorf("draft3: %q argument is %s, want boolean or schema", keyword, value.TypeName(val))
		}

	case ArgTypeMapArrayOrSchema:
		obj, ok := val.(*value.Object)
		if !ok {
			return fmt.Errorf("draft3: %q argument is %s, want object", keyword, value.TypeName(val))
		}
		nm := make(map[string]ArrayOrSchema, obj.Len())
		for _, k := range obj.Keys() {
			e, _ := obj.Get(k)
			var as ArrayOrSchema
			switch e := e.(type) {
			case value.String:
				as.Array = []string{string(e)}
			case value.Array:
				strs := make([]string, 0, len(e))
				for i, dep := range e {
					str, ok := dep.(value.String)
					if !ok {
						return fmt.Errorf("draft3: %q argument item %s:%d is %s, want string", keyword, k, i, value.TypeName(dep))
					}
					strs = append(strs, string(str))
				}
				as.Array = strs
			case *value.Object:
				sub, err := subSchemaFromValue(e, voc)
				if err != nil {
					return err
				}
				as.Schema = sub
			default:
				return fmt.Errorf("draft3: %q argument item %s is %s, want string, array of strings, or schema", keyword, k, value.TypeName(e))
			}
			nm[k] = as
		}
		spv = PartMapArrayOrSchema(nm)

	case ArgTypeDecls:
		decls, err := declsFromValue(keyword, val, voc)
		if err != nil {
			return err
		}
		spv = decls

	case ArgTypeAny:
		spv = PartAny{val}

	default:
		panic("can't happen")
	}

	s.Parts = append(s.Parts, Part{
		Keyword: sk,
		Value:   spv,
	})
	return nil
}

// declsFromValue builds the union argument of "type" or "disallow":
// a single declaration or an array of declarations, each a primitive
// class name or a subschema.
func declsFromValue(keyword string, val value.Value, voc *Vocabulary) (PartDecls, error) {
	one := func(e value.Value) (TypeDecl, error) {
		switch e := e.(type) {
		case value.String:
			return TypeDecl{Name: string(e)}, nil
		case *value.Object:
			sub, err := subSchemaFromValue(e, voc)
			if err != nil {
				return TypeDecl{}, err
			}
			return TypeDecl{Schema: sub}, nil
		default:
			return TypeDecl{}, fmt.Errorf("draft3: %q declaration is %s, want string or schema", keyword, value.TypeName(e))
		}
	}

	if a, ok := val.(value.Array); ok {
		decls := make(PartDecls, 0, len(a))
		for _, e := range a {
			d, err := one(e)
			if err != nil {
				return nil, err
			}
			decls = append(decls, d)
		}
		return decls, nil
	}
	d, err := one(val)
	if err != nil {
		return nil, err
	}
	return PartDecls{d}, nil
}

// UnmarshalJSON decodes the JSON representation of a [Schema]
// using the default vocabulary.
// This implements [encoding/json.Unmarshaler].
func (s *Schema) UnmarshalJSON(data []byte) error {
	v, err := value.Decode(data)
	if err != nil {
		return err
	}
	ns, err := SchemaFromValue(v, nil, nil)
	if err != nil {
		return err
	}
	*s = *ns
	return nil
}
