package types

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-json"

	"github.com/schemata/draft3/pkg/value"
)

// MarshalJSON marshals a [Schema] into JSON format.
// This implements [encoding/json.Marshaler].
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.marshalSchema(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// marshalSchema marshals a [Schema] into JSON format,
// storing the results in buf.
func (s *Schema) marshalSchema(buf *bytes.Buffer) error {
	buf.WriteByte('{')

	first := true
	for _, part := range s.Parts {
		if first {
			first = false
		} else {
			buf.WriteByte(',')
		}

		fmt.Fprintf(buf, "%s:", encodeString(part.Keyword.Name))

		switch v := part.Value.(type) {
		case PartBool:
			fmt.Fprintf(buf, "%t", v)
		case PartString:
			buf.Write(encodeString(string(v)))
		case PartStrings:
			buf.WriteByte('[')
			for i, s := range v {
				if i > 0 {
					buf.WriteByte(',')
				}
				buf.Write(encodeString(s))
			}
			buf.WriteByte(']')
		case PartInt:
			fmt.Fprintf(buf, "%d", v)
		case PartNumber:
			buf.WriteString(value.RatString(v.Rat))
		case PartSchema:
			if err := v.S.marshalSchema(buf); err != nil {
				return err
			}
		case PartSchemas:
			if err := marshalSchemas(buf, v); err != nil {
				return err
			}
		case PartMapSchema:
			buf.WriteByte('{')
			// Sort the names for predictable results.
			names := slices.Sorted(maps.Keys(v))
			for i, name := range names {
				if i > 0 {
					buf.WriteByte(',')
				}
				fmt.Fprintf(buf, "%s:", encodeString(name))
				if err := v[name].marshalSchema(buf); err != nil {
					return err
				}
			}
			buf.WriteByte('}')
		case PartSchemaOrSchemas:
			if v.Schema != nil {
				if err := v.Schema.marshalSchema(buf); err != nil {
					return err
				}
			} else {
				if err := marshalSchemas(buf, v.Schemas); err != nil {
					return err
				}
			}
		case PartBoolOrSchema:
			if v.Schema != nil {
				if err := v.Schema.marshalSchema(buf); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(buf, "%t", v.Bool)
			}
		case PartMapArrayOrSchema:
			buf.WriteByte('{')
			// Sort the names for predictable results.
			names := slices.Sorted(maps.Keys(v))
			for i, name := range names {
				if i > 0 {
					buf.WriteByte(',')
				}
				fmt.Fprintf(buf, "%s:", encodeString(name))
				as := v[name]
				if as.Schema != nil {
					if err := as.Schema.marshalSchema(buf); err != nil {
						return err
					}
				} else {
					buf.WriteByte('[')
					for j, s := range as.Array {
						if j > 0 {
							buf.WriteByte(',')
						}
						buf.Write(encodeString(s))
					}
					buf.WriteByte(']')
				}
			}
			buf.WriteByte('}')
		case PartDecls:
			if len(v) == 1 && v[0].Schema == nil {
				buf.Write(encodeString(v[0].Name))
				break
			}
			buf.WriteByte('[')
			for i, decl := range v {
				if i > 0 {
					buf.WriteByte(',')
				}
				if decl.Schema != nil {
					if err := decl.Schema.marshalSchema(buf); err != nil {
						return err
					}
				} else {
					buf.Write(encodeString(decl.Name))
				}
			}
			buf.WriteByte(']')
		case PartAny:
			data, err := value.JSON(v.V)
			if err != nil {
				return err
			}
			buf.Write(data)
		default:
			return fmt.Errorf("schema.MarshalJSON: unexpected type %T", part.Value)
		}
	}

	buf.WriteByte('}')

	return nil
}

// marshalSchemas marshals a list of schemas as a JSON array.
func marshalSchemas(buf *bytes.Buffer, schemas []*Schema) error {
	buf.WriteByte('[')
	for i, s := range schemas {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := s.marshalSchema(buf); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

// encodeString returns the JSON encoding of s.
func encodeString(s string) []byte {
	data, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("json.Marshal failed, which should be impossible: %v", err))
	}
	return data
}
