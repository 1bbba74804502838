package value

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes YAML data into a [Value].
// Only the JSON-compatible subset of YAML is accepted: mapping
// keys must be strings and non-finite floats are rejected.
// Mapping order is preserved, which yaml.v3 nodes guarantee.
func DecodeYAML(data []byte) (Value, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return yamlValue(n.Content[0])
	}
	return yamlValue(&n)
}

func yamlValue(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.MappingNode:
		o := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode || keyNode.Tag != "!!str" {
				return nil, fmt.Errorf("value: YAML mapping key at line %d is not a string", keyNode.Line)
			}
			v, err := yamlValue(valNode)
			if err != nil {
				return nil, err
			}
			o.Set(keyNode.Value, v)
		}
		return o, nil
	case yaml.SequenceNode:
		a := make(Array, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			a = append(a, v)
		}
		return a, nil
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return Null{}, nil
		case "!!bool":
			b, err := strconv.ParseBool(n.Value)
			if err != nil {
				return nil, fmt.Errorf("value: bad YAML bool %q at line %d", n.Value, n.Line)
			}
			return Bool(b), nil
		case "!!int":
			if i, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
				return Int(i), nil
			}
			r, ok := new(big.Rat).SetString(n.Value)
			if !ok {
				return nil, fmt.Errorf("value: bad YAML integer %q at line %d", n.Value, n.Line)
			}
			return Num{Rat: r}, nil
		case "!!float":
			r, ok := new(big.Rat).SetString(n.Value)
			if !ok {
				return nil, fmt.Errorf("value: non-finite YAML float %q at line %d", n.Value, n.Line)
			}
			return Num{Rat: r}, nil
		case "!!str", "":
			return String(n.Value), nil
		default:
			return nil, fmt.Errorf("value: unsupported YAML tag %s at line %d", n.Tag, n.Line)
		}
	}
	return nil, errors.New("value: unsupported YAML node")
}
