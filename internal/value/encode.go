// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// DefaultIndent is the JSON indentation unit used when none is given.
const DefaultIndent = "  "

type encState struct {
	indent   string
	sortKeys bool
}

// EncodeOption configures WriteJSON and WriteYAML.
type EncodeOption func(*encState)

// Indent sets the JSON indentation unit. An empty string writes compact JSON.
func Indent(s string) EncodeOption {
	return func(es *encState) { es.indent = s }
}

// SortedKeys writes object keys in lexical order instead of insertion order.
func SortedKeys(v bool) EncodeOption {
	return func(es *encState) { es.sortKeys = v }
}

func newEncState(opts []EncodeOption) *encState {
	es := &encState{indent: DefaultIndent}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// WriteJSON writes v as JSON followed by a newline. Object keys keep
// insertion order unless SortedKeys is set; HTML characters are not escaped.
func WriteJSON(w io.Writer, v Value, opts ...EncodeOption) error {
	es := newEncState(opts)
	if es.sortKeys {
		v = SortKeys(v)
	}

	var compact bytes.Buffer
	if err := appendJSON(&compact, v); err != nil {
		return err
	}

	out := &compact
	if es.indent != "" {
		var indented bytes.Buffer
		if err := json.Indent(&indented, compact.Bytes(), "", es.indent); err != nil {
			return fmt.Errorf("indenting JSON: %w", err)
		}
		out = &indented
	}
	out.WriteByte('\n')

	_, err := w.Write(out.Bytes())
	return err
}

// MarshalJSON encodes the object with its keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v Value) error {
	switch v := v.(type) {
	case String:
		return appendJSONString(buf, string(v))
	case *Object:
		buf.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := appendJSON(buf, v.values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case Array:
		buf.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Null, nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("encoding JSON: unsupported value type %T", v)
	}
	return nil
}

func appendJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding JSON string: %w", err)
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// WriteYAML writes v as a YAML document. Strings are always emitted as
// strings, quoted where YAML would otherwise read them as another type.
func WriteYAML(w io.Writer, v Value, opts ...EncodeOption) error {
	es := newEncState(opts)
	if es.sortKeys {
		v = SortKeys(v)
	}

	node, err := yamlNode(v)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func yamlNode(v Value) (*yaml.Node, error) {
	switch v := v.(type) {
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v)}, nil
	case *Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.keys {
			child, err := yamlNode(v.values[k])
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			n.Content = append(n.Content, key, child)
		}
		return n, nil
	case Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v {
			child, err := yamlNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case Null, nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	default:
		return nil, fmt.Errorf("encoding YAML: unsupported value type %T", v)
	}
}
