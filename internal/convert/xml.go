// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"

	"github.com/ollyswanson/fixture-converter/internal/markup"
	"github.com/ollyswanson/fixture-converter/internal/value"
	"github.com/ollyswanson/fixture-converter/internal/xmljson"
	"github.com/ollyswanson/fixture-converter/pkg/types"
)

// XMLConverter parses XML, converts it with the xmljson engine and encodes
// the result as JSON or YAML. It holds no per-document state and is safe for
// concurrent use.
type XMLConverter struct {
	engine *xmljson.Config
	out    types.OutputConfig
}

// NewXMLConverter validates the engine and output settings and returns a
// converter using them.
func NewXMLConverter(engine types.EngineConfig, out types.OutputConfig) (*XMLConverter, error) {
	cfg, err := xmljson.ConfigFrom(engine)
	if err != nil {
		return nil, err
	}
	switch out.Format {
	case "":
		out.Format = types.FormatJSON
	case types.FormatJSON, types.FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q (want json or yaml)", out.Format)
	}
	return &XMLConverter{engine: cfg, out: out}, nil
}

// Convert reads one XML document from r and writes the converted output to w.
func (x *XMLConverter) Convert(r io.Reader, w io.Writer) error {
	root, err := markup.Parse(r)
	if err != nil {
		return err
	}

	doc := xmljson.ConvertDocument(root, x.engine)

	var v value.Value = doc
	if x.out.Root != "" {
		if root.Name != x.out.Root {
			return fmt.Errorf("root element is %q, expected %q", root.Name, x.out.Root)
		}
		v, _ = doc.Get(x.out.Root)
	}

	opts := []value.EncodeOption{value.SortedKeys(x.out.SortKeys)}
	if x.out.Format == types.FormatYAML {
		return value.WriteYAML(w, v, opts...)
	}
	opts = append(opts, value.Indent(x.out.Indent))
	return value.WriteJSON(w, v, opts...)
}
