// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xmljson converts a parsed XML tree into a structured value tree.
//
// XML cannot tell one occurrence of an element from a list holding a single
// element, so the converter decides locally: repeated sibling names always
// become arrays, and a sole child becomes a one-element array only when the
// configured plural.Heuristic judges its name to be the singular of its
// parent's name. Attributes and child elements share one key space per
// object; all scalars are strings.
package xmljson

import (
	"fmt"

	"github.com/ollyswanson/fixture-converter/internal/markup"
	"github.com/ollyswanson/fixture-converter/internal/plural"
	"github.com/ollyswanson/fixture-converter/internal/value"
	"github.com/ollyswanson/fixture-converter/pkg/types"
)

// TextKey is the key produced for a text node converted on its own, which
// happens when its parent element cannot collapse to a string.
const TextKey = "value"

// Config is the immutable converter configuration. It is safe for
// concurrent use by multiple conversions.
type Config struct {
	ignored   map[string]struct{}
	heuristic plural.Heuristic
}

// NewConfig builds a Config that drops the named attributes and detects
// lists with the given heuristic. A nil heuristic disables list detection.
func NewConfig(ignoreAttributes []string, h plural.Heuristic) *Config {
	ignored := make(map[string]struct{}, len(ignoreAttributes))
	for _, name := range ignoreAttributes {
		ignored[name] = struct{}{}
	}
	return &Config{ignored: ignored, heuristic: h}
}

// ConfigFrom builds a Config from engine settings, resolving the list
// detection strategy.
func ConfigFrom(cfg types.EngineConfig) (*Config, error) {
	strategy, err := plural.Parse(string(cfg.ListDetection))
	if err != nil {
		return nil, err
	}
	h, err := plural.New(strategy)
	if err != nil {
		return nil, err
	}
	return NewConfig(cfg.IgnoreAttributes, h), nil
}

// IsIgnored reports whether attributes with this name are left out of the output.
func (c *Config) IsIgnored(name string) bool {
	_, ok := c.ignored[name]
	return ok
}

func (c *Config) isListCandidate(parent, child string) bool {
	return c.heuristic != nil && c.heuristic.LooksSingularOf(parent, child)
}

// ConvertDocument converts a root element into a single-key object holding
// the root's value under its tag name.
func ConvertDocument(root *markup.Element, cfg *Config) *value.Object {
	key, v := convertElement(root, cfg)
	return value.Single(key, v)
}

// ConvertNode converts one node into a key/value pair. ok is false for nodes
// that produce no output, such as comments.
func ConvertNode(node markup.Node, cfg *Config) (key string, v value.Value, ok bool) {
	switch n := node.(type) {
	case *markup.Element:
		key, v = convertElement(n, cfg)
		return key, v, true
	case markup.Text:
		return TextKey, value.String(n.Content), true
	default:
		return "", nil, false
	}
}

func convertElement(el *markup.Element, cfg *Config) (string, value.Value) {
	// An element without attributes collapses to its first text child, even
	// when it also has element children.
	if len(el.Attrs) == 0 {
		for _, child := range el.Children {
			if text, ok := child.(markup.Text); ok {
				return el.Name, value.String(text.Content)
			}
		}
	}

	obj := value.NewObject()
	for _, attr := range el.Attrs {
		if cfg.IsIgnored(attr.Name) {
			continue
		}
		obj.Set(attr.Name, value.String(attr.Value))
	}

	// Children are set after attributes, so a child wins a name collision.
	Aggregate(el.Name, el.Children, cfg).Range(func(k string, v value.Value) bool {
		obj.Set(k, v)
		return true
	})
	return el.Name, obj
}

// Aggregate converts the children of the element named parent and merges
// same-named results. The first occurrence of a name is stored as is, or as
// a one-element array when it looks like a list member of parent; the first
// duplicate promotes the stored value to an array and later duplicates are
// appended.
func Aggregate(parent string, children []markup.Node, cfg *Config) *value.Object {
	acc := value.NewObject()

	for _, child := range children {
		key, v, ok := ConvertNode(child, cfg)
		if !ok {
			continue
		}

		current, exists := acc.Get(key)
		if !exists {
			if cfg.isListCandidate(parent, key) {
				acc.Set(key, value.Array{v})
			} else {
				acc.Set(key, v)
			}
			continue
		}

		switch cur := current.(type) {
		case value.String, *value.Object:
			acc.Set(key, value.Array{cur, v})
		case value.Array:
			acc.Set(key, append(cur, v))
		default:
			panic(fmt.Sprintf("xmljson: aggregated %q holds unexpected %T", key, current))
		}
	}
	return acc
}
