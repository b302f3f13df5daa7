// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup holds the parsed XML tree consumed by the converter and the
// parser that produces it. The tree keeps attribute order and child order
// exactly as they appear in the source.
package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ErrEmptyDocument is returned by Parse when the input has no root element.
var ErrEmptyDocument = errors.New("no root element found")

// Node is one node of a parsed tree: *Element, Text or Other.
type Node interface {
	markupNode()
}

// Attr is a single attribute, keyed by its local name.
type Attr struct {
	Name  string
	Value string
}

// Element is an XML element with its attributes and children in source order.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

// Text is character data, including CDATA sections.
type Text struct {
	Content string
}

// Other stands for comments, processing instructions and other nodes that
// never produce output.
type Other struct {
	Kind string
}

func (*Element) markupNode() {}
func (Text) markupNode()     {}
func (Other) markupNode()    {}

// ParseError reports XML that could not be parsed.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing XML: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a whole XML document from r and returns its root element.
//
// Element and attribute names are local names; namespace declarations are
// not reported as attributes. Text content is trimmed and whitespace-only
// text between elements is dropped.
func Parse(r io.Reader) (*Element, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		if err.Error() == xmlqueryNoRoot {
			return nil, ErrEmptyDocument
		}
		return nil, &ParseError{Err: err}
	}

	var root *xmlquery.Node
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		if root != nil {
			return nil, &ParseError{Err: fmt.Errorf("second root element <%s> after <%s>", n.Data, root.Data)}
		}
		root = n
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return buildElement(root), nil
}

// xmlqueryNoRoot is the message xmlquery.Parse fails with when the input
// holds no element at all.
const xmlqueryNoRoot = "xmlquery: invalid XML document"

func buildElement(n *xmlquery.Node) *Element {
	el := &Element{Name: n.Data}

	for _, attr := range n.Attr {
		if isNamespaceDecl(attr) {
			continue
		}
		el.Attrs = append(el.Attrs, Attr{Name: attr.Name.Local, Value: attr.Value})
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if node := buildNode(child); node != nil {
			el.Children = append(el.Children, node)
		}
	}
	return el
}

func buildNode(n *xmlquery.Node) Node {
	switch n.Type {
	case xmlquery.ElementNode:
		return buildElement(n)
	case xmlquery.TextNode, xmlquery.CharDataNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return nil
		}
		return Text{Content: text}
	case xmlquery.CommentNode:
		return Other{Kind: "comment"}
	case xmlquery.DeclarationNode:
		return Other{Kind: "declaration"}
	default:
		return Other{Kind: "other"}
	}
}

func isNamespaceDecl(attr xmlquery.Attr) bool {
	return attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns")
}
