package markup

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// Node is one element of a parsed markup tree. The root returned by Parse is
// the document itself: it has no name and holds the top-level elements as
// children.
type Node struct {
	el *etree.Element
}

func wrap(el *etree.Element) *Node {
	if el == nil {
		return nil
	}
	return &Node{el: el}
}

// Name returns the element's local name.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.el.Tag
}

// Children returns the child elements in document order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	els := n.el.ChildElements()
	out := make([]*Node, len(els))
	for i, el := range els {
		out[i] = wrap(el)
	}
	return out
}

// Child returns the first child element called name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	return wrap(n.el.SelectElement(name))
}

// Find walks a path of child names and returns the element at its end, or nil.
func (n *Node) Find(path ...string) *Node {
	cur := n
	for _, p := range path {
		cur = cur.Child(p)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Text returns the element's character data. It reports false only for a
// nil node; an empty element yields "" and true.
func (n *Node) Text() (string, bool) {
	if n == nil {
		return "", false
	}
	return n.el.Text(), true
}

// ChildText is shorthand for n.Child(name).Text().
func (n *Node) ChildText(name string) (string, bool) {
	return n.Child(name).Text()
}

// Attr returns the value of an attribute on the element.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	a := n.el.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// Parse parses a fragment of zero or more top-level elements.
func Parse(fragment string) (*Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(fragment); err != nil {
		return nil, fmt.Errorf("markup: %w", err)
	}
	return wrap(&doc.Element), nil
}

// ParseDocument parses markup read from r.
func ParseDocument(r io.Reader) (*Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("markup: %w", err)
	}
	return wrap(&doc.Element), nil
}
