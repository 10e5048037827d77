// This file adapts dom.Node to the Host interface the cascade engine
// consumes, so the real document tree (not just cascade_test.go's
// fakeHost) can drive Compute. The walk logic (skip text nodes for
// sibling/first-child purposes, stop at the document root for ancestor
// walks) is expressed entirely against the Host capability set, so
// dom.Node itself carries no CSS-specific method.
package style

import "github.com/lukehoban/browser/dom"

// DOMHost implements Host over *dom.Node. It is stateless; the zero
// value is ready to use and a single instance may be shared across
// concurrent Compute calls on different node/sheet combinations, since
// Host methods never mutate the tree.
type DOMHost struct{}

func domNode(n Node) *dom.Node {
	if n == nil {
		return nil
	}
	return n.(*dom.Node)
}

// elementParent returns n's nearest ancestor that is an element node,
// skipping the document root (which has no name to match against) and
// any intervening non-element node. dom.Node never nests an element
// inside a text node, so in practice this is just n.Parent filtered to
// ElementNode, but the filter keeps this adapter correct if that ever
// changes.
func elementParent(n *dom.Node) *dom.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == dom.ElementNode {
			return p
		}
		if p.Type == dom.DocumentNode {
			return nil
		}
	}
	return nil
}

// previousElementSibling returns n's nearest preceding sibling that is
// an element node, skipping text nodes the way CSS's adjacent-sibling
// combinator requires (whitespace and text content between elements
// never counts as a sibling for matching purposes).
func previousElementSibling(n *dom.Node) *dom.Node {
	p := n.Parent
	if p == nil {
		return nil
	}
	idx := -1
	for i, c := range p.Children {
		if c == n {
			idx = i
			break
		}
	}
	for i := idx - 1; i >= 0; i-- {
		if p.Children[i].Type == dom.ElementNode {
			return p.Children[i]
		}
	}
	return nil
}

func (DOMHost) Name(n Node) string { return domNode(n).Data }

func (DOMHost) Parent(n Node) Node {
	p := elementParent(domNode(n))
	if p == nil {
		return nil
	}
	return p
}

func (DOMHost) PreviousSibling(n Node) Node {
	p := previousElementSibling(domNode(n))
	if p == nil {
		return nil
	}
	return p
}

func (h DOMHost) NamedAncestor(n Node, name string) Node {
	for p := h.Parent(n); p != nil; p = h.Parent(p) {
		if h.Name(p) == name {
			return p
		}
	}
	return nil
}

func (h DOMHost) NamedParent(n Node, name string) Node {
	p := h.Parent(n)
	if p != nil && h.Name(p) == name {
		return p
	}
	return nil
}

func (h DOMHost) NamedPreviousSibling(n Node, name string) Node {
	p := h.PreviousSibling(n)
	if p != nil && h.Name(p) == name {
		return p
	}
	return nil
}

func (DOMHost) HasClass(n Node, name string) bool {
	for _, c := range domNode(n).Classes() {
		if c == name {
			return true
		}
	}
	return false
}

func (DOMHost) HasID(n Node, name string) bool { return domNode(n).ID() == name }

func (DOMHost) HasAttribute(n Node, name string) bool {
	_, ok := domNode(n).Attributes[name]
	return ok
}

func (DOMHost) HasAttributeEqual(n Node, name, value string) bool {
	return domNode(n).GetAttribute(name) == value
}

// HasAttributeDashmatch implements the CSS2.1 "|=" operator: the
// attribute value either equals value exactly or begins with
// value immediately followed by a hyphen (used for language subtags,
// e.g. hreflang|=en matching "en" or "en-US").
func (DOMHost) HasAttributeDashmatch(n Node, name, value string) bool {
	v, ok := domNode(n).Attributes[name]
	if !ok {
		return false
	}
	return v == value || (len(v) > len(value) && v[:len(value)+1] == value+"-")
}

// HasAttributeIncludes implements the CSS2.1 "~=" operator: value
// appears as one whitespace-separated word within the attribute's
// value.
func (DOMHost) HasAttributeIncludes(n Node, name, value string) bool {
	v, ok := domNode(n).Attributes[name]
	if !ok || value == "" {
		return false
	}
	word := ""
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == ' ' {
			if word == value {
				return true
			}
			word = ""
		} else {
			word += string(v[i])
		}
	}
	return false
}

func (DOMHost) IsFirstChild(n Node) bool {
	return previousElementSibling(domNode(n)) == nil && elementParent(domNode(n)) != nil
}
