// Package style implements selector matching and cascade: given a set of
// stylesheets and a document node, it finds every applicable rule, ranks
// their declarations by CSS 2.1 cascade order, and materializes a
// computed-style record by executing the winning bytecode.
//
// The package never touches a concrete DOM. It is handed a Host, a small
// capability set the caller implements over its own tree, so the cascade
// engine has no import-time dependency on any particular tree
// representation — github.com/lukehoban/browser/dom implements Host for
// its own *dom.Node, but nothing in this package knows that.
package style

// Node is an opaque handle into the host's document tree. The cascade
// engine never dereferences it directly; every operation goes through Host.
type Node = any

// Host is the capability set required of the document tree: name/parent/
// sibling walks and the handful of predicates selector details test
// against a node. Every accessor is synchronous and non-blocking.
//
// Case rules follow CSS 2.1 §3: class and id are case-sensitive in HTML;
// element, pseudo, and attribute names are case-insensitive; attribute
// values are case-insensitive except where the document language says
// otherwise. The Host implementation owns that judgment — the cascade
// engine only ever asks "does this match", never inspects raw text itself.
type Host interface {
	// Name returns node's element name, or "" if node has none (e.g. a
	// text node, which never matches any selector detail).
	Name(node Node) string
	Parent(node Node) Node
	PreviousSibling(node Node) Node

	// NamedAncestor returns the nearest ancestor of node named name, or
	// nil. NamedParent and NamedPreviousSibling are the single-hop forms
	// used by child and adjacent-sibling combinators.
	NamedAncestor(node Node, name string) Node
	NamedParent(node Node, name string) Node
	NamedPreviousSibling(node Node, name string) Node

	HasClass(node Node, name string) bool
	HasID(node Node, name string) bool
	HasAttribute(node Node, name string) bool
	HasAttributeEqual(node Node, name, value string) bool
	HasAttributeDashmatch(node Node, name, value string) bool
	HasAttributeIncludes(node Node, name, value string) bool

	IsFirstChild(node Node) bool
}
