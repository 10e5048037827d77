package style

import "github.com/lukehoban/browser/css"

// matchSelector matches a single selector against node: check the
// rightmost compound selector first, then walk combinator links leftward.
func matchSelector(h Host, node Node, sel *css.Selector) bool {
	if !matchCompound(h, node, sel.Details) {
		return false
	}
	return matchAncestor(h, node, sel)
}

// matchAncestor walks sel's combinator chain leftward starting from node,
// which has already been confirmed to match sel's own Details.
func matchAncestor(h Host, node Node, sel *css.Selector) bool {
	if sel.Ancestor == nil {
		return true
	}
	switch sel.Combinator {
	case css.CombinatorDescendant:
		for p := h.Parent(node); p != nil; p = h.Parent(p) {
			if matchCompound(h, p, sel.Ancestor.Details) && matchAncestor(h, p, sel.Ancestor) {
				return true
			}
		}
		return false
	case css.CombinatorChild:
		p := h.Parent(node)
		if p == nil {
			return false
		}
		return matchCompound(h, p, sel.Ancestor.Details) && matchAncestor(h, p, sel.Ancestor)
	case css.CombinatorAdjacentSibling:
		p := h.PreviousSibling(node)
		if p == nil {
			return false
		}
		return matchCompound(h, p, sel.Ancestor.Details) && matchAncestor(h, p, sel.Ancestor)
	default:
		return false
	}
}

// matchCompound reports whether every detail of one compound selector
// matches node.
func matchCompound(h Host, node Node, details []css.Detail) bool {
	for _, d := range details {
		if !matchDetail(h, node, d) {
			return false
		}
	}
	return true
}

func matchDetail(h Host, node Node, d css.Detail) bool {
	switch d.Kind {
	case css.DetailUniversal:
		return true
	case css.DetailElement:
		name := h.Name(node)
		return name != "" && equalFold(name, d.Name.String())
	case css.DetailClass:
		return h.HasClass(node, d.Name.String())
	case css.DetailID:
		return h.HasID(node, d.Name.String())
	case css.DetailAttribute:
		name := d.Name.String()
		switch d.Op {
		case css.AttrPresent:
			return h.HasAttribute(node, name)
		case css.AttrEqual:
			return h.HasAttributeEqual(node, name, d.Value.String())
		case css.AttrIncludes:
			return h.HasAttributeIncludes(node, name, d.Value.String())
		case css.AttrDashmatch:
			return h.HasAttributeDashmatch(node, name, d.Value.String())
		}
		return false
	case css.DetailPseudoClass:
		return matchPseudoClass(h, node, d)
	case css.DetailPseudoElement:
		// Pseudo-elements (:first-line, :first-letter, etc.) address a
		// sub-fragment of the node's rendered box, not the node itself;
		// component D's Non-goal is layout, so these never match during
		// plain selection. Compute takes no pseudo-element argument, so no
		// pseudo-element style is computed.
		return false
	default:
		return false
	}
}

// matchPseudoClass implements the handful of CSS 2.1 structural and
// dynamic pseudo-classes that a Host-based matcher can resolve without
// document-specific state: :first-child falls straight out of the Host
// contract; :lang() and the dynamic ones (:hover, :active, :focus,
// :visited, :link) are caller-supplied through activePseudoClasses on
// Compute, since they depend on information (user input, visited-link
// history, document language) the engine has no way to derive itself.
func matchPseudoClass(h Host, node Node, d css.Detail) bool {
	switch d.Name.Lower().String() {
	case "first-child":
		return h.IsFirstChild(node)
	default:
		return activePseudoClasses[d.Name.Lower().String()]
	}
}

// activePseudoClasses is set for the duration of one Compute call by
// withActivePseudoClasses; matchPseudoClass reads it for any pseudo-class
// Host itself can't resolve (:hover, :active, :focus, :visited, :link,
// :lang(...)). This isn't meant to be thread-safe: a selection context is
// affine to one caller thread, so a scoped package var costs nothing extra.
var activePseudoClasses map[string]bool

func withActivePseudoClasses(set map[string]bool, fn func()) {
	prev := activePseudoClasses
	activePseudoClasses = set
	defer func() { activePseudoClasses = prev }()
	fn()
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
