// This file implements the selector half of stylesheet assembly: parsing
// a selector list into the chain-of-details structure selector matching
// walks against a node — combinators, pseudo-classes/elements, and
// attribute selectors.
package css

import (
	"github.com/lukehoban/browser/intern"
)

// DetailKind is the kind of one simple-selector component inside a
// compound selector.
type DetailKind int

const (
	DetailElement DetailKind = iota
	DetailUniversal
	DetailClass
	DetailID
	DetailPseudoClass
	DetailPseudoElement
	DetailAttribute
)

// AttrOp is the match operator an attribute detail applies.
type AttrOp int

const (
	AttrPresent AttrOp = iota
	AttrEqual
	AttrIncludes  // [attr~=value]: value is one of a whitespace-separated list
	AttrDashmatch // [attr|=value]: value, or value followed by '-'
)

// Detail is one simple selector: an element name, a class, an id, a
// pseudo-class/element, or an attribute test.
type Detail struct {
	Kind  DetailKind
	Name  *intern.Name
	Value *intern.Name // attribute value, or pseudo-class argument (e.g. lang())
	Op    AttrOp
}

// Combinator links a compound selector to the one before it (to its
// left in source order).
type Combinator int

const (
	CombinatorNone Combinator = iota
	CombinatorDescendant
	CombinatorChild
	CombinatorAdjacentSibling
)

// Selector is a compound selector (a set of Details that must all match
// the same node) linked by Combinator to Ancestor, the compound selector
// to its left. The rightmost compound in a chain is the one returned
// from ParseSelectorList; matching checks it first, then walks Ancestor.
//
// Specificity is computed once at construction (ids*10000 + classes*100
// + elements) and never recomputed — it is a field read, not a function
// call, everywhere else in the engine.
type Selector struct {
	Details     []Detail
	Combinator  Combinator
	Ancestor    *Selector
	Specificity int
}

// ParseSelectorList parses a comma-separated list of selectors, as
// appears in a rule's prelude. Each element is the rightmost Selector of
// one chain.
func ParseSelectorList(v *Vector, dict *intern.Dict) ([]*Selector, Error) {
	var out []*Selector
	for {
		v.SkipWhitespace()
		sel, err := parseSelectorChain(v, dict)
		if err != Ok {
			return nil, err
		}
		out = append(out, sel)
		v.SkipWhitespace()
		t := v.Peek()
		if t.Type == CHAR && t.Raw() == "," {
			v.Next()
			continue
		}
		break
	}
	if len(out) == 0 {
		return nil, Invalid
	}
	return out, Ok
}

// parseSelectorChain parses one combinator-linked chain of compound
// selectors and returns its rightmost link.
func parseSelectorChain(v *Vector, dict *intern.Dict) (*Selector, Error) {
	details, err := parseCompoundSelector(v, dict)
	if err != Ok {
		return nil, err
	}
	current := &Selector{Details: details}
	current.Specificity = specificityOf(details)

	for {
		mark := v.Mark()
		comb, sawWhitespace := peekCombinator(v)
		if comb == CombinatorNone && !sawWhitespace {
			break
		}
		details, err := parseCompoundSelector(v, dict)
		if err != Ok {
			if comb == CombinatorNone {
				// Trailing whitespace with nothing after it (end of prelude).
				v.Restore(mark)
				break
			}
			return nil, Invalid
		}
		if comb == CombinatorNone {
			comb = CombinatorDescendant
		}
		next := &Selector{Details: details, Combinator: comb, Ancestor: current}
		next.Specificity = current.Specificity + specificityOf(details)
		current = next
	}
	return current, Ok
}

// peekCombinator consumes any whitespace and an optional explicit
// combinator character ('>' or '+'), reporting which combinator (if any)
// follows and whether whitespace was seen (descendant combinators are
// whitespace with no explicit character).
func peekCombinator(v *Vector) (Combinator, bool) {
	sawWhitespace := false
	for v.Peek().Type == S {
		v.Next()
		sawWhitespace = true
	}
	t := v.Peek()
	if t.Type == CHAR {
		switch t.Raw() {
		case ">":
			v.Next()
			v.SkipWhitespace()
			return CombinatorChild, true
		case "+":
			v.Next()
			v.SkipWhitespace()
			return CombinatorAdjacentSibling, true
		}
	}
	return CombinatorNone, sawWhitespace
}

// parseCompoundSelector parses one run of simple selectors with no
// combinator between them: an optional element/universal selector
// followed by any number of class/id/attribute/pseudo details.
func parseCompoundSelector(v *Vector, dict *intern.Dict) ([]Detail, Error) {
	var details []Detail
	t := v.Peek()
	switch {
	case t.Type == IDENT:
		v.Next()
		details = append(details, Detail{Kind: DetailElement, Name: t.Ident})
	case t.Type == CHAR && t.Raw() == "*":
		v.Next()
		details = append(details, Detail{Kind: DetailUniversal})
	}

	for {
		t := v.Peek()
		switch {
		case t.Type == HASH:
			v.Next()
			details = append(details, Detail{Kind: DetailID, Name: t.Text})
		case t.Type == CHAR && t.Raw() == ".":
			v.Next()
			nt := v.Peek()
			if nt.Type != IDENT {
				return nil, Invalid
			}
			v.Next()
			details = append(details, Detail{Kind: DetailClass, Name: nt.Text})
		case t.Type == CHAR && t.Raw() == ":":
			v.Next()
			pseudoElement := false
			if nt := v.Peek(); nt.Type == CHAR && nt.Raw() == ":" {
				v.Next()
				pseudoElement = true
			}
			nt := v.Peek()
			if nt.Type != IDENT && nt.Type != FUNCTION {
				return nil, Invalid
			}
			v.Next()
			kind := DetailPseudoClass
			if pseudoElement {
				kind = DetailPseudoElement
			}
			d := Detail{Kind: kind, Name: nt.Ident}
			if nt.Type == FUNCTION {
				argT := v.Peek()
				if argT.Type == IDENT {
					v.Next()
					d.Value = argT.Text
				}
				ct := v.Peek()
				if ct.Type != CHAR || ct.Raw() != ")" {
					return nil, Invalid
				}
				v.Next()
			}
			details = append(details, d)
		case t.Type == CHAR && t.Raw() == "[":
			v.Next()
			d, err := parseAttributeDetail(v)
			if err != Ok {
				return nil, err
			}
			details = append(details, d)
		default:
			if len(details) == 0 {
				return nil, Invalid
			}
			return details, Ok
		}
	}
}

// parseAttributeDetail parses `[name]`, `[name=value]`, `[name~=value]`,
// or `[name|=value]` starting just after the '['.
func parseAttributeDetail(v *Vector) (Detail, Error) {
	v.SkipWhitespace()
	nt := v.Peek()
	if nt.Type != IDENT {
		return Detail{}, Invalid
	}
	v.Next()
	d := Detail{Kind: DetailAttribute, Name: nt.Ident, Op: AttrPresent}

	v.SkipWhitespace()
	t := v.Peek()
	if t.Type == CHAR && t.Raw() == "]" {
		v.Next()
		return d, Ok
	}
	switch {
	case t.Type == CHAR && t.Raw() == "=":
		v.Next()
		d.Op = AttrEqual
	case t.Type == CHAR && t.Raw() == "~" && v.PeekAt(1).Type == CHAR && v.PeekAt(1).Raw() == "=":
		v.Next()
		v.Next()
		d.Op = AttrIncludes
	case t.Type == CHAR && t.Raw() == "|" && v.PeekAt(1).Type == CHAR && v.PeekAt(1).Raw() == "=":
		v.Next()
		v.Next()
		d.Op = AttrDashmatch
	default:
		return Detail{}, Invalid
	}
	v.SkipWhitespace()
	vt := v.Peek()
	switch vt.Type {
	case STRING, IDENT:
		v.Next()
		d.Value = vt.Text
	default:
		return Detail{}, Invalid
	}
	v.SkipWhitespace()
	ct := v.Peek()
	if ct.Type != CHAR || ct.Raw() != "]" {
		return Detail{}, Invalid
	}
	v.Next()
	return d, Ok
}

// specificityOf computes one compound selector's contribution to the
// chain's total specificity: `ids*10000 + classes*100 + elements`.
// Pseudo-classes and attributes count with classes; pseudo-elements
// count with elements; the universal selector contributes nothing.
func specificityOf(details []Detail) int {
	var ids, classes, elements int
	for _, d := range details {
		switch d.Kind {
		case DetailID:
			ids++
		case DetailClass, DetailPseudoClass, DetailAttribute:
			classes++
		case DetailElement, DetailPseudoElement:
			elements++
		case DetailUniversal:
			// contributes 0
		}
	}
	return ids*10000 + classes*100 + elements
}
