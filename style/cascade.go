// This file implements the cascade proper: gathering every declaration
// whose selector matches a node from a list of sheets, ranking them per
// CSS 2.1 §6.4's cascading order, and materializing the winners into a
// ComputedStyle. Matching against an arbitrary list of sheets across UA,
// user, and author origins — not just a single author sheet — is what
// lets effectiveOrigin fold CSS 2.1 Table 6.1 into one linear rank below.
package style

import "github.com/lukehoban/browser/css"

// SheetRef pairs a parsed stylesheet with nothing else; it exists as a
// named type so Compute's signature reads as "a list of sheets" rather
// than a bare []*css.Sheet, leaving room for a future per-sheet override
// (e.g. disabled alternates) without changing every call site.
type SheetRef struct {
	Sheet *css.Sheet
}

// candidate is one matched declaration awaiting cascade ranking.
type candidate struct {
	flags       css.Flags
	value       css.Value
	origin      css.Origin
	specificity int
	ruleIndex   int
}

// effectiveOrigin folds origin and the !important flag into CSS 2.1 Table
// 6.1's one linear rank: normal UA < normal user < normal author <
// important author < important user < important UA. Untangling the
// important flag this way means cascade ranking is a single tuple compare
// instead of a two-phase "pick the important bucket first" branch.
func effectiveOrigin(origin css.Origin, important bool) int {
	if !important {
		return int(origin)
	}
	return 5 - int(origin)
}

// losesTo reports whether candidate b should replace the current winner a
// for the same opcode, per CSS 2.1 §6.4.1: effective origin first, then
// specificity, then rule index (the later rule wins ties). Rule indices
// count insertion order within one sheet, so a tie between rules of two
// different sheets goes to the rule with the higher index in its own
// sheet; the order of sheets in Compute's list plays no part.
func (a candidate) losesTo(b candidate) bool {
	ao := effectiveOrigin(a.origin, a.flags.IsImportant())
	bo := effectiveOrigin(b.origin, b.flags.IsImportant())
	if bo != ao {
		return bo > ao
	}
	if b.specificity != a.specificity {
		return b.specificity > a.specificity
	}
	return b.ruleIndex >= a.ruleIndex
}

// Compute runs the full cascade for node against sheets: gather every
// matching declaration from every sheet whose media applies, pick one
// winner per opcode, then materialize and compose against parent (nil for
// the document root). activePseudoClasses, if non-nil, resolves any
// dynamic pseudo-class (:hover, :active, :focus, :visited, :link) or
// :lang() a selector references; see withActivePseudoClasses.
func Compute(h Host, node Node, sheets []SheetRef, media css.MediaMask, parent *ComputedStyle, activePseudoClasses map[string]bool) *ComputedStyle {
	var winners map[css.Opcode]candidate
	gather := func() {
		winners = make(map[css.Opcode]candidate)
		for _, ref := range sheets {
			gatherSheet(h, node, ref.Sheet, media, winners)
		}
	}
	if activePseudoClasses != nil {
		withActivePseudoClasses(activePseudoClasses, gather)
	} else {
		gather()
	}

	cs := newComputedStyle()
	for op, c := range winners {
		cs.applyWinner(op, c.flags, c.value)
	}
	cs.compose(parent)
	return cs
}

// gatherSheet walks one sheet's rule list, recursing into @media blocks
// whose mask intersects media, and folds every matching RuleStyle
// declaration into winners.
func gatherSheet(h Host, node Node, sheet *css.Sheet, media css.MediaMask, winners map[css.Opcode]candidate) {
	if sheet == nil || sheet.Media&media == 0 {
		return
	}
	gatherRules(h, node, sheet.Rules, sheet.Origin, media, winners)
}

func gatherRules(h Host, node Node, rules []*css.Rule, origin css.Origin, media css.MediaMask, winners map[css.Opcode]candidate) {
	for _, rule := range rules {
		switch rule.Kind {
		case RuleStyleKind:
			gatherStyleRule(h, node, rule, origin, winners)
		case RuleMediaKind:
			if rule.MediaMask&media != 0 {
				gatherRules(h, node, rule.Rules, origin, media, winners)
			}
		}
	}
}

// RuleStyleKind and RuleMediaKind alias css.RuleStyle/css.RuleMedia so this
// file reads as "the two rule kinds component D ever walks" without a
// stutter of css. prefixes in the hot switch above.
const (
	RuleStyleKind = css.RuleStyle
	RuleMediaKind = css.RuleMedia
)

func gatherStyleRule(h Host, node Node, rule *css.Rule, origin css.Origin, winners map[css.Opcode]candidate) {
	matched := false
	best := 0
	for _, sel := range rule.Selectors {
		if matchSelector(h, node, sel) {
			matched = true
			if sel.Specificity > best {
				best = sel.Specificity
			}
		}
	}
	if !matched {
		return
	}

	r := css.NewReader(rule.Style)
	for !r.Done() {
		op, flags, value := css.Decode(r)
		cand := candidate{flags: flags, value: value, origin: origin, specificity: best, ruleIndex: rule.Index}
		if prev, ok := winners[op]; !ok || prev.losesTo(cand) {
			winners[op] = cand
		}
	}
}
