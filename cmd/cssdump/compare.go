// Comparing an expected fixture value against a computed one reuses
// the same parser and decoder component B/A already provide, instead
// of hand-rolling a second value grammar for test fixtures: the
// expected value text is run through css.ParseDeclarationValue exactly
// as a real declaration would be, then decoded back with css.Decode,
// so "what does '1px solid red' mean" has exactly one implementation
// in this whole repo.
package main

import (
	"fmt"

	"github.com/lukehoban/browser/css"
	"github.com/lukehoban/browser/intern"
)

// parseExpectedValue parses text as property's value grammar and
// decodes it back into a css.Value, the same shape ComputedStyle.Get
// returns, so the two can be compared field by field.
func parseExpectedValue(property, text string) (css.Value, error) {
	op, ok := css.PropertyOpcode(property)
	if !ok {
		return css.Value{}, fmt.Errorf("unknown property %q", property)
	}
	dict := intern.New()
	vec := css.Tokenize(text, dict)
	buf, err := css.ParseDeclarationValue(property, vec, dict)
	if err != css.Ok {
		return css.Value{}, fmt.Errorf("property %q: value %q: %v", property, text, err)
	}
	r := css.NewReader(buf)
	gotOp, _, value := css.Decode(r)
	if gotOp != op {
		return css.Value{}, fmt.Errorf("property %q decoded to opcode %d, want %d", property, gotOp, op)
	}
	return value, nil
}

// valuesEqual compares two decoded css.Values structurally. Str/Str2
// compare by text rather than pointer identity since the expected
// value and the computed value were interned into two different
// dictionaries (one per Sheet, one scratch dictionary for the fixture
// text) and can never share a pointer even when equal.
func valuesEqual(a, b css.Value) bool {
	if a.Keyword != b.Keyword || a.IsSet != b.IsSet {
		return false
	}
	if a.Fixed != b.Fixed || a.Fixed2 != b.Fixed2 {
		return false
	}
	if a.Unit != b.Unit || a.Unit2 != b.Unit2 || a.Keyword2 != b.Keyword2 {
		return false
	}
	if a.Colour != b.Colour {
		return false
	}
	if a.Str.String() != b.Str.String() {
		return false
	}
	if a.ClipMask != b.ClipMask || a.HasRect != b.HasRect {
		return false
	}
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		ai, bi := a.Items[i], b.Items[i]
		if ai.Kind != bi.Kind || ai.Fixed != bi.Fixed {
			return false
		}
		if ai.Str.String() != bi.Str.String() || ai.Str2.String() != bi.Str2.String() {
			return false
		}
	}
	return true
}
