// This file implements the computed-value record: the per-node result of
// running the cascade, seeded with CSS 2.1's initial values and resolved
// against a parent's own computed style for the properties that inherit.
//
// Properties split into a small inline-indexed "common" array and an
// "uncommon" map for the rest, since most elements only ever ask for a
// handful of properties (color, font metrics, display) and a flat record
// keyed by the whole CSS 2.1 property set would waste cache on every node.
package style

import (
	"github.com/lukehoban/browser/css"
	"github.com/lukehoban/browser/fixed"
	"github.com/lukehoban/browser/intern"
)

// commonOpcodes are the properties every node is overwhelmingly likely to
// ask for, stored inline in a fixed array instead of the uncommon map:
// color and the font/text metrics every layout walk consults, plus display.
var commonOpcodes = [...]css.Opcode{
	css.OpColor,
	css.OpFontSize,
	css.OpFontFamily,
	css.OpFontWeight,
	css.OpFontStyle,
	css.OpTextDecoration,
	css.OpLineHeight,
	css.OpDisplay,
}

var commonIndex = func() map[css.Opcode]int {
	m := make(map[css.Opcode]int, len(commonOpcodes))
	for i, op := range commonOpcodes {
		m[op] = i
	}
	return m
}()

// slot holds one property's composed state: either a concrete value, or a
// pending "inherit from parent" marker that compose resolves once the
// parent's own ComputedStyle is final.
type slot struct {
	value   css.Value
	inherit bool
}

// ComputedStyle is one node's fully-cascaded property set. Construct with
// newComputedStyle; Get is the only way callers outside this package should
// read a value, since it's what applies the currentColor substitution.
type ComputedStyle struct {
	common   [len(commonOpcodes)]slot
	uncommon map[css.Opcode]slot
}

func newComputedStyle() *ComputedStyle {
	cs := &ComputedStyle{uncommon: make(map[css.Opcode]slot, len(initialValues))}
	for op, v := range initialValues {
		cs.setSlot(op, slot{value: v, inherit: inheritedOpcodes[op]})
	}
	return cs
}

func (cs *ComputedStyle) getSlot(op css.Opcode) slot {
	if i, ok := commonIndex[op]; ok {
		return cs.common[i]
	}
	return cs.uncommon[op]
}

func (cs *ComputedStyle) setSlot(op css.Opcode, s slot) {
	if i, ok := commonIndex[op]; ok {
		cs.common[i] = s
		return
	}
	cs.uncommon[op] = s
}

// Get returns op's final, fully-composed value. compose must already have
// run (it is called once from within Compute, immediately after the
// cascade has picked winners), and any border/outline colour left at the
// currentColor sentinel has already been resolved against this node's own
// OpColor.
func (cs *ComputedStyle) Get(op css.Opcode) css.Value {
	return cs.getSlot(op).value
}

// applyWinner records a winning declaration's decoded value for op,
// overwriting whatever newComputedStyle seeded. An explicit `inherit`
// keyword always takes priority over the decoded value, which is
// meaningless in that case (the parser still decodes it, since the OPV
// carries a real operand shape even for the inherited form — the inherit
// flag is orthogonal to the value field).
func (cs *ComputedStyle) applyWinner(op css.Opcode, flags css.Flags, v css.Value) {
	cs.setSlot(op, slot{value: v, inherit: flags.IsInherit()})
}

// compose resolves every pending "inherit" slot against parent (nil at the
// document root, where CSS 2.1 says an inherited property with nothing to
// inherit from falls back to its initial value instead), then substitutes
// this node's own resolved colour wherever a border/outline colour was
// left at the currentColor sentinel.
func (cs *ComputedStyle) compose(parent *ComputedStyle) {
	for op := range initialValues {
		s := cs.getSlot(op)
		if !s.inherit {
			continue
		}
		if parent != nil {
			s.value = parent.Get(op)
		} else {
			s.value = initialValues[op]
		}
		s.inherit = false
		cs.setSlot(op, s)
	}
	cs.resolveCurrentColor()
}

var currentColorOpcodes = [...]css.Opcode{
	css.OpBorderTopColor, css.OpBorderRightColor, css.OpBorderBottomColor, css.OpBorderLeftColor,
	css.OpOutlineColor,
}

func (cs *ComputedStyle) resolveCurrentColor() {
	colour := cs.Get(css.OpColor).Colour
	for _, op := range currentColorOpcodes {
		s := cs.getSlot(op)
		if s.value.Keyword == css.CurrentColorValue {
			s.value = css.Value{IsSet: true, Colour: colour}
			cs.setSlot(op, s)
		}
	}
}

// initialDict backs the handful of initial values that need an interned
// string (default font-family/voice-family generic names, the default
// quotes glyph pairs) but have no sheet-owned dictionary of their own to
// borrow from, since an initial value is produced before any stylesheet
// is ever read.
var initialDict = intern.New()

func kw(v uint16) css.Value                       { return css.Value{Keyword: v} }
func lengthZero() css.Value                       { return css.Value{IsSet: true, Fixed: 0, Unit: css.UnitPX} }
func num(n int) css.Value                         { return css.Value{IsSet: true, Fixed: fixed.FromInt(n)} }
func colour(c css.Color) css.Value                { return css.Value{IsSet: true, Colour: c} }
func str(s string) css.Value                      { return css.Value{IsSet: true, Str: initialDict.Intern(s)} }
func nameItem(kind uint16, s string) css.ValueItem { return css.ValueItem{Kind: kind, Str: initialDict.Intern(s)} }

// initialValues is CSS 2.1's Appendix F initial-value table, keyed by
// opcode and expressed in the same Value shape Decode produces, so
// compose can treat "no winning declaration, not inherited" and "a rule
// set it explicitly" identically. Keyword numbers match the exact
// registration order in properties_table.go/properties_custom.go — e.g.
// OpDisplay's "inline" is keyword 1 because kwOnly("display", ...) lists
// it first.
var initialValues = map[css.Opcode]css.Value{
	css.OpAzimuth:               kw(5), // "center"
	css.OpBackgroundAttachment:  kw(1), // scroll
	css.OpBackgroundColor:       kw(1), // transparent
	css.OpBackgroundImage:       kw(valNone),
	css.OpBackgroundPosition:    css.Value{IsSet: true, Fixed: 0, Unit: css.UnitPCT, Fixed2: 0, Unit2: css.UnitPCT}, // 0% 0%
	css.OpBackgroundRepeat:      kw(1), // repeat
	css.OpBorderCollapse:        kw(2), // separate
	css.OpBorderSpacing:         css.Value{IsSet: true},
	css.OpBorderTopColor:        kw(css.CurrentColorValue),
	css.OpBorderRightColor:      kw(css.CurrentColorValue),
	css.OpBorderBottomColor:     kw(css.CurrentColorValue),
	css.OpBorderLeftColor:       kw(css.CurrentColorValue),
	css.OpBorderTopStyle:        kw(1), // none
	css.OpBorderRightStyle:      kw(1),
	css.OpBorderBottomStyle:     kw(1),
	css.OpBorderLeftStyle:       kw(1),
	css.OpBorderTopWidth:        mediumBorderWidth(),
	css.OpBorderRightWidth:      mediumBorderWidth(),
	css.OpBorderBottomWidth:     mediumBorderWidth(),
	css.OpBorderLeftWidth:       mediumBorderWidth(),
	css.OpBottom:                kw(1), // auto
	css.OpCaptionSide:           kw(1), // top
	css.OpClear:                 kw(1), // none
	css.OpClip:                  css.Value{},
	css.OpColor:                 colour(css.RGBA(0, 0, 0, 0xff)), // UA-dependent; black is the common default
	css.OpContent:                kw(css.ContentNormal),
	css.OpCounterIncrement:      css.Value{},
	css.OpCounterReset:          css.Value{},
	css.OpCueAfter:              kw(valNone),
	css.OpCueBefore:             kw(valNone),
	css.OpCursor:                kw(1), // auto, masked the same way decodeCursor unmasks its sentinel bit
	css.OpDirection:             kw(1),           // ltr
	css.OpDisplay:               kw(1),           // inline
	css.OpElevation:             kw(2),           // level
	css.OpEmptyCells:            kw(1),           // show
	css.OpFloat:                 kw(1),           // none
	css.OpFontFamily:            css.Value{Items: []css.ValueItem{nameItem(2, "serif")}},
	css.OpFontSize:              kw(4), // medium
	css.OpFontStyle:             kw(1), // normal
	css.OpFontVariant:           kw(1), // normal
	css.OpFontWeight:            kw(1), // normal
	css.OpHeight:                kw(1), // auto
	css.OpLeft:                  kw(1), // auto
	css.OpLetterSpacing:         kw(1), // normal
	css.OpLineHeight:            kw(1), // normal
	css.OpListStyleImage:        kw(valNone),
	css.OpListStylePosition:     kw(2),  // outside
	css.OpListStyleType:         kw(1),  // disc
	css.OpMarginTop:             lengthZero(),
	css.OpMarginRight:           lengthZero(),
	css.OpMarginBottom:          lengthZero(),
	css.OpMarginLeft:            lengthZero(),
	css.OpMaxHeight:             kw(1), // none
	css.OpMaxWidth:              kw(1), // none
	css.OpMinHeight:             lengthZero(),
	css.OpMinWidth:              lengthZero(),
	css.OpOrphans:               num(2),
	css.OpOutlineColor:          kw(css.CurrentColorValue), // 'invert' in visual UAs; no concrete ARGB to give it here
	css.OpOutlineStyle:          kw(1),                     // none
	css.OpOutlineWidth:          mediumBorderWidth(),
	css.OpOverflow:              kw(1), // visible
	css.OpPaddingTop:            lengthZero(),
	css.OpPaddingRight:          lengthZero(),
	css.OpPaddingBottom:        lengthZero(),
	css.OpPaddingLeft:          lengthZero(),
	css.OpPageBreakAfter:        kw(1), // auto
	css.OpPageBreakBefore:       kw(1),
	css.OpPageBreakInside:       kw(1),
	css.OpPauseAfter:            css.Value{IsSet: true, Fixed: 0, Unit: css.UnitMS},
	css.OpPauseBefore:           css.Value{IsSet: true, Fixed: 0, Unit: css.UnitMS},
	css.OpPitch:                 kw(3), // medium
	css.OpPitchRange:            num(50),
	css.OpPlayDuring:            kw(1), // auto
	css.OpPosition:              kw(1), // static
	css.OpQuotes:                css.Value{Items: []css.ValueItem{{Str: initialDict.Intern("“"), Str2: initialDict.Intern("”")}, {Str: initialDict.Intern("‘"), Str2: initialDict.Intern("’")}}},
	css.OpRichness:              num(50),
	css.OpRight:                 kw(1), // auto
	css.OpSpeak:                 kw(1), // normal
	css.OpSpeakHeader:           kw(1), // once
	css.OpSpeakNumeral:          kw(1), // digits
	css.OpSpeakPunctuation:      kw(2), // none
	css.OpSpeechRate:            kw(3), // medium
	css.OpStress:                num(50),
	css.OpTableLayout:           kw(1), // auto
	css.OpTextAlign:             kw(1), // left; UAs vary by direction, CSS 2.1 leaves this UA-dependent
	css.OpTextDecoration:        kw(0), // none
	css.OpTextIndent:            lengthZero(),
	css.OpTextTransform:         kw(4), // none
	css.OpTop:                   kw(1), // auto
	css.OpUnicodeBidi:           kw(1), // normal
	css.OpVerticalAlign:         kw(1), // baseline
	css.OpVisibility:            kw(1), // visible
	css.OpVoiceFamily:           css.Value{Items: []css.ValueItem{nameItem(2, "male")}},
	css.OpVolume:                num(50),
	css.OpWhiteSpace:            kw(1), // normal
	css.OpWidows:                num(2),
	css.OpWidth:                 kw(1), // auto
	css.OpWordSpacing:           kw(1), // normal
	css.OpZIndex:                kw(1), // auto
}

// mediumBorderWidth is border-*-width/outline-width's shared initial value
// — the "medium" keyword, keyword code 2 per the shared keywordSet passed
// to lengthProp in properties_table.go.
func mediumBorderWidth() css.Value { return kw(2) }

// inheritedOpcodes is CSS 2.1's Appendix F "Inherited" column: a property
// not set by any winning declaration copies its parent's computed value
// instead of resetting to its initial value. The plain "color flows down
// the tree unless overridden" behaviour every CSS author relies on comes
// from this table, not from an explicit `inherit` keyword, per CSS 2.1 §6.1.
var inheritedOpcodes = map[css.Opcode]bool{
	css.OpAzimuth:           true,
	css.OpBorderCollapse:    true,
	css.OpBorderSpacing:     true,
	css.OpCaptionSide:       true,
	css.OpColor:             true,
	css.OpCursor:             true,
	css.OpDirection:         true,
	css.OpElevation:         true,
	css.OpEmptyCells:        true,
	css.OpFontFamily:        true,
	css.OpFontSize:          true,
	css.OpFontStyle:         true,
	css.OpFontVariant:       true,
	css.OpFontWeight:        true,
	css.OpLetterSpacing:     true,
	css.OpLineHeight:        true,
	css.OpListStyleImage:    true,
	css.OpListStylePosition: true,
	css.OpListStyleType:     true,
	css.OpOrphans:           true,
	css.OpPitch:             true,
	css.OpPitchRange:        true,
	css.OpQuotes:            true,
	css.OpRichness:          true,
	css.OpSpeak:             true,
	css.OpSpeakHeader:       true,
	css.OpSpeakNumeral:      true,
	css.OpSpeakPunctuation:  true,
	css.OpSpeechRate:        true,
	css.OpStress:            true,
	css.OpTextAlign:         true,
	css.OpTextIndent:        true,
	css.OpTextTransform:     true,
	css.OpVisibility:        true,
	css.OpVoiceFamily:       true,
	css.OpVolume:            true,
	css.OpWhiteSpace:        true,
	css.OpWidows:            true,
	css.OpWordSpacing:       true,
}

// valNone mirrors properties_custom.go's unexported constant of the same
// name and value; duplicated here rather than exported from css, since
// it's only meaningful as an initial-value discriminant at this one call
// site.
const valNone uint16 = 1
