package css

import (
	"strconv"
	"strings"

	"github.com/lukehoban/browser/fixed"
	"github.com/lukehoban/browser/intern"
)

// Value constants for the custom-grammar properties. These live beside
// their parser rather than in the generic keywordSet table because each
// one packs extra information (a sentinel, a bit for "is a function",
// etc.) into the value field.
const (
	valNone     uint16 = 1
	valURISet   uint16 = ValueSet // reuse the generic "operands follow" marker
)

func registerCustomGrammars() {
	customProp("azimuth", OpAzimuth, parseAzimuth)
	customProp("background-image", OpBackgroundImage, uriOrNoneParser(OpBackgroundImage))
	customProp("background-position", OpBackgroundPosition, parseBackgroundPosition)
	customProp("border-spacing", OpBorderSpacing, parseBorderSpacing)
	customProp("clip", OpClip, parseClip)
	customProp("content", OpContent, parseContent)
	customProp("counter-increment", OpCounterIncrement, counterListParser(OpCounterIncrement, true))
	customProp("counter-reset", OpCounterReset, counterListParser(OpCounterReset, false))
	customProp("cue-after", OpCueAfter, uriOrNoneParser(OpCueAfter))
	customProp("cue-before", OpCueBefore, uriOrNoneParser(OpCueBefore))
	customProp("cursor", OpCursor, parseCursor)
	customProp("font-family", OpFontFamily, parseFontFamily)
	customProp("font-size", OpFontSize, parseFontSize)
	customProp("font-weight", OpFontWeight, parseFontWeight)
	customProp("line-height", OpLineHeight, parseLineHeight)
	customProp("list-style-image", OpListStyleImage, uriOrNoneParser(OpListStyleImage))
	customProp("pitch", OpPitch, parsePitch)
	customProp("play-during", OpPlayDuring, parsePlayDuring)
	customProp("quotes", OpQuotes, parseQuotes)
	customProp("speech-rate", OpSpeechRate, parseSpeechRate)
	customProp("text-decoration", OpTextDecoration, parseTextDecoration)
	customProp("vertical-align", OpVerticalAlign, parseVerticalAlign)
	customProp("voice-family", OpVoiceFamily, parseVoiceFamily)
	customProp("volume", OpVolume, parseVolume)
	customProp("z-index", OpZIndex, parseZIndex)
}

// uriOrNoneParser builds a custom parser for the common `none | <uri>`
// grammar shared by background-image, list-style-image, cue-before and
// cue-after.
func uriOrNoneParser(opcode Opcode) customParseFunc {
	return func(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
		mark := v.Mark()
		t := v.Peek()
		if t.Type == IDENT && t.Lower() == "none" {
			v.Next()
			buf := NewBuffer(dict)
			buf.WriteOPV(opcode, flags, valNone)
			return buf, Ok
		}
		if t.Type == URI {
			v.Next()
			buf := NewBuffer(dict)
			buf.WriteStringRef(opcode, flags, valURISet, t.Text)
			return buf, Ok
		}
		v.Restore(mark)
		return nil, Invalid
	}
}

// parseAzimuth implements `azimuth`'s angle-or-position grammar. The two
// compound idents `center-left`/`center-right` are matched explicitly as
// keywords rather than by arithmetic on adjacent enum labels, and `behind`
// is accepted as an explicit optional modifier on the position keywords
// (not on angles).
var azimuthPositions = keywordSet{
	"left-side": 1, "far-left": 2, "left": 3, "center-left": 4, "center": 5,
	"center-right": 6, "right": 7, "far-right": 8, "right-side": 9,
}

func parseAzimuth(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	t := v.Peek()

	if t.Type == IDENT {
		switch t.Lower() {
		case "leftwards":
			v.Next()
			return oneKeyword(dict, OpAzimuth, flags, 20), Ok
		case "rightwards":
			v.Next()
			return oneKeyword(dict, OpAzimuth, flags, 21), Ok
		case "behind":
			v.Next()
			v.SkipWhitespace()
			posVal := uint16(30) // behind, no further position
			if t2 := v.Peek(); t2.Type == IDENT {
				if pv, ok := azimuthPositions[t2.Lower()]; ok {
					v.Next()
					posVal = 30 + pv
				}
			}
			return oneKeyword(dict, OpAzimuth, flags, posVal), Ok
		default:
			if pv, ok := azimuthPositions[t.Lower()]; ok {
				v.Next()
				v.SkipWhitespace()
				if t2 := v.Peek(); t2.Type == IDENT && t2.Lower() == "behind" {
					v.Next()
					return oneKeyword(dict, OpAzimuth, flags, 30+pv), Ok
				}
				return oneKeyword(dict, OpAzimuth, flags, pv), Ok
			}
		}
	}

	if val, unit, ok := parseUnitSpecifier(v); ok && unit.IsAngle() {
		lo, hi := scaleAngleBounds(fixed.FromInt(-360), fixed.FromInt(360), unit)
		if val.Compare(lo) < 0 || val.Compare(hi) > 0 {
			v.Restore(mark)
			return nil, Invalid
		}
		buf := NewBuffer(dict)
		buf.WriteFixedUnit(OpAzimuth, flags, val, unit)
		return buf, Ok
	}

	v.Restore(mark)
	return nil, Invalid
}

func oneKeyword(dict *intern.Dict, opcode Opcode, flags Flags, value uint16) *Buffer {
	buf := NewBuffer(dict)
	buf.WriteOPV(opcode, flags, value)
	return buf
}

// parseBackgroundPosition implements `background-position`'s two-value
// grammar: horizontal keyword/length/percentage first, then vertical —
// one of the few list-valued grammars with a fixed argument order.
var bgPosKeywords = keywordSet{
	"left": 1, "center": 2, "right": 3, "top": 4, "bottom": 5,
}

func parseBackgroundPosition(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()

	readComponent := func() (kw uint16, val fixed.Value, unit Unit, isLength bool, ok bool) {
		t := v.Peek()
		if t.Type == IDENT {
			if kwv, found := bgPosKeywords[t.Lower()]; found {
				v.Next()
				return kwv, 0, UnitNone, false, true
			}
			return 0, 0, UnitNone, false, false
		}
		if fv, u, ok2 := parseUnitSpecifier(v); ok2 {
			return 0, fv, u, true, true
		}
		return 0, 0, UnitNone, false, false
	}

	hk, hv, hu, hIsLen, ok := readComponent()
	if !ok {
		v.Restore(mark)
		return nil, Invalid
	}
	v.SkipWhitespace()
	vk, vv, vu, vIsLen, ok2 := readComponent()
	if !ok2 {
		// One-value form: the single value is horizontal, vertical defaults to center.
		vk, vIsLen = 2, false
		vv, vu = 0, UnitNone
	}

	buf := NewBuffer(dict)
	// Value field: bit0 set => horizontal is a length/pct (operand follows),
	// bit1 set => vertical is a length/pct (operand follows); otherwise the
	// corresponding nibble carries the keyword code.
	value := uint16(0)
	if hIsLen {
		value |= 1
	} else {
		value |= hk << 4
	}
	if vIsLen {
		value |= 2
	} else {
		value |= vk << 8
	}
	buf.WriteOPV(OpBackgroundPosition, flags, value|0x8000)
	if hIsLen {
		buf.appendFixed(hv)
		buf.appendUint32(uint32(hu))
	}
	if vIsLen {
		buf.appendFixed(vv)
		buf.appendUint32(uint32(vu))
	}
	return buf, Ok
}

// parseBorderSpacing implements `border-spacing: <length> <length>?`.
func parseBorderSpacing(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	hv, hu, ok := parseUnitSpecifier(v)
	if !ok || hu.IsPercentage() || hu.IsAngle() || hu.IsTime() || hu.IsFrequency() {
		v.Restore(mark)
		return nil, Invalid
	}
	v.SkipWhitespace()
	vv, vu := hv, hu
	if v2, u2, ok2 := parseUnitSpecifier(v); ok2 && !(u2.IsPercentage() || u2.IsAngle() || u2.IsTime() || u2.IsFrequency()) {
		vv, vu = v2, u2
	}
	buf := NewBuffer(dict)
	buf.WriteOPV(OpBorderSpacing, flags, ValueSet)
	buf.appendFixed(hv)
	buf.appendUint32(uint32(hu))
	buf.appendFixed(vv)
	buf.appendUint32(uint32(vu))
	return buf, Ok
}

// parseClip implements `clip: rect(top, right, bottom, left) | auto`,
// where each position is `auto` or a length.
func parseClip(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	t := v.Peek()
	if t.Type == IDENT && t.Lower() == "auto" {
		v.Next()
		buf := NewBuffer(dict)
		buf.WriteOPV(OpClip, flags, 0)
		return buf, Ok
	}
	if t.Type != FUNCTION || t.Lower() != "rect" {
		v.Restore(mark)
		return nil, Invalid
	}
	v.Next()
	var mask uint16
	var positions []struct {
		V fixed.Value
		U Unit
	}
	for i := 0; i < 4; i++ {
		v.SkipWhitespace()
		pt := v.Peek()
		if pt.Type == IDENT && pt.Lower() == "auto" {
			v.Next()
			mask |= 1 << uint(i)
		} else if val, unit, ok := parseUnitSpecifier(v); ok {
			positions = append(positions, struct {
				V fixed.Value
				U Unit
			}{val, unit})
		} else {
			v.Restore(mark)
			return nil, Invalid
		}
		v.SkipWhitespace()
		if i < 3 {
			ct := v.Peek()
			if ct.Type == CHAR && ct.Raw() == "," {
				v.Next()
			}
		}
	}
	v.SkipWhitespace()
	ct := v.Peek()
	if ct.Type != CHAR || ct.Raw() != ")" {
		v.Restore(mark)
		return nil, Invalid
	}
	v.Next()
	buf := NewBuffer(dict)
	buf.WriteClip(flags, mask, positions)
	return buf, Ok
}

// Content: a heterogeneous token stream terminated by a CONTENT_NORMAL
// sentinel. Each chunk is one of string | uri | attr() | counter()/
// counters() | open/close-quote | no-open/no-close-quote.
const (
	contentString      uint16 = 1
	contentURI         uint16 = 2
	contentAttr        uint16 = 3
	contentCounter     uint16 = 4
	contentCounters    uint16 = 5
	contentOpenQuote   uint16 = 6
	contentCloseQuote  uint16 = 7
	contentNoOpenQuote uint16 = 8
	contentNoCloseQuote uint16 = 9
	contentNormal      uint16 = 10 // list terminator
	contentNone        uint16 = 11
)

func parseContent(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	if t := v.Peek(); t.Type == IDENT && (t.Lower() == "normal" || t.Lower() == "none") {
		v.Next()
		buf := NewBuffer(dict)
		val := contentNormal
		if t.Lower() == "none" {
			val = contentNone
		}
		buf.WriteSentinel(OpContent, flags, val)
		return buf, Ok
	}

	buf := NewBuffer(dict)
	count := 0
	for {
		v.SkipWhitespace()
		t := v.Peek()
		switch t.Type {
		case STRING:
			v.Next()
			buf.WriteStringRef(OpContent, flags, contentString, t.Text)
		case URI:
			v.Next()
			buf.WriteStringRef(OpContent, flags, contentURI, t.Text)
		case FUNCTION:
			switch t.Lower() {
			case "attr":
				v.Next()
				nt := v.Peek()
				if nt.Type != IDENT {
					v.Restore(mark)
					return nil, Invalid
				}
				v.Next()
				if !expectChar(v, ")") {
					v.Restore(mark)
					return nil, Invalid
				}
				buf.WriteStringRef(OpContent, flags, contentAttr, nt.Text)
			case "counter":
				v.Next()
				nt := v.Peek()
				if nt.Type != IDENT {
					v.Restore(mark)
					return nil, Invalid
				}
				v.Next()
				style := properties["list-style-type"].keywords["decimal"]
				if expectChar(v, ",") {
					st := v.Peek()
					if st.Type == IDENT {
						v.Next()
						if sv, ok := properties["list-style-type"].keywords[st.Lower()]; ok {
							style = sv
						}
					}
				}
				if !expectChar(v, ")") {
					v.Restore(mark)
					return nil, Invalid
				}
				buf.WriteStringRef(OpContent, flags, contentCounter|style<<8, nt.Text)
			case "counters":
				v.Next()
				nt := v.Peek()
				if nt.Type != IDENT {
					v.Restore(mark)
					return nil, Invalid
				}
				v.Next()
				if !expectChar(v, ",") {
					v.Restore(mark)
					return nil, Invalid
				}
				st2 := v.Peek()
				if st2.Type != STRING {
					v.Restore(mark)
					return nil, Invalid
				}
				v.Next()
				style := properties["list-style-type"].keywords["decimal"]
				if expectChar(v, ",") {
					st := v.Peek()
					if st.Type == IDENT {
						v.Next()
						if sv, ok := properties["list-style-type"].keywords[st.Lower()]; ok {
							style = sv
						}
					}
				}
				if !expectChar(v, ")") {
					v.Restore(mark)
					return nil, Invalid
				}
				buf.WriteStringRef(OpContent, flags, contentCounters|style<<8, nt.Text)
				buf.appendStringRef(st2.Text)
			default:
				v.Restore(mark)
				return nil, Invalid
			}
		case IDENT:
			switch t.Lower() {
			case "open-quote":
				v.Next()
				buf.WriteSentinel(OpContent, flags, contentOpenQuote)
			case "close-quote":
				v.Next()
				buf.WriteSentinel(OpContent, flags, contentCloseQuote)
			case "no-open-quote":
				v.Next()
				buf.WriteSentinel(OpContent, flags, contentNoOpenQuote)
			case "no-close-quote":
				v.Next()
				buf.WriteSentinel(OpContent, flags, contentNoCloseQuote)
			default:
				if count == 0 {
					v.Restore(mark)
					return nil, Invalid
				}
				buf.WriteSentinel(OpContent, flags, contentNormal)
				return buf, Ok
			}
		default:
			if count == 0 {
				v.Restore(mark)
				return nil, Invalid
			}
			buf.WriteSentinel(OpContent, flags, contentNormal)
			return buf, Ok
		}
		count++
	}
}

func expectChar(v *Vector, ch string) bool {
	v.SkipWhitespace()
	t := v.Peek()
	if t.Type == CHAR && t.Raw() == ch {
		v.Next()
		return true
	}
	return false
}

// counterListParser implements `counter-increment`/`counter-reset`'s
// grammar: a repeating `ident fixed?` stream ended by `none`.
// allowNumber distinguishes counter-increment's optional integer step
// from counter-reset's optional integer value
// (both are optional in CSS 2.1, the flag only documents intent).
func counterListParser(opcode Opcode, allowNumber bool) customParseFunc {
	_ = allowNumber
	return func(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
		mark := v.Mark()
		if t := v.Peek(); t.Type == IDENT && t.Lower() == "none" {
			v.Next()
			buf := NewBuffer(dict)
			buf.WriteSentinel(opcode, flags, 0) // NONE sentinel
			return buf, Ok
		}
		buf := NewBuffer(dict)
		count := 0
		for {
			v.SkipWhitespace()
			t := v.Peek()
			if t.Type != IDENT || t.Lower() == "none" {
				break
			}
			v.Next()
			step := fixed.FromInt(1)
			v.SkipWhitespace()
			if nt := v.Peek(); nt.Type == NUMBER {
				if f, ok := parseBareNumber(v, true); ok {
					step = f
				}
			}
			buf.WriteStringRef(opcode, flags, 1, t.Text) // 1 = "has value follows"
			buf.appendFixed(step)
			count++
		}
		if count == 0 {
			v.Restore(mark)
			return nil, Invalid
		}
		buf.WriteSentinel(opcode, flags, 0)
		return buf, Ok
	}
}

// parseCursor implements `cursor: [<uri> ,]* <keyword>`.
var cursorKeywords = keywordSet{
	"auto": 1, "crosshair": 2, "default": 3, "pointer": 4, "move": 5,
	"e-resize": 6, "ne-resize": 7, "nw-resize": 8, "n-resize": 9,
	"se-resize": 10, "sw-resize": 11, "s-resize": 12, "w-resize": 13,
	"text": 14, "wait": 15, "help": 16, "progress": 17,
}

func parseCursor(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	buf := NewBuffer(dict)
	for {
		v.SkipWhitespace()
		t := v.Peek()
		if t.Type != URI {
			break
		}
		v.Next()
		buf.WriteStringRef(OpCursor, flags, valURISet, t.Text)
		v.SkipWhitespace()
		if !expectChar(v, ",") {
			v.Restore(mark)
			return nil, Invalid
		}
	}
	v.SkipWhitespace()
	t := v.Peek()
	if t.Type != IDENT {
		v.Restore(mark)
		return nil, Invalid
	}
	kv, ok := cursorKeywords[t.Lower()]
	if !ok {
		v.Restore(mark)
		return nil, Invalid
	}
	v.Next()
	buf.WriteSentinel(OpCursor, flags, 0x4000|kv)
	return buf, Ok
}

// genericFamilyNames is used by both font-family and voice-family's
// shared "comma-list of idents-or-strings" helper.
var genericFamilyNames = map[string]bool{
	"serif": true, "sans-serif": true, "cursive": true, "fantasy": true, "monospace": true,
}
var genericVoiceNames = map[string]bool{
	"male": true, "female": true, "child": true,
}

func parseFontFamily(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	return parseFamilyList(OpFontFamily, genericFamilyNames, v, dict, flags)
}

func parseVoiceFamily(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	return parseFamilyList(OpVoiceFamily, genericVoiceNames, v, dict, flags)
}

// parseFamilyList collapses runs of idents into one space-joined interned
// string and rejects a bare ident equal to a generic family name (the
// latter must stand alone as its own list entry).
func parseFamilyList(opcode Opcode, generic map[string]bool, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	buf := NewBuffer(dict)
	count := 0
	for {
		v.SkipWhitespace()
		t := v.Peek()
		if t.Type == STRING {
			v.Next()
			buf.WriteStringRef(opcode, flags, 1, t.Text)
		} else if t.Type == IDENT {
			if generic[t.Lower()] {
				v.Next()
				buf.WriteStringRef(opcode, flags, 2, t.Text)
			} else {
				var words []string
				for {
					pt := v.Peek()
					if pt.Type != IDENT || generic[pt.Lower()] {
						break
					}
					v.Next()
					words = append(words, pt.Raw())
					save := v.Mark()
					v.SkipWhitespace()
					if v.Peek().Type != IDENT {
						v.Restore(save)
						break
					}
				}
				if len(words) == 0 {
					v.Restore(mark)
					return nil, Invalid
				}
				name := dict.Intern(strings.Join(words, " "))
				buf.WriteStringRef(opcode, flags, 1, name)
			}
		} else {
			break
		}
		count++
		v.SkipWhitespace()
		if !expectChar(v, ",") {
			break
		}
	}
	if count == 0 {
		v.Restore(mark)
		return nil, Invalid
	}
	buf.WriteSentinel(opcode, flags, 0) // terminates the comma list; real entries use value 1 or 2
	return buf, Ok
}

// parseFontSize implements absolute-size/relative-size keywords plus
// length/percentage.
var fontSizeAbsolute = keywordSet{
	"xx-small": 1, "x-small": 2, "small": 3, "medium": 4,
	"large": 5, "x-large": 6, "xx-large": 7,
}
var fontSizeRelative = keywordSet{"larger": 8, "smaller": 9}

func parseFontSize(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	t := v.Peek()
	if t.Type == IDENT {
		if kv, ok := fontSizeAbsolute[t.Lower()]; ok {
			v.Next()
			return oneKeyword(dict, OpFontSize, flags, kv), Ok
		}
		if kv, ok := fontSizeRelative[t.Lower()]; ok {
			v.Next()
			return oneKeyword(dict, OpFontSize, flags, kv), Ok
		}
	}
	if val, unit, ok := parseUnitSpecifier(v); ok && (unit.IsLength() || unit.IsPercentage()) && val >= 0 {
		buf := NewBuffer(dict)
		buf.WriteFixedUnit(OpFontSize, flags, val, unit)
		return buf, Ok
	}
	v.Restore(mark)
	return nil, Invalid
}

// parseFontWeight implements the keyword set plus the numeric values in
// {100, 200, ..., 900}.
func parseFontWeight(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	t := v.Peek()
	if t.Type == IDENT {
		kw := map[string]uint16{"normal": 1, "bold": 2, "bolder": 3, "lighter": 4}
		if kv, ok := kw[t.Lower()]; ok {
			v.Next()
			return oneKeyword(dict, OpFontWeight, flags, kv), Ok
		}
	}
	if t.Type == NUMBER {
		n, err := strconv.Atoi(t.Raw())
		if err == nil && n >= 100 && n <= 900 && n%100 == 0 {
			v.Next()
			return oneKeyword(dict, OpFontWeight, flags, uint16(10+n/100)), Ok
		}
	}
	v.Restore(mark)
	return nil, Invalid
}

// parseLineHeight implements `normal | <number> | <length> | <percentage>`.
func parseLineHeight(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	if t := v.Peek(); t.Type == IDENT && t.Lower() == "normal" {
		v.Next()
		return oneKeyword(dict, OpLineHeight, flags, 1), Ok
	}
	if f, ok := parseBareNumber(v, false); ok {
		buf := NewBuffer(dict)
		buf.WriteFixedUnit(OpLineHeight, flags, f, UnitNone)
		return buf, Ok
	}
	if val, unit, ok := parseUnitSpecifier(v); ok && (unit.IsLength() || unit.IsPercentage()) {
		buf := NewBuffer(dict)
		buf.WriteFixedUnit(OpLineHeight, flags, val, unit)
		return buf, Ok
	}
	v.Restore(mark)
	return nil, Invalid
}

// parsePitch implements `<frequency> | x-low | low | medium | high | x-high`.
func parsePitch(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	kw := map[string]uint16{
		"x-low": 1, "low": 2, "medium": 3, "high": 4, "x-high": 5,
	}
	if t := v.Peek(); t.Type == IDENT {
		if kv, ok := kw[t.Lower()]; ok {
			v.Next()
			return oneKeyword(dict, OpPitch, flags, kv), Ok
		}
	}
	if val, unit, ok := parseUnitSpecifier(v); ok && unit.IsFrequency() && val.Compare(0) > 0 {
		buf := NewBuffer(dict)
		buf.WriteFixedUnit(OpPitch, flags, val, unit)
		return buf, Ok
	}
	v.Restore(mark)
	return nil, Invalid
}

// parsePlayDuring implements `auto | none | <uri> [mix]? [repeat]?`.
func parsePlayDuring(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	t := v.Peek()
	if t.Type == IDENT && (t.Lower() == "auto" || t.Lower() == "none") {
		v.Next()
		val := uint16(1)
		if t.Lower() == "none" {
			val = 2
		}
		return oneKeyword(dict, OpPlayDuring, flags, val), Ok
	}
	if t.Type != URI {
		v.Restore(mark)
		return nil, Invalid
	}
	v.Next()
	var bits uint16
loop:
	for {
		v.SkipWhitespace()
		nt := v.Peek()
		if nt.Type != IDENT {
			break
		}
		switch nt.Lower() {
		case "mix":
			v.Next()
			bits |= 1
		case "repeat":
			v.Next()
			bits |= 2
		default:
			break loop
		}
	}
	buf := NewBuffer(dict)
	buf.WriteStringRef(OpPlayDuring, flags, 0x8000|bits, t.Text)
	return buf, Ok
}

// parseQuotes implements `QUOTES_STRING (open close)+ | none`, ended by a
// QUOTES_NONE sentinel.
func parseQuotes(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	if t := v.Peek(); t.Type == IDENT && t.Lower() == "none" {
		v.Next()
		buf := NewBuffer(dict)
		buf.WriteSentinel(OpQuotes, flags, 0) // QUOTES_NONE
		return buf, Ok
	}
	buf := NewBuffer(dict)
	pairs := 0
	for {
		v.SkipWhitespace()
		ot := v.Peek()
		if ot.Type != STRING {
			break
		}
		v.Next()
		v.SkipWhitespace()
		ct := v.Peek()
		if ct.Type != STRING {
			v.Restore(mark)
			return nil, Invalid
		}
		v.Next()
		buf.WriteStringRef(OpQuotes, flags, 1, ot.Text) // 1 = QUOTES_STRING, open half
		buf.appendStringRef(ct.Text)
		pairs++
	}
	if pairs == 0 {
		v.Restore(mark)
		return nil, Invalid
	}
	buf.WriteSentinel(OpQuotes, flags, 0)
	return buf, Ok
}

// parseSpeechRate implements the keyword set plus a bare number.
func parseSpeechRate(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	kw := map[string]uint16{
		"x-slow": 1, "slow": 2, "medium": 3, "fast": 4, "x-fast": 5, "faster": 6, "slower": 7,
	}
	if t := v.Peek(); t.Type == IDENT {
		if kv, ok := kw[t.Lower()]; ok {
			v.Next()
			return oneKeyword(dict, OpSpeechRate, flags, kv), Ok
		}
	}
	if f, ok := parseBareNumber(v, false); ok && f >= 0 {
		buf := NewBuffer(dict)
		buf.WriteFixed(OpSpeechRate, flags, f)
		return buf, Ok
	}
	v.Restore(mark)
	return nil, Invalid
}

// parseTextDecoration implements `none | [ underline || overline ||
// line-through || blink ]` as a bitmask packed into the value field.
func parseTextDecoration(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	if t := v.Peek(); t.Type == IDENT && t.Lower() == "none" {
		v.Next()
		return oneKeyword(dict, OpTextDecoration, flags, 0), Ok
	}
	bitFor := map[string]uint16{"underline": 1, "overline": 2, "line-through": 4, "blink": 8}
	var bits uint16
	count := 0
	for {
		v.SkipWhitespace()
		t := v.Peek()
		if t.Type != IDENT {
			break
		}
		bit, ok := bitFor[t.Lower()]
		if !ok || bits&bit != 0 {
			break
		}
		v.Next()
		bits |= bit
		count++
	}
	if count == 0 {
		v.Restore(mark)
		return nil, Invalid
	}
	return oneKeyword(dict, OpTextDecoration, flags, 0x10|bits), Ok
}

// parseVerticalAlign implements the keyword set plus length/percentage.
var verticalAlignKeywords = keywordSet{
	"baseline": 1, "sub": 2, "super": 3, "top": 4,
	"text-top": 5, "middle": 6, "bottom": 7, "text-bottom": 8,
}

func parseVerticalAlign(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	if t := v.Peek(); t.Type == IDENT {
		if kv, ok := verticalAlignKeywords[t.Lower()]; ok {
			v.Next()
			return oneKeyword(dict, OpVerticalAlign, flags, kv), Ok
		}
	}
	if val, unit, ok := parseUnitSpecifier(v); ok && (unit.IsLength() || unit.IsPercentage()) {
		buf := NewBuffer(dict)
		buf.WriteFixedUnit(OpVerticalAlign, flags, val, unit)
		return buf, Ok
	}
	v.Restore(mark)
	return nil, Invalid
}

// parseVolume implements `<number> | <percentage> | silent | x-soft |
// soft | medium | loud | x-loud`; a value outside [0,100] is rejected
// as Invalid.
func parseVolume(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	kw := map[string]uint16{
		"silent": 1, "x-soft": 2, "soft": 3, "medium": 4, "loud": 5, "x-loud": 6,
	}
	if t := v.Peek(); t.Type == IDENT {
		if kv, ok := kw[t.Lower()]; ok {
			v.Next()
			return oneKeyword(dict, OpVolume, flags, kv), Ok
		}
	}
	if f, ok := parseBareNumber(v, false); ok {
		if f.Compare(0) < 0 || f.Compare(fixed.FromInt(100)) > 0 {
			v.Restore(mark)
			return nil, Invalid
		}
		buf := NewBuffer(dict)
		buf.WriteFixedUnit(OpVolume, flags, f, UnitNone)
		return buf, Ok
	}
	if val, unit, ok := parseUnitSpecifier(v); ok && unit.IsPercentage() {
		if val.Compare(0) < 0 || val.Compare(fixed.FromInt(100)) > 0 {
			v.Restore(mark)
			return nil, Invalid
		}
		buf := NewBuffer(dict)
		buf.WriteFixedUnit(OpVolume, flags, val, unit)
		return buf, Ok
	}
	v.Restore(mark)
	return nil, Invalid
}

// parseZIndex implements `auto | <integer>` (signed).
func parseZIndex(d *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error) {
	mark := v.Mark()
	if t := v.Peek(); t.Type == IDENT && t.Lower() == "auto" {
		v.Next()
		return oneKeyword(dict, OpZIndex, flags, 1), Ok
	}
	if t := v.Peek(); t.Type == NUMBER {
		if !strings.Contains(t.Raw(), ".") {
			if f, ok := parseNumberText(t.Raw()); ok {
				v.Next()
				buf := NewBuffer(dict)
				buf.WriteFixed(OpZIndex, flags, f)
				return buf, Ok
			}
		}
	}
	v.Restore(mark)
	return nil, Invalid
}
