// This file implements CSS 2.1's shorthand properties: each shorthand
// tries its longhand parsers, in any order the grammar doesn't fix,
// against the same starting cursor, stopping at the first failure and
// filling every longhand the shorthand didn't reach with that longhand's
// initial value.
package css

import (
	"github.com/lukehoban/browser/fixed"
	"github.com/lukehoban/browser/intern"
)

// shorthandExpanders marks which property names are shorthands, so
// sheet.go's declaration loop can route them here instead of through
// ParseDeclarationValue.
var shorthandExpanders = map[string]func(v *Vector, dict *intern.Dict) (*Buffer, bool){
	"margin":           expandFourSides(OpMarginTop, OpMarginRight, OpMarginBottom, OpMarginLeft),
	"padding":          expandFourSides(OpPaddingTop, OpPaddingRight, OpPaddingBottom, OpPaddingLeft),
	"border-width":     expandFourSides(OpBorderTopWidth, OpBorderRightWidth, OpBorderBottomWidth, OpBorderLeftWidth),
	"border-style":     expandFourSides(OpBorderTopStyle, OpBorderRightStyle, OpBorderBottomStyle, OpBorderLeftStyle),
	"border-color":     expandFourSides(OpBorderTopColor, OpBorderRightColor, OpBorderBottomColor, OpBorderLeftColor),
	"border-top":       expandBorderSide(OpBorderTopWidth, OpBorderTopStyle, OpBorderTopColor),
	"border-right":     expandBorderSide(OpBorderRightWidth, OpBorderRightStyle, OpBorderRightColor),
	"border-bottom":    expandBorderSide(OpBorderBottomWidth, OpBorderBottomStyle, OpBorderBottomColor),
	"border-left":      expandBorderSide(OpBorderLeftWidth, OpBorderLeftStyle, OpBorderLeftColor),
	"border":           expandBorderAll,
	"outline":          expandOutline,
	"list-style":       expandListStyle,
	"cue":              expandTwoURIOrNone("cue-before", "cue-after", OpCueAfter),
	"pause":            expandTwoLengths("pause-before", "pause-after"),
	"background":       expandBackground,
	"font":             expandFont,
}

// expandShorthandDecl looks up and runs the registered expander for
// name, returning the concatenated bytecode or nil on failure (the
// caller is then responsible for declaration-level error recovery).
func expandShorthandDecl(name string, v *Vector, dict *intern.Dict) *Buffer {
	fn, ok := shorthandExpanders[name]
	if !ok {
		return nil
	}
	mark := v.Mark()
	if t := v.Peek(); t.Type == IDENT && t.Lower() == "inherit" {
		v.Next()
		return nil // shorthand-level inherit isn't modeled at the bytecode level here; longhands already accept it individually.
	}
	buf, ok2 := fn(v, dict)
	if !ok2 {
		v.Restore(mark)
		return nil
	}
	return buf
}

// fillKind distinguishes how an unfilled longhand's initial value is
// produced.
type fillKind int

const (
	fillKeyword fillKind = iota
	fillLength
	fillColorSentinel
)

type fillSpec struct {
	kind  fillKind
	value uint16
}

var mediumWidth = fillSpec{kind: fillKeyword, value: 2} // "medium", per the border-*-width keyword table
var noneStyle = fillSpec{kind: fillKeyword, value: 1}   // "none", per borderStyleKeywords

// currentColorUse is a value-field discriminant, distinct from ValueSet
// and from any named keyword, meaning "use the computed value of
// 'color'" — CSS 2.1's actual initial value for border-color and
// outline-color, which (unlike every other initial value here) can only
// be resolved once cascade executes, not at parse time. Component D's
// apply function for these opcodes must special-case it.
const currentColorUse uint16 = CurrentColorValue

var currentColorFallback = fillSpec{kind: fillColorSentinel, value: currentColorUse}

func writeFill(buf *Buffer, opcode Opcode, f fillSpec) {
	switch f.kind {
	case fillLength:
		buf.WriteFixedUnit(opcode, 0, fixed.Zero, UnitPX)
	case fillKeyword, fillColorSentinel:
		buf.WriteOPV(opcode, 0, f.value)
	}
}

// expandFourSides builds the shared "1-4 value pattern" expander for
// margin/padding/border-width/border-style/border-color: `top [right
// [bottom [left]]]` where omitted sides mirror per CSS 2.1 §8.3.
func expandFourSides(top, right, bottom, left Opcode) func(*Vector, *intern.Dict) (*Buffer, bool) {
	return func(v *Vector, dict *intern.Dict) (*Buffer, bool) {
		def := propertyDefForOpcode(top)
		if def == nil {
			return nil, false
		}
		var vals []*Buffer
		for i := 0; i < 4; i++ {
			v.SkipWhitespace()
			if v.AtEnd() {
				break
			}
			if t := v.Peek(); t.Type == EOF || (t.Type == CHAR && (t.Raw() == ";" || t.Raw() == "}" || t.Raw() == "!")) {
				break
			}
			_, buf, err := parseOneValue(def, v, dict)
			if err != Ok {
				break
			}
			vals = append(vals, buf)
		}
		if len(vals) == 0 {
			return nil, false
		}
		order := [4]Opcode{top, right, bottom, left}
		picks := make([]*Buffer, 4)
		switch len(vals) {
		case 1:
			picks[0], picks[1], picks[2], picks[3] = vals[0], vals[0], vals[0], vals[0]
		case 2:
			picks[0], picks[2] = vals[0], vals[0]
			picks[1], picks[3] = vals[1], vals[1]
		case 3:
			picks[0] = vals[0]
			picks[1], picks[3] = vals[1], vals[1]
			picks[2] = vals[2]
		default:
			picks[0], picks[1], picks[2], picks[3] = vals[0], vals[1], vals[2], vals[3]
		}
		out := NewBuffer(dict)
		for i, p := range picks {
			out.bytes = append(out.bytes, retargetOpcodeBytes(p.bytes, order[i])...)
			out.strRefs = append(out.strRefs, p.strRefs...)
		}
		return out, true
	}
}

// propertyDefForOpcode finds the propertyDef registered under a given
// opcode, so the four-sides expanders can reuse a single side's grammar
// (border-top-width's) for all four without repeating the table.
func propertyDefForOpcode(opcode Opcode) *propertyDef {
	for _, d := range properties {
		if d.opcode == opcode {
			return d
		}
	}
	return nil
}

// expandBorderSide implements `border-top`/`-right`/`-bottom`/`-left`:
// width, style, and color in any order, each optional.
func expandBorderSide(widthOp, styleOp, colorOp Opcode) func(*Vector, *intern.Dict) (*Buffer, bool) {
	return func(v *Vector, dict *intern.Dict) (*Buffer, bool) {
		return parseBorderComponents(v, dict, widthOp, styleOp, colorOp)
	}
}

func parseBorderComponents(v *Vector, dict *intern.Dict, widthOp, styleOp, colorOp Opcode) (*Buffer, bool) {
	widthDef := propertyDefForOpcode(widthOp)
	styleDef := propertyDefForOpcode(styleOp)
	colorDef := propertyDefForOpcode(colorOp)

	var widthBuf, styleBuf, colorBuf *Buffer
	filled := 0
	for filled < 3 {
		v.SkipWhitespace()
		if t := v.Peek(); t.Type == EOF || (t.Type == CHAR && (t.Raw() == ";" || t.Raw() == "}" || t.Raw() == "!")) {
			break
		}
		mark := v.Mark()
		if widthBuf == nil {
			if _, buf, err := parseOneValue(widthDef, v, dict); err == Ok {
				widthBuf = buf
				filled++
				continue
			}
			v.Restore(mark)
		}
		if styleBuf == nil {
			if _, buf, err := parseOneValue(styleDef, v, dict); err == Ok {
				styleBuf = buf
				filled++
				continue
			}
			v.Restore(mark)
		}
		if colorBuf == nil {
			if _, buf, err := parseOneValue(colorDef, v, dict); err == Ok {
				colorBuf = buf
				filled++
				continue
			}
			v.Restore(mark)
		}
		break
	}
	if widthBuf == nil && styleBuf == nil && colorBuf == nil {
		return nil, false
	}

	out := NewBuffer(dict)
	if widthBuf != nil {
		appendBuf(out, widthBuf)
	} else {
		writeFill(out, widthOp, mediumWidth)
	}
	if styleBuf != nil {
		appendBuf(out, styleBuf)
	} else {
		writeFill(out, styleOp, noneStyle)
	}
	if colorBuf != nil {
		appendBuf(out, colorBuf)
	} else {
		writeFill(out, colorOp, currentColorFallback)
	}
	return out, true
}

func appendBuf(dst, src *Buffer) {
	dst.bytes = append(dst.bytes, src.bytes...)
	dst.strRefs = append(dst.strRefs, src.strRefs...)
}

// tryProp runs the named property's ordinary parser (table-driven or
// custom, whichever it's registered with) against v's cursor, the same
// entry point ParseDeclarationValue uses — so a shorthand component gets
// the same inherit-handling and rollback discipline a standalone
// longhand declaration would.
func tryProp(name string, v *Vector, dict *intern.Dict) (*Buffer, Error) {
	_, buf, err := parseOneValue(properties[name], v, dict)
	return buf, err
}

// expandBorderAll implements the `border` shorthand: the same
// width/style/color grammar as one side, broadcast to all four sides.
func expandBorderAll(v *Vector, dict *intern.Dict) (*Buffer, bool) {
	buf, ok := parseBorderComponents(v, dict, OpBorderTopWidth, OpBorderTopStyle, OpBorderTopColor)
	if !ok {
		return nil, false
	}
	out := NewBuffer(dict)
	sides := [4][3]Opcode{
		{OpBorderTopWidth, OpBorderTopStyle, OpBorderTopColor},
		{OpBorderRightWidth, OpBorderRightStyle, OpBorderRightColor},
		{OpBorderBottomWidth, OpBorderBottomStyle, OpBorderBottomColor},
		{OpBorderLeftWidth, OpBorderLeftStyle, OpBorderLeftColor},
	}
	// buf holds exactly 3 declarations in (width, style, color) order;
	// split and retarget each to every side's own opcode.
	r := NewReader(buf)
	var parts [][]byte
	for i := 0; i < 3 && !r.Done(); i++ {
		start := r.Pos()
		opv := r.ReadOPV()
		skipOperands(r, opv)
		parts = append(parts, buf.bytes[start:r.Pos()])
	}
	for _, side := range sides {
		for i, opcode := range side {
			if i >= len(parts) {
				continue
			}
			out.bytes = append(out.bytes, retargetOpcodeBytes(parts[i], opcode)...)
		}
	}
	out.strRefs = append(out.strRefs, buf.strRefs...)
	return out, true
}

func retargetOpcodeBytes(part []byte, opcode Opcode) []byte {
	if len(part) < 4 {
		return part
	}
	out := make([]byte, len(part))
	copy(out, part)
	opv := OPV(uint32(out[0]) | uint32(out[1])<<8 | uint32(out[2])<<16 | uint32(out[3])<<24)
	newOPV := BuildOPV(opcode, opv.Flags(), opv.Value())
	out[0] = byte(newOPV)
	out[1] = byte(newOPV >> 8)
	out[2] = byte(newOPV >> 16)
	out[3] = byte(newOPV >> 24)
	return out
}

// skipOperands advances r past whatever operands opv's (opcode, value)
// pair implies, using each property's own operand shape. Shorthand
// splitting only ever sees keyword declarations, a fixed-point-plus-unit
// operand (width) or a colour operand, since width/style/color are all
// single-value grammars with no list tail.
func skipOperands(r *Reader, opv OPV) {
	switch {
	case opv.Value() == ValueSet:
		op := opv.Opcode()
		if op == OpBorderTopWidth || op == OpBorderRightWidth || op == OpBorderBottomWidth || op == OpBorderLeftWidth ||
			op == OpOutlineWidth {
			r.ReadFixed()
			r.ReadUnit()
		} else {
			r.ReadColour()
		}
	}
}

// expandOutline implements `outline`: width/style/color in any order,
// like a border side but without the four-sides broadcast.
func expandOutline(v *Vector, dict *intern.Dict) (*Buffer, bool) {
	return parseBorderComponents(v, dict, OpOutlineWidth, OpOutlineStyle, OpOutlineColor)
}

// expandListStyle implements `list-style: type || position || image`.
func expandListStyle(v *Vector, dict *intern.Dict) (*Buffer, bool) {
	var typeBuf, posBuf, imgBuf *Buffer
	filled := 0
	for filled < 3 {
		v.SkipWhitespace()
		if t := v.Peek(); t.Type == EOF || (t.Type == CHAR && (t.Raw() == ";" || t.Raw() == "}" || t.Raw() == "!")) {
			break
		}
		mark := v.Mark()
		if typeBuf == nil {
			if buf, err := tryProp("list-style-type", v, dict); err == Ok {
				typeBuf = buf
				filled++
				continue
			}
			v.Restore(mark)
		}
		if posBuf == nil {
			if buf, err := tryProp("list-style-position", v, dict); err == Ok {
				posBuf = buf
				filled++
				continue
			}
			v.Restore(mark)
		}
		if imgBuf == nil {
			if buf, err := tryProp("list-style-image", v, dict); err == Ok {
				imgBuf = buf
				filled++
				continue
			}
			v.Restore(mark)
		}
		break
	}
	if typeBuf == nil && posBuf == nil && imgBuf == nil {
		return nil, false
	}
	out := NewBuffer(dict)
	if typeBuf != nil {
		appendBuf(out, typeBuf)
	} else {
		out.WriteOPV(OpListStyleType, 0, 1) // disc
	}
	if posBuf != nil {
		appendBuf(out, posBuf)
	} else {
		out.WriteOPV(OpListStylePosition, 0, 2) // outside
	}
	if imgBuf != nil {
		appendBuf(out, imgBuf)
	} else {
		out.WriteOPV(OpListStyleImage, 0, valNone)
	}
	return out, true
}

// expandTwoURIOrNone implements `cue: cue-before cue-after?` (shared
// shape with `pause`'s two-length grammar below).
func expandTwoURIOrNone(firstName, secondName string, secondOpcode Opcode) func(*Vector, *intern.Dict) (*Buffer, bool) {
	return func(v *Vector, dict *intern.Dict) (*Buffer, bool) {
		buf1, err := tryProp(firstName, v, dict)
		if err != Ok {
			return nil, false
		}
		out := NewBuffer(dict)
		appendBuf(out, buf1)
		v.SkipWhitespace()
		if buf2, err2 := tryProp(secondName, v, dict); err2 == Ok {
			appendBuf(out, buf2)
		} else {
			out.WriteOPV(secondOpcode, 0, valNone)
		}
		return out, true
	}
}

// expandTwoLengths implements `pause: pause-before pause-after?`.
func expandTwoLengths(firstName, secondName string) func(*Vector, *intern.Dict) (*Buffer, bool) {
	return func(v *Vector, dict *intern.Dict) (*Buffer, bool) {
		buf1, err := tryProp(firstName, v, dict)
		if err != Ok {
			return nil, false
		}
		out := NewBuffer(dict)
		appendBuf(out, buf1)
		v.SkipWhitespace()
		if buf2, err2 := tryProp(secondName, v, dict); err2 == Ok {
			appendBuf(out, buf2)
		} else {
			appendBuf(out, buf1) // CSS 2.1: a single value sets both
		}
		return out, true
	}
}

// expandBackground implements `background: color || image || repeat ||
// attachment || position` — order among longhands is insensitive except
// where the grammar fixes it.
func expandBackground(v *Vector, dict *intern.Dict) (*Buffer, bool) {
	var colorBuf, repeatBuf, attachBuf, imgBuf, posBuf *Buffer
	for {
		v.SkipWhitespace()
		if t := v.Peek(); t.Type == EOF || (t.Type == CHAR && (t.Raw() == ";" || t.Raw() == "}" || t.Raw() == "!")) {
			break
		}
		mark := v.Mark()
		progressed := false
		if colorBuf == nil {
			if buf, err := tryProp("background-color", v, dict); err == Ok {
				colorBuf, progressed = buf, true
			} else {
				v.Restore(mark)
			}
		}
		if !progressed && imgBuf == nil {
			if buf, err := tryProp("background-image", v, dict); err == Ok {
				imgBuf, progressed = buf, true
			} else {
				v.Restore(mark)
			}
		}
		if !progressed && repeatBuf == nil {
			if buf, err := tryProp("background-repeat", v, dict); err == Ok {
				repeatBuf, progressed = buf, true
			} else {
				v.Restore(mark)
			}
		}
		if !progressed && attachBuf == nil {
			if buf, err := tryProp("background-attachment", v, dict); err == Ok {
				attachBuf, progressed = buf, true
			} else {
				v.Restore(mark)
			}
		}
		if !progressed && posBuf == nil {
			if buf, err := tryProp("background-position", v, dict); err == Ok {
				posBuf, progressed = buf, true
			} else {
				v.Restore(mark)
			}
		}
		if !progressed {
			break
		}
	}
	if colorBuf == nil && repeatBuf == nil && attachBuf == nil && imgBuf == nil && posBuf == nil {
		return nil, false
	}
	out := NewBuffer(dict)
	if colorBuf != nil {
		appendBuf(out, colorBuf)
	} else {
		out.WriteOPV(OpBackgroundColor, 0, 1) // transparent
	}
	if imgBuf != nil {
		appendBuf(out, imgBuf)
	} else {
		out.WriteOPV(OpBackgroundImage, 0, valNone)
	}
	if repeatBuf != nil {
		appendBuf(out, repeatBuf)
	} else {
		out.WriteOPV(OpBackgroundRepeat, 0, 1) // repeat
	}
	if attachBuf != nil {
		appendBuf(out, attachBuf)
	} else {
		out.WriteOPV(OpBackgroundAttachment, 0, 1) // scroll
	}
	if posBuf != nil {
		appendBuf(out, posBuf)
	} else {
		out.WriteOPV(OpBackgroundPosition, 0, 0x8000|4<<8|1<<4) // 0% 0%, encoded as the plain keyword form (left top)
	}
	return out, true
}

// expandFont implements `font: style || variant || weight, size[/line-height],
// family-list` — the one shorthand where order is partially fixed: the
// three leading keyword components may appear in any order, but size
// (and its optional `/line-height`) must precede the family list, per
// CSS 2.1 §15.3.
func expandFont(v *Vector, dict *intern.Dict) (*Buffer, bool) {
	var styleBuf, variantBuf, weightBuf *Buffer
	for i := 0; i < 3; i++ {
		v.SkipWhitespace()
		mark := v.Mark()
		progressed := false
		if styleBuf == nil {
			if buf, err := tryProp("font-style", v, dict); err == Ok {
				styleBuf, progressed = buf, true
			} else {
				v.Restore(mark)
			}
		}
		if !progressed && variantBuf == nil {
			if buf, err := tryProp("font-variant", v, dict); err == Ok {
				variantBuf, progressed = buf, true
			} else {
				v.Restore(mark)
			}
		}
		if !progressed && weightBuf == nil {
			if buf, err := tryProp("font-weight", v, dict); err == Ok {
				weightBuf, progressed = buf, true
			} else {
				v.Restore(mark)
			}
		}
		if !progressed {
			break
		}
	}

	v.SkipWhitespace()
	sizeBuf, err := tryProp("font-size", v, dict)
	if err != Ok {
		return nil, false
	}

	var lineHeightBuf *Buffer
	savePos := v.Mark()
	v.SkipWhitespace()
	if t := v.Peek(); t.Type == CHAR && t.Raw() == "/" {
		v.Next()
		v.SkipWhitespace()
		if buf, err2 := tryProp("line-height", v, dict); err2 == Ok {
			lineHeightBuf = buf
		} else {
			v.Restore(savePos)
		}
	} else {
		v.Restore(savePos)
	}

	v.SkipWhitespace()
	familyBuf, err := tryProp("font-family", v, dict)
	if err != Ok {
		return nil, false
	}

	out := NewBuffer(dict)
	if styleBuf != nil {
		appendBuf(out, styleBuf)
	} else {
		out.WriteOPV(OpFontStyle, 0, 1) // normal
	}
	if variantBuf != nil {
		appendBuf(out, variantBuf)
	} else {
		out.WriteOPV(OpFontVariant, 0, 1) // normal
	}
	if weightBuf != nil {
		appendBuf(out, weightBuf)
	} else {
		out.WriteOPV(OpFontWeight, 0, 1) // normal
	}
	appendBuf(out, sizeBuf)
	if lineHeightBuf != nil {
		appendBuf(out, lineHeightBuf)
	} else {
		out.WriteOPV(OpLineHeight, 0, 1) // normal
	}
	appendBuf(out, familyBuf)
	return out, true
}
