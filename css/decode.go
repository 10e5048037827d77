// This file is the read side of the OPV + operand contract that
// bytecode.go's Buffer/Reader establish: given a Reader positioned at a
// declaration, decode it into a typed Value without the caller needing to
// already know the property's operand shape. Package style is the only
// consumer, but the schema knowledge itself lives beside the writer it
// mirrors, not in the cascade package — given a cursor, read one OPV,
// then read operands as the opcode's own shape dictates.
package css

import (
	"fmt"

	"github.com/lukehoban/browser/fixed"
	"github.com/lukehoban/browser/intern"
)

// CurrentColorValue is the value-field discriminant shorthand.go's
// currentColorFallback writes for border-color/outline-color sides CSS 2.1
// leaves unset: "the computed value of 'color'", which can only be
// resolved once the cascade reaches this node's own color, not at parse
// time. The style package's compose step special-cases it.
const CurrentColorValue uint16 = 0xfffe

// ContentNormal and ContentNone are content's two keyword-only forms,
// exported so the style package can seed 'content's initial value without
// duplicating the discriminant.
const (
	ContentNormal = contentNormal
	ContentNone   = contentNone
)

// operandShape is the decode-time counterpart of the write-time
// constructors in properties_table.go: kwOnly/colorProp/lengthProp/
// angleProp/numberProp each produce exactly one of these shapes whenever
// their OPV's value field is ValueSet.
type operandShape uint8

const (
	shapeNone operandShape = iota
	shapeFixedUnit
	shapeFixed
	shapeColour
)

// regularShape gives the operand shape for every property whose grammar is
// the uniform table-driven kind (kwOnly/colorProp/lengthProp/angleProp/
// numberProp in properties_table.go). Properties registered instead via
// customProp in properties_custom.go are not listed here; they decode
// through customDecoders below, since several of them mix a keyword set
// with a typed operand in ways the uniform shapes don't capture.
var regularShape = map[Opcode]operandShape{
	OpBackgroundAttachment: shapeNone,
	OpBackgroundColor:      shapeColour,
	OpBackgroundRepeat:     shapeNone,
	OpBorderCollapse:       shapeNone,
	OpBorderTopColor:       shapeColour,
	OpBorderRightColor:     shapeColour,
	OpBorderBottomColor:    shapeColour,
	OpBorderLeftColor:      shapeColour,
	OpBorderTopStyle:       shapeNone,
	OpBorderRightStyle:     shapeNone,
	OpBorderBottomStyle:    shapeNone,
	OpBorderLeftStyle:      shapeNone,
	OpBorderTopWidth:       shapeFixedUnit,
	OpBorderRightWidth:     shapeFixedUnit,
	OpBorderBottomWidth:    shapeFixedUnit,
	OpBorderLeftWidth:      shapeFixedUnit,
	OpTop:                  shapeFixedUnit,
	OpRight:                shapeFixedUnit,
	OpBottom:               shapeFixedUnit,
	OpLeft:                 shapeFixedUnit,
	OpCaptionSide:          shapeNone,
	OpClear:                shapeNone,
	OpColor:                shapeColour,
	OpDirection:            shapeNone,
	OpDisplay:              shapeNone,
	OpEmptyCells:           shapeNone,
	OpFloat:                shapeNone,
	OpFontStyle:            shapeNone,
	OpFontVariant:          shapeNone,
	OpHeight:               shapeFixedUnit,
	OpLetterSpacing:        shapeFixedUnit,
	OpListStylePosition:    shapeNone,
	OpListStyleType:        shapeNone,
	OpMarginTop:            shapeFixedUnit,
	OpMarginRight:          shapeFixedUnit,
	OpMarginBottom:         shapeFixedUnit,
	OpMarginLeft:           shapeFixedUnit,
	OpMaxHeight:            shapeFixedUnit,
	OpMaxWidth:             shapeFixedUnit,
	OpMinHeight:            shapeFixedUnit,
	OpMinWidth:             shapeFixedUnit,
	OpOrphans:              shapeFixed,
	OpOutlineColor:         shapeColour,
	OpOutlineStyle:         shapeNone,
	OpOutlineWidth:         shapeFixedUnit,
	OpOverflow:             shapeNone,
	OpPaddingTop:           shapeFixedUnit,
	OpPaddingRight:         shapeFixedUnit,
	OpPaddingBottom:        shapeFixedUnit,
	OpPaddingLeft:          shapeFixedUnit,
	OpPageBreakAfter:       shapeNone,
	OpPageBreakBefore:      shapeNone,
	OpPageBreakInside:      shapeNone,
	OpPauseAfter:           shapeFixedUnit,
	OpPauseBefore:          shapeFixedUnit,
	OpPitchRange:           shapeFixed,
	OpPosition:             shapeNone,
	OpRichness:             shapeFixed,
	OpSpeak:                shapeNone,
	OpSpeakHeader:          shapeNone,
	OpSpeakNumeral:         shapeNone,
	OpSpeakPunctuation:     shapeNone,
	OpStress:               shapeFixed,
	OpTableLayout:          shapeNone,
	OpTextAlign:            shapeNone,
	OpTextIndent:           shapeFixedUnit,
	OpTextTransform:        shapeNone,
	OpUnicodeBidi:          shapeNone,
	OpVisibility:           shapeNone,
	OpWhiteSpace:           shapeNone,
	OpWidows:               shapeFixed,
	OpWidth:                shapeFixedUnit,
	OpWordSpacing:          shapeFixedUnit,
	OpElevation:            shapeFixedUnit,
}

// ValueItem is one chunk of a list-valued declaration: counter-increment/
// counter-reset's (name, step) pairs, quotes' (open, close) string pairs,
// content's heterogeneous chunks, cursor's leading URI list, and font-
// family/voice-family's comma-separated entries all decode into a []ValueItem.
type ValueItem struct {
	Kind   uint16 // chunk discriminant, meaning is per-property (see the parser that wrote it)
	Fixed  fixed.Value
	Str    *intern.Name
	Str2   *intern.Name // second string, only content's counters() and quotes' close-quote use this
}

// Value is the fully decoded payload of one declaration, independent of
// which property it belongs to. A cascade apply step reads whichever
// fields its property's shape fills in; the others are zero.
type Value struct {
	Keyword  uint16 // the OPV's value field verbatim when no typed operand follows
	IsSet    bool   // true when the declaration carried typed operands (ValueSet or a custom marker)
	Fixed    fixed.Value
	Fixed2   fixed.Value
	Unit     Unit
	Unit2    Unit
	Keyword2 uint16 // background-position's vertical keyword, when Unit2 has no operand
	Colour   Color
	Str      *intern.Name
	Items    []ValueItem
	ClipMask uint16 // clip only: bit i set => position i (top,right,bottom,left) is auto; play-during: mix/repeat bits
	HasRect  bool   // clip only: false means the whole property is the `auto` keyword
}

// customDecoders holds the read-side counterpart of properties_custom.go's
// customProp registrations, for the properties whose value field packs
// more than a plain keyword-or-ValueSet switch.
var customDecoders map[Opcode]func(r *Reader, opv OPV) Value

func init() {
	customDecoders = map[Opcode]func(r *Reader, opv OPV) Value{
		OpAzimuth:           decodeAngleOrKeyword,
		OpBackgroundImage:   decodeURIOrNone,
		OpBackgroundPosition: decodeBackgroundPosition,
		OpBorderSpacing:     decodeBorderSpacing,
		OpClip:              decodeClip,
		OpContent:           decodeContent,
		OpCounterIncrement:  decodeCounterList,
		OpCounterReset:      decodeCounterList,
		OpCueAfter:          decodeURIOrNone,
		OpCueBefore:         decodeURIOrNone,
		OpCursor:            decodeCursor,
		OpFontFamily:        decodeNameList,
		OpFontSize:          decodeLengthOrKeyword,
		OpFontWeight:        decodeKeywordOnly,
		OpLineHeight:        decodeLengthOrKeyword,
		OpListStyleImage:    decodeURIOrNone,
		OpPitch:             decodeFreqOrKeyword,
		OpPlayDuring:        decodePlayDuring,
		OpQuotes:            decodeQuotes,
		OpSpeechRate:        decodeBareNumberOrKeyword,
		OpTextDecoration:    decodeKeywordOnly,
		OpVerticalAlign:     decodeLengthOrKeyword,
		OpVoiceFamily:       decodeNameList,
		OpVolume:            decodeLengthOrKeyword,
		OpZIndex:            decodeBareNumberOrKeyword,
	}
}

// Decode reads one declaration at r's current position and returns its
// opcode, flags, and decoded value. Panics on bytecode corruption if
// opcode has no registered shape at all — an unknown opcode here means
// the encoder and decoder schemas have drifted apart.
func Decode(r *Reader) (Opcode, Flags, Value) {
	opv := r.ReadOPV()
	opcode := opv.Opcode()
	flags := opv.Flags()

	if dec, ok := customDecoders[opcode]; ok {
		return opcode, flags, dec(r, opv)
	}

	shape, ok := regularShape[opcode]
	if !ok {
		panic(fmt.Sprintf("css: no operand shape registered for opcode %d", opcode))
	}
	if opv.Value() != ValueSet {
		return opcode, flags, Value{Keyword: opv.Value()}
	}
	switch shape {
	case shapeFixedUnit:
		v := r.ReadFixed()
		u := r.ReadUnit()
		return opcode, flags, Value{IsSet: true, Fixed: v, Unit: u}
	case shapeFixed:
		v := r.ReadFixed()
		return opcode, flags, Value{IsSet: true, Fixed: v}
	case shapeColour:
		c := r.ReadColour()
		return opcode, flags, Value{IsSet: true, Colour: c}
	default:
		return opcode, flags, Value{Keyword: opv.Value()}
	}
}

func decodeAngleOrKeyword(r *Reader, opv OPV) Value {
	if opv.Value() != ValueSet {
		return Value{Keyword: opv.Value()}
	}
	v := r.ReadFixed()
	u := r.ReadUnit()
	return Value{IsSet: true, Fixed: v, Unit: u}
}

func decodeLengthOrKeyword(r *Reader, opv OPV) Value {
	if opv.Value() != ValueSet {
		return Value{Keyword: opv.Value()}
	}
	v := r.ReadFixed()
	u := r.ReadUnit()
	return Value{IsSet: true, Fixed: v, Unit: u}
}

func decodeFreqOrKeyword(r *Reader, opv OPV) Value { return decodeLengthOrKeyword(r, opv) }

func decodeBareNumberOrKeyword(r *Reader, opv OPV) Value {
	if opv.Value() != ValueSet {
		return Value{Keyword: opv.Value()}
	}
	v := r.ReadFixed()
	return Value{IsSet: true, Fixed: v}
}

func decodeKeywordOnly(r *Reader, opv OPV) Value {
	return Value{Keyword: opv.Value()}
}

func decodeURIOrNone(r *Reader, opv OPV) Value {
	if opv.Value() == valURISet {
		return Value{IsSet: true, Str: r.ReadStringRef()}
	}
	return Value{Keyword: opv.Value()}
}

func decodeBorderSpacing(r *Reader, opv OPV) Value {
	hv := r.ReadFixed()
	hu := r.ReadUnit()
	vv := r.ReadFixed()
	vu := r.ReadUnit()
	return Value{IsSet: true, Fixed: hv, Unit: hu, Fixed2: vv, Unit2: vu}
}

func decodeBackgroundPosition(r *Reader, opv OPV) Value {
	value := opv.Value() &^ 0x8000
	out := Value{IsSet: true}
	if value&1 != 0 {
		out.Fixed = r.ReadFixed()
		out.Unit = r.ReadUnit()
	} else {
		out.Keyword = (value >> 4) & 0xf
	}
	if value&2 != 0 {
		out.Fixed2 = r.ReadFixed()
		out.Unit2 = r.ReadUnit()
	} else {
		out.Keyword2 = (value >> 8) & 0xf
	}
	return out
}

func decodeClip(r *Reader, opv OPV) Value {
	value := opv.Value()
	if value&ClipAutoMaskBit == 0 {
		return Value{}
	}
	mask := value & 0xf
	out := Value{IsSet: true, HasRect: true, ClipMask: mask}
	for i := 0; i < 4; i++ {
		if mask&(1<<uint(i)) != 0 {
			continue
		}
		v := r.ReadFixed()
		u := r.ReadUnit()
		out.Items = append(out.Items, ValueItem{Fixed: v, Kind: uint16(u)})
	}
	return out
}

func decodeContent(r *Reader, opv OPV) Value {
	out := Value{}
	value := opv.Value()
	for {
		kind := value & 0xff
		switch kind {
		case contentNormal, contentNone:
			out.Keyword = kind
			return out
		case contentString, contentURI, contentAttr:
			out.Items = append(out.Items, ValueItem{Kind: kind, Str: r.ReadStringRef()})
		case contentCounter:
			out.Items = append(out.Items, ValueItem{Kind: kind, Fixed: fixed.FromInt(int(value >> 8)), Str: r.ReadStringRef()})
		case contentCounters:
			name := r.ReadStringRef()
			sep := r.ReadStringRef()
			out.Items = append(out.Items, ValueItem{Kind: kind, Fixed: fixed.FromInt(int(value >> 8)), Str: name, Str2: sep})
		case contentOpenQuote, contentCloseQuote, contentNoOpenQuote, contentNoCloseQuote:
			out.Items = append(out.Items, ValueItem{Kind: kind})
		default:
			panic(fmt.Sprintf("css: bad content chunk discriminant %d", kind))
		}
		value = uint16(r.ReadOPV().Value())
	}
}

func decodeCounterList(r *Reader, opv OPV) Value {
	out := Value{}
	value := opv.Value()
	for value == 1 {
		name := r.ReadStringRef()
		step := r.ReadFixed()
		out.Items = append(out.Items, ValueItem{Str: name, Fixed: step})
		value = uint16(r.ReadOPV().Value())
	}
	return out
}

func decodeQuotes(r *Reader, opv OPV) Value {
	out := Value{}
	value := opv.Value()
	for value == 1 {
		open := r.ReadStringRef()
		closeStr := r.ReadStringRef()
		out.Items = append(out.Items, ValueItem{Str: open, Str2: closeStr})
		value = uint16(r.ReadOPV().Value())
	}
	return out
}

func decodeCursor(r *Reader, opv OPV) Value {
	out := Value{}
	value := opv.Value()
	for value == valURISet {
		out.Items = append(out.Items, ValueItem{Str: r.ReadStringRef()})
		value = uint16(r.ReadOPV().Value())
	}
	out.Keyword = value &^ 0x4000
	return out
}

func decodeNameList(r *Reader, opv OPV) Value {
	out := Value{}
	value := opv.Value()
	for value == 1 || value == 2 {
		out.Items = append(out.Items, ValueItem{Kind: value, Str: r.ReadStringRef()})
		value = uint16(r.ReadOPV().Value())
	}
	return out
}

func decodePlayDuring(r *Reader, opv OPV) Value {
	value := opv.Value()
	if value&0x8000 != 0 {
		return Value{IsSet: true, Str: r.ReadStringRef(), ClipMask: value &^ 0x8000}
	}
	return Value{Keyword: value}
}
