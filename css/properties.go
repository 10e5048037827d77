// This file implements the property-value parsers as data plus one
// shared driver rather than ~90 near-identical hand-written recognizers:
// each property is a record of keywords, a value grammar, and range
// checks, and one driver function (ParseDeclarationValue) interprets the
// record against the token vector.
package css

import (
	"strconv"
	"strings"

	"github.com/lukehoban/browser/fixed"
	"github.com/lukehoban/browser/intern"
)

// grammar classifies the non-keyword part of a property's value syntax.
// Every property also accepts "inherit" and a fixed keyword vocabulary;
// grammar describes what else it accepts.
type grammar int

const (
	gKeywordOnly grammar = iota // only the keyword table (plus inherit)
	gLength                     // length | percentage, per allowed unit mask
	gColor                      // the 17 named colours, #hash, rgb()
	gNumber                     // a bare (optionally integer, optionally bounded) number
	gAngle                      // an angle, bounded
	gCustom                     // property owns its grammar entirely; see customProp/d.custom
)

// keywordSet maps a lowercase ident to its value-field discriminant.
// 0 is reserved, so real keyword values start at 1.
type keywordSet map[string]uint16

// propertyDef is one entry in the property table: every property reduced
// to a record of keywords, a grammar classifier, and range parameters.
type propertyDef struct {
	name     string
	opcode   Opcode
	keywords keywordSet
	grammar  grammar

	// gLength / gAngle / gNumber parameters.
	units       unitMask // allowed units, for gLength/gAngle
	nonNegative bool
	integerOnly bool
	minFixed    fixed.Value
	maxFixed    bool // whether min/max below are meaningful
	lo, hi      fixed.Value

	// custom grammar, set directly by customProp.
	custom customParseFunc
}

type customParseFunc func(def *propertyDef, v *Vector, dict *intern.Dict, flags Flags) (*Buffer, Error)

// properties is the full CSS 2.1 property table, keyed by lowercase
// property name as it appears in source text.
var properties map[string]*propertyDef

func def(name string, opcode Opcode, g grammar, kw keywordSet) *propertyDef {
	d := &propertyDef{name: name, opcode: opcode, grammar: g, keywords: kw}
	properties[name] = d
	return d
}

func kwOnly(name string, opcode Opcode, kw keywordSet) *propertyDef {
	return def(name, opcode, gKeywordOnly, kw)
}

func lengthProp(name string, opcode Opcode, kw keywordSet, units unitMask, nonNeg bool) *propertyDef {
	d := def(name, opcode, gLength, kw)
	d.units = units
	d.nonNegative = nonNeg
	return d
}

func colorProp(name string, opcode Opcode, kw keywordSet) *propertyDef {
	return def(name, opcode, gColor, kw)
}

func numberProp(name string, opcode Opcode, kw keywordSet, lo, hi fixed.Value, integerOnly bool) *propertyDef {
	d := def(name, opcode, gNumber, kw)
	d.maxFixed = true
	d.lo, d.hi = lo, hi
	d.integerOnly = integerOnly
	return d
}

func angleProp(name string, opcode Opcode, kw keywordSet, lo, hi fixed.Value) *propertyDef {
	d := def(name, opcode, gAngle, kw)
	d.maxFixed = true
	d.lo, d.hi = lo, hi
	return d
}

func customProp(name string, opcode Opcode, fn customParseFunc) *propertyDef {
	d := def(name, opcode, gCustom, nil)
	d.custom = fn
	return d
}

func init() {
	properties = make(map[string]*propertyDef)
	registerBorderStyleKeywords()
	buildPropertyTable()
	registerCustomGrammars()
	buildOpcodeNames()
}

// opcodeNames is the inverse of properties, built once at init so
// diagnostic dumps (cmd/cssdump) can print a property's source name
// given only the opcode a ComputedStyle is keyed by.
var opcodeNames map[Opcode]string

func buildOpcodeNames() {
	opcodeNames = make(map[Opcode]string, len(properties))
	for name, d := range properties {
		opcodeNames[d.opcode] = name
	}
}

// PropertyOpcode looks up the opcode for a CSS 2.1 property name using
// the same table ParseDeclarationValue consults, so callers outside
// this package never need to re-derive the name-to-opcode mapping.
func PropertyOpcode(name string) (Opcode, bool) {
	d, ok := properties[strings.ToLower(name)]
	if !ok {
		return 0, false
	}
	return d.opcode, true
}

// PropertyName is the inverse of PropertyOpcode.
func PropertyName(op Opcode) (string, bool) {
	name, ok := opcodeNames[op]
	return name, ok
}

// lengthUnits / noPercentUnits are the two unit masks lengths come in:
// ordinary lengths accept percentage too, border/outline widths don't.
const lengthUnits = maskLength | maskPercentage
const noPercentUnits = maskLength

var borderStyleKeywords keywordSet

func registerBorderStyleKeywords() {
	borderStyleKeywords = keywordSet{
		"none": 1, "hidden": 2, "dotted": 3, "dashed": 4, "solid": 5,
		"double": 6, "groove": 7, "ridge": 8, "inset": 9, "outset": 10,
	}
}

// ParseDeclarationValue parses one property's value starting at v's
// cursor, under a uniform contract: on failure the cursor is restored to
// its entry position and Invalid is returned; on success the cursor
// points past the consumed value and any trailing '!important' (which
// sets the important flag on the result), but before any trailing ';',
// which the caller in sheet.go's declaration-list loop handles.
func ParseDeclarationValue(name string, v *Vector, dict *intern.Dict) (*Buffer, Error) {
	def, ok := properties[strings.ToLower(name)]
	if !ok {
		return nil, Invalid
	}
	mark := v.Mark()
	v.SkipWhitespace()

	flags, buf, err := parseOneValue(def, v, dict)
	if err != Ok {
		v.Restore(mark)
		return nil, err
	}

	v.SkipWhitespace()
	if _, ok2 := parseImportant(v); ok2 {
		flags |= FlagImportant
		buf.PatchFlags(flags)
	}
	return buf, Ok
}

// parseOneValue dispatches on the property's grammar and returns its
// bytecode buffer. It does not consume !important; that's layered on by
// the caller so every grammar path shares one rollback point.
func parseOneValue(d *propertyDef, v *Vector, dict *intern.Dict) (Flags, *Buffer, Error) {
	mark := v.Mark()

	if t := v.Peek(); t.Type == IDENT && t.Lower() == "inherit" {
		v.Next()
		buf := NewBuffer(dict)
		buf.WriteOPV(d.opcode, FlagInherit, 0)
		return FlagInherit, buf, Ok
	}

	if t := v.Peek(); t.Type == IDENT {
		if val, ok := d.keywords[t.Lower()]; ok {
			v.Next()
			buf := NewBuffer(dict)
			buf.WriteOPV(d.opcode, 0, val)
			return 0, buf, Ok
		}
	}

	switch d.grammar {
	case gKeywordOnly:
		v.Restore(mark)
		return 0, nil, Invalid
	case gLength:
		val, unit, ok := parseUnitSpecifier(v)
		if !ok || unitMasks[unit]&d.units == 0 && !(unit == UnitNone) {
			v.Restore(mark)
			return 0, nil, Invalid
		}
		if d.nonNegative && val < 0 {
			v.Restore(mark)
			return 0, nil, Invalid
		}
		buf := NewBuffer(dict)
		buf.WriteFixedUnit(d.opcode, 0, val, unit)
		return 0, buf, Ok
	case gColor:
		c, ok := parseColorSpecifier(v, dict)
		if !ok {
			v.Restore(mark)
			return 0, nil, Invalid
		}
		buf := NewBuffer(dict)
		buf.WriteColour(d.opcode, 0, c)
		return 0, buf, Ok
	case gNumber:
		val, ok := parseBareNumber(v, d.integerOnly)
		if !ok || (d.maxFixed && (val.Compare(d.lo) < 0 || val.Compare(d.hi) > 0)) {
			v.Restore(mark)
			return 0, nil, Invalid
		}
		buf := NewBuffer(dict)
		buf.WriteFixed(d.opcode, 0, val)
		return 0, buf, Ok
	case gAngle:
		val, unit, ok := parseUnitSpecifier(v)
		if !ok || !unit.IsAngle() {
			v.Restore(mark)
			return 0, nil, Invalid
		}
		lo, hi := scaleAngleBounds(d.lo, d.hi, unit)
		if val.Compare(lo) < 0 || val.Compare(hi) > 0 {
			v.Restore(mark)
			return 0, nil, Invalid
		}
		buf := NewBuffer(dict)
		buf.WriteFixedUnit(d.opcode, 0, val, unit)
		return 0, buf, Ok
	case gCustom:
		buf, err := d.custom(d, v, dict, 0)
		if err != Ok {
			v.Restore(mark)
			return 0, nil, err
		}
		return 0, buf, Ok
	}
	v.Restore(mark)
	return 0, nil, Invalid
}

// scaleAngleBounds scales a bound given in degrees (the table's unit of
// record) into whatever unit the input used, since azimuth/elevation's
// range is specified per-unit (e.g. [-360,360] deg but [-2π,2π] rad).
func scaleAngleBounds(loDeg, hiDeg fixed.Value, u Unit) (fixed.Value, fixed.Value) {
	switch u {
	case UnitDEG:
		return loDeg, hiDeg
	case UnitGRAD:
		// 400 grad == 360 deg
		return loDeg.Mul(fixed.FromFloat(400.0 / 360.0)), hiDeg.Mul(fixed.FromFloat(400.0 / 360.0))
	case UnitRAD:
		// 2π rad == 360 deg
		return loDeg.Mul(fixed.FromFloat(6.283185307179586 / 360.0)), hiDeg.Mul(fixed.FromFloat(6.283185307179586 / 360.0))
	default:
		return loDeg, hiDeg
	}
}

// parseImportant consumes an optional "!important". CSS 2.1 allows
// whitespace between '!' and 'important'.
func parseImportant(v *Vector) (string, bool) {
	mark := v.Mark()
	t := v.Peek()
	if t.Type != CHAR || t.Raw() != "!" {
		return "", false
	}
	v.Next()
	v.SkipWhitespace()
	t = v.Peek()
	if t.Type == IDENT && t.Lower() == "important" {
		v.Next()
		return "important", true
	}
	v.Restore(mark)
	return "", false
}

// parseUnitSpecifier reads a NUMBER, DIMENSION, or PERCENTAGE token,
// returning its fixed-point value and unit. Unitless zero is accepted as
// a length.
func parseUnitSpecifier(v *Vector) (fixed.Value, Unit, bool) {
	t := v.Peek()
	switch t.Type {
	case NUMBER:
		f, ok := parseNumberText(t.Raw())
		if !ok {
			return 0, UnitNone, false
		}
		if f != 0 {
			return 0, UnitNone, false
		}
		v.Next()
		return 0, UnitPX, true
	case PERCENTAGE:
		numText := strings.TrimSuffix(t.Raw(), "%")
		f, ok := parseNumberText(numText)
		if !ok {
			return 0, UnitNone, false
		}
		v.Next()
		return f, UnitPCT, true
	case DIMENSION:
		raw := t.Raw()
		numText, unitText := splitDimension(raw)
		f, ok := parseNumberText(numText)
		if !ok {
			return 0, UnitNone, false
		}
		u, ok := unitSuffixes[strings.ToLower(unitText)]
		if !ok {
			return 0, UnitNone, false
		}
		v.Next()
		return f, u, true
	default:
		return 0, UnitNone, false
	}
}

func splitDimension(s string) (numPart, unitPart string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '.' || c == '-' || c == '+' || (c >= '0' && c <= '9') {
			i++
			continue
		}
		break
	}
	return s[:i], s[i:]
}

func parseNumberText(s string) (fixed.Value, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return fixed.FromFloat(f), true
}

func parseBareNumber(v *Vector, integerOnly bool) (fixed.Value, bool) {
	t := v.Peek()
	if t.Type != NUMBER {
		return 0, false
	}
	raw := t.Raw()
	if integerOnly && strings.Contains(raw, ".") {
		return 0, false
	}
	f, ok := parseNumberText(raw)
	if !ok {
		return 0, false
	}
	v.Next()
	return f, true
}

// parseColorSpecifier recognizes HASH (#rgb, #rrggbb), FUNCTION(rgb), and
// the 17 named CSS 2.1 colours.
func parseColorSpecifier(v *Vector, dict *intern.Dict) (Color, bool) {
	t := v.Peek()
	switch t.Type {
	case HASH:
		c, ok := parseHashColor(t.Raw())
		if !ok {
			return 0, false
		}
		v.Next()
		return c, true
	case IDENT:
		if c, ok := namedColors[t.Lower()]; ok {
			v.Next()
			return c, true
		}
		return 0, false
	case FUNCTION:
		if t.Lower() != "rgb" {
			return 0, false
		}
		return parseRGBFunction(v, dict)
	default:
		return 0, false
	}
}

func parseHashColor(hex string) (Color, bool) {
	expand := func(c byte) (byte, bool) {
		switch {
		case c >= '0' && c <= '9':
			return c - '0', true
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10, true
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10, true
		default:
			return 0, false
		}
	}
	nibble := func(c byte) (byte, bool) { return expand(c) }
	byte2 := func(hi, lo byte) (byte, bool) {
		h, ok1 := nibble(hi)
		l, ok2 := nibble(lo)
		if !ok1 || !ok2 {
			return 0, false
		}
		return h<<4 | l, true
	}
	switch len(hex) {
	case 3:
		r, ok1 := nibble(hex[0])
		g, ok2 := nibble(hex[1])
		b, ok3 := nibble(hex[2])
		if !ok1 || !ok2 || !ok3 {
			return 0, false
		}
		return RGBA(r<<4|r, g<<4|g, b<<4|b, 0xff), true
	case 6:
		r, ok1 := byte2(hex[0], hex[1])
		g, ok2 := byte2(hex[2], hex[3])
		b, ok3 := byte2(hex[4], hex[5])
		if !ok1 || !ok2 || !ok3 {
			return 0, false
		}
		return RGBA(r, g, b, 0xff), true
	default:
		return 0, false
	}
}

func parseRGBFunction(v *Vector, dict *intern.Dict) (Color, bool) {
	mark := v.Mark()
	v.Next() // consume FUNCTION("rgb")
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v.SkipWhitespace()
		t := v.Peek()
		var val float64
		switch t.Type {
		case NUMBER:
			f, ok := parseNumberText(t.Raw())
			if !ok {
				v.Restore(mark)
				return 0, false
			}
			val = f.ToFloat()
		case PERCENTAGE:
			f, ok := parseNumberText(strings.TrimSuffix(t.Raw(), "%"))
			if !ok {
				v.Restore(mark)
				return 0, false
			}
			val = f.ToFloat() * 255.0 / 100.0
		default:
			v.Restore(mark)
			return 0, false
		}
		v.Next()
		if val < 0 {
			val = 0
		}
		if val > 255 {
			val = 255
		}
		channels[i] = uint8(val + 0.5)
		v.SkipWhitespace()
		if i < 2 {
			t = v.Peek()
			if t.Type != CHAR || t.Raw() != "," {
				v.Restore(mark)
				return 0, false
			}
			v.Next()
		}
	}
	v.SkipWhitespace()
	t := v.Peek()
	if t.Type != CHAR || t.Raw() != ")" {
		v.Restore(mark)
		return 0, false
	}
	v.Next()
	_ = dict
	return RGBA(channels[0], channels[1], channels[2], 0xff), true
}
