package css

import "github.com/lukehoban/browser/fixed"

// buildPropertyTable populates the `properties` map for every CSS 2.1
// property the engine recognizes as a cascade-visible opcode (shorthand
// properties like `margin` or `font` never appear here - they expand
// into these longhands; see shorthand.go). Grounded on
// original_source/src/select/properties.h, which enumerates exactly this
// set of cascade_* entry points.
func buildPropertyTable() {
	kwOnly("background-attachment", OpBackgroundAttachment, keywordSet{
		"scroll": 1, "fixed": 2,
	})
	colorProp("background-color", OpBackgroundColor, keywordSet{"transparent": 1})
	kwOnly("background-repeat", OpBackgroundRepeat, keywordSet{
		"repeat": 1, "repeat-x": 2, "repeat-y": 3, "no-repeat": 4,
	})
	kwOnly("border-collapse", OpBorderCollapse, keywordSet{
		"collapse": 1, "separate": 2,
	})

	for _, side := range []struct {
		name   string
		opcode Opcode
	}{
		{"border-top-color", OpBorderTopColor},
		{"border-right-color", OpBorderRightColor},
		{"border-bottom-color", OpBorderBottomColor},
		{"border-left-color", OpBorderLeftColor},
	} {
		colorProp(side.name, side.opcode, keywordSet{"transparent": 1})
	}
	for _, side := range []struct {
		name   string
		opcode Opcode
	}{
		{"border-top-style", OpBorderTopStyle},
		{"border-right-style", OpBorderRightStyle},
		{"border-bottom-style", OpBorderBottomStyle},
		{"border-left-style", OpBorderLeftStyle},
	} {
		kwOnly(side.name, side.opcode, borderStyleKeywords)
	}
	for _, side := range []struct {
		name   string
		opcode Opcode
	}{
		{"border-top-width", OpBorderTopWidth},
		{"border-right-width", OpBorderRightWidth},
		{"border-bottom-width", OpBorderBottomWidth},
		{"border-left-width", OpBorderLeftWidth},
	} {
		lengthProp(side.name, side.opcode, keywordSet{"thin": 1, "medium": 2, "thick": 3}, noPercentUnits, true)
	}

	for _, side := range []struct {
		name   string
		opcode Opcode
	}{
		{"top", OpTop}, {"right", OpRight}, {"bottom", OpBottom}, {"left", OpLeft},
	} {
		lengthProp(side.name, side.opcode, keywordSet{"auto": 1}, lengthUnits, false)
	}

	kwOnly("caption-side", OpCaptionSide, keywordSet{"top": 1, "bottom": 2})
	kwOnly("clear", OpClear, keywordSet{"none": 1, "left": 2, "right": 3, "both": 4})
	colorProp("color", OpColor, nil)

	kwOnly("direction", OpDirection, keywordSet{"ltr": 1, "rtl": 2})
	kwOnly("display", OpDisplay, keywordSet{
		"inline": 1, "block": 2, "list-item": 3, "run-in": 4,
		"inline-block": 5, "table": 6, "inline-table": 7,
		"table-row-group": 8, "table-header-group": 9, "table-footer-group": 10,
		"table-row": 11, "table-column-group": 12, "table-column": 13,
		"table-cell": 14, "table-caption": 15, "none": 16,
	})
	kwOnly("empty-cells", OpEmptyCells, keywordSet{"show": 1, "hide": 2})
	kwOnly("float", OpFloat, keywordSet{"none": 1, "left": 2, "right": 3})

	kwOnly("font-style", OpFontStyle, keywordSet{"normal": 1, "italic": 2, "oblique": 3})
	kwOnly("font-variant", OpFontVariant, keywordSet{"normal": 1, "small-caps": 2})

	lengthProp("height", OpHeight, keywordSet{"auto": 1}, lengthUnits, true)
	lengthProp("letter-spacing", OpLetterSpacing, keywordSet{"normal": 1}, lengthUnits, false)

	kwOnly("list-style-position", OpListStylePosition, keywordSet{"inside": 1, "outside": 2})
	kwOnly("list-style-type", OpListStyleType, keywordSet{
		"disc": 1, "circle": 2, "square": 3, "decimal": 4,
		"decimal-leading-zero": 5, "lower-roman": 6, "upper-roman": 7,
		"lower-greek": 8, "lower-latin": 9, "upper-latin": 10,
		"armenian": 11, "georgian": 12, "lower-alpha": 13, "upper-alpha": 14,
		"none": 15,
	})

	for _, side := range []struct {
		name   string
		opcode Opcode
	}{
		{"margin-top", OpMarginTop}, {"margin-right", OpMarginRight},
		{"margin-bottom", OpMarginBottom}, {"margin-left", OpMarginLeft},
	} {
		lengthProp(side.name, side.opcode, keywordSet{"auto": 1}, lengthUnits, false)
	}

	lengthProp("max-height", OpMaxHeight, keywordSet{"none": 1}, lengthUnits, true)
	lengthProp("max-width", OpMaxWidth, keywordSet{"none": 1}, lengthUnits, true)
	lengthProp("min-height", OpMinHeight, nil, lengthUnits, true)
	lengthProp("min-width", OpMinWidth, nil, lengthUnits, true)

	numberProp("orphans", OpOrphans, nil, fixed.FromInt(1), fixed.FromInt(9999), true)

	colorProp("outline-color", OpOutlineColor, keywordSet{"invert": 1})
	kwOnly("outline-style", OpOutlineStyle, keywordSet{
		"none": 1, "dotted": 3, "dashed": 4, "solid": 5,
		"double": 6, "groove": 7, "ridge": 8, "inset": 9, "outset": 10,
	})
	lengthProp("outline-width", OpOutlineWidth, keywordSet{"thin": 1, "medium": 2, "thick": 3}, noPercentUnits, true)

	kwOnly("overflow", OpOverflow, keywordSet{"visible": 1, "hidden": 2, "scroll": 3, "auto": 4})

	for _, side := range []struct {
		name   string
		opcode Opcode
	}{
		{"padding-top", OpPaddingTop}, {"padding-right", OpPaddingRight},
		{"padding-bottom", OpPaddingBottom}, {"padding-left", OpPaddingLeft},
	} {
		lengthProp(side.name, side.opcode, nil, lengthUnits, true)
	}

	breakKw := keywordSet{"auto": 1, "always": 2, "avoid": 3, "left": 4, "right": 5}
	kwOnly("page-break-after", OpPageBreakAfter, breakKw)
	kwOnly("page-break-before", OpPageBreakBefore, breakKw)
	kwOnly("page-break-inside", OpPageBreakInside, keywordSet{"auto": 1, "avoid": 2})

	lengthProp("pause-after", OpPauseAfter, nil, maskTime|maskPercentage, true)
	lengthProp("pause-before", OpPauseBefore, nil, maskTime|maskPercentage, true)

	numberProp("pitch-range", OpPitchRange, nil, 0, fixed.FromInt(100), false)

	kwOnly("position", OpPosition, keywordSet{
		"static": 1, "relative": 2, "absolute": 3, "fixed": 4,
	})

	numberProp("richness", OpRichness, nil, 0, fixed.FromInt(100), false)

	kwOnly("speak", OpSpeak, keywordSet{"normal": 1, "none": 2, "spell-out": 3})
	kwOnly("speak-header", OpSpeakHeader, keywordSet{"once": 1, "always": 2})
	kwOnly("speak-numeral", OpSpeakNumeral, keywordSet{"digits": 1, "continuous": 2})
	kwOnly("speak-punctuation", OpSpeakPunctuation, keywordSet{"code": 1, "none": 2})

	numberProp("stress", OpStress, nil, 0, fixed.FromInt(100), false)

	kwOnly("table-layout", OpTableLayout, keywordSet{"auto": 1, "fixed": 2})
	kwOnly("text-align", OpTextAlign, keywordSet{
		"left": 1, "right": 2, "center": 3, "justify": 4,
	})
	lengthProp("text-indent", OpTextIndent, nil, lengthUnits, false)
	kwOnly("text-transform", OpTextTransform, keywordSet{
		"capitalize": 1, "uppercase": 2, "lowercase": 3, "none": 4,
	})

	kwOnly("unicode-bidi", OpUnicodeBidi, keywordSet{
		"normal": 1, "embed": 2, "bidi-override": 3,
	})
	kwOnly("visibility", OpVisibility, keywordSet{
		"visible": 1, "hidden": 2, "collapse": 3,
	})

	kwOnly("white-space", OpWhiteSpace, keywordSet{
		"normal": 1, "pre": 2, "nowrap": 3,
	})
	numberProp("widows", OpWidows, nil, fixed.FromInt(1), fixed.FromInt(9999), true)
	lengthProp("width", OpWidth, keywordSet{"auto": 1}, lengthUnits, true)
	lengthProp("word-spacing", OpWordSpacing, keywordSet{"normal": 1}, lengthUnits, false)

	angleProp("elevation", OpElevation, keywordSet{
		"below": 1, "level": 2, "above": 3, "higher": 4, "lower": 5,
	}, fixed.FromInt(-90), fixed.FromInt(90))
}
