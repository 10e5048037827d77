package css

// Opcode identifies a CSS 2.1 property inside the OPV header. The order
// matches libcss's css_properties_e enum in include/libcss/properties.h so
// that anyone cross-referencing bytecode dumps against the original
// implementation finds the same property grouping.
type Opcode uint16

const (
	OpAzimuth Opcode = iota
	OpBackgroundAttachment
	OpBackgroundColor
	OpBackgroundImage
	OpBackgroundPosition
	OpBackgroundRepeat
	OpBorderCollapse
	OpBorderSpacing
	OpBorderTopColor
	OpBorderRightColor
	OpBorderBottomColor
	OpBorderLeftColor
	OpBorderTopStyle
	OpBorderRightStyle
	OpBorderBottomStyle
	OpBorderLeftStyle
	OpBorderTopWidth
	OpBorderRightWidth
	OpBorderBottomWidth
	OpBorderLeftWidth
	OpBottom
	OpCaptionSide
	OpClear
	OpClip
	OpColor
	OpContent
	OpCounterIncrement
	OpCounterReset
	OpCueAfter
	OpCueBefore
	OpCursor
	OpDirection
	OpDisplay
	OpElevation
	OpEmptyCells
	OpFloat
	OpFontFamily
	OpFontSize
	OpFontStyle
	OpFontVariant
	OpFontWeight
	OpHeight
	OpLeft
	OpLetterSpacing
	OpLineHeight
	OpListStyleImage
	OpListStylePosition
	OpListStyleType
	OpMarginTop
	OpMarginRight
	OpMarginBottom
	OpMarginLeft
	OpMaxHeight
	OpMaxWidth
	OpMinHeight
	OpMinWidth
	OpOrphans
	OpOutlineColor
	OpOutlineStyle
	OpOutlineWidth
	OpOverflow
	OpPaddingTop
	OpPaddingRight
	OpPaddingBottom
	OpPaddingLeft
	OpPageBreakAfter
	OpPageBreakBefore
	OpPageBreakInside
	OpPauseAfter
	OpPauseBefore
	OpPitch
	OpPitchRange
	OpPlayDuring
	OpPosition
	OpQuotes
	OpRichness
	OpRight
	OpSpeak
	OpSpeakHeader
	OpSpeakNumeral
	OpSpeakPunctuation
	OpSpeechRate
	OpStress
	OpTableLayout
	OpTextAlign
	OpTextDecoration
	OpTextIndent
	OpTextTransform
	OpTop
	OpUnicodeBidi
	OpVerticalAlign
	OpVisibility
	OpVoiceFamily
	OpVolume
	OpWhiteSpace
	OpWidows
	OpWidth
	OpWordSpacing
	OpZIndex

	opcodeCount
)

const maxOpcode = 1<<14 - 1

func init() {
	if int(opcodeCount) > maxOpcode {
		panic("css: opcode table exceeds 14-bit OPV field")
	}
}
