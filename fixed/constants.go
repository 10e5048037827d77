package fixed

// Common angle and range constants. The property range checks in package
// css build their bounds with FromInt directly; no code in this module
// references these.
var (
	PiOver2    = FromFloat(1.5707963267948966)
	Pi         = FromFloat(3.141592653589793)
	ThreePiOver2 = FromFloat(4.71238898038469)
	TwoPi      = FromFloat(6.283185307179586)

	Ninety    = FromInt(90)
	OneEighty = FromInt(180)
	TwoSeventy = FromInt(270)
	ThreeSixty = FromInt(360)

	Hundred   = FromInt(100)
	TwoHundred = FromInt(200)
	ThreeHundred = FromInt(300)
	FourHundred  = FromInt(400)
)
