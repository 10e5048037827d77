package css

// Unit is the closed set of CSS 2.1 numeric units.
type Unit uint8

const (
	UnitNone Unit = iota
	UnitPX
	UnitEM
	UnitEX
	UnitIN
	UnitCM
	UnitMM
	UnitPT
	UnitPC
	UnitPCT // percentage
	UnitDEG
	UnitGRAD
	UnitRAD
	UnitS
	UnitMS
	UnitHZ
	UnitKHZ
)

// unitMask groups units into bitmask categories so range checks and
// operand validation can ask "is this a length" in one compare instead of
// an exhaustive switch.
type unitMask uint32

const (
	maskLength unitMask = 1 << iota
	maskPercentage
	maskAngle
	maskTime
	maskFrequency
)

var unitMasks = map[Unit]unitMask{
	UnitPX:   maskLength,
	UnitEM:   maskLength,
	UnitEX:   maskLength,
	UnitIN:   maskLength,
	UnitCM:   maskLength,
	UnitMM:   maskLength,
	UnitPT:   maskLength,
	UnitPC:   maskLength,
	UnitPCT:  maskPercentage,
	UnitDEG:  maskAngle,
	UnitGRAD: maskAngle,
	UnitRAD:  maskAngle,
	UnitS:    maskTime,
	UnitMS:   maskTime,
	UnitHZ:   maskFrequency,
	UnitKHZ:  maskFrequency,
}

// IsLength reports whether u is one of the absolute or relative length units.
func (u Unit) IsLength() bool { return unitMasks[u]&maskLength != 0 }

// IsPercentage reports whether u is the percentage unit.
func (u Unit) IsPercentage() bool { return u == UnitPCT }

// IsAngle reports whether u is one of deg/grad/rad.
func (u Unit) IsAngle() bool { return unitMasks[u]&maskAngle != 0 }

// IsTime reports whether u is s or ms.
func (u Unit) IsTime() bool { return unitMasks[u]&maskTime != 0 }

// IsFrequency reports whether u is Hz or kHz.
func (u Unit) IsFrequency() bool { return unitMasks[u]&maskFrequency != 0 }

func (u Unit) String() string {
	switch u {
	case UnitNone:
		return ""
	case UnitPX:
		return "px"
	case UnitEM:
		return "em"
	case UnitEX:
		return "ex"
	case UnitIN:
		return "in"
	case UnitCM:
		return "cm"
	case UnitMM:
		return "mm"
	case UnitPT:
		return "pt"
	case UnitPC:
		return "pc"
	case UnitPCT:
		return "%"
	case UnitDEG:
		return "deg"
	case UnitGRAD:
		return "grad"
	case UnitRAD:
		return "rad"
	case UnitS:
		return "s"
	case UnitMS:
		return "ms"
	case UnitHZ:
		return "Hz"
	case UnitKHZ:
		return "kHz"
	default:
		return "?"
	}
}

var unitSuffixes = map[string]Unit{
	"px":   UnitPX,
	"em":   UnitEM,
	"ex":   UnitEX,
	"in":   UnitIN,
	"cm":   UnitCM,
	"mm":   UnitMM,
	"pt":   UnitPT,
	"pc":   UnitPC,
	"deg":  UnitDEG,
	"grad": UnitGRAD,
	"rad":  UnitRAD,
	"s":    UnitS,
	"ms":   UnitMS,
	"hz":   UnitHZ,
	"khz":  UnitKHZ,
}
