// Package fixed implements the 22:10 signed fixed-point number type used
// throughout the CSS cascade engine for every numeric CSS value: lengths,
// percentages, angles, times, and frequencies.
//
// Spec references:
//   - CSS 2.1 §4.3.2 Lengths: https://www.w3.org/TR/CSS21/syndata.html#length-units
//   - CSS 2.1 §4.3 Values: https://www.w3.org/TR/CSS21/syndata.html#values
package fixed

import "math"

// Value is a signed 22:10 fixed-point number: 22 bits of integer part, 10
// bits of fraction, stored in the low 32 bits of an int32.
type Value int32

const fracBits = 10

// Zero is the additive identity.
const Zero Value = 0

// FromInt converts an integer to fixed point.
func FromInt(i int) Value {
	return Value(i << fracBits)
}

// FromFloat converts a float64 to the nearest fixed-point value.
func FromFloat(f float64) Value {
	return Value(int32(math.Round(f * float64(int32(1) << fracBits))))
}

// ToFloat converts a fixed-point value to float64.
func (v Value) ToFloat() float64 {
	return float64(v) / float64(int32(1)<<fracBits)
}

// ToInt truncates a fixed-point value to its integer part.
func (v Value) ToInt() int {
	return int(v >> fracBits)
}

// Add returns v + other, closed under Value.
func (v Value) Add(other Value) Value {
	return v + other
}

// Sub returns v - other, closed under Value.
func (v Value) Sub(other Value) Value {
	return v - other
}

// Mul returns v * other, closed under Value.
func (v Value) Mul(other Value) Value {
	return Value((int64(v) * int64(other)) >> fracBits)
}

// Div returns v / other, closed under Value. Division by zero returns Zero.
func (v Value) Div(other Value) Value {
	if other == 0 {
		return Zero
	}
	return Value((int64(v) << fracBits) / int64(other))
}

// ScaleInt multiplies a fixed-point value by a plain integer.
func (v Value) ScaleInt(n int) Value {
	return v * Value(n)
}

// DivInt divides a fixed-point value by a plain integer.
func (v Value) DivInt(n int) Value {
	if n == 0 {
		return Zero
	}
	return v / Value(n)
}

// Neg returns -v.
func (v Value) Neg() Value {
	return -v
}

// Abs returns the absolute value of v.
func (v Value) Abs() Value {
	if v < 0 {
		return -v
	}
	return v
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than other.
func (v Value) Compare(other Value) int {
	switch {
	case v < other:
		return -1
	case v > other:
		return 1
	default:
		return 0
	}
}
