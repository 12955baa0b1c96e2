// Package tone builds 256 entry tone curves and remaps images through them.
package tone

import "math"

// maxExponent bounds the gamma exponent. Amounts beyond it saturate.
const maxExponent = 2.0

// Table maps an 8-bit input intensity (the index) to an output intensity.
type Table [256]uint8

// Shadow evaluates the shadow curve for a single channel value.
//
// Positive amounts lift the dark end of the range, negative amounts crush it.
// The curve is x^(2^-amount) on the normalized [0,1] scale, so 0 and 255 are
// fixed points for every amount. The exponent is clamped to [-2,2] and the
// result is truncated, not rounded.
func Shadow(x uint8, amount float64) uint8 {
	exp := min(max(-amount, -maxExponent), maxExponent)
	if math.IsNaN(exp) {
		exp = 0
	}
	gamma := math.Pow(2, exp)
	v := math.Pow(float64(x)/255, gamma)
	return uint8(v * 255)
}

// ShadowCurve returns the shadow curve for amount as a lookup table.
func ShadowCurve(amount float64) Table {
	if amount == 0 {
		return Identity()
	}
	var t Table
	for i := range t {
		t[i] = Shadow(uint8(i), amount)
	}
	return t
}

// Identity returns the table mapping every value onto itself.
func Identity() Table {
	var t Table
	for i := range t {
		t[i] = uint8(i)
	}
	return t
}
