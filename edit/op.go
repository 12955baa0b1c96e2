// Package edit composes adjustments into preset looks and the step by step
// manual edit.
package edit

import (
	"fmt"

	"github.com/wamos0922/ossimg/enhance"
)

// Op identifies one of the adjustments.
type Op int

const (
	OpSaturation Op = iota
	OpShadows
	OpBrightness
	OpSharpness
)

var opNames = [...]string{
	OpSaturation: "saturation",
	OpShadows:    "shadows",
	OpBrightness: "brightness",
	OpSharpness:  "sharpness",
}

var opFuncs = [...]enhance.Func{
	OpSaturation: enhance.Saturation,
	OpShadows:    enhance.Shadows,
	OpBrightness: enhance.Brightness,
	OpSharpness:  enhance.Sharpness,
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// Func returns the adjustment behind o, or nil for an unknown op.
func (o Op) Func() enhance.Func {
	if o < 0 || int(o) >= len(opFuncs) {
		return nil
	}
	return opFuncs[o]
}

// Step is a single adjustment with its parameter.
type Step struct {
	Op    Op
	Value float64
}

func (s Step) String() string {
	return fmt.Sprintf("%s(%.2f)", s.Op, s.Value)
}
