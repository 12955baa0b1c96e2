// Package enhance implements the four basic picture adjustments.
//
// Brightness, Saturation and Sharpness interpolate between a reference image
// and the source: out = ref + factor*(src-ref). A factor of 1 returns the
// source, 0 returns the reference and larger factors extrapolate past the
// source. Shadows remaps the tonal range through a gamma curve.
//
// Every adjustment returns a new image and leaves its input untouched.
package enhance

import (
	"errors"
	"fmt"
	"image"
	"math"
	"reflect"
)

// ErrInvalidInput is returned when an adjustment is given something it cannot
// work on: a nil image, a typed nil image pointer or a NaN parameter.
var ErrInvalidInput = errors.New("invalid input")

// Func is the common signature of all adjustments.
type Func func(img image.Image, value float64) (*image.NRGBA, error)

var (
	_ Func = Brightness
	_ Func = Saturation
	_ Func = Sharpness
	_ Func = Shadows
)

// Validate reports whether img can be adjusted. It fails with ErrInvalidInput
// for a nil image and for typed nil pointers such as (*image.RGBA)(nil).
func Validate(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: no image", ErrInvalidInput)
	}
	if v := reflect.ValueOf(img); v.Kind() == reflect.Pointer && v.IsNil() {
		return fmt.Errorf("%w: nil %T", ErrInvalidInput, img)
	}
	return nil
}

func check(op string, img image.Image, value float64) error {
	if err := Validate(img); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if math.IsNaN(value) {
		return fmt.Errorf("%s: %w: parameter is NaN", op, ErrInvalidInput)
	}
	return nil
}

// blend interpolates the colour channels of ref and src, keeping the alpha of
// src. Both images must share the same bounds and stride.
func blend(ref, src *image.NRGBA, factor float64) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	for i := 0; i+3 < len(src.Pix); i += 4 {
		for c := i; c < i+3; c++ {
			r := float64(ref.Pix[c])
			dst.Pix[c] = clip(r + factor*(float64(src.Pix[c])-r))
		}
		dst.Pix[i+3] = src.Pix[i+3]
	}
	return dst
}

// clip truncates v into a channel value.
func clip(v float64) uint8 {
	if v <= 0 {
		return 0
	} else if v >= 255 {
		return 255
	}
	return uint8(v)
}
