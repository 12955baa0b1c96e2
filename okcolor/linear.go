package okcolor

import (
	"image/color"
	"math"
)

// LinearRGBA is a colour with linear light components in [0,1] and a
// straight 16 bit alpha.
type LinearRGBA struct {
	R, G, B float64
	A       uint16
}

var LinearRGBAModel = color.ModelFunc(linearRGBAConvert)

func linearRGBAConvert(c color.Color) color.Color {
	switch lc := c.(type) {
	case LinearRGBA:
		return c
	case Lab:
		return lc.LinearRGBA()
	}
	return sRGBToLinearRGB(color.NRGBA64Model.Convert(c).(color.NRGBA64))
}

// RGBA clamps the components into gamut and returns the premultiplied sRGB value.
func (lc LinearRGBA) RGBA() (uint32, uint32, uint32, uint32) {
	return linearRGBToSRGB(lc).RGBA()
}

func linearRGBToSRGB(lc LinearRGBA) color.NRGBA64 {
	return color.NRGBA64{
		R: uint16(fromLinear(clamp01(lc.R))*65535 + 0.5),
		G: uint16(fromLinear(clamp01(lc.G))*65535 + 0.5),
		B: uint16(fromLinear(clamp01(lc.B))*65535 + 0.5),
		A: lc.A,
	}
}

func sRGBToLinearRGB(c color.NRGBA64) LinearRGBA {
	return LinearRGBA{
		R: toLinear(float64(c.R) / 65535),
		G: toLinear(float64(c.G) / 65535),
		B: toLinear(float64(c.B) / 65535),
		A: c.A,
	}
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

const pow = 1.0 / 2.4

func fromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, pow)*1.055 - 0.055
	}
	return x * 12.92
}

func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
