package tone

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ToRGB returns a copy of img in the three channel representation used by the
// remapper: straight (non-premultiplied) colour with alpha forced to opaque and
// bounds anchored at (0,0). Gray, paletted, YCbCr and CMYK sources are expanded
// to colour first. Alpha is dropped, not composited.
func ToRGB(img image.Image) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.A = 0xff
		return c
	})
}

// Apply converts img like ToRGB and replaces every colour channel value v with
// t[v]. The same table is used for red, green and blue.
func Apply(img image.Image, t Table) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: t[c.R], G: t[c.G], B: t[c.B], A: 0xff}
	})
}
