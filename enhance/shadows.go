package enhance

import (
	"image"

	"github.com/wamos0922/ossimg/tone"
)

// Shadows lifts (amount > 0) or crushes (amount < 0) the dark tones. The
// result is always an opaque three channel image, see tone.ToRGB. Amounts
// outside [-2,2] saturate.
func Shadows(img image.Image, amount float64) (*image.NRGBA, error) {
	if err := check("shadows", img, amount); err != nil {
		return nil, err
	}
	return tone.Apply(img, tone.ShadowCurve(amount)), nil
}
