package enhance

import (
	"image"

	"github.com/disintegration/imaging"
)

// smoothKernel is the reference blur for Sharpness.
var smoothKernel = [9]float64{
	1, 1, 1,
	1, 5, 1,
	1, 1, 1,
}

// Smooth returns img blurred with the reference kernel used by Sharpness.
func Smooth(img image.Image) *image.NRGBA {
	return imaging.Convolve3x3(img, smoothKernel, &imaging.ConvolveOptions{Normalize: true})
}

// Sharpness blends between a smoothed copy of the picture (factor 0) and a
// crisper one (factor > 1).
func Sharpness(img image.Image, factor float64) (*image.NRGBA, error) {
	if err := check("sharpness", img, factor); err != nil {
		return nil, err
	}
	src := imaging.Clone(img)
	return blend(Smooth(src), src, factor), nil
}
