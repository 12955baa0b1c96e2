package enhance

import (
	"image"

	"github.com/disintegration/imaging"
)

// Saturation moves colours towards their grayscale equivalent (factor 0) or
// makes them more vivid (factor > 1).
func Saturation(img image.Image, factor float64) (*image.NRGBA, error) {
	if err := check("saturation", img, factor); err != nil {
		return nil, err
	}
	src := imaging.Clone(img)
	return blend(imaging.Grayscale(src), src, factor), nil
}
