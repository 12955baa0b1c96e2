package enhance

import (
	"image"

	"github.com/disintegration/imaging"
)

// Brightness scales the picture towards black (factor 0) or beyond the
// original (factor > 1).
func Brightness(img image.Image, factor float64) (*image.NRGBA, error) {
	if err := check("brightness", img, factor); err != nil {
		return nil, err
	}
	src := imaging.Clone(img)
	black := image.NewNRGBA(src.Rect)
	return blend(black, src, factor), nil
}
