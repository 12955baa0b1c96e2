package edit

import (
	"image"
	"iter"

	"github.com/disintegration/imaging"

	"github.com/wamos0922/ossimg/enhance"
)

// Manual holds the parameters of a manual edit.
type Manual struct {
	Saturation float64
	Shadows    float64
	Brightness float64
	Sharpness  float64
}

// NeutralManual returns the parameters under which every stage is the identity.
func NeutralManual() Manual {
	return Manual{Saturation: 1, Shadows: 0, Brightness: 1, Sharpness: 1}
}

// Steps lists the manual stages in the order they run.
func (m Manual) Steps() []Step {
	return []Step{
		{OpSaturation, m.Saturation},
		{OpShadows, m.Shadows},
		{OpBrightness, m.Brightness},
		{OpSharpness, m.Sharpness},
	}
}

// Stage is the result of one manual step.
type Stage struct {
	Name  string
	Image *image.NRGBA
}

// RunManualEdits returns a sequence that applies saturation, shadows,
// brightness and sharpness in that order, yielding the image after each one.
//
// Nothing is computed until the sequence is ranged over, and a stage runs only
// when the previous one has been consumed, so breaking out of the loop skips the
// remaining stages. Every range over the sequence starts again from img; img
// itself is never modified.
//
// When a stage fails it is yielded once with a nil image and the error, and the
// sequence ends.
func RunManualEdits(img image.Image, m Manual) iter.Seq2[Stage, error] {
	return func(yield func(Stage, error) bool) {
		cur := img
		if enhance.Validate(img) == nil {
			cur = imaging.Clone(img)
		}
		for _, s := range m.Steps() {
			out, err := s.Op.Func()(cur, s.Value)
			if err != nil {
				yield(Stage{Name: s.Op.String()}, err)
				return
			}
			if !yield(Stage{Name: s.Op.String(), Image: out}, nil) {
				return
			}
			cur = out
		}
	}
}

// ApplyManual runs every manual stage and returns the final image.
func ApplyManual(img image.Image, m Manual) (*image.NRGBA, error) {
	var last *image.NRGBA
	for st, err := range RunManualEdits(img, m) {
		if err != nil {
			return nil, err
		}
		last = st.Image
	}
	return last, nil
}
