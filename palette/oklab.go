package palette

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/wamos0922/ossimg/okcolor"
)

// Space is the colour space in which pixels are matched against a palette.
type Space string

const (
	SpaceRGB   Space = "rgb"
	SpaceOKLab Space = "oklab"
)

// Spaces lists the supported matching spaces.
func Spaces() []string {
	return []string{string(SpaceRGB), string(SpaceOKLab)}
}

// ParseSpace returns the Space named s; the empty string means SpaceRGB.
func ParseSpace(s string) (Space, error) {
	switch Space(s) {
	case "", SpaceRGB:
		return SpaceRGB, nil
	case SpaceOKLab:
		return SpaceOKLab, nil
	}
	return "", fmt.Errorf("unknown palette space %q", s)
}

// Lab is a palette converted to OKLab for perceptual matching.
type Lab []okcolor.Lab

func NewLab(pal color.Palette) Lab {
	p := make(Lab, len(pal))
	for i, col := range pal {
		p[i] = okcolor.LabModel.Convert(col).(okcolor.Lab)
	}
	return p
}

// Index returns the index of the palette colour closest to lc.
func (p Lab) Index(lc okcolor.Lab) int {
	ret, bestSum := 0, math.MaxFloat64
	for i, v := range p {
		sum := okcolor.Dist2(lc, v)
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

type labErr struct{ L, A, B float64 }

// reduceLab matches every pixel in OKLab. With dither the quantisation error
// is diffused Floyd-Steinberg style in OKLab as well.
func reduceLab(img image.Image, pal color.Palette, dither bool) *image.Paletted {
	sr := img.Bounds()
	w, h := sr.Dx(), sr.Dy()
	dest := image.NewPaletted(image.Rect(0, 0, w, h), pal)
	lab := NewLab(pal)

	// error rows padded by one on each side
	cur := make([]labErr, w+2)
	next := make([]labErr, w+2)

	for y := range h {
		for x := range w {
			c := okcolor.LabModel.Convert(img.At(sr.Min.X+x, sr.Min.Y+y)).(okcolor.Lab)
			if dither {
				e := cur[x+1]
				c.L += e.L
				c.A += e.A
				c.B += e.B
			}

			i := lab.Index(c)
			dest.Pix[y*dest.Stride+x] = uint8(i)
			if !dither {
				continue
			}

			q := labErr{c.L - lab[i].L, c.A - lab[i].A, c.B - lab[i].B}
			spread(&cur[x+2], q, 7.0/16)
			spread(&next[x], q, 3.0/16)
			spread(&next[x+1], q, 5.0/16)
			spread(&next[x+2], q, 1.0/16)
		}
		cur, next = next, cur
		clear(next)
	}
	return dest
}

func spread(dst *labErr, q labErr, f float64) {
	dst.L += q.L * f
	dst.A += q.A * f
	dst.B += q.B * f
}
