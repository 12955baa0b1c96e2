package enhance

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wamos0922/ossimg/tone"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := range 6 {
		for x := range 8 {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 30),
				G: uint8(y * 40),
				B: uint8((x + y) * 15),
				A: 255,
			})
		}
	}
	return img
}

func solid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

var adjustments = []struct {
	name string
	fn   Func
}{
	{name: "brightness", fn: Brightness},
	{name: "saturation", fn: Saturation},
	{name: "sharpness", fn: Sharpness},
	{name: "shadows", fn: Shadows},
}

func TestInvalidInput(t *testing.T) {
	inputs := []struct {
		name  string
		img   image.Image
		value float64
	}{
		{name: "nil", img: nil, value: 1},
		{name: "nil rgba", img: (*image.RGBA)(nil), value: 1},
		{name: "nil nrgba", img: (*image.NRGBA)(nil), value: 1},
		{name: "nil paletted", img: (*image.Paletted)(nil), value: 1},
		{name: "nan", img: testImage(), value: math.NaN()},
	}
	for _, adj := range adjustments {
		for _, in := range inputs {
			t.Run(adj.name+"/"+in.name, func(t *testing.T) {
				out, err := adj.fn(in.img, in.value)
				require.ErrorIs(t, err, ErrInvalidInput)
				assert.ErrorContains(t, err, adj.name)
				assert.Nil(t, out)
			})
		}
	}
}

func TestIdentity(t *testing.T) {
	src := testImage()
	neutral := map[string]float64{"brightness": 1, "saturation": 1, "sharpness": 1, "shadows": 0}
	for _, adj := range adjustments {
		t.Run(adj.name, func(t *testing.T) {
			out, err := adj.fn(src, neutral[adj.name])
			require.NoError(t, err)
			assert.Equal(t, src.Pix, out.Pix)
			assert.NotSame(t, &src.Pix[0], &out.Pix[0])
		})
	}
}

func TestInputUntouched(t *testing.T) {
	for _, adj := range adjustments {
		t.Run(adj.name, func(t *testing.T) {
			src := testImage()
			before := append([]uint8(nil), src.Pix...)
			_, err := adj.fn(src, 1.7)
			require.NoError(t, err)
			assert.Equal(t, before, src.Pix)
		})
	}
}

func TestBrightness(t *testing.T) {
	src := solid(color.NRGBA{200, 100, 50, 255})
	tests := []struct {
		factor float64
		want   color.NRGBA
	}{
		{factor: 0, want: color.NRGBA{0, 0, 0, 255}},
		{factor: 0.5, want: color.NRGBA{100, 50, 25, 255}},
		{factor: 1.15, want: color.NRGBA{229, 114, 57, 255}},
		{factor: 2, want: color.NRGBA{255, 200, 100, 255}},
		{factor: -1, want: color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		out, err := Brightness(src, tt.factor)
		require.NoError(t, err)
		assert.Equal(t, tt.want, out.NRGBAAt(2, 2), "factor %v", tt.factor)
	}
}

func TestBrightnessKeepsAlpha(t *testing.T) {
	out, err := Brightness(solid(color.NRGBA{100, 100, 100, 60}), 2)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{200, 200, 200, 60}, out.NRGBAAt(0, 0))
}

func TestSaturation(t *testing.T) {
	src := testImage()

	gray, err := Saturation(src, 0)
	require.NoError(t, err)
	assert.Equal(t, imaging.Grayscale(src).Pix, gray.Pix)

	vivid, err := Saturation(solid(color.NRGBA{150, 100, 100, 255}), 2)
	require.NoError(t, err)
	c := vivid.NRGBAAt(0, 0)
	assert.Greater(t, c.R, uint8(150))
	assert.Less(t, c.G, uint8(100))
	assert.Equal(t, c.G, c.B)
}

func TestSaturationGrayUnchanged(t *testing.T) {
	src := solid(color.NRGBA{90, 90, 90, 255})
	out, err := Saturation(src, 3)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestSharpness(t *testing.T) {
	src := testImage()

	soft, err := Sharpness(src, 0)
	require.NoError(t, err)
	assert.Equal(t, Smooth(src).Pix, soft.Pix)

	flat := solid(color.NRGBA{70, 140, 210, 255})
	for _, factor := range []float64{0, 0.8, 2.5} {
		out, err := Sharpness(flat, factor)
		require.NoError(t, err)
		assert.Equal(t, flat.Pix, out.Pix, "factor %v", factor)
	}
}

func TestSharpnessExtrapolates(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 3))
	src.SetGray(1, 1, color.Gray{Y: 130})
	out, err := Sharpness(src, 2)
	require.NoError(t, err)
	soft := Smooth(src)
	center := out.NRGBAAt(1, 1)
	assert.Greater(t, center.R, uint8(130))
	assert.Less(t, soft.NRGBAAt(1, 1).R, uint8(130))
}

func TestShadows(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range src.Pix {
		src.Pix[i] = 128
	}
	out, err := Shadows(src, 0.3)
	require.NoError(t, err)
	for i := 0; i < len(out.Pix); i += 4 {
		assert.Equal(t, []uint8{145, 145, 145, 255}, out.Pix[i:i+4])
	}

	flat, err := Shadows(src, 0)
	require.NoError(t, err)
	assert.Equal(t, tone.ToRGB(src).Pix, flat.Pix)
}

func TestShadowsDropsAlpha(t *testing.T) {
	out, err := Shadows(solid(color.NRGBA{10, 20, 30, 40}), 0)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, out.NRGBAAt(0, 0))
}
