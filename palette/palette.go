// Package palette loads colour palettes and reduces pictures onto them.
package palette

import (
	"fmt"
	"image"
	"image/color"
	stdpalette "image/color/palette"
	"log/slog"
	"os"

	"golang.org/x/image/draw"
)

var builtin = map[string]func() color.Palette{
	"bw": func() color.Palette {
		return color.Palette{color.Black, color.White}
	},
	"gray16": func() color.Palette {
		pal := make(color.Palette, 16)
		for i := range pal {
			pal[i] = color.Gray{Y: uint8(i * 0x11)}
		}
		return pal
	},
	"websafe": func() color.Palette {
		return append(color.Palette(nil), stdpalette.WebSafe...)
	},
	"plan9": func() color.Palette {
		return append(color.Palette(nil), stdpalette.Plan9...)
	},
}

// Names lists the built-in palettes.
func Names() []string {
	return []string{"bw", "gray16", "websafe", "plan9"}
}

// Load returns a built-in palette by name, or reads name as a RIFF palette file.
func Load(name string) (color.Palette, error) {
	if mk, ok := builtin[name]; ok {
		return mk(), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	pals, err := ReadRIFF(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette %q: %w", name, err)
	}

	var res color.Palette
	for _, pal := range pals {
		res = append(res, pal...)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("palette %q has no colors", name)
	}
	if len(res) > 256 {
		return nil, fmt.Errorf("palette %q has %d colors, at most 256 are supported", name, len(res))
	}
	return res, nil
}

// Save writes pal to path as a RIFF palette file.
func Save(path string, pal color.Palette) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create palette file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("could not close palette file: %w", closeErr)
		}
	}()

	if _, err = WriteRIFF(f, []color.Palette{pal}); err != nil {
		return fmt.Errorf("could not save palette %q: %w", path, err)
	}
	return nil
}

// Reduce maps img onto pal, optionally with Floyd-Steinberg dithering.
// SpaceRGB matches colours the way image/draw does; SpaceOKLab matches them by
// perceptual distance.
func Reduce(logger *slog.Logger, img image.Image, pal color.Palette, space Space, dither bool) *image.Paletted {
	logger.Info("applying palette", "colors", len(pal), "space", space, "dither", dither)
	if space == SpaceOKLab {
		return reduceLab(img, pal, dither)
	}

	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	dest := image.NewPaletted(dr, pal)

	if dither {
		draw.FloydSteinberg.Draw(dest, dr, img, sr.Min)
	} else {
		draw.Draw(dest, dr, img, sr.Min, draw.Src)
	}
	return dest
}
