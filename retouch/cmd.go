// Package retouch implements the batch command applying a look to every
// picture of a folder.
package retouch

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/alecthomas/kong"

	"github.com/wamos0922/ossimg/edit"
	"github.com/wamos0922/ossimg/imagefile"
	"github.com/wamos0922/ossimg/palette"
	"github.com/wamos0922/ossimg/parallel"
)

type CLICmd struct {
	Scan         string  `help:"Source folder to scan" default:"."`
	Dest         string  `help:"Destination folder for edited pictures. Relative to scan dir if not absolute." default:"retouched"`
	Preset       string  `help:"Preset look to apply: ${presets}. When empty, the manual adjustments are used." group:"look"`
	Saturation   float64 `help:"Saturation factor, 1 keeps the original" default:"1" group:"manual"`
	Shadows      float64 `help:"Shadow amount, positive lifts and negative crushes, 0 keeps the original" default:"0" group:"manual"`
	Brightness   float64 `help:"Brightness factor, 1 keeps the original" default:"1" group:"manual"`
	Sharpness    float64 `help:"Sharpness factor, 1 keeps the original" default:"1" group:"manual"`
	Resize       bool    `help:"Shrink pictures to fit inside the given box before editing" default:"false" group:"resize"`
	Width        int     `help:"Max width" group:"resize"`
	Height       int     `help:"Max height" group:"resize"`
	Palette      string  `help:"Palette name (${palettes}) or PAL file in RIFF format to reduce the result to" group:"output"`
	Dither       bool    `help:"Apply dithering when reducing to a palette" default:"false" group:"output"`
	PaletteSpace string  `help:"Colour space used to match pixels against the palette: ${palettespaces}" default:"rgb" group:"output"`
	Format       string  `help:"Output format. If prefixed with 'unsup:' will convert only unsupported formats" enum:"${formats}" default:"unsup:png" group:"output"`
	Quality      int     `help:"JPEG quality" default:"95" group:"output"`
	Suffix       string  `help:"Suffix appended to output file names" group:"output"`
	Workers      int     `help:"Number of pictures processed at once, 0 for one per CPU" default:"0"`

	look  look          `kong:"-"`
	pal   color.Palette `kong:"-"`
	space palette.Space `kong:"-"`
}

// look is the edit applied to every picture.
type look struct {
	name  string
	apply func(image.Image) (*image.NRGBA, error)
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := imagefile.ScanDir(c.Scan)
	if err != nil {
		return err
	}
	c.Scan = scanDir
	c.Dest = imagefile.DestDir(scanDir, c.Dest)

	if c.Resize {
		switch {
		case c.Width < 0:
			return fmt.Errorf("invalid resize width: %d", c.Width)
		case c.Height < 0:
			return fmt.Errorf("invalid resize height: %d", c.Height)
		case (c.Width == 0) && (c.Height == 0):
			return fmt.Errorf("no resize dimensions given")
		}
	}

	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("invalid JPEG quality: %d", c.Quality)
	}

	if c.space, err = palette.ParseSpace(c.PaletteSpace); err != nil {
		return err
	}
	if c.Palette != "" {
		if c.pal, err = palette.Load(c.Palette); err != nil {
			return err
		}
	}

	if c.Preset != "" && c.manual() != edit.NeutralManual() {
		return fmt.Errorf("preset %q cannot be combined with manual adjustments", c.Preset)
	}

	c.look, err = c.selectLook()
	return err
}

func (c *CLICmd) manual() edit.Manual {
	return edit.Manual{
		Saturation: c.Saturation,
		Shadows:    c.Shadows,
		Brightness: c.Brightness,
		Sharpness:  c.Sharpness,
	}
}

func (c *CLICmd) selectLook() (look, error) {
	if c.Preset != "" {
		p, err := edit.LookupPreset(c.Preset)
		if err != nil {
			return look{}, err
		}
		return look{name: p.Name, apply: p.Apply}, nil
	}

	m := c.manual()
	return look{
		name: fmt.Sprintf("manual(saturation=%g shadows=%g brightness=%g sharpness=%g)",
			m.Saturation, m.Shadows, m.Brightness, m.Sharpness),
		apply: func(img image.Image) (*image.NRGBA, error) {
			return edit.ApplyManual(img, m)
		},
	}, nil
}

func (c *CLICmd) Run(ctx context.Context) error {
	var err error
	if c.look.apply == nil {
		if c.look, err = c.selectLook(); err != nil {
			return err
		}
	}
	if c.Palette != "" && c.pal == nil {
		if c.pal, err = palette.Load(c.Palette); err != nil {
			return err
		}
	}
	if c.space == "" {
		if c.space, err = palette.ParseSpace(c.PaletteSpace); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	pool := parallel.Start(ctx, c.Workers)
	slog.Info("retouching", "dir", c.Scan, "dest", c.Dest, "look", c.look.name, "workers", pool.Workers())

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if !file.Type().IsRegular() {
			continue
		}

		fileName := file.Name()
		pool.Go(func(ctx context.Context) error {
			logger := slog.Default().With("file", filepath.Join(c.Scan, fileName))
			if err := c.process(ctx, logger, fileName); err != nil {
				errCount.Add(1)
				logger.Error("could not retouch image", "error", err)
				return nil
			}
			processedCount.Add(1)
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return err
	}

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return ctx.Err()
}

func (c *CLICmd) process(ctx context.Context, logger *slog.Logger, fileName string) error {
	img, imgType, err := imagefile.Open(filepath.Join(c.Scan, fileName))
	if err != nil {
		return err
	}

	if c.Resize {
		img = fit(logger, img, c.Width, c.Height)
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	logger.Debug("applying look", "look", c.look.name)
	var out image.Image
	if out, err = c.look.apply(img); err != nil {
		return fmt.Errorf("could not apply %s: %w", c.look.name, err)
	}

	if c.pal != nil {
		out = palette.Reduce(logger.With("palette", c.Palette), out, c.pal, c.space, c.Dither)
	}

	dest, err := imagefile.Save(out, imgType, c.Dest, fileName, imagefile.SaveOptions{
		Format:  c.Format,
		Quality: c.Quality,
		Suffix:  c.Suffix,
	})
	if err != nil {
		return err
	}
	logger.Info("saved", "dest", dest)
	return nil
}
