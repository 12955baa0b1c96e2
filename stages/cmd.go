// Package stages implements the command writing every intermediate picture of
// a manual edit.
package stages

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"

	"github.com/wamos0922/ossimg/edit"
	"github.com/wamos0922/ossimg/imagefile"
)

type CLICmd struct {
	File       string  `arg:"" help:"Picture to edit" type:"existingfile"`
	Dest       string  `help:"Destination folder for the stage pictures. Relative to the picture folder if not absolute." default:"stages"`
	Saturation float64 `help:"Saturation factor, 1 keeps the original" default:"1"`
	Shadows    float64 `help:"Shadow amount, positive lifts and negative crushes, 0 keeps the original" default:"0"`
	Brightness float64 `help:"Brightness factor, 1 keeps the original" default:"1"`
	Sharpness  float64 `help:"Sharpness factor, 1 keeps the original" default:"1"`
	Until      string  `help:"Stop after this stage (saturation, shadows, brightness or sharpness)"`
	Format     string  `help:"Output format. If prefixed with 'unsup:' will convert only unsupported formats" enum:"${formats}" default:"unsup:png"`
	Quality    int     `help:"JPEG quality" default:"95"`
}

var stageNames = []string{"saturation", "shadows", "brightness", "sharpness"}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	file, err := filepath.Abs(c.File)
	if err != nil {
		return fmt.Errorf("invalid picture path %q: %w", c.File, err)
	}
	c.File = file

	c.Dest = imagefile.DestDir(filepath.Dir(file), c.Dest)

	if c.Until != "" && !slices.Contains(stageNames, c.Until) {
		return fmt.Errorf("unknown stage %q", c.Until)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("invalid JPEG quality: %d", c.Quality)
	}
	return nil
}

func (c *CLICmd) Run() error {
	_, err := c.run()
	return err
}

// run writes one file per stage and returns the written paths in order.
// Stages after Until are never computed.
func (c *CLICmd) run() ([]string, error) {
	logger := slog.Default().With("file", c.File)

	img, imgType, err := imagefile.Open(c.File)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(c.Dest, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	m := edit.Manual{
		Saturation: c.Saturation,
		Shadows:    c.Shadows,
		Brightness: c.Brightness,
		Sharpness:  c.Sharpness,
	}

	var written []string
	for stage, err := range edit.RunManualEdits(img, m) {
		if err != nil {
			return written, fmt.Errorf("stage %s failed: %w", stage.Name, err)
		}

		dest, err := imagefile.Save(stage.Image, imgType, c.Dest, filepath.Base(c.File), imagefile.SaveOptions{
			Format:  c.Format,
			Quality: c.Quality,
			Suffix:  fmt.Sprintf(".%02d-%s", len(written)+1, stage.Name),
		})
		if err != nil {
			return written, fmt.Errorf("could not save stage %s: %w", stage.Name, err)
		}
		logger.Info("stage saved", "stage", stage.Name, "dest", dest)
		written = append(written, dest)

		if stage.Name == c.Until {
			break
		}
	}
	return written, nil
}
