// Package imagefile loads and stores pictures on disk.
package imagefile

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// Open decodes the picture at path and returns it with its format name
// ("jpeg", "png", "gif", "bmp", "tiff" or "webp"). EXIF orientation is applied.
func Open(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	return Decode(f)
}

// Decode reads a picture from r. Readers that cannot seek are buffered in
// memory first.
func Decode(r io.Reader) (image.Image, string, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, "", fmt.Errorf("could not read image: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	_, format, err := image.DecodeConfig(rs)
	if err != nil {
		return nil, "", fmt.Errorf("could not read image header: %w", err)
	}
	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("could not rewind image: %w", err)
	}

	img, err := imaging.Decode(rs, imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("could not decode %s image: %w", format, err)
	}
	return img, format, nil
}
